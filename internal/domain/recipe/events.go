package recipe

import "time"

// Domain Events - Events that occur within the recipe domain

// RecipeAddedEvent is raised when a recipe is appended to the store
type RecipeAddedEvent struct {
	Name    string
	AddedAt time.Time
}

func (e RecipeAddedEvent) EventName() string {
	return "recipe.added"
}

func (e RecipeAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// RecipeReplacedEvent is raised when a recipe document is replaced by an update
type RecipeReplacedEvent struct {
	Name       string
	ReplacedAt time.Time
}

func (e RecipeReplacedEvent) EventName() string {
	return "recipe.replaced"
}

func (e RecipeReplacedEvent) OccurredAt() time.Time {
	return e.ReplacedAt
}

// RecipeDeletedEvent is raised when a recipe is removed
type RecipeDeletedEvent struct {
	Name      string
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string {
	return "recipe.deleted"
}

func (e RecipeDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
