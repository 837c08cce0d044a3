package ingredient

import "time"

// IngredientAddedEvent is raised when a new ingredient enters the catalog
type IngredientAddedEvent struct {
	Name     string
	Category Category
	AddedAt  time.Time
}

func (e IngredientAddedEvent) EventName() string {
	return "ingredient.added"
}

func (e IngredientAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// PriceUpdatedEvent is raised when purchase cost or amount change
type PriceUpdatedEvent struct {
	Name      string
	OldPrice  float64
	NewPrice  float64
	UpdatedAt time.Time
}

func (e PriceUpdatedEvent) EventName() string {
	return "ingredient.price.updated"
}

func (e PriceUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}
