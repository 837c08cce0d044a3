package recipe

import (
	"time"

	"github.com/nutrino/kitchen/internal/domain/shared"
)

// Collection is the ordered set of recipe documents held by the store
type Collection struct {
	shared.AggregateRoot

	recipes []*Recipe
}

// NewCollection wraps recipes in storage order
func NewCollection(recipes []*Recipe) *Collection {
	return &Collection{recipes: append([]*Recipe(nil), recipes...)}
}

// Recipes returns the documents in storage order
func (c *Collection) Recipes() []*Recipe {
	return append([]*Recipe(nil), c.recipes...)
}

// Len returns the number of documents
func (c *Collection) Len() int {
	return len(c.recipes)
}

// Find returns the recipe with the exact name
func (c *Collection) Find(name string) (*Recipe, bool) {
	if i := c.index(name); i >= 0 {
		return c.recipes[i], true
	}
	return nil, false
}

// Add appends r, rejecting a name already in use
func (c *Collection) Add(r *Recipe) error {
	if c.index(r.name) >= 0 {
		return ErrDuplicateRecipe
	}
	c.recipes = append(c.recipes, r)
	c.AddEvent(RecipeAddedEvent{Name: r.name, AddedAt: time.Now()})
	return nil
}

// Replace removes the document named r.Name() and appends r in its place at
// the end. Nothing of the old document is carried over.
func (c *Collection) Replace(r *Recipe) error {
	i := c.index(r.name)
	if i < 0 {
		return ErrRecipeNotFound
	}
	c.recipes = append(c.recipes[:i:i], c.recipes[i+1:]...)
	c.recipes = append(c.recipes, r)
	c.AddEvent(RecipeReplacedEvent{Name: r.name, ReplacedAt: time.Now()})
	return nil
}

// Remove deletes the document with the exact name
func (c *Collection) Remove(name string) error {
	i := c.index(name)
	if i < 0 {
		return ErrRecipeNotFound
	}
	c.recipes = append(c.recipes[:i:i], c.recipes[i+1:]...)
	c.AddEvent(RecipeDeletedEvent{Name: name, DeletedAt: time.Now()})
	return nil
}

func (c *Collection) index(name string) int {
	for i, r := range c.recipes {
		if r.name == name {
			return i
		}
	}
	return -1
}
