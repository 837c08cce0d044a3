// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/domain/recipe"
)

// IngredientRepository is the catalog table
type IngredientRepository interface {
	// FindAll returns the records matching filter in storage order
	FindAll(ctx context.Context, filter ingredient.Filter) ([]*ingredient.Ingredient, error)
	FindByName(ctx context.Context, name string) (*ingredient.Ingredient, error)
	FindByNames(ctx context.Context, names []string) ([]*ingredient.Ingredient, error)
	Exists(ctx context.Context, name string) (bool, error)

	Create(ctx context.Context, i *ingredient.Ingredient) error
	// UpdatePrice persists purchase cost, amount and price per unit only
	UpdatePrice(ctx context.Context, i *ingredient.Ingredient) error
	// Upsert inserts or fully overwrites records by name
	Upsert(ctx context.Context, items []*ingredient.Ingredient) (int, error)
	Count(ctx context.Context) (int64, error)
}

// RecipeStore holds the whole recipe collection
type RecipeStore interface {
	// Load reads the collection. A missing backing file is an empty collection.
	Load(ctx context.Context) (*recipe.Collection, error)
	// Mutate loads the collection, applies fn and writes the result back while
	// holding the store's write intent. Nothing is written when fn fails.
	Mutate(ctx context.Context, fn func(*recipe.Collection) error) error
}

// OrderLog is the append-only order record
type OrderLog interface {
	Append(ctx context.Context, order *mealplan.Order) error
	// List returns every order. A missing or unreadable log reads as empty.
	List(ctx context.Context) ([]*mealplan.Order, error)
}

// ErrStorageUnavailable is wrapped by adapters when the backing table or file
// cannot be read or written
var ErrStorageUnavailable = errors.New("storage unavailable")
