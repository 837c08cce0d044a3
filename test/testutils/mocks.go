// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockIngredientRepository provides a mock implementation of IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

// FindAll lists records
func (m *MockIngredientRepository) FindAll(ctx context.Context, filter ingredient.Filter) ([]*ingredient.Ingredient, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ingredient.Ingredient), args.Error(1)
}

// FindByName finds one record
func (m *MockIngredientRepository) FindByName(ctx context.Context, name string) (*ingredient.Ingredient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingredient.Ingredient), args.Error(1)
}

// FindByNames finds the records with the given names
func (m *MockIngredientRepository) FindByNames(ctx context.Context, names []string) ([]*ingredient.Ingredient, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ingredient.Ingredient), args.Error(1)
}

// Exists checks a name
func (m *MockIngredientRepository) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// Create inserts a record
func (m *MockIngredientRepository) Create(ctx context.Context, i *ingredient.Ingredient) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

// UpdatePrice persists a price change
func (m *MockIngredientRepository) UpdatePrice(ctx context.Context, i *ingredient.Ingredient) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

// Upsert writes records by name
func (m *MockIngredientRepository) Upsert(ctx context.Context, items []*ingredient.Ingredient) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

// Count counts records
func (m *MockIngredientRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLabelRenderer provides a mock implementation of LabelRenderer
type MockLabelRenderer struct {
	mock.Mock
}

// RenderLabel renders a label
func (m *MockLabelRenderer) RenderLabel(title string, result nutrition.Result, reference nutrition.Reference) (*outbound.Document, error) {
	args := m.Called(title, result, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.Document), args.Error(1)
}

// MockSheetRenderer provides a mock implementation of SheetRenderer
type MockSheetRenderer struct {
	mock.Mock
}

// RenderSheet renders a recipe sheet
func (m *MockSheetRenderer) RenderSheet(format outbound.SheetFormat, r *recipe.Recipe, result nutrition.Result, reference nutrition.Reference) (*outbound.Document, error) {
	args := m.Called(format, r, result, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.Document), args.Error(1)
}

// MemoryRecipeStore is an in-memory RecipeStore. Set Err to make every call fail.
type MemoryRecipeStore struct {
	mu      sync.Mutex
	recipes []*recipe.Recipe
	Writes  int
	Err     error
}

// NewMemoryRecipeStore seeds the store
func NewMemoryRecipeStore(recipes ...*recipe.Recipe) *MemoryRecipeStore {
	return &MemoryRecipeStore{recipes: recipes}
}

// Load returns the collection
func (s *MemoryRecipeStore) Load(ctx context.Context) (*recipe.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return recipe.NewCollection(s.recipes), nil
}

// Mutate applies fn under the store lock
func (s *MemoryRecipeStore) Mutate(ctx context.Context, fn func(*recipe.Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c := recipe.NewCollection(s.recipes)
	if err := fn(c); err != nil {
		return err
	}
	s.recipes = c.Recipes()
	s.Writes++
	return nil
}

// Names returns the stored recipe names in order
func (s *MemoryRecipeStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.recipes))
	for _, r := range s.recipes {
		names = append(names, r.Name())
	}
	return names
}

// MemoryOrderLog is an in-memory OrderLog
type MemoryOrderLog struct {
	mu     sync.Mutex
	orders []*mealplan.Order
	Err    error
}

// Append records an order
func (l *MemoryOrderLog) Append(ctx context.Context, order *mealplan.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.orders = append(l.orders, order)
	return nil
}

// List returns every order
func (l *MemoryOrderLog) List(ctx context.Context) ([]*mealplan.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*mealplan.Order(nil), l.orders...), nil
}

// MemoryCatalog is an IngredientRepository backed by a slice, in insertion order
type MemoryCatalog struct {
	mu    sync.Mutex
	items []*ingredient.Ingredient
}

// NewMemoryCatalog seeds the catalog
func NewMemoryCatalog(items ...*ingredient.Ingredient) *MemoryCatalog {
	return &MemoryCatalog{items: items}
}

// FindAll applies the filter bounds with the zero-means-absent rule
func (c *MemoryCatalog) FindAll(ctx context.Context, f ingredient.Filter) ([]*ingredient.Ingredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*ingredient.Ingredient
	for _, i := range c.items {
		if f.MaxCalories != 0 && i.Nutrient(nutrition.Calories) > f.MaxCalories {
			continue
		}
		if f.MinProtein != 0 && i.Nutrient(nutrition.Proteins) < f.MinProtein {
			continue
		}
		if f.MaxFat != 0 && i.Nutrient(nutrition.Fats) > f.MaxFat {
			continue
		}
		if f.Dietary != "" && string(i.Dietary()) != f.Dietary {
			continue
		}
		if f.Category != "" && string(i.Category()) != f.Category {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

// FindByName finds one record
func (c *MemoryCatalog) FindByName(ctx context.Context, name string) (*ingredient.Ingredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, i := range c.items {
		if i.Name() == name {
			return i, nil
		}
	}
	return nil, ingredient.ErrIngredientNotFound
}

// FindByNames finds the records with the given names
func (c *MemoryCatalog) FindByNames(ctx context.Context, names []string) ([]*ingredient.Ingredient, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*ingredient.Ingredient
	for _, i := range c.items {
		if want[i.Name()] {
			out = append(out, i)
		}
	}
	return out, nil
}

// Exists checks a name
func (c *MemoryCatalog) Exists(ctx context.Context, name string) (bool, error) {
	_, err := c.FindByName(ctx, name)
	return err == nil, nil
}

// Create appends a record
func (c *MemoryCatalog) Create(ctx context.Context, i *ingredient.Ingredient) error {
	if ok, _ := c.Exists(ctx, i.Name()); ok {
		return ingredient.ErrIngredientExists
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, i)
	return nil
}

// UpdatePrice is a no-op since records are held by pointer
func (c *MemoryCatalog) UpdatePrice(ctx context.Context, i *ingredient.Ingredient) error {
	_, err := c.FindByName(ctx, i.Name())
	return err
}

// Upsert replaces or appends records by name
func (c *MemoryCatalog) Upsert(ctx context.Context, items []*ingredient.Ingredient) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		replaced := false
		for idx, existing := range c.items {
			if existing.Name() == item.Name() {
				c.items[idx] = item
				replaced = true
				break
			}
		}
		if !replaced {
			c.items = append(c.items, item)
		}
	}
	return len(items), nil
}

// Count counts records
func (c *MemoryCatalog) Count(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items)), nil
}
