package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"go.uber.org/zap"
)

// recipeItemRecord is one ingredient line as stored
type recipeItemRecord struct {
	Ingredient string     `json:"ingredient"`
	Quantity   flexNumber `json:"quantity"`
}

// recipeRecord is the stored shape of a recipe document
type recipeRecord struct {
	Name         string             `json:"recipe_name"`
	Ingredients  []recipeItemRecord `json:"ingredient_list"`
	Instructions string             `json:"instructions"`
	PrepTime     flexNumber         `json:"prep_time"`
	Dietary      string             `json:"dietary"`
	Complexity   string             `json:"complexity"`
	Servings     flexNumber         `json:"servings,omitempty"`
	Image        string             `json:"image,omitempty"`
	Thumbnails   []string           `json:"thumbnails,omitempty"`
}

// RecipeStore keeps the recipe collection as a JSON array of documents
type RecipeStore struct {
	file   *File
	logger *zap.Logger
}

// NewRecipeStore creates a store backed by path
func NewRecipeStore(path string, logger *zap.Logger) outbound.RecipeStore {
	return &RecipeStore{
		file:   NewFile(path),
		logger: logger.Named("recipe-store"),
	}
}

// OpenRecipeStore creates the store file as an empty collection when it does
// not exist yet, then returns a store backed by it
func OpenRecipeStore(path string, logger *zap.Logger) (outbound.RecipeStore, error) {
	store := &RecipeStore{
		file:   NewFile(path),
		logger: logger.Named("recipe-store"),
	}
	created, err := store.file.create([]recipeRecord{})
	if err != nil {
		return nil, fmt.Errorf("initialize recipe store: %w", err)
	}
	if created {
		store.logger.Info("Recipe store created", zap.String("path", path))
	}
	return store, nil
}

// Load reads the collection. A missing or unreadable file is reported as
// storage unavailable.
func (s *RecipeStore) Load(ctx context.Context) (*recipe.Collection, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	return s.load()
}

// Mutate applies fn to the current collection and persists the result when fn succeeds
func (s *RecipeStore) Mutate(ctx context.Context, fn func(*recipe.Collection) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	collection, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(collection); err != nil {
		return err
	}

	records := make([]recipeRecord, 0, collection.Len())
	for _, r := range collection.Recipes() {
		records = append(records, toRecord(r))
	}

	if err := s.file.write(records); err != nil {
		s.logger.Error("Failed to write recipe store", zap.String("path", s.file.Path()), zap.Error(err))
		return fmt.Errorf("%w: %v", outbound.ErrStorageUnavailable, err)
	}

	s.logger.Debug("Recipe store written", zap.Int("recipes", len(records)))
	return nil
}

func (s *RecipeStore) load() (*recipe.Collection, error) {
	var records []recipeRecord
	if _, err := s.file.read(&records); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.logger.Error("Recipe store is missing", zap.String("path", s.file.Path()))
		case errors.Is(err, errCorrupt):
			s.logger.Error("Recipe store is corrupt", zap.String("path", s.file.Path()), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", outbound.ErrStorageUnavailable, err)
	}

	recipes := make([]*recipe.Recipe, 0, len(records))
	for _, rec := range records {
		recipes = append(recipes, fromRecord(rec))
	}
	return recipe.NewCollection(recipes), nil
}

func toRecord(r *recipe.Recipe) recipeRecord {
	d := r.Draft()
	items := make([]recipeItemRecord, 0, len(d.Ingredients))
	for _, it := range d.Ingredients {
		items = append(items, recipeItemRecord{Ingredient: it.Ingredient, Quantity: flexNumber(it.Quantity)})
	}
	return recipeRecord{
		Name:         d.Name,
		Ingredients:  items,
		Instructions: d.Instructions,
		PrepTime:     flexNumber(d.PrepTime),
		Dietary:      d.Dietary,
		Complexity:   d.Complexity,
		Servings:     flexNumber(d.Servings),
		Image:        d.Image,
		Thumbnails:   d.Thumbnails,
	}
}

func fromRecord(rec recipeRecord) *recipe.Recipe {
	items := make([]recipe.Item, 0, len(rec.Ingredients))
	for _, it := range rec.Ingredients {
		items = append(items, recipe.Item{Ingredient: it.Ingredient, Quantity: float64(it.Quantity)})
	}
	return recipe.Restore(recipe.Draft{
		Name:         rec.Name,
		Ingredients:  items,
		Instructions: rec.Instructions,
		PrepTime:     int(rec.PrepTime),
		Dietary:      rec.Dietary,
		Complexity:   rec.Complexity,
		Servings:     int(rec.Servings),
		Image:        rec.Image,
		Thumbnails:   rec.Thumbnails,
	})
}
