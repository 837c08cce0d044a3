package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository implements the catalog repository interface using GORM
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) outbound.IngredientRepository {
	return &IngredientRepository{db: db}
}

// FindAll lists records in insertion order. Zero-valued numeric bounds are not applied.
func (r *IngredientRepository) FindAll(ctx context.Context, filter ingredient.Filter) ([]*ingredient.Ingredient, error) {
	query := r.db.WithContext(ctx).Model(&IngredientModel{})

	if filter.MaxCalories != 0 {
		query = query.Where(columnFor(nutrition.Calories)+" <= ?", filter.MaxCalories)
	}
	if filter.MinProtein != 0 {
		query = query.Where(columnFor(nutrition.Proteins)+" >= ?", filter.MinProtein)
	}
	if filter.MaxFat != 0 {
		query = query.Where(columnFor(nutrition.Fats)+" <= ?", filter.MaxFat)
	}
	if filter.Dietary != "" {
		query = query.Where("dietary = ?", filter.Dietary)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var models []IngredientModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, unavailable("list ingredients", err)
	}

	return modelsToIngredients(models), nil
}

// FindByName finds a record by its exact name
func (r *IngredientRepository) FindByName(ctx context.Context, name string) (*ingredient.Ingredient, error) {
	var model IngredientModel

	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ingredient.ErrIngredientNotFound
		}
		return nil, unavailable("find ingredient", result.Error)
	}

	return ModelToIngredient(&model), nil
}

// FindByNames finds the records whose names are listed, in insertion order
func (r *IngredientRepository) FindByNames(ctx context.Context, names []string) ([]*ingredient.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var models []IngredientModel
	result := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, unavailable("find ingredients", result.Error)
	}

	return modelsToIngredients(models), nil
}

// Exists checks if a record with the name exists
func (r *IngredientRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(&IngredientModel{}).
		Where("name = ?", name).
		Count(&count)
	if result.Error != nil {
		return false, unavailable("check ingredient", result.Error)
	}

	return count > 0, nil
}

// Create inserts a new record
func (r *IngredientRepository) Create(ctx context.Context, i *ingredient.Ingredient) error {
	model := IngredientToModel(i)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ingredient.ErrIngredientExists
		}
		return unavailable("create ingredient", result.Error)
	}

	return nil
}

// UpdatePrice persists purchase cost, amount and the derived unit price
func (r *IngredientRepository) UpdatePrice(ctx context.Context, i *ingredient.Ingredient) error {
	result := r.db.WithContext(ctx).Model(&IngredientModel{}).
		Where("name = ?", i.Name()).
		Updates(map[string]interface{}{
			"purchase_cost":   i.PurchaseCost(),
			"purchase_amount": i.PurchaseAmount(),
			"price_per_unit":  i.PricePerUnit(),
		})
	if result.Error != nil {
		return unavailable("update price", result.Error)
	}

	if result.RowsAffected == 0 {
		return ingredient.ErrIngredientNotFound
	}

	return nil
}

// Upsert inserts records or overwrites existing ones matched by name.
// Existing rows keep their position in insertion order.
func (r *IngredientRepository) Upsert(ctx context.Context, items []*ingredient.Ingredient) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	models := make([]*IngredientModel, len(items))
	for idx, i := range items {
		models[idx] = IngredientToModel(i)
	}

	columns := []string{"localized_name", "dietary", "category", "purchase_cost", "purchase_amount", "price_per_unit", "updated_at"}
	for _, key := range nutrition.Schema() {
		columns = append(columns, columnFor(key))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		CreateInBatches(models, 100)
	if result.Error != nil {
		return 0, unavailable("upsert ingredients", result.Error)
	}

	return len(items), nil
}

// Count returns the number of records
func (r *IngredientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&IngredientModel{}).Count(&count).Error; err != nil {
		return 0, unavailable("count ingredients", err)
	}
	return count, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", outbound.ErrStorageUnavailable, op, err)
}
