// Package sqlite provides SQLite database setup and catalog seeding
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/infrastructure/persistence/migrations"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase opens the SQLite catalog and applies the embedded migrations
func SetupDatabase(dbPath string, logLevel logger.LogLevel, log *zap.Logger) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}
	inMemory := dbPath == ":memory:"

	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// every connection to :memory: is a separate database
	if inMemory {
		sqlDB.SetMaxOpenConns(1)
	}

	migrator, err := migrations.New(sqlDB, migrations.DialectSQLite, log)
	if err != nil {
		return nil, err
	}
	if err := migrator.Up(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates an empty catalog with a starter set of ingredients
func SeedDatabase(ctx context.Context, repo outbound.IngredientRepository, log *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	var items []*ingredient.Ingredient
	for _, attrs := range starterCatalog() {
		i, err := ingredient.NewIngredient(attrs)
		if err != nil {
			return fmt.Errorf("invalid seed ingredient %s: %w", attrs.Name, err)
		}
		items = append(items, i)
	}

	n, err := repo.Upsert(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Info("Seeded ingredient catalog", zap.Int("ingredients", n))
	return nil
}

func starterCatalog() []ingredient.Attributes {
	seed := func(name, localized string, d ingredient.Dietary, c ingredient.Category, cost, amount float64, n nutrition.Profile) ingredient.Attributes {
		return ingredient.Attributes{
			Name:           name,
			LocalizedName:  localized,
			Dietary:        d,
			Category:       c,
			PurchaseCost:   cost,
			PurchaseAmount: amount,
			Nutrients:      n,
		}
	}

	return []ingredient.Attributes{
		seed("Egg", "تخم مرغ", ingredient.DietaryVegetarian, ingredient.CategoryEggs, 50, 100, nutrition.Profile{
			nutrition.Calories: 155, nutrition.Proteins: 13, nutrition.Fats: 11, nutrition.Carbohydrates: 1.1,
			nutrition.SaturatedFats: 3.3, nutrition.Cholesterol: 373, nutrition.Sodium: 124, nutrition.Calcium: 50,
			nutrition.Iron: 1.2, nutrition.Potassium: 126, nutrition.VitaminA: 160, nutrition.VitaminD: 2.2,
		}),
		seed("Tomato", "گوجه فرنگی", ingredient.DietaryVegan, ingredient.CategoryVegetables, 40, 1000, nutrition.Profile{
			nutrition.Calories: 18, nutrition.Proteins: 0.9, nutrition.Fats: 0.2, nutrition.Carbohydrates: 3.9,
			nutrition.Fiber: 1.2, nutrition.Sugars: 2.6, nutrition.Sodium: 5, nutrition.Potassium: 237,
			nutrition.VitaminA: 42, nutrition.VitaminC: 14,
		}),
		seed("Rice", "برنج", ingredient.DietaryVegan, ingredient.CategoryGrains, 150, 1000, nutrition.Profile{
			nutrition.Calories: 130, nutrition.Proteins: 2.7, nutrition.Fats: 0.3, nutrition.Carbohydrates: 28,
			nutrition.Fiber: 0.4, nutrition.Sodium: 1, nutrition.Iron: 0.2, nutrition.Potassium: 35,
		}),
		seed("Lentils", "عدس", ingredient.DietaryVegan, ingredient.CategoryLegumes, 120, 1000, nutrition.Profile{
			nutrition.Calories: 116, nutrition.Proteins: 9, nutrition.Fats: 0.4, nutrition.Carbohydrates: 20,
			nutrition.Fiber: 7.9, nutrition.Sugars: 1.8, nutrition.Iron: 3.3, nutrition.Potassium: 369,
		}),
		seed("Chicken Breast", "سینه مرغ", ingredient.DietaryOmnivore, ingredient.CategoryMeat, 300, 1000, nutrition.Profile{
			nutrition.Calories: 165, nutrition.Proteins: 31, nutrition.Fats: 3.6, nutrition.Carbohydrates: 0,
			nutrition.SaturatedFats: 1, nutrition.Cholesterol: 85, nutrition.Sodium: 74, nutrition.Potassium: 256,
		}),
		seed("Milk", "شیر", ingredient.DietaryVegetarian, ingredient.CategoryDairy, 35, 1000, nutrition.Profile{
			nutrition.Calories: 61, nutrition.Proteins: 3.2, nutrition.Fats: 3.3, nutrition.Carbohydrates: 4.8,
			nutrition.SaturatedFats: 1.9, nutrition.Sugars: 5.1, nutrition.Calcium: 113, nutrition.VitaminD: 1.3,
		}),
		seed("Spinach", "اسفناج", ingredient.DietaryVegan, ingredient.CategoryVegetables, 60, 1000, nutrition.Profile{
			nutrition.Calories: 23, nutrition.Proteins: 2.9, nutrition.Fats: 0.4, nutrition.Carbohydrates: 3.6,
			nutrition.Fiber: 2.2, nutrition.Calcium: 99, nutrition.Iron: 2.7, nutrition.VitaminA: 469, nutrition.VitaminC: 28,
		}),
	}
}
