// Package gorm provides GORM model definitions and repositories for the ingredient catalog
package gorm

import (
	"time"

	"gorm.io/gorm/logger"
)

// IngredientModel represents the GORM model for catalog records.
// The autoincrement ID preserves insertion order; Name is the business key.
type IngredientModel struct {
	ID             uint    `gorm:"primaryKey;autoIncrement"`
	Name           string  `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	LocalizedName  string  `gorm:"column:localized_name;type:varchar(255)"`
	Dietary        string  `gorm:"column:dietary;type:varchar(20);index"`
	Category       string  `gorm:"column:category;type:varchar(50);index"`
	PurchaseCost   float64 `gorm:"column:purchase_cost"`
	PurchaseAmount float64 `gorm:"column:purchase_amount"`
	PricePerUnit   float64 `gorm:"column:price_per_unit"`

	// Nutrients per 100 units
	Calories      float64 `gorm:"column:calories"`
	Proteins      float64 `gorm:"column:proteins"`
	Fats          float64 `gorm:"column:fats"`
	SaturatedFats float64 `gorm:"column:saturated_fats"`
	TransFats     float64 `gorm:"column:trans_fats"`
	Cholesterol   float64 `gorm:"column:cholesterol"`
	Sodium        float64 `gorm:"column:sodium"`
	Carbohydrates float64 `gorm:"column:carbohydrates"`
	Fiber         float64 `gorm:"column:fiber"`
	Sugars        float64 `gorm:"column:sugars"`
	Calcium       float64 `gorm:"column:calcium"`
	Iron          float64 `gorm:"column:iron"`
	Potassium     float64 `gorm:"column:potassium"`
	VitaminA      float64 `gorm:"column:vitamin_a"`
	VitaminC      float64 `gorm:"column:vitamin_c"`
	VitaminD      float64 `gorm:"column:vitamin_d"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies table name for IngredientModel
func (IngredientModel) TableName() string {
	return "ingredients"
}

// LogLevel maps a configured level name to the GORM logger level
func LogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
