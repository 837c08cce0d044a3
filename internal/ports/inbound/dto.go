package inbound

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
)

// DTOs for data transfer

// IngredientDTO represents a catalog record
type IngredientDTO struct {
	Name           string             `json:"ingredient_name"`
	LocalizedName  string             `json:"localized_name"`
	Dietary        string             `json:"dietary"`
	Category       string             `json:"category"`
	PurchaseCost   float64            `json:"purchase_cost"`
	PurchaseAmount float64            `json:"purchase_amount"`
	PricePerUnit   float64            `json:"price_per_unit"`
	Nutrients      map[string]float64 `json:"nutrients"`
}

// NutritionDTO is an aggregation result
type NutritionDTO struct {
	Nutrients          map[string]nutrition.Entry `json:"nutrients"`
	Currency           string                     `json:"currency"`
	Servings           int                        `json:"servings,omitempty"`
	MissingIngredients []string                   `json:"-"`
}

// RecipeItemDTO is one ingredient line
type RecipeItemDTO struct {
	Ingredient string  `json:"ingredient"`
	Quantity   float64 `json:"quantity"`
}

// ServingDTO carries per-serving totals; cost includes the markup
type ServingDTO struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Cost     float64 `json:"cost"`
}

// RecipeDTO is a recipe annotated with computed totals
type RecipeDTO struct {
	Name               string          `json:"recipe_name"`
	Ingredients        []RecipeItemDTO `json:"ingredient_list"`
	Instructions       string          `json:"instructions"`
	PrepTime           int             `json:"prep_time"`
	Dietary            string          `json:"dietary"`
	Complexity         string          `json:"complexity"`
	Servings           int             `json:"servings"`
	Image              string          `json:"image,omitempty"`
	Thumbnails         []string        `json:"thumbnails,omitempty"`
	TotalCalories      float64         `json:"total_calories"`
	TotalProtein       float64         `json:"total_protein"`
	TotalCost          float64         `json:"total_cost"`
	Currency           string          `json:"currency"`
	PerServing         ServingDTO      `json:"per_serving"`
	MissingIngredients []string        `json:"-"`
}

// RecipeList is a list of annotated recipes with the warnings raised while annotating
type RecipeList struct {
	Recipes  []RecipeDTO `json:"recipes"`
	Warnings []string    `json:"warnings,omitempty"`
}

// NutritionTotals sums a meal plan
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// MealPlanDTO is a generated meal plan
type MealPlanDTO struct {
	MealPlan       []RecipeDTO     `json:"meal_plan"`
	TotalNutrition NutritionTotals `json:"total_nutrition"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// PlannedMealDTO is a meal stored on an order
type PlannedMealDTO struct {
	Name     string  `json:"recipe_name"`
	Dietary  string  `json:"dietary,omitempty"`
	Calories float64 `json:"total_calories"`
	Protein  float64 `json:"total_protein"`
	Cost     float64 `json:"total_cost"`
}

// OrderDTO is a recorded order
type OrderDTO struct {
	ID          uuid.UUID        `json:"id"`
	UserName    string           `json:"user_name"`
	SelectedDay string           `json:"selected_day"`
	MealPlan    []PlannedMealDTO `json:"meal_plan"`
	CreatedAt   time.Time        `json:"created_at"`
}
