// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/nutrino/kitchen/internal/ports/outbound"
)

// CatalogService manages the ingredient catalog
type CatalogService interface {
	ListIngredients(ctx context.Context, query IngredientQuery) ([]IngredientDTO, error)
	GetIngredient(ctx context.Context, name string) (*IngredientDTO, error)
	AddIngredient(ctx context.Context, cmd AddIngredientCommand) (*IngredientDTO, error)
	UpdatePrice(ctx context.Context, cmd UpdatePriceCommand) (*IngredientDTO, error)
}

// NutritionService aggregates ad hoc ingredient selections
type NutritionService interface {
	Calculate(ctx context.Context, cmd CalculateCommand) (*NutritionDTO, error)
	AnalyzeIngredientList(ctx context.Context, cmd IngredientListCommand) (*NutritionDTO, error)
	RenderLabel(ctx context.Context, cmd LabelCommand) (*outbound.Document, error)
}

// RecipeService manages and annotates stored recipes
type RecipeService interface {
	// Commands - operations that modify state
	AddRecipe(ctx context.Context, cmd RecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd RecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, name string) error

	// Queries - operations that read state
	MatchRecipes(ctx context.Context, query MatchRecipesQuery) (*RecipeList, error)
	BrowseRecipes(ctx context.Context, query BrowseRecipesQuery) (*RecipeList, error)
	GetRecipe(ctx context.Context, name, currency string) (*RecipeDTO, error)
	RecipeNutrition(ctx context.Context, query RecipeNutritionQuery) (*NutritionDTO, error)

	// Documents
	RenderRecipeLabel(ctx context.Context, name, currency string) (*outbound.Document, error)
	RenderRecipeSheet(ctx context.Context, name, currency, format string) (*outbound.Document, error)
}

// MealPlanService builds meal plans and records orders
type MealPlanService interface {
	GenerateMealPlan(ctx context.Context, cmd GenerateMealPlanCommand) (*MealPlanDTO, error)
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*OrderDTO, error)
	ListOrders(ctx context.Context) ([]OrderDTO, error)
}
