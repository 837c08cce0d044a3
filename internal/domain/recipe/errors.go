package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Document validation errors
	ErrNameRequired      = errors.New("recipe name is required")
	ErrNoIngredients     = errors.New("recipe must have at least one ingredient")
	ErrIngredientName    = errors.New("every ingredient line needs an ingredient name")
	ErrInvalidQuantity   = errors.New("ingredient quantity must be greater than 0")
	ErrInvalidPrepTime   = errors.New("prep time must be a positive integer")
	ErrInvalidServings   = errors.New("servings must be a positive integer")
	ErrInvalidDietary    = errors.New("dietary must be empty or one of omnivore, vegetarian, vegan")
	ErrInvalidComplexity = errors.New("complexity must be empty or one of easy, medium, hard")

	// Collection errors
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrDuplicateRecipe = errors.New("recipe already exists")
)
