package ingredient

import "errors"

// Domain errors for ingredient operations
var (
	ErrNameRequired          = errors.New("ingredient name is required")
	ErrLocalizedNameRequired = errors.New("localized name is required")
	ErrInvalidDietary        = errors.New("dietary must be one of omnivore, vegetarian, vegan")
	ErrInvalidCategory       = errors.New("category is not a known catalog category")
	ErrMissingCoreNutrient   = errors.New("core nutrient is required")
	ErrNegativeNutrient      = errors.New("nutrient amounts must not be negative")
	ErrNegativeCost          = errors.New("purchase cost must not be negative")
	ErrInvalidAmount         = errors.New("purchase amount must be greater than 0")
	ErrUnknownNutrient       = errors.New("unknown nutrient")
	ErrIngredientNotFound    = errors.New("ingredient not found")
	ErrIngredientExists      = errors.New("ingredient already exists")
)
