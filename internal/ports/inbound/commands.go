package inbound

// Command and query objects

// IngredientQuery filters the catalog. Zero bounds are not applied.
type IngredientQuery struct {
	MaxCalories float64
	MinProtein  float64
	MaxFat      float64
	Dietary     string
	Category    string
}

// AddIngredientCommand contains data for adding a catalog record
type AddIngredientCommand struct {
	Name           string            `json:"ingredient_name" binding:"required"`
	LocalizedName  string            `json:"localized_name"`
	Dietary        string            `json:"dietary"`
	Category       string            `json:"category"`
	PurchaseCost   Number            `json:"purchase_cost"`
	PurchaseAmount Number            `json:"purchase_amount"`
	Nutrients      map[string]Number `json:"nutrients"`
}

// UpdatePriceCommand contains a new purchase price for an ingredient
type UpdatePriceCommand struct {
	Name           string `json:"ingredient_name" binding:"required"`
	PurchaseCost   Number `json:"purchase_cost"`
	PurchaseAmount Number `json:"purchase_amount"`
}

// CalculateCommand aggregates a name to quantity selection.
// Servings, when set, switches the result to the per-serving variant.
type CalculateCommand struct {
	Quantities  map[string]Number
	ScaleFactor Number
	Currency    string
	Servings    Number
}

// IngredientListItem is one line of an ad hoc ingredient list. Quantity defaults to 100.
type IngredientListItem struct {
	Ingredient string `json:"ingredient"`
	Quantity   Number `json:"quantity"`
}

// IngredientListCommand aggregates an ordered ingredient list
type IngredientListCommand struct {
	Items       []IngredientListItem `json:"ingredient_list"`
	ScaleFactor Number               `json:"scale_factor"`
	Currency    string               `json:"currency"`
	Servings    Number               `json:"servings"`
}

// LabelCommand renders a label for a selection
type LabelCommand struct {
	Title string
	CalculateCommand
}

// RecipeItemCommand is one ingredient line of a recipe command
type RecipeItemCommand struct {
	Ingredient string `json:"ingredient" binding:"required"`
	Quantity   Number `json:"quantity"`
}

// RecipeCommand contains a full recipe document for add or update.
// Update replaces the stored document, so omitted fields take their defaults.
type RecipeCommand struct {
	Name         string              `json:"recipe_name" binding:"required"`
	Ingredients  []RecipeItemCommand `json:"ingredient_list" binding:"required,min=1,dive"`
	Instructions string              `json:"instructions"`
	PrepTime     Number              `json:"prep_time"`
	Dietary      string              `json:"dietary"`
	Complexity   string              `json:"complexity"`
	Servings     Number              `json:"servings"`
	Image        string              `json:"image"`
	Thumbnails   []string            `json:"thumbnails"`
}

// MatchRecipesQuery finds recipes sharing an ingredient with the selection
type MatchRecipesQuery struct {
	Ingredients []string `json:"ingredients"`
	Dietary     string   `json:"dietary"`
	Complexity  string   `json:"complexity"`
	Currency    string   `json:"currency"`
}

// BrowseRecipesQuery filters the whole recipe store. Zero bounds are not applied.
type BrowseRecipesQuery struct {
	Dietary     string
	Complexity  string
	MaxCalories float64
	MaxCost     float64
	Currency    string
}

// RecipeNutritionQuery asks for the full breakdown of a stored recipe
type RecipeNutritionQuery struct {
	Name        string
	ScaleFactor Number `json:"scale_factor"`
	Currency    string `json:"currency"`
	PerServing  bool   `json:"per_serving"`
}

// GenerateMealPlanCommand bounds a generated plan
type GenerateMealPlanCommand struct {
	Dietary     string `json:"dietary"`
	MaxCalories Number `json:"max_calories"`
	MinProtein  Number `json:"min_protein"`
	Currency    string `json:"currency"`
}

// PlannedMealCommand is a meal copied from a generated plan
type PlannedMealCommand struct {
	Name     string  `json:"recipe_name" binding:"required"`
	Dietary  string  `json:"dietary"`
	Calories float64 `json:"total_calories"`
	Protein  float64 `json:"total_protein"`
	Cost     float64 `json:"total_cost"`
}

// PlaceOrderCommand orders a meal plan for a weekday
type PlaceOrderCommand struct {
	UserName    string               `json:"user_name" binding:"required"`
	SelectedDay string               `json:"selected_day" binding:"required"`
	MealPlan    []PlannedMealCommand `json:"meal_plan" binding:"required,min=1,dive"`
}
