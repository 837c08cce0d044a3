// Package recipe contains the recipe document and the ordered collection it lives in.
package recipe

import (
	"strings"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
)

// Draft carries the fields of a recipe document before validation
type Draft struct {
	Name         string
	Ingredients  []Item
	Instructions string
	PrepTime     int
	Dietary      string
	Complexity   string
	Servings     int
	Image        string
	Thumbnails   []string
}

// Recipe is a validated recipe document. The name is its key in the store.
type Recipe struct {
	name         string
	ingredients  []Item
	instructions string
	prepTime     int
	dietary      ingredient.Dietary
	complexity   Complexity
	servings     int
	image        string
	thumbnails   []string
}

// NewRecipe validates a draft. Servings of 0 default to 1.
func NewRecipe(d Draft) (*Recipe, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(d.Ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	items := make([]Item, 0, len(d.Ingredients))
	for _, it := range d.Ingredients {
		it.Ingredient = strings.TrimSpace(it.Ingredient)
		if it.Ingredient == "" {
			return nil, ErrIngredientName
		}
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		items = append(items, it)
	}
	if d.PrepTime <= 0 {
		return nil, ErrInvalidPrepTime
	}
	if d.Servings == 0 {
		d.Servings = 1
	}
	if d.Servings < 0 {
		return nil, ErrInvalidServings
	}
	dietary, err := parseDietary(d.Dietary)
	if err != nil {
		return nil, err
	}
	complexity, err := ParseComplexity(d.Complexity)
	if err != nil {
		return nil, err
	}

	return &Recipe{
		name:         name,
		ingredients:  items,
		instructions: d.Instructions,
		prepTime:     d.PrepTime,
		dietary:      dietary,
		complexity:   complexity,
		servings:     d.Servings,
		image:        d.Image,
		thumbnails:   append([]string(nil), d.Thumbnails...),
	}, nil
}

// Restore rebuilds a document read from storage. Tags are kept verbatim and
// servings below 1 are read as 1.
func Restore(d Draft) *Recipe {
	if d.Servings < 1 {
		d.Servings = 1
	}
	return &Recipe{
		name:         d.Name,
		ingredients:  append([]Item(nil), d.Ingredients...),
		instructions: d.Instructions,
		prepTime:     d.PrepTime,
		dietary:      ingredient.Dietary(d.Dietary),
		complexity:   Complexity(d.Complexity),
		servings:     d.Servings,
		image:        d.Image,
		thumbnails:   append([]string(nil), d.Thumbnails...),
	}
}

// Name returns the recipe name
func (r *Recipe) Name() string { return r.name }

// Ingredients returns the ingredient lines in order
func (r *Recipe) Ingredients() []Item { return append([]Item(nil), r.ingredients...) }

// Instructions returns the preparation text
func (r *Recipe) Instructions() string { return r.instructions }

// PrepTime returns the preparation time in minutes
func (r *Recipe) PrepTime() int { return r.prepTime }

// Dietary returns the dietary tag, possibly empty
func (r *Recipe) Dietary() ingredient.Dietary { return r.dietary }

// Complexity returns the complexity tag, possibly empty
func (r *Recipe) Complexity() Complexity { return r.complexity }

// Servings returns the number of servings, at least 1
func (r *Recipe) Servings() int { return r.servings }

// Image returns the image reference
func (r *Recipe) Image() string { return r.image }

// Thumbnails returns the thumbnail references
func (r *Recipe) Thumbnails() []string { return append([]string(nil), r.thumbnails...) }

// Draft returns the document fields
func (r *Recipe) Draft() Draft {
	return Draft{
		Name:         r.name,
		Ingredients:  r.Ingredients(),
		Instructions: r.instructions,
		PrepTime:     r.prepTime,
		Dietary:      string(r.dietary),
		Complexity:   string(r.complexity),
		Servings:     r.servings,
		Image:        r.image,
		Thumbnails:   r.Thumbnails(),
	}
}

// IngredientNames returns the distinct ingredient names in first-seen order
func (r *Recipe) IngredientNames() []string {
	seen := make(map[string]bool, len(r.ingredients))
	var names []string
	for _, it := range r.ingredients {
		if !seen[it.Ingredient] {
			seen[it.Ingredient] = true
			names = append(names, it.Ingredient)
		}
	}
	return names
}

// UsesAny reports whether the recipe shares at least one ingredient with selected
func (r *Recipe) UsesAny(selected map[string]struct{}) bool {
	for _, it := range r.ingredients {
		if _, ok := selected[strings.TrimSpace(it.Ingredient)]; ok {
			return true
		}
	}
	return false
}

// Selection builds the aggregator input for this recipe
func (r *Recipe) Selection(scale float64, currency string) nutrition.Selection {
	portions := make([]nutrition.Portion, 0, len(r.ingredients))
	for _, it := range r.ingredients {
		portions = append(portions, nutrition.Portion{Ingredient: strings.TrimSpace(it.Ingredient), Quantity: it.Quantity})
	}
	return nutrition.Selection{Portions: portions, ScaleFactor: scale, Currency: currency}
}
