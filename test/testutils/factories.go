// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/ports/inbound"
)

// IngredientFactory provides methods to create test catalog records
type IngredientFactory struct {
	faker *gofakeit.Faker
}

// NewIngredientFactory creates a new ingredient factory with seeded faker
func NewIngredientFactory(seed int64) *IngredientFactory {
	return &IngredientFactory{faker: gofakeit.New(seed)}
}

// Attributes returns random but valid ingredient attributes
func (f *IngredientFactory) Attributes() ingredient.Attributes {
	dietaries := ingredient.Dietaries()
	categories := ingredient.Categories()

	nutrients := nutrition.Profile{}
	for _, key := range nutrition.Schema() {
		nutrients[key] = f.faker.Float64Range(0, 50)
	}
	nutrients[nutrition.Calories] = f.faker.Float64Range(10, 900)

	return ingredient.Attributes{
		Name:           fmt.Sprintf("%s %s", f.faker.Adjective(), f.faker.Noun()),
		LocalizedName:  f.faker.Word(),
		Dietary:        dietaries[f.faker.IntRange(0, len(dietaries)-1)],
		Category:       categories[f.faker.IntRange(0, len(categories)-1)],
		PurchaseCost:   f.faker.Float64Range(1, 500),
		PurchaseAmount: f.faker.Float64Range(50, 1000),
		Nutrients:      nutrients,
	}
}

// Ingredient creates a valid random record, panicking on a factory bug
func (f *IngredientFactory) Ingredient() *ingredient.Ingredient {
	i, err := ingredient.NewIngredient(f.Attributes())
	if err != nil {
		panic(fmt.Sprintf("ingredient factory produced invalid attributes: %v", err))
	}
	i.Events()
	return i
}

// IngredientBuilder provides a fluent interface for building test ingredients
type IngredientBuilder struct {
	attrs ingredient.Attributes
}

// NewIngredientBuilder starts from a zero-nutrient omnivore record named name
func NewIngredientBuilder(name string) *IngredientBuilder {
	return &IngredientBuilder{attrs: ingredient.Attributes{
		Name:           name,
		LocalizedName:  name,
		Dietary:        ingredient.DietaryOmnivore,
		Category:       ingredient.CategoryOther,
		PurchaseCost:   0,
		PurchaseAmount: 1,
		Nutrients: nutrition.Profile{
			nutrition.Calories:      0,
			nutrition.Proteins:      0,
			nutrition.Fats:          0,
			nutrition.Carbohydrates: 0,
		},
	}}
}

// WithNutrient sets a nutrient per 100 units
func (b *IngredientBuilder) WithNutrient(key string, value float64) *IngredientBuilder {
	b.attrs.Nutrients[key] = value
	return b
}

// WithPricePerUnit sets cost and amount so that the unit price is price
func (b *IngredientBuilder) WithPricePerUnit(price float64) *IngredientBuilder {
	b.attrs.PurchaseCost = price * 100
	b.attrs.PurchaseAmount = 100
	return b
}

// WithPurchase sets purchase cost and amount
func (b *IngredientBuilder) WithPurchase(cost, amount float64) *IngredientBuilder {
	b.attrs.PurchaseCost = cost
	b.attrs.PurchaseAmount = amount
	return b
}

// WithDietary sets the dietary tag
func (b *IngredientBuilder) WithDietary(d ingredient.Dietary) *IngredientBuilder {
	b.attrs.Dietary = d
	return b
}

// WithCategory sets the category
func (b *IngredientBuilder) WithCategory(c ingredient.Category) *IngredientBuilder {
	b.attrs.Category = c
	return b
}

// Attributes returns the attributes built so far
func (b *IngredientBuilder) Attributes() ingredient.Attributes {
	return b.attrs
}

// Build creates the ingredient with its pending events cleared
func (b *IngredientBuilder) Build() *ingredient.Ingredient {
	i, err := ingredient.NewIngredient(b.attrs)
	if err != nil {
		panic(fmt.Sprintf("invalid ingredient %q: %v", b.attrs.Name, err))
	}
	i.Events()
	return i
}

// Egg is the catalog record used by the reference scenarios: 155 kcal,
// 13 g protein per 100 g at 0.5 per gram
func Egg() *ingredient.Ingredient {
	return NewIngredientBuilder("Egg").
		WithNutrient(nutrition.Calories, 155).
		WithNutrient(nutrition.Proteins, 13).
		WithNutrient(nutrition.Fats, 11).
		WithNutrient(nutrition.Carbohydrates, 1.1).
		WithDietary(ingredient.DietaryVegetarian).
		WithCategory(ingredient.CategoryEggs).
		WithPricePerUnit(0.5).
		Build()
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	draft recipe.Draft
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(0)

	return &RecipeBuilder{draft: recipe.Draft{
		Name:         faker.Sentence(3),
		Instructions: faker.Paragraph(1, 3, 8, " "),
		PrepTime:     15,
		Servings:     1,
	}}
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.draft.Name = name
	return rb
}

// WithItem appends an ingredient line
func (rb *RecipeBuilder) WithItem(name string, quantity float64) *RecipeBuilder {
	rb.draft.Ingredients = append(rb.draft.Ingredients, recipe.Item{Ingredient: name, Quantity: quantity})
	return rb
}

// WithPrepTime sets the prep time in minutes
func (rb *RecipeBuilder) WithPrepTime(minutes int) *RecipeBuilder {
	rb.draft.PrepTime = minutes
	return rb
}

// WithServings sets the servings
func (rb *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	rb.draft.Servings = servings
	return rb
}

// WithDietary sets the dietary tag
func (rb *RecipeBuilder) WithDietary(dietary string) *RecipeBuilder {
	rb.draft.Dietary = dietary
	return rb
}

// WithComplexity sets the complexity tag
func (rb *RecipeBuilder) WithComplexity(complexity string) *RecipeBuilder {
	rb.draft.Complexity = complexity
	return rb
}

// Build validates and returns the recipe
func (rb *RecipeBuilder) Build() *recipe.Recipe {
	r, err := recipe.NewRecipe(rb.draft)
	if err != nil {
		panic(fmt.Sprintf("invalid recipe %q: %v", rb.draft.Name, err))
	}
	return r
}

// Command returns the add/update command for the recipe built so far
func (rb *RecipeBuilder) Command() inbound.RecipeCommand {
	cmd := inbound.RecipeCommand{
		Name:         rb.draft.Name,
		Instructions: rb.draft.Instructions,
		PrepTime:     inbound.NumberOf(float64(rb.draft.PrepTime)),
		Dietary:      rb.draft.Dietary,
		Complexity:   rb.draft.Complexity,
		Servings:     inbound.NumberOf(float64(rb.draft.Servings)),
	}
	for _, it := range rb.draft.Ingredients {
		cmd.Ingredients = append(cmd.Ingredients, inbound.RecipeItemCommand{
			Ingredient: it.Ingredient,
			Quantity:   inbound.NumberOf(it.Quantity),
		})
	}
	return cmd
}
