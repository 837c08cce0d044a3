package recipe

import (
	"testing"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the recipe document and collection
type RecipeTestSuite struct {
	suite.Suite
}

func (suite *RecipeTestSuite) draft() Draft {
	return Draft{
		Name:         "Omelette",
		Ingredients:  []Item{{Ingredient: " Egg ", Quantity: 120}, {Ingredient: "Butter", Quantity: 10}},
		Instructions: "Whisk and fry",
		PrepTime:     10,
		Dietary:      "Vegetarian",
		Complexity:   "EASY",
	}
}

func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidDraft_ShouldCreateWithDefaults", func() {
		// Act
		r, err := NewRecipe(suite.draft())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Omelette", r.Name())
		assert.Equal(suite.T(), 1, r.Servings())
		assert.Equal(suite.T(), ingredient.DietaryVegetarian, r.Dietary())
		assert.Equal(suite.T(), ComplexityEasy, r.Complexity())
		assert.Equal(suite.T(), "Egg", r.Ingredients()[0].Ingredient)
		assert.Equal(suite.T(), []string{"Egg", "Butter"}, r.IngredientNames())
	})

	suite.Run("EmptyTags_ShouldBeAllowed", func() {
		d := suite.draft()
		d.Dietary, d.Complexity = "", ""

		r, err := NewRecipe(d)

		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), r.Dietary())
		assert.Empty(suite.T(), r.Complexity())
	})

	cases := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{"BlankName", func(d *Draft) { d.Name = " " }, ErrNameRequired},
		{"NoIngredients", func(d *Draft) { d.Ingredients = nil }, ErrNoIngredients},
		{"BlankIngredient", func(d *Draft) { d.Ingredients[0].Ingredient = "" }, ErrIngredientName},
		{"ZeroQuantity", func(d *Draft) { d.Ingredients[1].Quantity = 0 }, ErrInvalidQuantity},
		{"ZeroPrepTime", func(d *Draft) { d.PrepTime = 0 }, ErrInvalidPrepTime},
		{"NegativeServings", func(d *Draft) { d.Servings = -2 }, ErrInvalidServings},
		{"UnknownDietary", func(d *Draft) { d.Dietary = "keto" }, ErrInvalidDietary},
		{"UnknownComplexity", func(d *Draft) { d.Complexity = "extreme" }, ErrInvalidComplexity},
	}
	for _, tc := range cases {
		suite.Run(tc.name+"_ShouldReturnError", func() {
			d := suite.draft()
			tc.mutate(&d)

			r, err := NewRecipe(d)

			assert.Nil(suite.T(), r)
			assert.ErrorIs(suite.T(), err, tc.want)
		})
	}
}

func (suite *RecipeTestSuite) TestMatching() {
	r, err := NewRecipe(suite.draft())
	require.NoError(suite.T(), err)

	suite.Run("Intersection_ShouldMatch", func() {
		assert.True(suite.T(), r.UsesAny(map[string]struct{}{"Egg": {}, "Tomato": {}}))
		assert.False(suite.T(), r.UsesAny(map[string]struct{}{"Tomato": {}}))
		assert.False(suite.T(), r.UsesAny(nil))
	})

	suite.Run("Criteria_ShouldCompareCaseInsensitively", func() {
		assert.True(suite.T(), Criteria{}.Matches(r))
		assert.True(suite.T(), Criteria{Dietary: "VEGETARIAN", Complexity: "Easy"}.Matches(r))
		assert.False(suite.T(), Criteria{Dietary: "vegan"}.Matches(r))
		assert.False(suite.T(), Criteria{Complexity: "hard"}.Matches(r))
	})

	suite.Run("Selection_ShouldCarryQuantities", func() {
		sel := r.Selection(2, "IRR")

		assert.Equal(suite.T(), 2.0, sel.ScaleFactor)
		assert.Equal(suite.T(), "IRR", sel.Currency)
		require.Len(suite.T(), sel.Portions, 2)
		assert.Equal(suite.T(), 120.0, sel.Portions[0].Quantity)
	})
}

func (suite *RecipeTestSuite) TestCollection() {
	first, _ := NewRecipe(suite.draft())
	d := suite.draft()
	d.Name = "Fried Egg"
	second, _ := NewRecipe(d)

	suite.Run("Add_ShouldRejectDuplicates", func() {
		c := NewCollection(nil)

		require.NoError(suite.T(), c.Add(first))
		assert.ErrorIs(suite.T(), c.Add(first), ErrDuplicateRecipe)
		assert.Equal(suite.T(), 1, c.Len())
		assert.Len(suite.T(), c.Events(), 1)
	})

	suite.Run("Replace_ShouldMoveToEndWithNewFields", func() {
		c := NewCollection([]*Recipe{first, second})
		upd := suite.draft()
		upd.Ingredients = []Item{{Ingredient: "Egg", Quantity: 200}}
		upd.Complexity = ""
		replacement, err := NewRecipe(upd)
		require.NoError(suite.T(), err)

		require.NoError(suite.T(), c.Replace(replacement))

		recipes := c.Recipes()
		require.Len(suite.T(), recipes, 2)
		assert.Equal(suite.T(), "Fried Egg", recipes[0].Name())
		assert.Same(suite.T(), replacement, recipes[1])
		assert.Empty(suite.T(), recipes[1].Complexity())
	})

	suite.Run("Replace_MissingName_ShouldFail", func() {
		c := NewCollection([]*Recipe{second})

		assert.ErrorIs(suite.T(), c.Replace(first), ErrRecipeNotFound)
		assert.Equal(suite.T(), 1, c.Len())
	})

	suite.Run("Remove_ShouldDeleteOnlyMatch", func() {
		c := NewCollection([]*Recipe{first, second})

		require.NoError(suite.T(), c.Remove("Omelette"))
		assert.ErrorIs(suite.T(), c.Remove("Omelette"), ErrRecipeNotFound)

		_, found := c.Find("Fried Egg")
		assert.True(suite.T(), found)
		assert.Equal(suite.T(), 1, c.Len())
	})
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

func TestRestoreIsLenient(t *testing.T) {
	r := Restore(Draft{Name: "Legacy", Dietary: "Paleo", Servings: 0})

	assert.Equal(t, 1, r.Servings())
	assert.Equal(t, ingredient.Dietary("Paleo"), r.Dietary())
}
