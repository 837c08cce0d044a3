package gorm

import (
	"context"
	"testing"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm/logger"
)

// IngredientRepositoryTestSuite runs the repository against in-memory SQLite
type IngredientRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *testutils.TestDatabase
	repo outbound.IngredientRepository
}

func (suite *IngredientRepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutils.SetupTestDatabase(suite.T())
	suite.repo = NewIngredientRepository(suite.db.GormDB)

	for _, i := range []*ingredient.Ingredient{
		testutils.Egg(),
		testutils.NewIngredientBuilder("Tofu").
			WithNutrient(nutrition.Calories, 76).
			WithNutrient(nutrition.Proteins, 8).
			WithNutrient(nutrition.Fats, 4.8).
			WithDietary(ingredient.DietaryVegan).
			WithCategory(ingredient.CategoryLegumes).
			WithPurchase(90, 300).
			Build(),
		testutils.NewIngredientBuilder("Butter").
			WithNutrient(nutrition.Calories, 717).
			WithNutrient(nutrition.Proteins, 0.9).
			WithNutrient(nutrition.Fats, 81).
			WithDietary(ingredient.DietaryVegetarian).
			WithCategory(ingredient.CategoryDairy).
			Build(),
	} {
		require.NoError(suite.T(), suite.repo.Create(suite.ctx, i))
	}
}

func names(items []*ingredient.Ingredient) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name())
	}
	return out
}

func (suite *IngredientRepositoryTestSuite) TestFindAll() {
	tests := []struct {
		name   string
		filter ingredient.Filter
		want   []string
	}{
		{"no filter keeps insertion order", ingredient.Filter{}, []string{"Egg", "Tofu", "Butter"}},
		{"max calories inclusive", ingredient.Filter{MaxCalories: 155}, []string{"Egg", "Tofu"}},
		{"min protein", ingredient.Filter{MinProtein: 8}, []string{"Egg", "Tofu"}},
		{"max fat", ingredient.Filter{MaxFat: 5}, []string{"Tofu"}},
		{"dietary exact", ingredient.Filter{Dietary: "vegetarian"}, []string{"Egg", "Butter"}},
		{"category exact", ingredient.Filter{Category: "Dairy and Alternatives"}, []string{"Butter"}},
		{"combined", ingredient.Filter{MaxCalories: 500, Dietary: "vegan"}, []string{"Tofu"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.repo.FindAll(suite.ctx, tt.filter)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), tt.want, names(got))
		})
	}
}

func (suite *IngredientRepositoryTestSuite) TestRoundTrip() {
	got, err := suite.repo.FindByName(suite.ctx, "Tofu")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), ingredient.DietaryVegan, got.Dietary())
	assert.Equal(suite.T(), ingredient.CategoryLegumes, got.Category())
	assert.Equal(suite.T(), 0.3, got.PricePerUnit())
	assert.Equal(suite.T(), 4.8, got.Nutrient(nutrition.Fats))
	assert.Equal(suite.T(), 0.0, got.Nutrient(nutrition.VitaminD))

	_, err = suite.repo.FindByName(suite.ctx, "Kale")
	assert.ErrorIs(suite.T(), err, ingredient.ErrIngredientNotFound)
}

func (suite *IngredientRepositoryTestSuite) TestFindByNames() {
	got, err := suite.repo.FindByNames(suite.ctx, []string{"Butter", "Kale", "Egg"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Egg", "Butter"}, names(got))

	got, err = suite.repo.FindByNames(suite.ctx, nil)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), got)
}

func (suite *IngredientRepositoryTestSuite) TestCreateDuplicate() {
	err := suite.repo.Create(suite.ctx, testutils.Egg())
	assert.ErrorIs(suite.T(), err, ingredient.ErrIngredientExists)

	exists, err := suite.repo.Exists(suite.ctx, "Egg")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
	testutils.NewDatabaseAssertions(suite.T(), suite.db).RecordCount("ingredients", 3)
}

func (suite *IngredientRepositoryTestSuite) TestUpdatePrice() {
	egg, err := suite.repo.FindByName(suite.ctx, "Egg")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), egg.UpdatePrice(120, 60))

	require.NoError(suite.T(), suite.repo.UpdatePrice(suite.ctx, egg))
	testutils.NewDatabaseAssertions(suite.T(), suite.db).RecordExists("ingredients", "name = ? AND price_per_unit = ?", "Egg", 2.0)

	reloaded, err := suite.repo.FindByName(suite.ctx, "Egg")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2.0, reloaded.PricePerUnit())
	assert.Equal(suite.T(), 60.0, reloaded.PurchaseAmount())

	ghost := testutils.NewIngredientBuilder("Ghost").Build()
	assert.ErrorIs(suite.T(), suite.repo.UpdatePrice(suite.ctx, ghost), ingredient.ErrIngredientNotFound)
}

func (suite *IngredientRepositoryTestSuite) TestUpsert() {
	n, err := suite.repo.Upsert(suite.ctx, []*ingredient.Ingredient{
		testutils.NewIngredientBuilder("Egg").WithNutrient(nutrition.Calories, 143).WithPurchase(70, 100).Build(),
		testutils.NewIngredientBuilder("Honey").WithNutrient(nutrition.Calories, 304).Build(),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, n)

	all, err := suite.repo.FindAll(suite.ctx, ingredient.Filter{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Egg", "Tofu", "Butter", "Honey"}, names(all))
	assert.Equal(suite.T(), 143.0, all[0].Nutrient(nutrition.Calories))
	assert.Equal(suite.T(), 0.7, all[0].PricePerUnit())

	count, err := suite.repo.Count(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), count)
	assert.Equal(suite.T(), 4, suite.db.CountRecords("ingredients"))

	suite.db.TruncateAllTables()
	testutils.NewDatabaseAssertions(suite.T(), suite.db).TableEmpty("ingredients")
}

func (suite *IngredientRepositoryTestSuite) TestClosedDatabaseIsUnavailable() {
	require.NoError(suite.T(), suite.db.DB.Close())

	_, err := suite.repo.FindAll(suite.ctx, ingredient.Filter{})
	assert.ErrorIs(suite.T(), err, outbound.ErrStorageUnavailable)
}

func TestIngredientRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(IngredientRepositoryTestSuite))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Info, LogLevel("debug"))
	assert.Equal(t, logger.Warn, LogLevel(""))
}
