package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/errors"
	"github.com/nutrino/kitchen/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// CatalogServiceTestSuite covers catalog queries and mutations
type CatalogServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	catalog    *testutils.MemoryCatalog
	dispatcher *shared.SyncDispatcher
	published  []string
	service    inbound.CatalogService
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.catalog = testutils.NewMemoryCatalog(
		testutils.Egg(),
		testutils.NewIngredientBuilder("Rice").
			WithNutrient(nutrition.Calories, 130).
			WithNutrient(nutrition.Proteins, 2.7).
			WithDietary(ingredient.DietaryVegan).
			WithCategory(ingredient.CategoryGrains).
			WithPricePerUnit(0.12).
			Build(),
		testutils.NewIngredientBuilder("Beef").
			WithNutrient(nutrition.Calories, 250).
			WithNutrient(nutrition.Proteins, 26).
			WithNutrient(nutrition.Fats, 15).
			WithCategory(ingredient.CategoryMeat).
			WithPricePerUnit(1.8).
			Build(),
	)
	suite.published = nil
	suite.dispatcher = shared.NewSyncDispatcher()
	suite.dispatcher.Register("*", func(e shared.DomainEvent) error {
		suite.published = append(suite.published, e.EventName())
		return nil
	})
	suite.service = NewCatalogService(suite.catalog, suite.dispatcher, zap.NewNop())
}

func (suite *CatalogServiceTestSuite) names(dtos []inbound.IngredientDTO) []string {
	out := make([]string, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.Name)
	}
	return out
}

func (suite *CatalogServiceTestSuite) TestListIngredients() {
	suite.Run("NoFilters_ShouldBeIdempotentInStorageOrder", func() {
		first, err := suite.service.ListIngredients(suite.ctx, inbound.IngredientQuery{})
		require.NoError(suite.T(), err)
		second, err := suite.service.ListIngredients(suite.ctx, inbound.IngredientQuery{})
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), []string{"Egg", "Rice", "Beef"}, suite.names(first))
		assert.Equal(suite.T(), first, second)
	})

	suite.Run("Bounds_ShouldBeInclusive", func() {
		got, err := suite.service.ListIngredients(suite.ctx, inbound.IngredientQuery{MaxCalories: 155, MinProtein: 13})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"Egg"}, suite.names(got))
	})

	suite.Run("ZeroBound_ShouldBeIgnored", func() {
		got, err := suite.service.ListIngredients(suite.ctx, inbound.IngredientQuery{MaxFat: 0, Category: "Meat and Poultry"})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"Beef"}, suite.names(got))
	})

	suite.Run("StorageFailure_ShouldMapTo503", func() {
		repo := &testutils.MockIngredientRepository{}
		repo.On("FindAll", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: no such table", outbound.ErrStorageUnavailable))
		svc := NewCatalogService(repo, nil, zap.NewNop())

		_, err := svc.ListIngredients(suite.ctx, inbound.IngredientQuery{})

		assert.True(suite.T(), errors.Is(err, errors.CodeStorageUnavailable))
		repo.AssertExpectations(suite.T())
	})
}

func (suite *CatalogServiceTestSuite) TestGetIngredient() {
	dto, err := suite.service.GetIngredient(suite.ctx, "Egg")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.5, dto.PricePerUnit)
	assert.Equal(suite.T(), 155.0, dto.Nutrients[nutrition.Calories])

	_, err = suite.service.GetIngredient(suite.ctx, "Unicorn")
	assert.True(suite.T(), errors.Is(err, errors.CodeIngredientNotFound))
}

func (suite *CatalogServiceTestSuite) addCommand() inbound.AddIngredientCommand {
	return inbound.AddIngredientCommand{
		Name:           "Lentils",
		LocalizedName:  "Adas",
		Dietary:        "vegan",
		Category:       "Legumes and Beans",
		PurchaseCost:   inbound.NumberFromString("300"),
		PurchaseAmount: inbound.NumberOf(1000),
		Nutrients: map[string]inbound.Number{
			nutrition.Calories:      inbound.NumberOf(116),
			nutrition.Proteins:      inbound.NumberFromString("9"),
			nutrition.Fats:          inbound.NumberOf(0.4),
			nutrition.Carbohydrates: inbound.NumberOf(20),
			nutrition.Fiber:         inbound.NumberOf(7.9),
		},
	}
}

func (suite *CatalogServiceTestSuite) TestAddIngredient() {
	suite.Run("ValidCommand_ShouldInsertWithDefaults", func() {
		dto, err := suite.service.AddIngredient(suite.ctx, suite.addCommand())

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0.3, dto.PricePerUnit)
		assert.Equal(suite.T(), 0.0, dto.Nutrients[nutrition.Sodium])
		assert.Equal(suite.T(), 7.9, dto.Nutrients[nutrition.Fiber])
		assert.Contains(suite.T(), suite.published, "ingredient.added")

		count, _ := suite.catalog.Count(suite.ctx)
		assert.Equal(suite.T(), int64(4), count)
	})

	suite.Run("Duplicate_ShouldConflict", func() {
		cmd := suite.addCommand()
		cmd.Name = "Egg"

		_, err := suite.service.AddIngredient(suite.ctx, cmd)

		assert.True(suite.T(), errors.Is(err, errors.CodeIngredientExists))
	})

	cases := []struct {
		name   string
		mutate func(*inbound.AddIngredientCommand)
	}{
		{"MissingLocalizedName", func(c *inbound.AddIngredientCommand) { c.LocalizedName = " " }},
		{"MissingCoreMacro", func(c *inbound.AddIngredientCommand) { delete(c.Nutrients, nutrition.Proteins) }},
		{"NonNumericCost", func(c *inbound.AddIngredientCommand) { c.PurchaseCost = inbound.NumberFromString("cheap") }},
		{"NegativeNutrient", func(c *inbound.AddIngredientCommand) { c.Nutrients[nutrition.Sodium] = inbound.NumberOf(-2) }},
		{"ZeroAmount", func(c *inbound.AddIngredientCommand) { c.PurchaseAmount = inbound.NumberOf(0) }},
		{"BadDietary", func(c *inbound.AddIngredientCommand) { c.Dietary = "pescatarian" }},
		{"BadCategory", func(c *inbound.AddIngredientCommand) { c.Category = "Minerals" }},
		{"UnknownNutrient", func(c *inbound.AddIngredientCommand) { c.Nutrients["Caffeine"] = inbound.NumberOf(1) }},
	}
	for _, tc := range cases {
		suite.Run(tc.name+"_ShouldFailValidation", func() {
			cmd := suite.addCommand()
			cmd.Name = "Other " + tc.name
			tc.mutate(&cmd)

			_, err := suite.service.AddIngredient(suite.ctx, cmd)

			assert.True(suite.T(), errors.Is(err, errors.CodeValidationFailed), "got %v", err)
		})
	}
}

func (suite *CatalogServiceTestSuite) TestUpdatePrice() {
	suite.Run("ValidPrice_ShouldRecompute", func() {
		dto, err := suite.service.UpdatePrice(suite.ctx, inbound.UpdatePriceCommand{
			Name:           "Rice",
			PurchaseCost:   inbound.NumberFromString("250"),
			PurchaseAmount: inbound.NumberFromString("1000"),
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0.25, dto.PricePerUnit)
		assert.Contains(suite.T(), suite.published, "ingredient.price.updated")

		stored, _ := suite.catalog.FindByName(suite.ctx, "Rice")
		assert.Equal(suite.T(), 0.25, stored.PricePerUnit())
	})

	suite.Run("UnknownIngredient_ShouldBeNotFound", func() {
		_, err := suite.service.UpdatePrice(suite.ctx, inbound.UpdatePriceCommand{
			Name: "Saffron", PurchaseCost: inbound.NumberOf(10), PurchaseAmount: inbound.NumberOf(1),
		})

		assert.True(suite.T(), errors.IsNotFound(err))
	})

	suite.Run("ZeroAmount_ShouldFailValidation", func() {
		_, err := suite.service.UpdatePrice(suite.ctx, inbound.UpdatePriceCommand{
			Name: "Rice", PurchaseCost: inbound.NumberOf(10), PurchaseAmount: inbound.NumberOf(0),
		})

		assert.True(suite.T(), errors.Is(err, errors.CodeValidationFailed))
	})

	suite.Run("MissingFields_ShouldFailValidation", func() {
		_, err := suite.service.UpdatePrice(suite.ctx, inbound.UpdatePriceCommand{Name: "Rice"})

		assert.True(suite.T(), errors.Is(err, errors.CodeValidationFailed))
	})
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
