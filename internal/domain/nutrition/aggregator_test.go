package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// AggregatorTestSuite covers the aggregation and per-serving rules
type AggregatorTestSuite struct {
	suite.Suite
	aggregator *Aggregator
	snapshot   Snapshot
}

func (suite *AggregatorTestSuite) SetupTest() {
	suite.aggregator = NewAggregator(DefaultReference(), DefaultCurrencies())
	suite.snapshot = Snapshot{
		"Egg": {
			Nutrients:    Profile{Calories: 155, Proteins: 13, Fats: 11, Cholesterol: 373, Sugars: 1.1},
			PricePerUnit: 0.5,
		},
		"Rice": {
			Nutrients:    Profile{Calories: 130, Proteins: 2.7, Carbohydrates: 28},
			PricePerUnit: 0.12,
		},
	}
}

func (suite *AggregatorTestSuite) selection(currency string, portions ...Portion) Selection {
	return Selection{Portions: portions, ScaleFactor: 1, Currency: currency}
}

func (suite *AggregatorTestSuite) TestAggregate() {
	suite.Run("EggInToman_ShouldSumPer100", func() {
		// Act
		res, err := suite.aggregator.Aggregate(suite.selection(CurrencyToman, Portion{"Egg", 200}), suite.snapshot)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 310.0, res.Value(Calories))
		assert.Equal(suite.T(), 26.0, res.Value(Proteins))
		assert.Equal(suite.T(), 100.0, res.Value(Cost))
		assert.Equal(suite.T(), "Toman", *res.Nutrients[Cost].Unit)
		assert.Nil(suite.T(), res.Nutrients[Cost].PercentDailyValue)
		assert.Empty(suite.T(), res.Missing)
	})

	suite.Run("EggInIRR_ShouldMultiplyCostByTen", func() {
		res, err := suite.aggregator.Aggregate(suite.selection(CurrencyIRR, Portion{"Egg", 200}), suite.snapshot)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1000.0, res.Value(Cost))
		assert.Equal(suite.T(), 310.0, res.Value(Calories))
	})

	suite.Run("ScaleFactor_ShouldScaleNutrientsAndCost", func() {
		sel := suite.selection(CurrencyToman, Portion{"Egg", 100}, Portion{"Rice", 150})
		sel.ScaleFactor = 2

		res, err := suite.aggregator.Aggregate(sel, suite.snapshot)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 700.0, res.Value(Calories))
		assert.Equal(suite.T(), 84.0, res.Value(Carbohydrates))
		assert.Equal(suite.T(), 136.0, res.Value(Cost))
	})

	suite.Run("PercentDailyValue_ShouldFollowReference", func() {
		res, err := suite.aggregator.Aggregate(suite.selection(CurrencyToman, Portion{"Egg", 200}), suite.snapshot)
		require.NoError(suite.T(), err)

		ref := DefaultReference()
		for _, key := range ref.AggregatedKeys() {
			entry := res.Nutrients[key]
			dv, _ := ref.Lookup(key)
			if dv.DailyValue == nil || *dv.DailyValue == 0 {
				assert.Nil(suite.T(), entry.PercentDailyValue, key)
				continue
			}
			require.NotNil(suite.T(), entry.PercentDailyValue, key)
			assert.Equal(suite.T(), Round2(entry.Value / *dv.DailyValue * 100), *entry.PercentDailyValue, key)
		}
		assert.Equal(suite.T(), 15.5, *res.Nutrients[Calories].PercentDailyValue)
		assert.Nil(suite.T(), res.Nutrients[Sugars].PercentDailyValue)
		assert.Nil(suite.T(), res.Nutrients[TransFats].PercentDailyValue)
	})

	suite.Run("AddedSugars_ShouldNotBeAggregated", func() {
		res, err := suite.aggregator.Aggregate(suite.selection(CurrencyToman, Portion{"Egg", 100}), suite.snapshot)

		require.NoError(suite.T(), err)
		_, ok := res.Nutrients[AddedSugars]
		assert.False(suite.T(), ok)
		assert.Len(suite.T(), res.Nutrients, len(Schema())+1)
	})

	suite.Run("UnknownIngredient_ShouldBeSkippedAndReported", func() {
		res, err := suite.aggregator.Aggregate(
			suite.selection(CurrencyToman, Portion{"Egg", 200}, Portion{"Unicorn", 50}, Portion{"Unicorn", 10}),
			suite.snapshot,
		)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 310.0, res.Value(Calories))
		assert.Equal(suite.T(), 100.0, res.Value(Cost))
		assert.Equal(suite.T(), []string{"Unicorn"}, res.Missing)
	})

	suite.Run("OnlyUnknownIngredients_ShouldReturnZeros", func() {
		res, err := suite.aggregator.Aggregate(suite.selection(CurrencyToman, Portion{"Unicorn", 50}), suite.snapshot)

		require.NoError(suite.T(), err)
		assert.Zero(suite.T(), res.Value(Calories))
		assert.Zero(suite.T(), res.Value(Cost))
	})

	suite.Run("NonPositiveQuantities_ShouldFailAsEmpty", func() {
		_, err := suite.aggregator.Aggregate(
			suite.selection(CurrencyToman, Portion{"Egg", 0}, Portion{"Rice", -5}),
			suite.snapshot,
		)

		assert.ErrorIs(suite.T(), err, ErrEmptySelection)
	})

	suite.Run("NoPortions_ShouldFailAsEmpty", func() {
		_, err := suite.aggregator.Aggregate(suite.selection(CurrencyToman), suite.snapshot)

		assert.ErrorIs(suite.T(), err, ErrEmptySelection)
	})

	suite.Run("UnknownCurrency_ShouldFail", func() {
		_, err := suite.aggregator.Aggregate(suite.selection("USD", Portion{"Egg", 100}), suite.snapshot)

		assert.ErrorIs(suite.T(), err, ErrUnknownCurrency)
	})

	suite.Run("ZeroScaleFactor_ShouldFail", func() {
		sel := suite.selection(CurrencyToman, Portion{"Egg", 100})
		sel.ScaleFactor = 0

		_, err := suite.aggregator.Aggregate(sel, suite.snapshot)

		assert.ErrorIs(suite.T(), err, ErrInvalidScaleFactor)
	})
}

func (suite *AggregatorTestSuite) TestCostProperty() {
	portions := []Portion{{"Egg", 37.5}, {"Rice", 212}, {"Egg", 12.25}}
	for _, currency := range []string{CurrencyToman, CurrencyIRR} {
		res, err := suite.aggregator.Aggregate(suite.selection(currency, portions...), suite.snapshot)
		require.NoError(suite.T(), err)

		raw := 0.0
		for _, p := range portions {
			raw += suite.snapshot[p.Ingredient].PricePerUnit * p.Quantity
		}
		want, err := DefaultCurrencies().Adjust(raw, currency)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), Round2(want), res.Value(Cost), currency)
	}
}

func (suite *AggregatorTestSuite) TestPerServing() {
	res, err := suite.aggregator.Aggregate(suite.selection(CurrencyToman, Portion{"Egg", 200}), suite.snapshot)
	require.NoError(suite.T(), err)

	suite.Run("FourServings_ShouldDivideAndMarkupCost", func() {
		per, err := suite.aggregator.PerServing(res, 4, 1.5)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 77.5, per.Value(Calories))
		assert.Equal(suite.T(), 6.5, per.Value(Proteins))
		assert.Equal(suite.T(), 3.88, *per.Nutrients[Calories].PercentDailyValue)
		assert.Nil(suite.T(), per.Nutrients[Sugars].PercentDailyValue)
		assert.Equal(suite.T(), 37.5, per.Value(Cost))
	})

	suite.Run("PercentDailyValue_ShouldComeFromServingAmount", func() {
		tiny, err := suite.aggregator.Aggregate(Selection{
			Portions:    []Portion{{Ingredient: "Crumb", Quantity: 1}},
			ScaleFactor: 1,
			Currency:    CurrencyToman,
		}, Snapshot{"Crumb": {Nutrients: Profile{Calories: 34}, PricePerUnit: 1}})
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), 0.02, *tiny.Nutrients[Calories].PercentDailyValue)

		per, err := suite.aggregator.PerServing(tiny, 4, 1)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0.0, *per.Nutrients[Calories].PercentDailyValue)
	})

	suite.Run("MarkupThenDivide_ShouldBeFixedOrder", func() {
		assert.Equal(suite.T(), 33.33, ServingCost(10, 3, 10))
		assert.Equal(suite.T(), 150.0, ServingCost(100, 1, 1.5))
	})

	suite.Run("ZeroServings_ShouldFail", func() {
		_, err := suite.aggregator.PerServing(res, 0, 1.5)
		assert.ErrorIs(suite.T(), err, ErrInvalidServings)
	})

	suite.Run("ZeroMarkup_ShouldFail", func() {
		_, err := suite.aggregator.PerServing(res, 2, 0)
		assert.ErrorIs(suite.T(), err, ErrInvalidMarkup)
	})
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

func TestCurrencyTable(t *testing.T) {
	_, err := NewCurrencyTable(map[string]float64{"USD": 0})
	assert.ErrorIs(t, err, ErrInvalidCurrencyFactor)

	_, err = NewCurrencyTable(nil)
	assert.ErrorIs(t, err, ErrNoCurrencies)

	table, err := NewCurrencyTable(map[string]float64{"Toman": 1, "IRR": 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"IRR", "Toman"}, table.Codes())

	v, err := table.Adjust(12.5, "IRR")
	require.NoError(t, err)
	assert.Equal(t, 125.0, v)
}

func TestReferenceOrder(t *testing.T) {
	ref := DefaultReference()

	keys := ref.Keys()
	assert.Equal(t, Calories, keys[0])
	assert.Equal(t, AddedSugars, keys[len(keys)-1])
	assert.Equal(t, Schema(), ref.AggregatedKeys())
}
