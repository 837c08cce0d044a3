package mealplan

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// noShuffle keeps candidates in input order
type noShuffle struct{ calls int }

func (s *noShuffle) Shuffle(n int, swap func(i, j int)) { s.calls++ }

// reverse swaps candidates into reverse order
type reverse struct{}

func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// SelectorTestSuite covers filtering and sampling of meal plans
type SelectorTestSuite struct {
	suite.Suite
	candidates []Candidate
}

func (suite *SelectorTestSuite) SetupTest() {
	suite.candidates = []Candidate{
		{Name: "Salad", Dietary: "vegan", Calories: 150, Protein: 4},
		{Name: "Omelette", Dietary: "vegetarian", Calories: 320, Protein: 22},
		{Name: "Kebab", Dietary: "omnivore", Calories: 700, Protein: 45},
		{Name: "Lentil Soup", Dietary: "Vegan", Calories: 480, Protein: 18},
		{Name: "Yogurt", Dietary: "vegetarian", Calories: 120, Protein: 10},
		{Name: "Rice", Dietary: "vegan", Calories: 260, Protein: 5},
		{Name: "Chicken", Dietary: "omnivore", Calories: 410, Protein: 38},
	}
}

func (suite *SelectorTestSuite) TestEligible() {
	suite.Run("DefaultBudget_ShouldCapPerMealAt500", func() {
		got := Eligible(suite.candidates, Criteria{MaxCalories: DefaultMaxCalories})

		assert.Len(suite.T(), got, 6)
		for _, c := range got {
			assert.LessOrEqual(suite.T(), c.Calories, 500.0)
		}
	})

	suite.Run("ProteinAndDietary_ShouldBothApply", func() {
		got := Eligible(suite.candidates, Criteria{MaxCalories: 2000, MinProtein: 5, Dietary: "VEGAN"})

		names := make([]string, 0, len(got))
		for _, c := range got {
			names = append(names, c.Name)
		}
		assert.Equal(suite.T(), []string{"Lentil Soup", "Rice"}, names)
	})

	suite.Run("TightBudget_ShouldReturnNothing", func() {
		assert.Empty(suite.T(), Eligible(suite.candidates, Criteria{MaxCalories: 100}))
	})
}

func (suite *SelectorTestSuite) TestSelect() {
	suite.Run("InjectedSource_ShouldBeDeterministic", func() {
		src := &noShuffle{}
		plan := NewSelector(src, 0).Select(suite.candidates, Criteria{MaxCalories: 2000})

		require.Len(suite.T(), plan.Meals, DefaultPlanSize)
		assert.Equal(suite.T(), 1, src.calls)
		assert.Equal(suite.T(), "Salad", plan.Meals[0].Name)
		assert.Equal(suite.T(), 1330.0, plan.TotalCalories)
		assert.Equal(suite.T(), 59.0, plan.TotalProtein)
	})

	suite.Run("ReverseSource_ShouldPickFromTheEnd", func() {
		plan := NewSelector(reverse{}, 2).Select(suite.candidates, Criteria{MaxCalories: 2000})

		require.Len(suite.T(), plan.Meals, 2)
		assert.Equal(suite.T(), "Chicken", plan.Meals[0].Name)
		assert.Equal(suite.T(), "Rice", plan.Meals[1].Name)
		assert.Equal(suite.T(), 670.0, plan.TotalCalories)
	})

	suite.Run("SeededSource_ShouldRepeat", func() {
		a := NewSelector(rand.New(rand.NewSource(7)), 3).Select(suite.candidates, Criteria{MaxCalories: 2000})
		b := NewSelector(rand.New(rand.NewSource(7)), 3).Select(suite.candidates, Criteria{MaxCalories: 2000})

		assert.Equal(suite.T(), a, b)
	})

	suite.Run("NoCandidates_ShouldReturnEmptyPlan", func() {
		plan := NewSelector(nil, 5).Select(nil, Criteria{MaxCalories: 2000})

		assert.Empty(suite.T(), plan.Meals)
		assert.Zero(suite.T(), plan.TotalCalories)
	})
}

func TestSelectorTestSuite(t *testing.T) {
	suite.Run(t, new(SelectorTestSuite))
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	plan := []PlannedMeal{{Name: "Salad", Calories: 150, Protein: 4}}

	o, err := NewOrder(" Sara ", "monday", plan, now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, o.ID())
	assert.Equal(t, "Sara", o.UserName())
	assert.Equal(t, time.Monday, o.Day())
	assert.Equal(t, now, o.CreatedAt())
	require.Len(t, o.Events(), 1)

	_, err = NewOrder("", "Monday", plan, now)
	assert.ErrorIs(t, err, ErrUserNameRequired)

	_, err = NewOrder("Sara", "Funday", plan, now)
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = NewOrder("Sara", "Friday", nil, now)
	assert.ErrorIs(t, err, ErrEmptyPlan)

	_, err = NewOrder("Sara", "Friday", []PlannedMeal{{Calories: 1}}, now)
	assert.ErrorIs(t, err, ErrMealNameRequired)
}
