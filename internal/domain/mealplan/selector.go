// Package mealplan picks recipes for a day and records orders placed from a plan.
package mealplan

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
)

// Defaults applied when a request leaves a bound unset
const (
	DefaultMaxCalories = 2000.0
	DefaultMinProtein  = 0.0
	DefaultPlanSize    = 5
	MealsPerDay        = 4
)

// RandomSource decides the sample order
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
}

// NewTimeSeededSource returns a goroutine-safe source seeded from the clock
func NewTimeSeededSource() RandomSource {
	return &lockedSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// Candidate is a recipe with its computed totals
type Candidate struct {
	Name     string
	Dietary  string
	Calories float64
	Protein  float64
}

// Criteria bounds a plan. MaxCalories is a daily budget split over MealsPerDay.
type Criteria struct {
	MaxCalories float64
	MinProtein  float64
	Dietary     string
}

// Plan is the chosen meals and their summed totals
type Plan struct {
	Meals         []Candidate
	TotalCalories float64
	TotalProtein  float64
}

// Selector samples candidates satisfying a criteria
type Selector struct {
	source RandomSource
	size   int
}

// NewSelector creates a selector picking up to size meals; size <= 0 uses DefaultPlanSize
func NewSelector(source RandomSource, size int) *Selector {
	if source == nil {
		source = NewTimeSeededSource()
	}
	if size <= 0 {
		size = DefaultPlanSize
	}
	return &Selector{source: source, size: size}
}

// Eligible returns candidates within a per-meal calorie share of the budget,
// with enough protein, and matching the dietary tag when one is given
func Eligible(candidates []Candidate, c Criteria) []Candidate {
	perMeal := c.MaxCalories / MealsPerDay
	var out []Candidate
	for _, cand := range candidates {
		if cand.Calories > perMeal {
			continue
		}
		if cand.Protein < c.MinProtein {
			continue
		}
		if c.Dietary != "" && !strings.EqualFold(strings.TrimSpace(c.Dietary), strings.TrimSpace(cand.Dietary)) {
			continue
		}
		out = append(out, cand)
	}
	return out
}

// Select filters candidates and samples up to the selector size of them
func (s *Selector) Select(candidates []Candidate, c Criteria) Plan {
	pool := Eligible(candidates, c)
	s.source.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > s.size {
		pool = pool[:s.size]
	}

	plan := Plan{Meals: pool}
	for _, m := range pool {
		plan.TotalCalories += m.Calories
		plan.TotalProtein += m.Protein
	}
	plan.TotalCalories = nutrition.Round2(plan.TotalCalories)
	plan.TotalProtein = nutrition.Round2(plan.TotalProtein)
	return plan
}
