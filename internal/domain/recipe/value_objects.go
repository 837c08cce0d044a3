package recipe

import (
	"strings"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
)

// Item is one ingredient line of a recipe
type Item struct {
	Ingredient string
	Quantity   float64
}

// Complexity represents how hard a recipe is to prepare
type Complexity string

const (
	ComplexityEasy   Complexity = "easy"
	ComplexityMedium Complexity = "medium"
	ComplexityHard   Complexity = "hard"
)

// ParseComplexity accepts an empty string or one of the known levels, case-insensitively
func ParseComplexity(s string) (Complexity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, c := range []Complexity{ComplexityEasy, ComplexityMedium, ComplexityHard} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidComplexity
}

// parseDietary accepts an empty string or a known dietary tag
func parseDietary(s string) (ingredient.Dietary, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	d, err := ingredient.ParseDietary(s)
	if err != nil {
		return "", ErrInvalidDietary
	}
	return d, nil
}

// Criteria filters recipes by tag. Empty fields are not applied.
type Criteria struct {
	Dietary    string
	Complexity string
}

// Matches compares the non-empty criteria with the recipe tags, case-insensitively
func (c Criteria) Matches(r *Recipe) bool {
	if c.Dietary != "" && !strings.EqualFold(strings.TrimSpace(c.Dietary), string(r.dietary)) {
		return false
	}
	if c.Complexity != "" && !strings.EqualFold(strings.TrimSpace(c.Complexity), string(r.complexity)) {
		return false
	}
	return true
}
