// Package nutrition holds the nutrient schema, the daily-value reference and
// the aggregation engine that turns ingredient quantities into a breakdown.
package nutrition

// Nutrient keys stored per 100 units of an ingredient
const (
	Calories      = "Calories"
	Proteins      = "Proteins"
	Fats          = "Fats"
	SaturatedFats = "SaturatedFats"
	TransFats     = "TransFats"
	Cholesterol   = "Cholesterol"
	Sodium        = "Sodium"
	Carbohydrates = "Carbohydrates"
	Fiber         = "Fiber"
	Sugars        = "Sugars"
	AddedSugars   = "AddedSugars"
	Calcium       = "Calcium"
	Iron          = "Iron"
	Potassium     = "Potassium"
	VitaminA      = "VitaminA"
	VitaminC      = "VitaminC"
	VitaminD      = "VitaminD"

	// Cost is the synthetic key carrying the currency-adjusted price
	Cost = "Cost"
)

var schema = []string{
	Calories, Proteins, Fats, SaturatedFats, TransFats, Cholesterol, Sodium,
	Carbohydrates, Fiber, Sugars, Calcium, Iron, Potassium,
	VitaminA, VitaminC, VitaminD,
}

var coreMacros = []string{Calories, Proteins, Fats, Carbohydrates}

// Schema returns the catalog nutrient columns in display order
func Schema() []string {
	out := make([]string, len(schema))
	copy(out, schema)
	return out
}

// CoreMacros returns the nutrients every new ingredient must declare
func CoreMacros() []string {
	out := make([]string, len(coreMacros))
	copy(out, coreMacros)
	return out
}

// InSchema reports whether key is a catalog nutrient column
func InSchema(key string) bool {
	for _, k := range schema {
		if k == key {
			return true
		}
	}
	return false
}

// Profile maps nutrient keys to amounts per 100 units
type Profile map[string]float64

// Get returns the amount for key, 0 when absent
func (p Profile) Get(key string) float64 {
	return p[key]
}

// Complete returns a copy with every schema key present, absent ones as 0
func (p Profile) Complete() Profile {
	out := make(Profile, len(schema))
	for _, key := range schema {
		out[key] = p[key]
	}
	return out
}
