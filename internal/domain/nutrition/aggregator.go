package nutrition

import (
	"fmt"
	"math"
)

// Portion is a requested quantity of one ingredient, in the per-100 basis unit
type Portion struct {
	Ingredient string
	Quantity   float64
}

// Selection is the input of an aggregation
type Selection struct {
	Portions    []Portion
	ScaleFactor float64
	Currency    string
}

// Source is the catalog data the aggregator needs for one ingredient
type Source struct {
	Nutrients    Profile
	PricePerUnit float64
}

// Snapshot is a point-in-time view of the catalog keyed by ingredient name
type Snapshot map[string]Source

// Entry is one line of a nutrition breakdown
type Entry struct {
	Value             float64  `json:"value"`
	Unit              *string  `json:"unit"`
	PercentDailyValue *float64 `json:"percent_daily_value"`
}

// Result is a nutrient-by-nutrient breakdown plus the Cost line.
// Missing lists selected ingredients that were not in the snapshot.
type Result struct {
	Nutrients map[string]Entry
	Missing   []string
	Currency  string
}

// Value returns the value for key, 0 when absent
func (r Result) Value(key string) float64 {
	return r.Nutrients[key].Value
}

// Aggregator computes nutrition and cost breakdowns against a reference
type Aggregator struct {
	reference  Reference
	currencies CurrencyTable
}

// NewAggregator creates an aggregator bound to a reference and a currency table
func NewAggregator(reference Reference, currencies CurrencyTable) *Aggregator {
	return &Aggregator{reference: reference, currencies: currencies}
}

// Reference returns the daily-value reference in use
func (a *Aggregator) Reference() Reference {
	return a.reference
}

// Currencies returns the currency table in use
func (a *Aggregator) Currencies() CurrencyTable {
	return a.currencies
}

// Aggregate sums nutrients and cost of the selection over the snapshot.
// Portions with quantity <= 0 are ignored and unknown ingredients are skipped
// and reported in Result.Missing.
func (a *Aggregator) Aggregate(sel Selection, snap Snapshot) (Result, error) {
	if sel.ScaleFactor <= 0 {
		return Result{}, ErrInvalidScaleFactor
	}
	if !a.currencies.Supports(sel.Currency) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, sel.Currency)
	}

	keys := a.reference.AggregatedKeys()
	sums := make(map[string]float64, len(keys))
	var cost float64
	var missing []string
	seenMissing := make(map[string]bool)
	selected := 0

	for _, p := range sel.Portions {
		if p.Quantity <= 0 {
			continue
		}
		selected++

		src, ok := snap[p.Ingredient]
		if !ok {
			if !seenMissing[p.Ingredient] {
				seenMissing[p.Ingredient] = true
				missing = append(missing, p.Ingredient)
			}
			continue
		}

		qty := p.Quantity * sel.ScaleFactor
		for _, key := range keys {
			sums[key] += src.Nutrients.Get(key) * qty / 100
		}
		cost += src.PricePerUnit * qty
	}

	if selected == 0 {
		return Result{}, ErrEmptySelection
	}

	adjusted, err := a.currencies.Adjust(cost, sel.Currency)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Nutrients: make(map[string]Entry, len(keys)+1),
		Missing:   missing,
		Currency:  sel.Currency,
	}
	for _, key := range keys {
		value := Round2(sums[key])
		ref, _ := a.reference.Lookup(key)
		result.Nutrients[key] = Entry{
			Value:             value,
			Unit:              copyString(ref.Unit),
			PercentDailyValue: percentDaily(value, ref.DailyValue),
		}
	}
	currency := sel.Currency
	result.Nutrients[Cost] = Entry{Value: Round2(adjusted), Unit: &currency}

	return result, nil
}

// PerServing divides every nutrient value by servings and recomputes the
// percent daily value from the divided amount. Cost gets the markup applied
// first and is then divided.
func (a *Aggregator) PerServing(res Result, servings int, markup float64) (Result, error) {
	if servings < 1 {
		return Result{}, ErrInvalidServings
	}
	if markup <= 0 {
		return Result{}, ErrInvalidMarkup
	}

	out := Result{
		Nutrients: make(map[string]Entry, len(res.Nutrients)),
		Missing:   append([]string(nil), res.Missing...),
		Currency:  res.Currency,
	}
	n := float64(servings)
	for key, e := range res.Nutrients {
		if key == Cost {
			out.Nutrients[key] = Entry{Value: ServingCost(e.Value, servings, markup), Unit: copyString(e.Unit)}
			continue
		}
		per := e.Value / n
		scaled := Entry{Value: Round2(per), Unit: copyString(e.Unit)}
		if ref, ok := a.reference.Lookup(key); ok && e.PercentDailyValue != nil {
			scaled.PercentDailyValue = percentDaily(per, ref.DailyValue)
		}
		out.Nutrients[key] = scaled
	}
	return out, nil
}

// ServingCost applies the markup to a total cost, then divides by servings
func ServingCost(total float64, servings int, markup float64) float64 {
	if servings < 1 {
		servings = 1
	}
	return Round2(total * markup / float64(servings))
}

// Round2 rounds half away from zero to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentDaily(value float64, dv *float64) *float64 {
	if dv == nil || *dv == 0 {
		return nil
	}
	pdv := Round2(value / *dv * 100)
	return &pdv
}
