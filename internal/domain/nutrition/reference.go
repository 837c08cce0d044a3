package nutrition

import "sort"

// ReferenceEntry is the recommended daily amount and display unit of a nutrient
type ReferenceEntry struct {
	DailyValue *float64
	Unit       *string
}

// Reference is the read-only daily-value table. Build it once and share it.
type Reference struct {
	entries map[string]ReferenceEntry
	order   []string
}

// NewReference copies entries into an immutable reference. Keys are ordered by
// schema position first, then alphabetically for keys outside the schema.
func NewReference(entries map[string]ReferenceEntry) Reference {
	ref := Reference{entries: make(map[string]ReferenceEntry, len(entries))}
	for key, entry := range entries {
		ref.entries[key] = ReferenceEntry{DailyValue: copyFloat(entry.DailyValue), Unit: copyString(entry.Unit)}
	}

	var extra []string
	for _, key := range schema {
		if _, ok := ref.entries[key]; ok {
			ref.order = append(ref.order, key)
		}
	}
	for key := range ref.entries {
		if !InSchema(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	ref.order = append(ref.order, extra...)

	return ref
}

// DefaultReference returns the standard adult daily values
func DefaultReference() Reference {
	return NewReference(map[string]ReferenceEntry{
		Calories:      entry(2000, "kcal"),
		Proteins:      entry(50, "g"),
		Fats:          entry(78, "g"),
		SaturatedFats: entry(20, "g"),
		TransFats:     {Unit: str("g")},
		Cholesterol:   entry(300, "mg"),
		Sodium:        entry(2300, "mg"),
		Carbohydrates: entry(275, "g"),
		Fiber:         entry(28, "g"),
		Sugars:        {Unit: str("g")},
		AddedSugars:   entry(50, "g"),
		Calcium:       entry(1300, "mg"),
		Iron:          entry(18, "mg"),
		Potassium:     entry(4700, "mg"),
		VitaminA:      entry(900, "mcg"),
		VitaminC:      entry(90, "mg"),
		VitaminD:      entry(20, "mcg"),
	})
}

// Lookup returns the entry for key
func (r Reference) Lookup(key string) (ReferenceEntry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Keys returns the reference keys in display order
func (r Reference) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AggregatedKeys returns the keys present in both the catalog schema and the reference
func (r Reference) AggregatedKeys() []string {
	var keys []string
	for _, key := range r.order {
		if InSchema(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func entry(dv float64, unit string) ReferenceEntry {
	return ReferenceEntry{DailyValue: &dv, Unit: &unit}
}

func str(s string) *string { return &s }

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
