package ingredient

import "strings"

// Dietary classifies what diets an ingredient or recipe suits
type Dietary string

const (
	DietaryOmnivore   Dietary = "omnivore"
	DietaryVegetarian Dietary = "vegetarian"
	DietaryVegan      Dietary = "vegan"
)

// Dietaries lists the accepted dietary tags
func Dietaries() []Dietary {
	return []Dietary{DietaryOmnivore, DietaryVegetarian, DietaryVegan}
}

// ParseDietary matches s case-insensitively against the dietary tags
func ParseDietary(s string) (Dietary, error) {
	for _, d := range Dietaries() {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", ErrInvalidDietary
}

// Category is the closed set of catalog categories
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryGrains     Category = "Grains and Cereals"
	CategoryLegumes    Category = "Legumes and Beans"
	CategoryMeat       Category = "Meat and Poultry"
	CategoryDairy      Category = "Dairy and Alternatives"
	CategoryNuts       Category = "Nuts and Seeds"
	CategorySpices     Category = "Spices and Herbs"
	CategoryBeverages  Category = "Beverages"
	CategoryCondiments Category = "Condiments and Sauces"
	CategorySweets     Category = "Sweets and Snacks"
	CategoryBaking     Category = "Baking Ingredients"
	CategoryEggs       Category = "Eggs"
	CategoryOther      Category = "Other"
)

// Categories lists every category in display order
func Categories() []Category {
	return []Category{
		CategoryVegetables, CategoryFruits, CategoryGrains, CategoryLegumes,
		CategoryMeat, CategoryDairy, CategoryNuts, CategorySpices,
		CategoryBeverages, CategoryCondiments, CategorySweets, CategoryBaking,
		CategoryEggs, CategoryOther,
	}
}

// ParseCategory matches s case-insensitively against the categories
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Filter narrows a catalog listing. A zero bound means the bound is not applied.
type Filter struct {
	MaxCalories float64
	MinProtein  float64
	MaxFat      float64
	Dietary     string
	Category    string
}

// IsEmpty reports whether no filter is applied
func (f Filter) IsEmpty() bool {
	return f.MaxCalories == 0 && f.MinProtein == 0 && f.MaxFat == 0 && f.Dietary == "" && f.Category == ""
}
