// Package ingredient contains the catalog record type and its validation rules.
package ingredient

import (
	"fmt"
	"strings"
	"time"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/shared"
)

// Attributes are the user supplied fields of a catalog record
type Attributes struct {
	Name           string
	LocalizedName  string
	Dietary        Dietary
	Category       Category
	PurchaseCost   float64
	PurchaseAmount float64
	Nutrients      nutrition.Profile
}

// Ingredient is a catalog record. Nutrients are amounts per 100 units and
// the price per unit always equals purchase cost / purchase amount.
type Ingredient struct {
	shared.AggregateRoot

	name           string
	localizedName  string
	dietary        Dietary
	category       Category
	purchaseCost   float64
	purchaseAmount float64
	pricePerUnit   float64
	nutrients      nutrition.Profile
}

// NewIngredient validates attrs and creates a record. Every core macro must be
// present in attrs.Nutrients; other schema nutrients default to 0.
func NewIngredient(attrs Attributes) (*Ingredient, error) {
	attrs.Name = strings.TrimSpace(attrs.Name)
	attrs.LocalizedName = strings.TrimSpace(attrs.LocalizedName)

	if attrs.Name == "" {
		return nil, ErrNameRequired
	}
	if attrs.LocalizedName == "" {
		return nil, ErrLocalizedNameRequired
	}
	dietary, err := ParseDietary(string(attrs.Dietary))
	if err != nil {
		return nil, err
	}
	category, err := ParseCategory(string(attrs.Category))
	if err != nil {
		return nil, err
	}
	for _, key := range nutrition.CoreMacros() {
		if _, ok := attrs.Nutrients[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingCoreNutrient, key)
		}
	}
	for key, v := range attrs.Nutrients {
		if !nutrition.InSchema(key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNutrient, key)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeNutrient, key)
		}
	}
	if err := validatePrice(attrs.PurchaseCost, attrs.PurchaseAmount); err != nil {
		return nil, err
	}

	i := &Ingredient{
		name:           attrs.Name,
		localizedName:  attrs.LocalizedName,
		dietary:        dietary,
		category:       category,
		purchaseCost:   attrs.PurchaseCost,
		purchaseAmount: attrs.PurchaseAmount,
		pricePerUnit:   attrs.PurchaseCost / attrs.PurchaseAmount,
		nutrients:      attrs.Nutrients.Complete(),
	}

	i.AddEvent(IngredientAddedEvent{Name: i.name, Category: i.category, AddedAt: time.Now()})

	return i, nil
}

// Restore rebuilds a record loaded from storage without re-validating it.
// Imported rows may carry tags outside the enumerations.
func Restore(attrs Attributes, pricePerUnit float64) *Ingredient {
	return &Ingredient{
		name:           attrs.Name,
		localizedName:  attrs.LocalizedName,
		dietary:        attrs.Dietary,
		category:       attrs.Category,
		purchaseCost:   attrs.PurchaseCost,
		purchaseAmount: attrs.PurchaseAmount,
		pricePerUnit:   pricePerUnit,
		nutrients:      attrs.Nutrients.Complete(),
	}
}

// UpdatePrice sets purchase cost and amount and recomputes the unit price
func (i *Ingredient) UpdatePrice(cost, amount float64) error {
	if err := validatePrice(cost, amount); err != nil {
		return err
	}

	old := i.pricePerUnit
	i.purchaseCost = cost
	i.purchaseAmount = amount
	i.pricePerUnit = cost / amount

	i.AddEvent(PriceUpdatedEvent{Name: i.name, OldPrice: old, NewPrice: i.pricePerUnit, UpdatedAt: time.Now()})
	return nil
}

// Name returns the unique catalog key
func (i *Ingredient) Name() string { return i.name }

// LocalizedName returns the display name
func (i *Ingredient) LocalizedName() string { return i.localizedName }

// Dietary returns the dietary tag
func (i *Ingredient) Dietary() Dietary { return i.dietary }

// Category returns the catalog category
func (i *Ingredient) Category() Category { return i.category }

// PurchaseCost returns the cost paid for PurchaseAmount units
func (i *Ingredient) PurchaseCost() float64 { return i.purchaseCost }

// PurchaseAmount returns the amount bought for PurchaseCost
func (i *Ingredient) PurchaseAmount() float64 { return i.purchaseAmount }

// PricePerUnit returns purchase cost / purchase amount
func (i *Ingredient) PricePerUnit() float64 { return i.pricePerUnit }

// Nutrient returns the amount of key per 100 units
func (i *Ingredient) Nutrient(key string) float64 { return i.nutrients.Get(key) }

// Nutrients returns a copy of the full nutrient profile
func (i *Ingredient) Nutrients() nutrition.Profile { return i.nutrients.Complete() }

// Attributes returns the record fields
func (i *Ingredient) Attributes() Attributes {
	return Attributes{
		Name:           i.name,
		LocalizedName:  i.localizedName,
		Dietary:        i.dietary,
		Category:       i.category,
		PurchaseCost:   i.purchaseCost,
		PurchaseAmount: i.purchaseAmount,
		Nutrients:      i.Nutrients(),
	}
}

// Snapshot indexes records by name for aggregation
func Snapshot(ingredients []*Ingredient) nutrition.Snapshot {
	snap := make(nutrition.Snapshot, len(ingredients))
	for _, i := range ingredients {
		snap[i.name] = nutrition.Source{Nutrients: i.nutrients, PricePerUnit: i.pricePerUnit}
	}
	return snap
}

func validatePrice(cost, amount float64) error {
	if cost < 0 {
		return ErrNegativeCost
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
