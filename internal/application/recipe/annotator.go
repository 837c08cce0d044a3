package recipe

import (
	stderrors "errors"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"go.uber.org/zap"
)

// Annotator decorates recipes with totals computed against a catalog snapshot
type Annotator struct {
	aggregator *nutrition.Aggregator
	pricing    nutrition.Pricing
	logger     *zap.Logger
}

// NewAnnotator creates an annotator
func NewAnnotator(aggregator *nutrition.Aggregator, pricing nutrition.Pricing, logger *zap.Logger) *Annotator {
	return &Annotator{
		aggregator: aggregator,
		pricing:    pricing,
		logger:     logger.Named("recipe-annotator"),
	}
}

// Annotate computes totals and per-serving figures for r in currency.
// Ingredients missing from the snapshot are skipped and logged.
func (a *Annotator) Annotate(r *recipe.Recipe, snap nutrition.Snapshot, currency string) (inbound.RecipeDTO, error) {
	dto := baseDTO(r)
	dto.Currency = currency

	res, err := a.aggregator.Aggregate(r.Selection(1, currency), snap)
	if err != nil {
		if stderrors.Is(err, nutrition.ErrEmptySelection) {
			// stored documents written before quantity validation may have no positive quantity
			a.logger.Warn("Recipe has no positive quantities", zap.String("recipe", r.Name()))
			return dto, nil
		}
		return dto, err
	}

	if len(res.Missing) > 0 {
		a.logger.Warn("Recipe references ingredients missing from catalog",
			zap.String("recipe", r.Name()),
			zap.Strings("missing", res.Missing),
		)
		dto.MissingIngredients = res.Missing
	}

	servings := float64(r.Servings())
	dto.TotalCalories = res.Value(nutrition.Calories)
	dto.TotalProtein = res.Value(nutrition.Proteins)
	dto.TotalCost = res.Value(nutrition.Cost)
	dto.PerServing = inbound.ServingDTO{
		Calories: nutrition.Round2(dto.TotalCalories / servings),
		Protein:  nutrition.Round2(dto.TotalProtein / servings),
		Cost:     nutrition.ServingCost(dto.TotalCost, r.Servings(), a.pricing.Markup),
	}

	return dto, nil
}

// AnnotateAll annotates recipes in order and collects one warning per missing ingredient
func (a *Annotator) AnnotateAll(recipes []*recipe.Recipe, snap nutrition.Snapshot, currency string) (*inbound.RecipeList, error) {
	list := &inbound.RecipeList{Recipes: make([]inbound.RecipeDTO, 0, len(recipes))}
	warned := make(map[string]bool)

	for _, r := range recipes {
		dto, err := a.Annotate(r, snap, currency)
		if err != nil {
			return nil, err
		}
		for _, name := range dto.MissingIngredients {
			if !warned[name] {
				warned[name] = true
				list.Warnings = append(list.Warnings, MissingIngredientWarning(name))
			}
		}
		list.Recipes = append(list.Recipes, dto)
	}

	return list, nil
}

// MissingIngredientWarning formats the warning surfaced for a skipped ingredient
func MissingIngredientWarning(name string) string {
	return "Ingredient " + name + " not found in catalog; skipped"
}

func baseDTO(r *recipe.Recipe) inbound.RecipeDTO {
	items := r.Ingredients()
	dtoItems := make([]inbound.RecipeItemDTO, 0, len(items))
	for _, it := range items {
		dtoItems = append(dtoItems, inbound.RecipeItemDTO{Ingredient: it.Ingredient, Quantity: it.Quantity})
	}

	return inbound.RecipeDTO{
		Name:         r.Name(),
		Ingredients:  dtoItems,
		Instructions: r.Instructions(),
		PrepTime:     r.PrepTime(),
		Dietary:      string(r.Dietary()),
		Complexity:   string(r.Complexity()),
		Servings:     r.Servings(),
		Image:        r.Image(),
		Thumbnails:   r.Thumbnails(),
	}
}
