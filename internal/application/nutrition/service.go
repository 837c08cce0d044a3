// Package nutrition provides the application layer for ad hoc nutrition aggregation
package nutrition

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// DefaultLabelTitle is used when a label request has no title
const DefaultLabelTitle = "Nutrition Facts"

// NutritionService implements the aggregation use cases
type NutritionService struct {
	catalog    outbound.IngredientRepository
	aggregator *nutrition.Aggregator
	pricing    nutrition.Pricing
	labels     outbound.LabelRenderer
	logger     *zap.Logger
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(
	catalog outbound.IngredientRepository,
	aggregator *nutrition.Aggregator,
	pricing nutrition.Pricing,
	labels outbound.LabelRenderer,
	logger *zap.Logger,
) inbound.NutritionService {
	return &NutritionService{
		catalog:    catalog,
		aggregator: aggregator,
		pricing:    pricing,
		labels:     labels,
		logger:     logger.Named("nutrition-service"),
	}
}

// Calculate aggregates a name to quantity selection
func (s *NutritionService) Calculate(ctx context.Context, cmd inbound.CalculateCommand) (*inbound.NutritionDTO, error) {
	res, servings, err := s.calculate(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return ToDTO(res, servings), nil
}

// AnalyzeIngredientList aggregates an ordered ingredient list with a quantity default of 100
func (s *NutritionService) AnalyzeIngredientList(ctx context.Context, cmd inbound.IngredientListCommand) (*inbound.NutritionDTO, error) {
	portions := make([]nutrition.Portion, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		name := strings.TrimSpace(item.Ingredient)
		if name == "" {
			return nil, errors.NewValidationError("every ingredient_list entry needs an ingredient")
		}
		qty := 100.0
		if item.Quantity.IsSet() {
			v, err := item.Quantity.Float()
			if err != nil {
				return nil, errors.NewValidationError(fmt.Sprintf("quantity for %s must be a number", name))
			}
			qty = v
		}
		portions = append(portions, nutrition.Portion{Ingredient: name, Quantity: qty})
	}

	res, servings, err := s.aggregate(ctx, portions, cmd.ScaleFactor, cmd.Currency, cmd.Servings)
	if err != nil {
		return nil, err
	}
	return ToDTO(res, servings), nil
}

// RenderLabel renders a nutrition facts label for a selection
func (s *NutritionService) RenderLabel(ctx context.Context, cmd inbound.LabelCommand) (*outbound.Document, error) {
	res, _, err := s.calculate(ctx, cmd.CalculateCommand)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = DefaultLabelTitle
	}

	doc, err := s.labels.RenderLabel(title, res, s.aggregator.Reference())
	if err != nil {
		return nil, errors.Wrap(err, "failed to render label")
	}
	return doc, nil
}

func (s *NutritionService) calculate(ctx context.Context, cmd inbound.CalculateCommand) (nutrition.Result, int, error) {
	names := make([]string, 0, len(cmd.Quantities))
	for name := range cmd.Quantities {
		names = append(names, name)
	}
	sort.Strings(names)

	portions := make([]nutrition.Portion, 0, len(names))
	for _, name := range names {
		raw := cmd.Quantities[name]
		if !raw.IsSet() {
			continue
		}
		qty, err := raw.Float()
		if err != nil {
			return nutrition.Result{}, 0, errors.NewValidationError(fmt.Sprintf("quantity for %s must be a number", name))
		}
		portions = append(portions, nutrition.Portion{Ingredient: strings.TrimSpace(name), Quantity: qty})
	}

	return s.aggregate(ctx, portions, cmd.ScaleFactor, cmd.Currency, cmd.Servings)
}

func (s *NutritionService) aggregate(
	ctx context.Context,
	portions []nutrition.Portion,
	rawScale inbound.Number,
	currency string,
	rawServings inbound.Number,
) (nutrition.Result, int, error) {
	scale, err := ParseScale(rawScale)
	if err != nil {
		return nutrition.Result{}, 0, err
	}
	servings := 0
	if rawServings.IsSet() {
		servings, err = rawServings.Int()
		if err != nil || servings < 1 {
			return nutrition.Result{}, 0, errors.NewValidationError("servings must be a positive integer")
		}
	}

	names := make([]string, 0, len(portions))
	for _, p := range portions {
		if p.Quantity > 0 {
			names = append(names, p.Ingredient)
		}
	}
	var snapshot nutrition.Snapshot
	if len(names) > 0 {
		items, err := s.catalog.FindByNames(ctx, names)
		if err != nil {
			return nutrition.Result{}, 0, CatalogError(err)
		}
		snapshot = ingredient.Snapshot(items)
	}

	sel := nutrition.Selection{Portions: portions, ScaleFactor: scale, Currency: s.pricing.Currency(currency)}
	res, err := s.aggregator.Aggregate(sel, snapshot)
	if err != nil {
		return nutrition.Result{}, 0, DomainError(err)
	}

	if len(res.Missing) > 0 {
		s.logger.Warn("Ingredients missing from catalog were skipped",
			zap.Strings("missing", res.Missing),
		)
	}

	if servings > 0 {
		res, err = s.aggregator.PerServing(res, servings, s.pricing.Markup)
		if err != nil {
			return nutrition.Result{}, 0, DomainError(err)
		}
	}

	s.logger.Debug("Aggregated selection",
		zap.Int("portions", len(portions)),
		zap.String("currency", res.Currency),
		zap.Float64("calories", res.Value(nutrition.Calories)),
		zap.Float64("cost", res.Value(nutrition.Cost)),
	)

	return res, servings, nil
}

// ParseScale reads a scale factor, 1 when unset
func ParseScale(raw inbound.Number) (float64, error) {
	if !raw.IsSet() {
		return 1, nil
	}
	scale, err := raw.Float()
	if err != nil || scale <= 0 {
		return 0, errors.NewValidationError(nutrition.ErrInvalidScaleFactor.Error())
	}
	return scale, nil
}

// DomainError maps aggregator errors to validation errors
func DomainError(err error) error {
	switch {
	case stderrors.Is(err, nutrition.ErrEmptySelection),
		stderrors.Is(err, nutrition.ErrInvalidScaleFactor),
		stderrors.Is(err, nutrition.ErrUnknownCurrency),
		stderrors.Is(err, nutrition.ErrInvalidServings),
		stderrors.Is(err, nutrition.ErrInvalidMarkup):
		return errors.NewValidationError(err.Error())
	}
	return errors.Wrap(err, "aggregation failed")
}

// CatalogError maps a catalog read failure to a storage or internal error
func CatalogError(err error) error {
	if stderrors.Is(err, outbound.ErrStorageUnavailable) {
		return errors.NewStorageUnavailableError("ingredient catalog", err)
	}
	return errors.Wrap(err, "failed to read ingredient catalog")
}

// ToDTO converts a result to its transfer shape
func ToDTO(res nutrition.Result, servings int) *inbound.NutritionDTO {
	return &inbound.NutritionDTO{
		Nutrients:          res.Nutrients,
		Currency:           res.Currency,
		Servings:           servings,
		MissingIngredients: res.Missing,
	}
}
