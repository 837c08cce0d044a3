// Package catalog provides the application layer for the ingredient catalog
// This implements the use cases defined in the inbound ports
package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// CatalogService implements the catalog use cases
type CatalogService struct {
	repo   outbound.IngredientRepository
	events shared.EventDispatcher
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	repo outbound.IngredientRepository,
	events shared.EventDispatcher,
	logger *zap.Logger,
) inbound.CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
		logger: logger.Named("catalog-service"),
	}
}

// ListIngredients returns the catalog records matching the query in storage order
func (s *CatalogService) ListIngredients(ctx context.Context, query inbound.IngredientQuery) ([]inbound.IngredientDTO, error) {
	filter := ingredient.Filter{
		MaxCalories: query.MaxCalories,
		MinProtein:  query.MinProtein,
		MaxFat:      query.MaxFat,
		Dietary:     strings.TrimSpace(query.Dietary),
		Category:    strings.TrimSpace(query.Category),
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}

	dtos := make([]inbound.IngredientDTO, 0, len(items))
	for _, i := range items {
		dtos = append(dtos, ToDTO(i))
	}

	s.logger.Debug("Listed ingredients",
		zap.Int("count", len(dtos)),
		zap.Bool("filtered", !filter.IsEmpty()),
	)

	return dtos, nil
}

// GetIngredient returns one catalog record
func (s *CatalogService) GetIngredient(ctx context.Context, name string) (*inbound.IngredientDTO, error) {
	i, err := s.repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if stderrors.Is(err, ingredient.ErrIngredientNotFound) {
			return nil, errors.NewIngredientNotFoundError(name)
		}
		return nil, storageError(err)
	}

	dto := ToDTO(i)
	return &dto, nil
}

// AddIngredient validates and inserts a new catalog record
func (s *CatalogService) AddIngredient(ctx context.Context, cmd inbound.AddIngredientCommand) (*inbound.IngredientDTO, error) {
	s.logger.Info("Adding ingredient", zap.String("name", cmd.Name))

	attrs, err := attributesFromCommand(cmd)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, attrs.Name)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		return nil, errors.NewIngredientExistsError(attrs.Name)
	}

	entity, err := ingredient.NewIngredient(attrs)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		if stderrors.Is(err, ingredient.ErrIngredientExists) {
			return nil, errors.NewIngredientExistsError(attrs.Name)
		}
		return nil, storageError(err)
	}

	s.publish(entity.Events())

	dto := ToDTO(entity)
	s.logger.Info("Ingredient added",
		zap.String("name", dto.Name),
		zap.String("category", dto.Category),
		zap.Float64("price_per_unit", dto.PricePerUnit),
	)
	return &dto, nil
}

// UpdatePrice sets a new purchase price and recomputes the unit price
func (s *CatalogService) UpdatePrice(ctx context.Context, cmd inbound.UpdatePriceCommand) (*inbound.IngredientDTO, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || !cmd.PurchaseCost.IsSet() || !cmd.PurchaseAmount.IsSet() {
		return nil, errors.NewValidationError("ingredient_name, purchase_cost and purchase_amount are required")
	}
	cost, err := cmd.PurchaseCost.Float()
	if err != nil {
		return nil, errors.NewValidationError("purchase cost and amount must be numbers")
	}
	amount, err := cmd.PurchaseAmount.Float()
	if err != nil {
		return nil, errors.NewValidationError("purchase cost and amount must be numbers")
	}
	if amount <= 0 {
		return nil, errors.NewValidationError(ingredient.ErrInvalidAmount.Error())
	}
	if cost < 0 {
		return nil, errors.NewValidationError(ingredient.ErrNegativeCost.Error())
	}

	entity, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if stderrors.Is(err, ingredient.ErrIngredientNotFound) {
			return nil, errors.NewIngredientNotFoundError(name)
		}
		return nil, storageError(err)
	}

	if err := entity.UpdatePrice(cost, amount); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.UpdatePrice(ctx, entity); err != nil {
		if stderrors.Is(err, ingredient.ErrIngredientNotFound) {
			return nil, errors.NewIngredientNotFoundError(name)
		}
		return nil, storageError(err)
	}

	s.publish(entity.Events())

	s.logger.Info("Ingredient price updated",
		zap.String("name", name),
		zap.Float64("price_per_unit", entity.PricePerUnit()),
	)

	dto := ToDTO(entity)
	return &dto, nil
}

func (s *CatalogService) publish(events []shared.DomainEvent) {
	if err := shared.DispatchAll(s.events, events); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

// attributesFromCommand checks presence and parses the numeric fields
func attributesFromCommand(cmd inbound.AddIngredientCommand) (ingredient.Attributes, error) {
	var missing []string
	if strings.TrimSpace(cmd.Name) == "" {
		missing = append(missing, "ingredient_name")
	}
	if strings.TrimSpace(cmd.LocalizedName) == "" {
		missing = append(missing, "localized_name")
	}
	if strings.TrimSpace(cmd.Dietary) == "" {
		missing = append(missing, "dietary")
	}
	if strings.TrimSpace(cmd.Category) == "" {
		missing = append(missing, "category")
	}
	if !cmd.PurchaseCost.IsSet() {
		missing = append(missing, "purchase_cost")
	}
	if !cmd.PurchaseAmount.IsSet() {
		missing = append(missing, "purchase_amount")
	}
	for _, key := range nutrition.CoreMacros() {
		if n, ok := cmd.Nutrients[key]; !ok || !n.IsSet() {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return ingredient.Attributes{}, errors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	cost, err := nonNegative("purchase_cost", cmd.PurchaseCost)
	if err != nil {
		return ingredient.Attributes{}, err
	}
	amount, err := nonNegative("purchase_amount", cmd.PurchaseAmount)
	if err != nil {
		return ingredient.Attributes{}, err
	}
	if amount == 0 {
		return ingredient.Attributes{}, errors.NewValidationError(ingredient.ErrInvalidAmount.Error())
	}

	nutrients := make(nutrition.Profile, len(cmd.Nutrients))
	for key, raw := range cmd.Nutrients {
		if !nutrition.InSchema(key) {
			return ingredient.Attributes{}, errors.NewValidationError(fmt.Sprintf("unknown nutrient %s", key))
		}
		if !raw.IsSet() {
			continue
		}
		v, err := nonNegative(key, raw)
		if err != nil {
			return ingredient.Attributes{}, err
		}
		nutrients[key] = v
	}

	dietary, err := ingredient.ParseDietary(cmd.Dietary)
	if err != nil {
		return ingredient.Attributes{}, errors.NewValidationError(err.Error())
	}
	category, err := ingredient.ParseCategory(cmd.Category)
	if err != nil {
		return ingredient.Attributes{}, errors.NewValidationError(err.Error())
	}

	return ingredient.Attributes{
		Name:           strings.TrimSpace(cmd.Name),
		LocalizedName:  strings.TrimSpace(cmd.LocalizedName),
		Dietary:        dietary,
		Category:       category,
		PurchaseCost:   cost,
		PurchaseAmount: amount,
		Nutrients:      nutrients,
	}, nil
}

func nonNegative(field string, n inbound.Number) (float64, error) {
	v, err := n.Float()
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be a number", field))
	}
	if v < 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must not be negative", field))
	}
	return v, nil
}

func storageError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if stderrors.Is(err, outbound.ErrStorageUnavailable) {
		return errors.NewStorageUnavailableError("ingredient catalog", err)
	}
	return errors.Wrap(err, "catalog operation failed")
}

// ToDTO converts a catalog record to its transfer shape
func ToDTO(i *ingredient.Ingredient) inbound.IngredientDTO {
	return inbound.IngredientDTO{
		Name:           i.Name(),
		LocalizedName:  i.LocalizedName(),
		Dietary:        string(i.Dietary()),
		Category:       string(i.Category()),
		PurchaseCost:   i.PurchaseCost(),
		PurchaseAmount: i.PurchaseAmount(),
		PricePerUnit:   i.PricePerUnit(),
		Nutrients:      i.Nutrients(),
	}
}
