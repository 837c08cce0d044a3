// Package mealplan provides the meal plan and order use cases
package mealplan

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	recipeapp "github.com/nutrino/kitchen/internal/application/recipe"
	nutritionapp "github.com/nutrino/kitchen/internal/application/nutrition"
	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// Clock returns the current time
type Clock func() time.Time

// MealPlanService implements meal plan generation and order placement
type MealPlanService struct {
	store      outbound.RecipeStore
	catalog    outbound.IngredientRepository
	orders     outbound.OrderLog
	annotator  *recipeapp.Annotator
	selector   *mealplan.Selector
	pricing    nutrition.Pricing
	currencies nutrition.CurrencyTable
	events     shared.EventDispatcher
	now        Clock
	logger     *zap.Logger
}

// NewMealPlanService creates a new meal plan service. A nil clock uses time.Now.
func NewMealPlanService(
	store outbound.RecipeStore,
	catalog outbound.IngredientRepository,
	orders outbound.OrderLog,
	annotator *recipeapp.Annotator,
	selector *mealplan.Selector,
	aggregator *nutrition.Aggregator,
	pricing nutrition.Pricing,
	events shared.EventDispatcher,
	now Clock,
	logger *zap.Logger,
) inbound.MealPlanService {
	if now == nil {
		now = time.Now
	}
	return &MealPlanService{
		store:      store,
		catalog:    catalog,
		orders:     orders,
		annotator:  annotator,
		selector:   selector,
		pricing:    pricing,
		currencies: aggregator.Currencies(),
		events:     events,
		now:        now,
		logger:     logger.Named("mealplan-service"),
	}
}

// GenerateMealPlan samples stored recipes that fit the calorie, protein and tag bounds
func (s *MealPlanService) GenerateMealPlan(ctx context.Context, cmd inbound.GenerateMealPlanCommand) (*inbound.MealPlanDTO, error) {
	criteria, err := criteriaFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	currency := s.pricing.Currency(strings.TrimSpace(cmd.Currency))
	if !s.currencies.Supports(currency) {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown currency %s", currency))
	}

	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	items, err := s.catalog.FindAll(ctx, ingredient.Filter{})
	if err != nil {
		return nil, nutritionapp.CatalogError(err)
	}

	annotated, err := s.annotator.AnnotateAll(collection.Recipes(), ingredient.Snapshot(items), currency)
	if err != nil {
		return nil, errors.Wrap(err, "failed to annotate recipes")
	}

	byName := make(map[string]inbound.RecipeDTO, len(annotated.Recipes))
	candidates := make([]mealplan.Candidate, 0, len(annotated.Recipes))
	for _, dto := range annotated.Recipes {
		byName[dto.Name] = dto
		candidates = append(candidates, mealplan.Candidate{
			Name:     dto.Name,
			Dietary:  dto.Dietary,
			Calories: dto.TotalCalories,
			Protein:  dto.TotalProtein,
		})
	}

	plan := s.selector.Select(candidates, criteria)

	result := &inbound.MealPlanDTO{
		MealPlan: make([]inbound.RecipeDTO, 0, len(plan.Meals)),
		TotalNutrition: inbound.NutritionTotals{
			Calories: plan.TotalCalories,
			Protein:  plan.TotalProtein,
		},
	}
	picked := make(map[string]bool, len(plan.Meals))
	for _, meal := range plan.Meals {
		dto := byName[meal.Name]
		result.MealPlan = append(result.MealPlan, dto)
		for _, missing := range dto.MissingIngredients {
			if !picked[missing] {
				picked[missing] = true
				result.Warnings = append(result.Warnings, recipeapp.MissingIngredientWarning(missing))
			}
		}
	}

	s.logger.Info("Generated meal plan",
		zap.Int("candidates", len(candidates)),
		zap.Int("meals", len(result.MealPlan)),
		zap.Float64("max_calories", criteria.MaxCalories),
		zap.Float64("min_protein", criteria.MinProtein),
		zap.String("dietary", criteria.Dietary),
	)
	return result, nil
}

// PlaceOrder appends an order for the given plan to the order log
func (s *MealPlanService) PlaceOrder(ctx context.Context, cmd inbound.PlaceOrderCommand) (*inbound.OrderDTO, error) {
	meals := make([]mealplan.PlannedMeal, 0, len(cmd.MealPlan))
	for _, m := range cmd.MealPlan {
		meals = append(meals, mealplan.PlannedMeal{
			Name:     strings.TrimSpace(m.Name),
			Dietary:  m.Dietary,
			Calories: m.Calories,
			Protein:  m.Protein,
			Cost:     m.Cost,
		})
	}

	order, err := mealplan.NewOrder(cmd.UserName, cmd.SelectedDay, meals, s.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.orders.Append(ctx, order); err != nil {
		if stderrors.Is(err, outbound.ErrStorageUnavailable) {
			return nil, errors.NewStorageUnavailableError("order log", err)
		}
		return nil, errors.Wrap(err, "failed to record order")
	}

	if err := shared.DispatchAll(s.events, order.Events()); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID().String()),
		zap.String("user", order.UserName()),
		zap.String("day", order.Day().String()),
		zap.Int("meals", len(meals)),
	)

	dto := ToOrderDTO(order)
	return &dto, nil
}

// ListOrders returns the order log in append order
func (s *MealPlanService) ListOrders(ctx context.Context) ([]inbound.OrderDTO, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		if stderrors.Is(err, outbound.ErrStorageUnavailable) {
			return nil, errors.NewStorageUnavailableError("order log", err)
		}
		return nil, errors.Wrap(err, "failed to read orders")
	}

	out := make([]inbound.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderDTO(o))
	}
	return out, nil
}

// ToOrderDTO converts an order to its response form
func ToOrderDTO(o *mealplan.Order) inbound.OrderDTO {
	plan := o.Plan()
	meals := make([]inbound.PlannedMealDTO, 0, len(plan))
	for _, m := range plan {
		meals = append(meals, inbound.PlannedMealDTO{
			Name:     m.Name,
			Dietary:  m.Dietary,
			Calories: m.Calories,
			Protein:  m.Protein,
			Cost:     m.Cost,
		})
	}
	return inbound.OrderDTO{
		ID:          o.ID(),
		UserName:    o.UserName(),
		SelectedDay: o.Day().String(),
		MealPlan:    meals,
		CreatedAt:   o.CreatedAt(),
	}
}

func criteriaFromCommand(cmd inbound.GenerateMealPlanCommand) (mealplan.Criteria, error) {
	criteria := mealplan.Criteria{
		MaxCalories: mealplan.DefaultMaxCalories,
		MinProtein:  mealplan.DefaultMinProtein,
		Dietary:     strings.TrimSpace(cmd.Dietary),
	}

	if cmd.MaxCalories.IsSet() {
		v, err := cmd.MaxCalories.Float()
		if err != nil || v < 0 {
			return criteria, errors.NewValidationError("max_calories must be a non-negative number")
		}
		criteria.MaxCalories = v
	}
	if cmd.MinProtein.IsSet() {
		v, err := cmd.MinProtein.Float()
		if err != nil || v < 0 {
			return criteria, errors.NewValidationError("min_protein must be a non-negative number")
		}
		criteria.MinProtein = v
	}
	return criteria, nil
}

func storeError(err error) error {
	if stderrors.Is(err, outbound.ErrStorageUnavailable) {
		return errors.NewStorageUnavailableError("recipe store", err)
	}
	return errors.Wrap(err, "failed to load recipes")
}
