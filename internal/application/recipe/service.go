// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	nutritionapp "github.com/nutrino/kitchen/internal/application/nutrition"
	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	store      outbound.RecipeStore
	catalog    outbound.IngredientRepository
	annotator  *Annotator
	aggregator *nutrition.Aggregator
	pricing    nutrition.Pricing
	labels     outbound.LabelRenderer
	sheets     outbound.SheetRenderer
	events     shared.EventDispatcher
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	store outbound.RecipeStore,
	catalog outbound.IngredientRepository,
	annotator *Annotator,
	aggregator *nutrition.Aggregator,
	pricing nutrition.Pricing,
	labels outbound.LabelRenderer,
	sheets outbound.SheetRenderer,
	events shared.EventDispatcher,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		store:      store,
		catalog:    catalog,
		annotator:  annotator,
		aggregator: aggregator,
		pricing:    pricing,
		labels:     labels,
		sheets:     sheets,
		events:     events,
		logger:     logger.Named("recipe-service"),
	}
}

// AddRecipe validates and appends a new recipe document
func (s *RecipeService) AddRecipe(ctx context.Context, cmd inbound.RecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Adding recipe", zap.String("name", cmd.Name))

	entity, snap, err := s.validate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.store.Mutate(ctx, func(c *recipe.Collection) error {
		if err := c.Add(entity); err != nil {
			return err
		}
		events = c.Events()
		return nil
	})
	if err != nil {
		return nil, storeError(err, entity.Name())
	}

	s.publish(events)
	s.logger.Info("Recipe added", zap.String("name", entity.Name()))

	return s.annotate(entity, snap)
}

// UpdateRecipe replaces an existing recipe document. Fields missing from the
// command take their defaults rather than the stored values.
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.RecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Updating recipe", zap.String("name", cmd.Name))

	entity, snap, err := s.validate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.store.Mutate(ctx, func(c *recipe.Collection) error {
		if err := c.Replace(entity); err != nil {
			return err
		}
		events = c.Events()
		return nil
	})
	if err != nil {
		return nil, storeError(err, entity.Name())
	}

	s.publish(events)
	s.logger.Info("Recipe replaced", zap.String("name", entity.Name()))

	return s.annotate(entity, snap)
}

// DeleteRecipe removes a recipe document
func (s *RecipeService) DeleteRecipe(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("recipe_name is required")
	}

	var events []shared.DomainEvent
	err := s.store.Mutate(ctx, func(c *recipe.Collection) error {
		if err := c.Remove(name); err != nil {
			return err
		}
		events = c.Events()
		return nil
	})
	if err != nil {
		return storeError(err, name)
	}

	s.publish(events)
	s.logger.Info("Recipe deleted", zap.String("name", name))
	return nil
}

// MatchRecipes returns recipes sharing at least one ingredient with the selection
func (s *RecipeService) MatchRecipes(ctx context.Context, query inbound.MatchRecipesQuery) (*inbound.RecipeList, error) {
	currency, err := s.currency(query.Currency)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]struct{}, len(query.Ingredients))
	for _, name := range query.Ingredients {
		if name = strings.TrimSpace(name); name != "" {
			selected[name] = struct{}{}
		}
	}
	criteria := recipe.Criteria{Dietary: query.Dietary, Complexity: query.Complexity}

	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*recipe.Recipe
	for _, r := range collection.Recipes() {
		if r.UsesAny(selected) && criteria.Matches(r) {
			matches = append(matches, r)
		}
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.annotator.AnnotateAll(matches, snap, currency)
	if err != nil {
		return nil, nutritionapp.DomainError(err)
	}

	s.logger.Debug("Matched recipes",
		zap.Int("selected", len(selected)),
		zap.Int("matches", len(list.Recipes)),
	)
	return list, nil
}

// BrowseRecipes annotates every stored recipe and applies the tag and total bounds
func (s *RecipeService) BrowseRecipes(ctx context.Context, query inbound.BrowseRecipesQuery) (*inbound.RecipeList, error) {
	currency, err := s.currency(query.Currency)
	if err != nil {
		return nil, err
	}
	criteria := recipe.Criteria{Dietary: query.Dietary, Complexity: query.Complexity}

	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var tagged []*recipe.Recipe
	for _, r := range collection.Recipes() {
		if criteria.Matches(r) {
			tagged = append(tagged, r)
		}
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	annotated, err := s.annotator.AnnotateAll(tagged, snap, currency)
	if err != nil {
		return nil, nutritionapp.DomainError(err)
	}

	list := &inbound.RecipeList{Recipes: make([]inbound.RecipeDTO, 0, len(annotated.Recipes)), Warnings: annotated.Warnings}
	for _, dto := range annotated.Recipes {
		if query.MaxCalories != 0 && dto.TotalCalories > query.MaxCalories {
			continue
		}
		if query.MaxCost != 0 && dto.TotalCost > query.MaxCost {
			continue
		}
		list.Recipes = append(list.Recipes, dto)
	}

	return list, nil
}

// GetRecipe returns one annotated recipe
func (s *RecipeService) GetRecipe(ctx context.Context, name, currency string) (*inbound.RecipeDTO, error) {
	currency, err := s.currency(currency)
	if err != nil {
		return nil, err
	}
	entity, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	dto, err := s.annotator.Annotate(entity, snap, currency)
	if err != nil {
		return nil, nutritionapp.DomainError(err)
	}
	return &dto, nil
}

// RecipeNutrition returns the full breakdown of a stored recipe
func (s *RecipeService) RecipeNutrition(ctx context.Context, query inbound.RecipeNutritionQuery) (*inbound.NutritionDTO, error) {
	scale, err := nutritionapp.ParseScale(query.ScaleFactor)
	if err != nil {
		return nil, err
	}
	entity, res, err := s.breakdown(ctx, query.Name, scale, query.Currency)
	if err != nil {
		return nil, err
	}

	servings := 0
	if query.PerServing {
		servings = entity.Servings()
		res, err = s.aggregator.PerServing(res, servings, s.pricing.Markup)
		if err != nil {
			return nil, nutritionapp.DomainError(err)
		}
	}

	return nutritionapp.ToDTO(res, servings), nil
}

// RenderRecipeLabel renders the nutrition label of a stored recipe
func (s *RecipeService) RenderRecipeLabel(ctx context.Context, name, currency string) (*outbound.Document, error) {
	entity, res, err := s.breakdown(ctx, name, 1, currency)
	if err != nil {
		return nil, err
	}
	doc, err := s.labels.RenderLabel(entity.Name(), res, s.aggregator.Reference())
	if err != nil {
		return nil, errors.Wrap(err, "failed to render label")
	}
	return doc, nil
}

// RenderRecipeSheet renders the printable sheet of a stored recipe, a PNG
// image unless format asks for an XLSX workbook
func (s *RecipeService) RenderRecipeSheet(ctx context.Context, name, currency, format string) (*outbound.Document, error) {
	sheetFormat, err := parseSheetFormat(format)
	if err != nil {
		return nil, err
	}
	entity, res, err := s.breakdown(ctx, name, 1, currency)
	if err != nil {
		return nil, err
	}
	doc, err := s.sheets.RenderSheet(sheetFormat, entity, res, s.aggregator.Reference())
	if err != nil {
		return nil, errors.Wrap(err, "failed to render recipe sheet")
	}
	return doc, nil
}

func parseSheetFormat(raw string) (outbound.SheetFormat, error) {
	switch f := outbound.SheetFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return outbound.SheetPNG, nil
	case outbound.SheetPNG, outbound.SheetXLSX:
		return f, nil
	default:
		return "", errors.NewValidationError(fmt.Sprintf("unsupported sheet format %q, use png or xlsx", raw))
	}
}

// validate parses the command, builds the document and checks that every
// ingredient exists, stopping at the first missing one
func (s *RecipeService) validate(ctx context.Context, cmd inbound.RecipeCommand) (*recipe.Recipe, nutrition.Snapshot, error) {
	draft, err := draftFromCommand(cmd)
	if err != nil {
		return nil, nil, err
	}
	entity, err := recipe.NewRecipe(draft)
	if err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}

	names := entity.IngredientNames()
	found, err := s.catalog.FindByNames(ctx, names)
	if err != nil {
		return nil, nil, nutritionapp.CatalogError(err)
	}
	snap := ingredient.Snapshot(found)
	for _, name := range names {
		if _, ok := snap[name]; !ok {
			return nil, nil, errors.NewIngredientNotFoundError(name)
		}
	}

	return entity, snap, nil
}

func (s *RecipeService) breakdown(ctx context.Context, name string, scale float64, currency string) (*recipe.Recipe, nutrition.Result, error) {
	currency, err := s.currency(currency)
	if err != nil {
		return nil, nutrition.Result{}, err
	}
	entity, err := s.find(ctx, name)
	if err != nil {
		return nil, nutrition.Result{}, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, nutrition.Result{}, err
	}

	res, err := s.aggregator.Aggregate(entity.Selection(scale, currency), snap)
	if err != nil {
		return nil, nutrition.Result{}, nutritionapp.DomainError(err)
	}
	if len(res.Missing) > 0 {
		s.logger.Warn("Recipe references ingredients missing from catalog",
			zap.String("recipe", entity.Name()),
			zap.Strings("missing", res.Missing),
		)
	}
	return entity, res, nil
}

func (s *RecipeService) annotate(entity *recipe.Recipe, snap nutrition.Snapshot) (*inbound.RecipeDTO, error) {
	dto, err := s.annotator.Annotate(entity, snap, s.pricing.DefaultCurrency)
	if err != nil {
		return nil, nutritionapp.DomainError(err)
	}
	return &dto, nil
}

func (s *RecipeService) find(ctx context.Context, name string) (*recipe.Recipe, error) {
	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	entity, ok := collection.Find(strings.TrimSpace(name))
	if !ok {
		return nil, errors.NewRecipeNotFoundError(name)
	}
	return entity, nil
}

func (s *RecipeService) load(ctx context.Context) (*recipe.Collection, error) {
	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, storeError(err, "")
	}
	return collection, nil
}

// snapshot takes a fresh copy of the whole catalog
func (s *RecipeService) snapshot(ctx context.Context) (nutrition.Snapshot, error) {
	items, err := s.catalog.FindAll(ctx, ingredient.Filter{})
	if err != nil {
		return nil, nutritionapp.CatalogError(err)
	}
	return ingredient.Snapshot(items), nil
}

func (s *RecipeService) currency(requested string) (string, error) {
	currency := s.pricing.Currency(strings.TrimSpace(requested))
	if !s.aggregator.Currencies().Supports(currency) {
		return "", errors.NewValidationError(fmt.Sprintf("unknown currency %s", currency))
	}
	return currency, nil
}

func (s *RecipeService) publish(events []shared.DomainEvent) {
	if err := shared.DispatchAll(s.events, events); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

// draftFromCommand parses the numeric fields of a recipe command
func draftFromCommand(cmd inbound.RecipeCommand) (recipe.Draft, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || len(cmd.Ingredients) == 0 {
		return recipe.Draft{}, errors.NewValidationError("recipe name and ingredients are required")
	}

	items := make([]recipe.Item, 0, len(cmd.Ingredients))
	for _, it := range cmd.Ingredients {
		qty, err := it.Quantity.Float()
		if err != nil {
			return recipe.Draft{}, errors.NewValidationError(fmt.Sprintf("quantity for %s must be a number", it.Ingredient))
		}
		items = append(items, recipe.Item{Ingredient: it.Ingredient, Quantity: qty})
	}

	if !cmd.PrepTime.IsSet() {
		return recipe.Draft{}, errors.NewValidationError(recipe.ErrInvalidPrepTime.Error())
	}
	prep, err := cmd.PrepTime.Int()
	if err != nil || prep <= 0 {
		return recipe.Draft{}, errors.NewValidationError(recipe.ErrInvalidPrepTime.Error())
	}

	servings := 1
	if cmd.Servings.IsSet() {
		servings, err = cmd.Servings.Int()
		if err != nil || servings <= 0 {
			return recipe.Draft{}, errors.NewValidationError(recipe.ErrInvalidServings.Error())
		}
	}

	return recipe.Draft{
		Name:         name,
		Ingredients:  items,
		Instructions: cmd.Instructions,
		PrepTime:     prep,
		Dietary:      cmd.Dietary,
		Complexity:   cmd.Complexity,
		Servings:     servings,
		Image:        cmd.Image,
		Thumbnails:   cmd.Thumbnails,
	}, nil
}

func storeError(err error, name string) error {
	switch {
	case stderrors.Is(err, recipe.ErrRecipeNotFound):
		return errors.NewRecipeNotFoundError(name)
	case stderrors.Is(err, recipe.ErrDuplicateRecipe):
		return errors.NewRecipeExistsError(name)
	case stderrors.Is(err, outbound.ErrStorageUnavailable):
		return errors.NewStorageUnavailableError("recipe store", err)
	}
	return errors.Wrap(err, "recipe store operation failed")
}
