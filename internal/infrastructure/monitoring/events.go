package monitoring

import (
	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"go.uber.org/zap"
)

// RegisterEventHandlers subscribes the collector and an audit log line to
// the domain events
func RegisterEventHandlers(dispatcher shared.EventDispatcher, metrics *MetricsCollector, logger *zap.Logger) {
	log := logger.Named("events")

	dispatcher.Register(recipe.RecipeAddedEvent{}.EventName(), func(shared.DomainEvent) error {
		metrics.RecipeMutated("add")
		return nil
	})
	dispatcher.Register(recipe.RecipeReplacedEvent{}.EventName(), func(shared.DomainEvent) error {
		metrics.RecipeMutated("replace")
		return nil
	})
	dispatcher.Register(recipe.RecipeDeletedEvent{}.EventName(), func(shared.DomainEvent) error {
		metrics.RecipeMutated("delete")
		return nil
	})
	dispatcher.Register(ingredient.IngredientAddedEvent{}.EventName(), func(shared.DomainEvent) error {
		metrics.IngredientAdded()
		return nil
	})
	dispatcher.Register(ingredient.PriceUpdatedEvent{}.EventName(), func(shared.DomainEvent) error {
		metrics.PriceUpdated()
		return nil
	})
	dispatcher.Register(mealplan.OrderPlacedEvent{}.EventName(), func(e shared.DomainEvent) error {
		if placed, ok := e.(mealplan.OrderPlacedEvent); ok {
			metrics.OrderPlaced(placed.Meals)
		}
		return nil
	})

	dispatcher.Register("*", func(e shared.DomainEvent) error {
		log.Info("Domain event", zap.String("event", e.EventName()), zap.Time("occurred_at", e.OccurredAt()))
		return nil
	})
}
