package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// OrderPlacedEvent is raised when an order is appended to the log
type OrderPlacedEvent struct {
	OrderID  uuid.UUID
	UserName string
	Meals    int
	PlacedAt time.Time
}

func (e OrderPlacedEvent) EventName() string {
	return "order.placed"
}

func (e OrderPlacedEvent) OccurredAt() time.Time {
	return e.PlacedAt
}
