package mealplan

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nutrino/kitchen/internal/domain/shared"
)

// PlannedMeal is the copy of a meal kept on an order
type PlannedMeal struct {
	Name     string
	Dietary  string
	Calories float64
	Protein  float64
	Cost     float64
}

// Order is an append-only record of a plan someone ordered for a weekday
type Order struct {
	shared.AggregateRoot

	id        uuid.UUID
	userName  string
	day       time.Weekday
	plan      []PlannedMeal
	createdAt time.Time
}

// NewOrder validates and creates an order stamped with now
func NewOrder(userName, day string, plan []PlannedMeal, now time.Time) (*Order, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, ErrUserNameRequired
	}
	weekday, err := ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	if len(plan) == 0 {
		return nil, ErrEmptyPlan
	}
	for _, m := range plan {
		if strings.TrimSpace(m.Name) == "" {
			return nil, ErrMealNameRequired
		}
	}

	o := &Order{
		id:        uuid.New(),
		userName:  userName,
		day:       weekday,
		plan:      append([]PlannedMeal(nil), plan...),
		createdAt: now.UTC(),
	}
	o.AddEvent(OrderPlacedEvent{OrderID: o.id, UserName: userName, Meals: len(plan), PlacedAt: o.createdAt})
	return o, nil
}

// RestoreOrder rebuilds an order read from the log
func RestoreOrder(id uuid.UUID, userName string, day time.Weekday, plan []PlannedMeal, createdAt time.Time) *Order {
	return &Order{id: id, userName: userName, day: day, plan: append([]PlannedMeal(nil), plan...), createdAt: createdAt}
}

// ParseWeekday accepts an English weekday name in any case
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, ErrInvalidDay
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) UserName() string     { return o.userName }
func (o *Order) Day() time.Weekday    { return o.day }
func (o *Order) Plan() []PlannedMeal  { return append([]PlannedMeal(nil), o.plan...) }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
