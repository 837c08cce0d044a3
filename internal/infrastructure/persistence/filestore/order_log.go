package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"go.uber.org/zap"
)

type plannedMealRecord struct {
	Name     string  `json:"recipe_name"`
	Dietary  string  `json:"dietary,omitempty"`
	Calories float64 `json:"total_calories"`
	Protein  float64 `json:"total_protein"`
	Cost     float64 `json:"total_cost"`
}

type orderRecord struct {
	ID          uuid.UUID           `json:"id"`
	UserName    string              `json:"user_name"`
	SelectedDay string              `json:"selected_day"`
	MealPlan    []plannedMealRecord `json:"meal_plan"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderLog is an append-only JSON array of orders
type OrderLog struct {
	file   *File
	logger *zap.Logger
	now    func() time.Time
}

// NewOrderLog creates a log backed by path
func NewOrderLog(path string, logger *zap.Logger) outbound.OrderLog {
	return &OrderLog{
		file:   NewFile(path),
		logger: logger.Named("order-log"),
		now:    time.Now,
	}
}

// Append adds an order. An unreadable log is moved aside and a new one started.
func (l *OrderLog) Append(ctx context.Context, order *mealplan.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.file.mu.Lock()
	defer l.file.mu.Unlock()

	records, err := l.readRecords()
	if errors.Is(err, errCorrupt) {
		moved, qerr := l.file.quarantine(l.now())
		if qerr != nil {
			return fmt.Errorf("%w: %v", outbound.ErrStorageUnavailable, qerr)
		}
		l.logger.Warn("Order log was corrupt; moved aside", zap.String("moved_to", moved))
		records, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", outbound.ErrStorageUnavailable, err)
	}

	records = append(records, toOrderRecord(order))
	if err := l.file.write(records); err != nil {
		l.logger.Error("Failed to write order log", zap.String("path", l.file.Path()), zap.Error(err))
		return fmt.Errorf("%w: %v", outbound.ErrStorageUnavailable, err)
	}
	return nil
}

// List returns every order in append order. An unreadable log reads as empty.
func (l *OrderLog) List(ctx context.Context) ([]*mealplan.Order, error) {
	l.file.mu.Lock()
	defer l.file.mu.Unlock()

	records, err := l.readRecords()
	if errors.Is(err, errCorrupt) {
		l.logger.Warn("Order log is corrupt; reading as empty", zap.Error(err))
		return []*mealplan.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", outbound.ErrStorageUnavailable, err)
	}

	orders := make([]*mealplan.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, fromOrderRecord(rec))
	}
	return orders, nil
}

func (l *OrderLog) readRecords() ([]orderRecord, error) {
	var records []orderRecord
	if _, err := l.file.read(&records); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return records, nil
}

func toOrderRecord(o *mealplan.Order) orderRecord {
	plan := o.Plan()
	meals := make([]plannedMealRecord, 0, len(plan))
	for _, m := range plan {
		meals = append(meals, plannedMealRecord(m))
	}
	return orderRecord{
		ID:          o.ID(),
		UserName:    o.UserName(),
		SelectedDay: o.Day().String(),
		MealPlan:    meals,
		CreatedAt:   o.CreatedAt(),
	}
}

func fromOrderRecord(rec orderRecord) *mealplan.Order {
	meals := make([]mealplan.PlannedMeal, 0, len(rec.MealPlan))
	for _, m := range rec.MealPlan {
		meals = append(meals, mealplan.PlannedMeal(m))
	}
	// stored days were validated on append
	day, _ := mealplan.ParseWeekday(rec.SelectedDay)
	return mealplan.RestoreOrder(rec.ID, rec.UserName, day, meals, rec.CreatedAt)
}
