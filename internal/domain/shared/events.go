package shared

import (
	"errors"
	"sync"
	"time"
)

// DomainEvent represents an event that has occurred in the domain
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// EventDispatcher dispatches domain events to handlers
type EventDispatcher interface {
	Dispatch(event DomainEvent) error
	Register(eventName string, handler EventHandler)
}

// EventHandler handles domain events
type EventHandler func(event DomainEvent) error

// AggregateRoot is the base type for aggregate roots
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent adds a domain event to be dispatched
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears pending domain events
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}

// SyncDispatcher runs registered handlers inline, in registration order.
// The wildcard name "*" receives every event.
type SyncDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

// NewSyncDispatcher creates an empty dispatcher
func NewSyncDispatcher() *SyncDispatcher {
	return &SyncDispatcher{handlers: make(map[string][]EventHandler)}
}

// Register adds a handler for the named event
func (d *SyncDispatcher) Register(eventName string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

// Dispatch delivers the event to every matching handler and joins their errors
func (d *SyncDispatcher) Dispatch(event DomainEvent) error {
	d.mu.RLock()
	handlers := make([]EventHandler, 0, len(d.handlers[event.EventName()])+len(d.handlers["*"]))
	handlers = append(handlers, d.handlers[event.EventName()]...)
	handlers = append(handlers, d.handlers["*"]...)
	d.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DispatchAll delivers events in order and returns the joined errors
func DispatchAll(dispatcher EventDispatcher, events []DomainEvent) error {
	if dispatcher == nil {
		return nil
	}
	var errs []error
	for _, event := range events {
		if err := dispatcher.Dispatch(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
