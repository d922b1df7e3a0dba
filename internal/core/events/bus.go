package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type Handler func(ctx context.Context, event Event) error

// Publisher is what services depend on; EventBus implements it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

const defaultWorkers = 8

type Option func(*EventBus)

// WithWorkers caps how many asynchronous handlers run at once.
func WithWorkers(n int) Option {
	return func(eb *EventBus) {
		if n > 0 {
			eb.slots = make(chan struct{}, n)
		}
	}
}

// EventBus fans events out to in-process subscribers. Nothing is persisted;
// events published while no handler is subscribed are dropped.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	slots    chan struct{}
	inflight sync.WaitGroup
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger, opts ...Option) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	eb := &EventBus{
		handlers: make(map[string][]Handler),
		slots:    make(chan struct{}, defaultWorkers),
		logger:   logger.With("component", "event_bus"),
	}
	for _, opt := range opts {
		opt(eb)
	}
	return eb
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	count := len(eb.handlers[eventType])
	eb.mu.Unlock()

	eb.logger.Info("event handler registered", "event_type", eventType, "total_handlers", count)
}

func (eb *EventBus) handlersFor(eventType string) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return eb.handlers[eventType]
}

// Publish schedules every subscriber and returns without waiting. Handlers
// outlive the request that raised the event, so they get a context that is
// never cancelled.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := eb.handlersFor(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	detached := context.WithoutCancel(ctx)
	eb.inflight.Add(len(handlers))
	for _, h := range handlers {
		go func(h Handler) {
			defer eb.inflight.Done()
			eb.slots <- struct{}{}
			defer func() { <-eb.slots }()
			eb.dispatch(detached, h, event)
		}(h)
	}
	return nil
}

func (eb *EventBus) dispatch(ctx context.Context, h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error("event handler panicked",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"panic", r)
		}
	}()
	if err := h(ctx, event); err != nil {
		eb.logger.Error("event handler failed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}

// PublishSync runs every subscriber in registration order on the caller's
// goroutine and reports all handler failures together.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	var errs []error
	for _, h := range eb.handlersFor(event.EventType()) {
		if err := h(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("event %s (%s): %w", event.EventType(), event.EventID(), errors.Join(errs...))
	}
	return nil
}

// Wait blocks until handlers started by Publish have returned.
func (eb *EventBus) Wait() {
	eb.inflight.Wait()
}
