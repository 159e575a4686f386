// file: internal/events/events.go
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is a domain event emitted after a state change commits.
type Event struct {
	Type      string                 `json:"type"`
	ActorID   int64                  `json:"actor_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Event types emitted by the services.
const (
	TypeVideoPublished     = "video.published"
	TypeVideoDeleted       = "video.deleted"
	TypeLikeToggled        = "like.toggled"
	TypeSubscriptionToggle = "subscription.toggled"
)

// Handler consumes events. Handlers must not block; slow work belongs in the
// handler's own goroutine.
type Handler func(ctx context.Context, event Event)

// Bus is a small in-process publish/subscribe fan-out. Publishing never
// blocks the caller and never fails the originating request.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewBus creates an event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish dispatches an event to all handlers for its type. Dispatch is
// asynchronous; panicking handlers are logged and absorbed.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Event handler panicked",
						zap.String("event_type", event.Type),
						zap.Any("panic", r))
				}
			}()
			h(context.WithoutCancel(ctx), event)
		}(handler)
	}
}

// LogHandler returns a handler that records each event, useful as a default
// subscriber and as an audit trail in development.
func LogHandler(logger *zap.Logger) Handler {
	return func(_ context.Context, event Event) {
		logger.Info("Domain event",
			zap.String("event_type", event.Type),
			zap.Int64("actor_id", event.ActorID),
			zap.Any("payload", event.Payload))
	}
}
