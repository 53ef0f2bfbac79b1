package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/propmarket/server/internal/port/outbound"
	"go.uber.org/zap"
)

// Bus is a synchronous in-process event bus.
// A failing handler is logged and never stops the others.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

var _ outbound.EventPublisherPort = (*Bus)(nil)

// NewBus creates a new event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register subscribes a handler to the event types it declares.
func (b *Bus) Register(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range handler.Handles() {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
		b.logger.Debug("registered event handler", zap.String("event_type", eventType))
	}
}

// Publish dispatches event to its handlers in registration order.
// It fails only if event does not implement Event.
func (b *Bus) Publish(ctx context.Context, event interface{}) error {
	e, ok := event.(Event)
	if !ok {
		return fmt.Errorf("publish: unsupported event %T", event)
	}

	b.mu.RLock()
	handlers := b.handlers[e.EventType()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers registered for event",
			zap.String("event_type", e.EventType()),
			zap.String("event_id", e.EventID().String()),
		)
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, e); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event_type", e.EventType()),
				zap.String("event_id", e.EventID().String()),
				zap.String("aggregate_id", e.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
	return nil
}
