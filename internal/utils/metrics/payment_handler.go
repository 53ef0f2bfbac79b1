package metrics

import (
	"context"

	"github.com/propmarket/server/internal/infra/events"
)

// PaymentEventHandler turns payment events into finalization metrics.
type PaymentEventHandler struct {
	m *Metrics
}

// NewPaymentEventHandler creates a new payment metrics handler.
func NewPaymentEventHandler(m *Metrics) *PaymentEventHandler {
	return &PaymentEventHandler{m: m}
}

// Handles returns the list of event types this handler can process.
func (h *PaymentEventHandler) Handles() []string {
	return []string{events.PaymentSucceededType, events.PaymentFailedType}
}

// Handle processes the given event.
func (h *PaymentEventHandler) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case *events.PaymentSucceededEvent:
		h.m.RecordPaymentFinalized(e.Kind, "success", e.Amount)
	case *events.PaymentFailedEvent:
		h.m.RecordPaymentFinalized(e.Kind, "failed", 0)
	}
	return nil
}
