package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event carried on the bus.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	// AggregateID is the ID of the entity the event is about.
	AggregateID() uuid.UUID
}

// BaseEvent carries the envelope fields shared by all events.
type BaseEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateOf uuid.UUID `json:"aggregate_id"`
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) OccurredAt() time.Time  { return e.Timestamp }
func (e BaseEvent) AggregateID() uuid.UUID { return e.AggregateOf }

// NewBaseEvent stamps a new envelope.
func NewBaseEvent(eventType string, aggregateID uuid.UUID) BaseEvent {
	return BaseEvent{
		ID:          uuid.New(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateOf: aggregateID,
	}
}
