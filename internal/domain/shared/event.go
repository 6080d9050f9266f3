package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate. Events are published after
// the aggregate that raised them has been saved.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent carries the fields every event shares. Concrete events
// embed it and add their own payload.
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewBaseDomainEvent stamps a new event with an id and the current time.
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID { return e.ID }

func (e *BaseDomainEvent) EventType() string { return e.Type }

func (e *BaseDomainEvent) OccurredAt() time.Time { return e.Timestamp }

func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.AggID }

func (e *BaseDomainEvent) AggregateType() string { return e.AggType }
