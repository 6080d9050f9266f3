package shared

// AggregateRoot marks the consistency boundary of a context. Roots carry a
// version counter for optimistic writes and buffer domain events until the
// application layer publishes them after a successful save.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot is embedded by every aggregate. The version starts at 1
// and every state mutation increments it; repositories compare it on write
// so concurrent mutations surface as ErrConcurrencyConflict instead of
// silently overwriting each other.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot builds the embedded base at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent buffers an event until the next publish
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the buffered, not yet published events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the buffer once events have been handed off
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
