package shared

import "context"

// EventHandler reacts to domain events. EventTypes names the types the
// handler wants; an empty slice subscribes it to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the half of the bus the application services see.
// Services publish after their save succeeded, so handlers always observe
// committed state.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers and removes handlers. Passing explicit event
// types overrides whatever the handler's EventTypes reports.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full pub/sub surface wired at startup
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
