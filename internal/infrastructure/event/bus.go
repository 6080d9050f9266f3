package event

import (
	"context"
	"fmt"

	"github.com/ims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus dispatches domain events to subscribed handlers within the
// same process. Dispatch is synchronous: Publish returns once every handler
// has run, so callers observe handler side effects immediately.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers each event to every handler registered for its type.
// A failing handler is logged and skipped; the remaining handlers still run
// and Publish itself never fails, so a broken projection cannot roll back
// the write that produced the event.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. When no explicit event types are given the
// handler's own EventTypes() declaration is used; an empty declaration
// subscribes it to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("event handler unsubscribed")
}

func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.logger.Info("event bus started")
	return nil
}

func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.logger.Info("event bus stopped")
	return nil
}

// dispatch invokes a single handler, converting a panic into an error so one
// misbehaving handler cannot take down the publishing request.
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
