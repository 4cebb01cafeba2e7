package services

import (
	"context"

	"go.uber.org/zap"

	"graphcanvas/domain/events"
	"graphcanvas/pkg/extensions"
)

// HookEventPublisher fans drained domain events out through the extension
// hook manager so hosts can observe every mutation without polling
type HookEventPublisher struct {
	hooks  *extensions.HookManager
	logger *zap.Logger
}

// NewHookEventPublisher creates a new publisher
func NewHookEventPublisher(hooks *extensions.HookManager, logger *zap.Logger) *HookEventPublisher {
	return &HookEventPublisher{hooks: hooks, logger: logger}
}

// PublishBatch delivers events in order. Hook failures are logged, never
// propagated; event delivery is informational.
func (p *HookEventPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	for _, event := range batch {
		if err := p.hooks.Execute(ctx, extensions.HookDomainEvent, event); err != nil {
			p.logger.Warn("domain event hook failed",
				zap.String("event_type", event.GetEventType()),
				zap.Error(err))
		}
	}
	return nil
}
