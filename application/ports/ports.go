package ports

import (
	"context"

	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/events"
)

// LayoutRefresher is the slice of the layout engine the command layer needs:
// re-snapshotting the force pipeline after a structural change and waking the
// simulation so the change becomes visible.
type LayoutRefresher interface {
	Rebuild()
	Reheat()
}

// EventPublisher delivers domain events to whoever observes the editor. The
// default implementation fans out through the extension hook manager.
type EventPublisher interface {
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// DetailRenderer renders the properties-panel body for one node type. Hosts
// register one per node type; lookup is by the node's type tag with a safe
// default when no renderer is registered.
type DetailRenderer interface {
	Render(node *entities.Node) (string, error)
}

// DetailRendererFunc adapts a function to the DetailRenderer interface
type DetailRendererFunc func(node *entities.Node) (string, error)

// Render implements DetailRenderer
func (f DetailRendererFunc) Render(node *entities.Node) (string, error) {
	return f(node)
}
