package entities

import (
	"strings"
	"time"

	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	pkgerrors "graphcanvas/pkg/errors"
)

// Node is a typed vertex of the editor graph.
// This is a rich domain model: position and pin state are mutated only through
// its methods, so the layout engine and the drag handler share a single write
// path instead of poking raw fields.
type Node struct {
	id         valueobjects.NodeID
	label      string
	nodeType   string
	properties valueobjects.Properties

	position valueobjects.Position
	vx, vy   float64
	pin      *valueobjects.Position

	updatedAt time.Time

	// Domain events that occurred during this entity's lifetime
	events []events.DomainEvent
}

// NewNode creates a node with validation. An empty id is rejected; a node the
// host supplies without coordinates starts unplaced and is seeded by the
// layout engine before the first tick.
func NewNode(id valueobjects.NodeID, label, nodeType string, properties valueobjects.Properties) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node id cannot be empty")
	}

	nodeType = strings.TrimSpace(nodeType)
	if nodeType == "" {
		return nil, pkgerrors.NewValidationError("node type cannot be empty")
	}

	return &Node{
		id:         id,
		label:      label,
		nodeType:   nodeType,
		properties: properties,
		position:   valueobjects.UnplacedPosition(),
		updatedAt:  time.Now(),
	}, nil
}

// ReconstructNode rebuilds a node from host-supplied data with a known position
func ReconstructNode(
	id valueobjects.NodeID,
	label, nodeType string,
	properties valueobjects.Properties,
	position valueobjects.Position,
) (*Node, error) {
	node, err := NewNode(id, label, nodeType, properties)
	if err != nil {
		return nil, err
	}
	node.position = position
	return node, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Label returns the node's display text
func (n *Node) Label() string {
	return n.label
}

// Type returns the node's classification tag
func (n *Node) Type() string {
	return n.nodeType
}

// Properties returns the node's attribute mapping
func (n *Node) Properties() valueobjects.Properties {
	return n.properties
}

// Position returns the node's current position
func (n *Node) Position() valueobjects.Position {
	return n.position
}

// IsPlaced reports whether the node has finite coordinates
func (n *Node) IsPlaced() bool {
	return n.position.IsPlaced()
}

// UpdateDetails updates the node's label and properties
func (n *Node) UpdateDetails(label string, properties valueobjects.Properties) {
	n.label = label
	n.properties = properties
	n.updatedAt = time.Now()
	n.addEvent(events.NewNodeUpdated(n.id, n.updatedAt))
}

// MoveTo repositions the node as a direct user or host action and records the
// movement as a domain event. Simulation ticks use Advance instead.
func (n *Node) MoveTo(position valueobjects.Position) error {
	if !position.IsPlaced() {
		return pkgerrors.NewValidationError("cannot move node to a non-finite position")
	}
	if position.Equals(n.position) {
		return nil
	}

	oldPosition := n.position
	n.position = position
	n.updatedAt = time.Now()

	n.addEvent(events.NewNodeMoved(n.id, oldPosition, position, n.updatedAt))
	return nil
}

// Pin fixes the node at the given position. While pinned the layout engine
// forces the node there on every tick instead of integrating forces.
func (n *Node) Pin(position valueobjects.Position) error {
	if !position.IsPlaced() {
		return pkgerrors.NewValidationError("cannot pin node to a non-finite position")
	}

	wasPinned := n.pin != nil
	p := position
	n.pin = &p
	n.position = position
	n.vx, n.vy = 0, 0

	if !wasPinned {
		n.addEvent(events.NewNodePinned(n.id, time.Now()))
	}
	return nil
}

// Unpin releases the node back into free simulation
func (n *Node) Unpin() {
	if n.pin == nil {
		return
	}
	n.pin = nil
	n.addEvent(events.NewNodeUnpinned(n.id, time.Now()))
}

// IsPinned reports whether the node's position is currently forced
func (n *Node) IsPinned() bool {
	return n.pin != nil
}

// PinnedPosition returns the pin target when pinned
func (n *Node) PinnedPosition() (valueobjects.Position, bool) {
	if n.pin == nil {
		return valueobjects.Position{}, false
	}
	return *n.pin, true
}

// Velocity returns the node's simulation velocity
func (n *Node) Velocity() (vx, vy float64) {
	return n.vx, n.vy
}

// ApplyForce accumulates an acceleration onto the node's velocity for the
// current simulation tick
func (n *Node) ApplyForce(fx, fy float64) {
	n.vx += fx
	n.vy += fy
}

// Seed assigns an initial position without raising a movement event. Used by
// the layout engine for unplaced nodes before the first tick.
func (n *Node) Seed(position valueobjects.Position) {
	n.position = position
	n.vx, n.vy = 0, 0
}

// Advance integrates the accumulated velocity into the position for one
// simulation tick. A pinned node is forced to its pin instead.
func (n *Node) Advance(velocityDecay float64) {
	if n.pin != nil {
		n.position = *n.pin
		n.vx, n.vy = 0, 0
		return
	}
	n.vx *= velocityDecay
	n.vy *= velocityDecay
	n.position = n.position.Translated(n.vx, n.vy)
}

// Nudge displaces the node's position directly, used by the collision force
// which separates overlapping nodes positionally rather than via velocity
func (n *Node) Nudge(dx, dy float64) {
	if n.pin != nil {
		return
	}
	n.position = n.position.Translated(dx, dy)
}

// addEvent records a domain event
func (n *Node) addEvent(event events.DomainEvent) {
	n.events = append(n.events, event)
}

// DrainEvents returns and clears the recorded domain events
func (n *Node) DrainEvents() []events.DomainEvent {
	drained := n.events
	n.events = nil
	return drained
}
