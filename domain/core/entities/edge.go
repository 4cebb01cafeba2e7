package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	pkgerrors "graphcanvas/pkg/errors"
)

// Edge is a typed relationship between two nodes. During simulation the
// endpoints are resolved to live node references so force calculations always
// read current positions, never a snapshot.
type Edge struct {
	id         string
	sourceID   valueobjects.NodeID
	targetID   valueobjects.NodeID
	label      string
	edgeType   string
	properties valueobjects.Properties

	// Live references, set when the edge is attached to a graph
	source *Node
	target *Node

	events []events.DomainEvent
}

// NewEdge creates an edge with validation. An empty id gets a generated UUID.
func NewEdge(id string, sourceID, targetID valueobjects.NodeID, edgeType, label string, properties valueobjects.Properties) (*Edge, error) {
	if sourceID.IsZero() || targetID.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}

	edgeType = strings.TrimSpace(edgeType)
	if edgeType == "" {
		return nil, pkgerrors.NewValidationError("edge type cannot be empty")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.New().String()
	}

	return &Edge{
		id:         id,
		sourceID:   sourceID,
		targetID:   targetID,
		label:      label,
		edgeType:   edgeType,
		properties: properties,
	}, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() string {
	return e.id
}

// SourceID returns the id of the source endpoint
func (e *Edge) SourceID() valueobjects.NodeID {
	return e.sourceID
}

// TargetID returns the id of the target endpoint
func (e *Edge) TargetID() valueobjects.NodeID {
	return e.targetID
}

// Label returns the edge's display text
func (e *Edge) Label() string {
	return e.label
}

// Type returns the relationship-type tag
func (e *Edge) Type() string {
	return e.edgeType
}

// Properties returns the edge's attribute mapping
func (e *Edge) Properties() valueobjects.Properties {
	return e.properties
}

// Source returns the live source node, or nil when unresolved
func (e *Edge) Source() *Node {
	return e.source
}

// Target returns the live target node, or nil when unresolved
func (e *Edge) Target() *Node {
	return e.target
}

// IsResolved reports whether both endpoints reference live nodes
func (e *Edge) IsResolved() bool {
	return e.source != nil && e.target != nil
}

// Resolve binds the edge to its live endpoints. Called by the graph aggregate
// when the edge is attached; endpoint ids must match.
func (e *Edge) Resolve(source, target *Node) error {
	if source == nil || !source.ID().Equals(e.sourceID) {
		return pkgerrors.NewInvalidReferenceError(e.id, e.sourceID.String())
	}
	if target == nil || !target.ID().Equals(e.targetID) {
		return pkgerrors.NewInvalidReferenceError(e.id, e.targetID.String())
	}
	e.source = source
	e.target = target
	e.addEvent(events.NewEdgeCreated(e.id, e.sourceID, e.targetID, e.edgeType, time.Now()))
	return nil
}

// addEvent records a domain event
func (e *Edge) addEvent(event events.DomainEvent) {
	e.events = append(e.events, event)
}

// DrainEvents returns and clears the recorded domain events
func (e *Edge) DrainEvents() []events.DomainEvent {
	drained := e.events
	e.events = nil
	return drained
}
