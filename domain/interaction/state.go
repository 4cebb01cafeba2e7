package interaction

import (
	"graphcanvas/domain/core/entities"
)

// Mode is the editor's top-level interaction mode
type Mode string

const (
	// ModeNormal is the default select/drag/pan mode
	ModeNormal Mode = "normal"

	// ModeEdgeCreation arms two-node edge creation
	ModeEdgeCreation Mode = "edge_creation"
)

// GesturePhase is the state of the pointer gesture in flight
type GesturePhase string

const (
	PhaseIdle         GesturePhase = "idle"
	PhasePressed      GesturePhase = "pressed"
	PhaseDraggingNode GesturePhase = "dragging_node"
	PhasePanning      GesturePhase = "panning"
	PhaseDrawingEdge  GesturePhase = "drawing_edge"
)

// EdgeDragState is the transient two-node selection of edge-creation mode.
// Any derived UI (source highlight, transient line) must be a pure function
// of this state plus the mode, never tracked separately.
type EdgeDragState struct {
	Source  *entities.Node
	Target  *entities.Node
	Drawing bool
}

// IsEmpty reports whether no edge-creation selection is pending
func (s EdgeDragState) IsEmpty() bool {
	return s.Source == nil && s.Target == nil && !s.Drawing
}

// reset returns the empty state
func (s EdgeDragState) reset() EdgeDragState {
	return EdgeDragState{}
}
