package events

import (
	"time"

	"graphcanvas/domain/core/valueobjects"
)

// Node events

// NodeAdded is raised when a node enters the graph
type NodeAdded struct {
	BaseEvent
	NodeID   valueobjects.NodeID `json:"node_id"`
	NodeType string              `json:"node_type"`
	Label    string              `json:"label"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(nodeID valueobjects.NodeID, nodeType, label string, timestamp time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: newBaseEvent(nodeID.String(), "node.added", timestamp),
		NodeID:    nodeID,
		NodeType:  nodeType,
		Label:     label,
	}
}

// NodeUpdated is raised when a node's label or properties change
type NodeUpdated struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewNodeUpdated creates a NodeUpdated event
func NewNodeUpdated(nodeID valueobjects.NodeID, timestamp time.Time) NodeUpdated {
	return NodeUpdated{
		BaseEvent: newBaseEvent(nodeID.String(), "node.updated", timestamp),
		NodeID:    nodeID,
	}
}

// NodeRemoved is raised when a node (and its incident edges) leaves the graph
type NodeRemoved struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(nodeID valueobjects.NodeID, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent: newBaseEvent(nodeID.String(), "node.removed", timestamp),
		NodeID:    nodeID,
	}
}

// NodeMoved is raised when a node is repositioned by a user gesture or command
// (not by individual simulation ticks)
type NodeMoved struct {
	BaseEvent
	NodeID      valueobjects.NodeID   `json:"node_id"`
	OldPosition valueobjects.Position `json:"old_position"`
	NewPosition valueobjects.Position `json:"new_position"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(nodeID valueobjects.NodeID, oldPos, newPos valueobjects.Position, timestamp time.Time) NodeMoved {
	return NodeMoved{
		BaseEvent:   newBaseEvent(nodeID.String(), "node.moved", timestamp),
		NodeID:      nodeID,
		OldPosition: oldPos,
		NewPosition: newPos,
	}
}

// NodePinned is raised when a node's position is fixed for the duration of a drag
type NodePinned struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewNodePinned creates a NodePinned event
func NewNodePinned(nodeID valueobjects.NodeID, timestamp time.Time) NodePinned {
	return NodePinned{
		BaseEvent: newBaseEvent(nodeID.String(), "node.pinned", timestamp),
		NodeID:    nodeID,
	}
}

// NodeUnpinned is raised when a pinned node re-enters free simulation
type NodeUnpinned struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewNodeUnpinned creates a NodeUnpinned event
func NewNodeUnpinned(nodeID valueobjects.NodeID, timestamp time.Time) NodeUnpinned {
	return NodeUnpinned{
		BaseEvent: newBaseEvent(nodeID.String(), "node.unpinned", timestamp),
		NodeID:    nodeID,
	}
}

// Edge events

// EdgeCreated is raised when a relationship is added between two nodes
type EdgeCreated struct {
	BaseEvent
	EdgeID   string              `json:"edge_id"`
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
	EdgeType string              `json:"edge_type"`
}

// NewEdgeCreated creates an EdgeCreated event
func NewEdgeCreated(edgeID string, sourceID, targetID valueobjects.NodeID, edgeType string, timestamp time.Time) EdgeCreated {
	return EdgeCreated{
		BaseEvent: newBaseEvent(edgeID, "edge.created", timestamp),
		EdgeID:    edgeID,
		SourceID:  sourceID,
		TargetID:  targetID,
		EdgeType:  edgeType,
	}
}

// EdgeRemoved is raised when a relationship is deleted
type EdgeRemoved struct {
	BaseEvent
	EdgeID string `json:"edge_id"`
}

// NewEdgeRemoved creates an EdgeRemoved event
func NewEdgeRemoved(edgeID string, timestamp time.Time) EdgeRemoved {
	return EdgeRemoved{
		BaseEvent: newBaseEvent(edgeID, "edge.removed", timestamp),
		EdgeID:    edgeID,
	}
}

// Selection events

// NodeSelected is raised when a node becomes the current selection
type NodeSelected struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewNodeSelected creates a NodeSelected event
func NewNodeSelected(nodeID valueobjects.NodeID, timestamp time.Time) NodeSelected {
	return NodeSelected{
		BaseEvent: newBaseEvent(nodeID.String(), "selection.node_selected", timestamp),
		NodeID:    nodeID,
	}
}

// SelectionCleared is raised when the current selection becomes empty
type SelectionCleared struct {
	BaseEvent
	PreviousID valueobjects.NodeID `json:"previous_id"`
}

// NewSelectionCleared creates a SelectionCleared event
func NewSelectionCleared(previousID valueobjects.NodeID, timestamp time.Time) SelectionCleared {
	return SelectionCleared{
		BaseEvent:  newBaseEvent(previousID.String(), "selection.cleared", timestamp),
		PreviousID: previousID,
	}
}
