package queries

import (
	"context"

	"graphcanvas/application/queries/bus"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/utils"
)

// GetNodeQuery fetches one node with its incident edges
type GetNodeQuery struct {
	NodeID string `json:"node_id" validate:"required"`
}

// Validate validates the query
func (q GetNodeQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetNodeResult is the node plus its incident edges
type GetNodeResult struct {
	Node  GraphNode   `json:"node"`
	Edges []GraphEdge `json:"edges"`
}

// GetNodeHandler handles the GetNodeQuery
type GetNodeHandler struct {
	graph *aggregates.Graph
}

// NewGetNodeHandler creates a new handler instance
func NewGetNodeHandler(graph *aggregates.Graph) *GetNodeHandler {
	return &GetNodeHandler{graph: graph}
}

// Handle executes the query
func (h *GetNodeHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(GetNodeQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(q.NodeID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	node, found := h.graph.Node(nodeID)
	if !found {
		return nil, pkgerrors.NewNotFoundError("node " + q.NodeID)
	}

	var incident []GraphEdge
	for _, edge := range h.graph.Edges() {
		if edge.SourceID().Equals(nodeID) || edge.TargetID().Equals(nodeID) {
			incident = append(incident, toGraphEdge(edge))
		}
	}

	return &GetNodeResult{
		Node:  toGraphNode(node, h.graph.SelectedID().String()),
		Edges: incident,
	}, nil
}
