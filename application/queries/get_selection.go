package queries

import (
	"context"

	"graphcanvas/application/queries/bus"
	"graphcanvas/domain/core/aggregates"
	pkgerrors "graphcanvas/pkg/errors"
)

// GetSelectionQuery fetches the current selection
type GetSelectionQuery struct{}

// Validate validates the query
func (q GetSelectionQuery) Validate() error {
	return nil
}

// GetSelectionResult reports the selected node, if any
type GetSelectionResult struct {
	Selected bool       `json:"selected"`
	Node     *GraphNode `json:"node,omitempty"`
}

// GetSelectionHandler handles the GetSelectionQuery
type GetSelectionHandler struct {
	graph *aggregates.Graph
}

// NewGetSelectionHandler creates a new handler instance
func NewGetSelectionHandler(graph *aggregates.Graph) *GetSelectionHandler {
	return &GetSelectionHandler{graph: graph}
}

// Handle executes the query
func (h *GetSelectionHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(GetSelectionQuery); !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type")
	}

	node, found := h.graph.SelectedNode()
	if !found {
		return &GetSelectionResult{Selected: false}, nil
	}
	dto := toGraphNode(node, h.graph.SelectedID().String())
	return &GetSelectionResult{Selected: true, Node: &dto}, nil
}
