package queries

import (
	"context"

	"graphcanvas/application/queries/bus"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	pkgerrors "graphcanvas/pkg/errors"
)

// GetGraphDataQuery represents a query for full graph visualization data
type GetGraphDataQuery struct{}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	return nil
}

// GraphNode is a node in wire form for rendering
type GraphNode struct {
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	X          *float64               `json:"x,omitempty"`
	Y          *float64               `json:"y,omitempty"`
	Pinned     bool                   `json:"pinned"`
	Selected   bool                   `json:"selected"`
}

// GraphEdge is an edge in wire form for rendering
type GraphEdge struct {
	ID         string                 `json:"id"`
	SourceID   string                 `json:"source"`
	TargetID   string                 `json:"target"`
	Type       string                 `json:"type"`
	Label      string                 `json:"label,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// GraphStats contains graph statistics
type GraphStats struct {
	NodeCount int     `json:"node_count"`
	EdgeCount int     `json:"edge_count"`
	Density   float64 `json:"density"`
	Version   int     `json:"version"`
}

// GetGraphDataResult represents the complete graph data for visualization
type GetGraphDataResult struct {
	Nodes      []GraphNode `json:"nodes"`
	Edges      []GraphEdge `json:"edges"`
	SelectedID string      `json:"selected_id,omitempty"`
	Stats      GraphStats  `json:"stats"`
}

// GetGraphDataHandler handles the GetGraphDataQuery
type GetGraphDataHandler struct {
	graph *aggregates.Graph
}

// NewGetGraphDataHandler creates a new handler instance
func NewGetGraphDataHandler(graph *aggregates.Graph) *GetGraphDataHandler {
	return &GetGraphDataHandler{graph: graph}
}

// Handle executes the query
func (h *GetGraphDataHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(GetGraphDataQuery); !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type")
	}

	selectedID := h.graph.SelectedID().String()

	nodes := make([]GraphNode, 0, h.graph.NodeCount())
	for _, node := range h.graph.Nodes() {
		nodes = append(nodes, toGraphNode(node, selectedID))
	}

	edges := make([]GraphEdge, 0, h.graph.EdgeCount())
	for _, edge := range h.graph.Edges() {
		edges = append(edges, toGraphEdge(edge))
	}

	return &GetGraphDataResult{
		Nodes:      nodes,
		Edges:      edges,
		SelectedID: selectedID,
		Stats: GraphStats{
			NodeCount: h.graph.NodeCount(),
			EdgeCount: h.graph.EdgeCount(),
			Density:   h.graph.Density(),
			Version:   h.graph.Version(),
		},
	}, nil
}

func toGraphNode(node *entities.Node, selectedID string) GraphNode {
	out := GraphNode{
		ID:         node.ID().String(),
		Label:      node.Label(),
		Type:       node.Type(),
		Properties: node.Properties().ToMap(),
		Pinned:     node.IsPinned(),
		Selected:   node.ID().String() == selectedID && selectedID != "",
	}
	if node.IsPlaced() {
		x, y := node.Position().X(), node.Position().Y()
		out.X, out.Y = &x, &y
	}
	return out
}

func toGraphEdge(edge *entities.Edge) GraphEdge {
	return GraphEdge{
		ID:         edge.ID(),
		SourceID:   edge.SourceID().String(),
		TargetID:   edge.TargetID().String(),
		Type:       edge.Type(),
		Label:      edge.Label(),
		Properties: edge.Properties().ToMap(),
	}
}
