package queries

import (
	"context"

	"graphcanvas/application/queries/bus"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/layout"
	pkgerrors "graphcanvas/pkg/errors"
)

// GetStatisticsQuery fetches graph and layout statistics
type GetStatisticsQuery struct{}

// Validate validates the query
func (q GetStatisticsQuery) Validate() error {
	return nil
}

// LayoutStats describes the simulation's current energy state
type LayoutStats struct {
	Running bool    `json:"running"`
	Alpha   float64 `json:"alpha"`
	Ticks   int     `json:"ticks"`
}

// GetStatisticsResult combines graph and layout statistics
type GetStatisticsResult struct {
	Graph  GraphStats  `json:"graph"`
	Layout LayoutStats `json:"layout"`
}

// GetStatisticsHandler handles the GetStatisticsQuery
type GetStatisticsHandler struct {
	graph *aggregates.Graph
	sim   *layout.Simulation
}

// NewGetStatisticsHandler creates a new handler instance
func NewGetStatisticsHandler(graph *aggregates.Graph, sim *layout.Simulation) *GetStatisticsHandler {
	return &GetStatisticsHandler{graph: graph, sim: sim}
}

// Handle executes the query
func (h *GetStatisticsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(GetStatisticsQuery); !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type")
	}

	return &GetStatisticsResult{
		Graph: GraphStats{
			NodeCount: h.graph.NodeCount(),
			EdgeCount: h.graph.EdgeCount(),
			Density:   h.graph.Density(),
			Version:   h.graph.Version(),
		},
		Layout: LayoutStats{
			Running: h.sim.IsRunning(),
			Alpha:   h.sim.Alpha(),
			Ticks:   h.sim.Tick(),
		},
	}, nil
}
