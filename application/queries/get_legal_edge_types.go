package queries

import (
	"context"

	"graphcanvas/application/queries/bus"
	"graphcanvas/domain/constraints"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/utils"
)

// GetLegalEdgeTypesQuery asks which relationship types may still be created
// between two nodes, in catalog order
type GetLegalEdgeTypesQuery struct {
	SourceID string `json:"source" validate:"required"`
	TargetID string `json:"target" validate:"required"`
}

// Validate validates the query
func (q GetLegalEdgeTypesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// EdgeTypeOption is one legal relationship type choice
type EdgeTypeOption struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Directed bool   `json:"directed"`
}

// GetLegalEdgeTypesResult is the candidate list for an edge creation
type GetLegalEdgeTypesResult struct {
	Options []EdgeTypeOption `json:"options"`
}

// GetLegalEdgeTypesHandler handles the GetLegalEdgeTypesQuery
type GetLegalEdgeTypesHandler struct {
	graph    *aggregates.Graph
	resolver *constraints.Resolver
}

// NewGetLegalEdgeTypesHandler creates a new handler instance
func NewGetLegalEdgeTypesHandler(graph *aggregates.Graph, resolver *constraints.Resolver) *GetLegalEdgeTypesHandler {
	return &GetLegalEdgeTypesHandler{graph: graph, resolver: resolver}
}

// Handle executes the query
func (h *GetLegalEdgeTypesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(GetLegalEdgeTypesQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type")
	}

	sourceID, err := valueobjects.NewNodeIDFromString(q.SourceID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	targetID, err := valueobjects.NewNodeIDFromString(q.TargetID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	source, found := h.graph.Node(sourceID)
	if !found {
		return nil, pkgerrors.NewNotFoundError("node " + q.SourceID)
	}
	target, found := h.graph.Node(targetID)
	if !found {
		return nil, pkgerrors.NewNotFoundError("node " + q.TargetID)
	}

	existing := h.graph.EdgesBetween(sourceID, targetID)
	legal := h.resolver.Resolve(source.Type(), target.Type(), existing)

	options := make([]EdgeTypeOption, 0, len(legal))
	for _, rule := range legal {
		options = append(options, EdgeTypeOption{
			Type:     rule.EdgeType,
			Label:    rule.DisplayLabel(),
			Directed: rule.Directed,
		})
	}
	return &GetLegalEdgeTypesResult{Options: options}, nil
}
