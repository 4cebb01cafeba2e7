package commands

import (
	"context"

	"go.uber.org/zap"

	"graphcanvas/application/commands/bus"
	"graphcanvas/application/ports"
	"graphcanvas/domain/constraints"
	"graphcanvas/domain/core/aggregates"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/utils"
)

// CreateEdgeCommand creates a typed edge between two existing nodes. The type
// must be legal under the constraint catalog for this node pair, whether the
// command comes from the interaction machine or straight from the host.
type CreateEdgeCommand struct {
	EdgeID     string                 `json:"edge_id"`
	SourceID   string                 `json:"source" validate:"required"`
	TargetID   string                 `json:"target" validate:"required"`
	Type       string                 `json:"type" validate:"required"`
	Label      string                 `json:"label"`
	Properties map[string]interface{} `json:"properties"`
}

// Validate validates the command
func (cmd CreateEdgeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// CreateEdgeHandler handles the CreateEdgeCommand
type CreateEdgeHandler struct {
	graph    *aggregates.Graph
	resolver *constraints.Resolver
	layout   ports.LayoutRefresher
	logger   *zap.Logger
}

// NewCreateEdgeHandler creates a new handler instance
func NewCreateEdgeHandler(
	graph *aggregates.Graph,
	resolver *constraints.Resolver,
	layout ports.LayoutRefresher,
	logger *zap.Logger,
) *CreateEdgeHandler {
	return &CreateEdgeHandler{graph: graph, resolver: resolver, layout: layout, logger: logger}
}

// Handle executes the create edge command
func (h *CreateEdgeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(CreateEdgeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	edge, err := buildEdge(EdgeInput{
		ID:         c.EdgeID,
		SourceID:   c.SourceID,
		TargetID:   c.TargetID,
		Type:       c.Type,
		Label:      c.Label,
		Properties: c.Properties,
	})
	if err != nil {
		return err
	}

	source, found := h.graph.Node(edge.SourceID())
	if !found {
		return pkgerrors.NewInvalidReferenceError(edge.ID(), c.SourceID)
	}
	target, found := h.graph.Node(edge.TargetID())
	if !found {
		return pkgerrors.NewInvalidReferenceError(edge.ID(), c.TargetID)
	}

	existing := h.graph.EdgesBetween(edge.SourceID(), edge.TargetID())
	legal := h.resolver.Resolve(source.Type(), target.Type(), existing)
	allowed := false
	for _, option := range legal {
		if option.EdgeType == c.Type {
			allowed = true
			break
		}
	}
	if !allowed {
		return pkgerrors.NewNoLegalEdgeTypeError(source.Type(), target.Type())
	}

	if err := h.graph.AddEdge(edge); err != nil {
		return err
	}

	h.layout.Rebuild()
	h.layout.Reheat()

	h.logger.Debug("edge created",
		zap.String("edge_id", edge.ID()),
		zap.String("source", c.SourceID),
		zap.String("target", c.TargetID),
		zap.String("type", c.Type))
	return nil
}

// DeleteEdgeCommand removes a single edge
type DeleteEdgeCommand struct {
	EdgeID string `json:"edge_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteEdgeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// DeleteEdgeHandler handles the DeleteEdgeCommand
type DeleteEdgeHandler struct {
	graph  *aggregates.Graph
	layout ports.LayoutRefresher
	logger *zap.Logger
}

// NewDeleteEdgeHandler creates a new handler instance
func NewDeleteEdgeHandler(graph *aggregates.Graph, layout ports.LayoutRefresher, logger *zap.Logger) *DeleteEdgeHandler {
	return &DeleteEdgeHandler{graph: graph, layout: layout, logger: logger}
}

// Handle executes the delete edge command
func (h *DeleteEdgeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(DeleteEdgeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	if err := h.graph.RemoveEdge(c.EdgeID); err != nil {
		return err
	}

	h.layout.Rebuild()
	h.layout.Reheat()

	h.logger.Debug("edge deleted", zap.String("edge_id", c.EdgeID))
	return nil
}
