package commands

import (
	"context"

	"go.uber.org/zap"

	"graphcanvas/application/commands/bus"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/utils"
)

// SelectNodeCommand makes a node the current selection
type SelectNodeCommand struct {
	NodeID string `json:"node_id" validate:"required"`
}

// Validate validates the command
func (cmd SelectNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// SelectNodeHandler handles the SelectNodeCommand
type SelectNodeHandler struct {
	graph  *aggregates.Graph
	logger *zap.Logger
}

// NewSelectNodeHandler creates a new handler instance
func NewSelectNodeHandler(graph *aggregates.Graph, logger *zap.Logger) *SelectNodeHandler {
	return &SelectNodeHandler{graph: graph, logger: logger}
}

// Handle executes the select node command
func (h *SelectNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(SelectNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(c.NodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return h.graph.Select(nodeID)
}

// ClearSelectionCommand empties the selection
type ClearSelectionCommand struct{}

// Validate validates the command
func (cmd ClearSelectionCommand) Validate() error {
	return nil
}

// ClearSelectionHandler handles the ClearSelectionCommand
type ClearSelectionHandler struct {
	graph *aggregates.Graph
}

// NewClearSelectionHandler creates a new handler instance
func NewClearSelectionHandler(graph *aggregates.Graph) *ClearSelectionHandler {
	return &ClearSelectionHandler{graph: graph}
}

// Handle executes the clear selection command
func (h *ClearSelectionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	if _, ok := cmd.(ClearSelectionCommand); !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}
	h.graph.ClearSelection()
	return nil
}
