package commands

import (
	"context"

	"go.uber.org/zap"

	"graphcanvas/application/commands/bus"
	"graphcanvas/application/ports"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/utils"
)

// MoveNodeCommand repositions a node as a deliberate host action
type MoveNodeCommand struct {
	NodeID string  `json:"node_id" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Validate validates the command
func (cmd MoveNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// MoveNodeHandler handles the MoveNodeCommand
type MoveNodeHandler struct {
	graph  *aggregates.Graph
	layout ports.LayoutRefresher
	logger *zap.Logger
}

// NewMoveNodeHandler creates a new handler instance
func NewMoveNodeHandler(graph *aggregates.Graph, layout ports.LayoutRefresher, logger *zap.Logger) *MoveNodeHandler {
	return &MoveNodeHandler{graph: graph, layout: layout, logger: logger}
}

// Handle executes the move node command
func (h *MoveNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(MoveNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(c.NodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	position, err := valueobjects.NewPosition(c.X, c.Y)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	if err := h.graph.SetNodePosition(nodeID, position); err != nil {
		return err
	}

	h.layout.Reheat()
	return nil
}

// PinNodeCommand fixes a node at a position until it is unpinned
type PinNodeCommand struct {
	NodeID string  `json:"node_id" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Validate validates the command
func (cmd PinNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// PinNodeHandler handles the PinNodeCommand
type PinNodeHandler struct {
	graph  *aggregates.Graph
	layout ports.LayoutRefresher
	logger *zap.Logger
}

// NewPinNodeHandler creates a new handler instance
func NewPinNodeHandler(graph *aggregates.Graph, layout ports.LayoutRefresher, logger *zap.Logger) *PinNodeHandler {
	return &PinNodeHandler{graph: graph, layout: layout, logger: logger}
}

// Handle executes the pin node command
func (h *PinNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(PinNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(c.NodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	position, err := valueobjects.NewPosition(c.X, c.Y)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	if err := h.graph.PinNode(nodeID, position); err != nil {
		return err
	}

	h.layout.Reheat()
	return nil
}

// UnpinNodeCommand releases a pinned node back into free simulation
type UnpinNodeCommand struct {
	NodeID string `json:"node_id" validate:"required"`
}

// Validate validates the command
func (cmd UnpinNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// UnpinNodeHandler handles the UnpinNodeCommand
type UnpinNodeHandler struct {
	graph  *aggregates.Graph
	logger *zap.Logger
}

// NewUnpinNodeHandler creates a new handler instance
func NewUnpinNodeHandler(graph *aggregates.Graph, logger *zap.Logger) *UnpinNodeHandler {
	return &UnpinNodeHandler{graph: graph, logger: logger}
}

// Handle executes the unpin node command
func (h *UnpinNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(UnpinNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(c.NodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return h.graph.UnpinNode(nodeID)
}
