package commands

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphcanvas/application/commands/bus"
	"graphcanvas/application/ports"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/extensions"
	"graphcanvas/pkg/utils"
)

// AddNodeCommand inserts a single node. The host decides the id; a missing id
// gets a generated UUID. Without coordinates the node starts unplaced and the
// layout seeds it.
type AddNodeCommand struct {
	NodeID     string                 `json:"node_id"`
	Label      string                 `json:"label" validate:"max=500"`
	Type       string                 `json:"type" validate:"required,min=1,max=100"`
	Properties map[string]interface{} `json:"properties"`
	X          *float64               `json:"x"`
	Y          *float64               `json:"y"`
}

// Validate validates the command
func (cmd AddNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// AddNodeHandler handles the AddNodeCommand
type AddNodeHandler struct {
	graph  *aggregates.Graph
	layout ports.LayoutRefresher
	logger *zap.Logger
}

// NewAddNodeHandler creates a new handler instance
func NewAddNodeHandler(graph *aggregates.Graph, layout ports.LayoutRefresher, logger *zap.Logger) *AddNodeHandler {
	return &AddNodeHandler{graph: graph, layout: layout, logger: logger}
}

// Handle executes the add node command
func (h *AddNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(AddNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	id := c.NodeID
	if id == "" {
		id = uuid.New().String()
	}

	node, err := buildNode(NodeInput{
		ID:         id,
		Label:      c.Label,
		Type:       c.Type,
		Properties: c.Properties,
		X:          c.X,
		Y:          c.Y,
	})
	if err != nil {
		return err
	}

	if err := h.graph.AddNode(node); err != nil {
		return err
	}

	h.layout.Rebuild()
	h.layout.Reheat()

	h.logger.Debug("node added", zap.String("node_id", id), zap.String("type", c.Type))
	return nil
}

// UpdateNodeCommand edits a node's label and properties in place
type UpdateNodeCommand struct {
	NodeID     string                 `json:"node_id" validate:"required"`
	Label      string                 `json:"label" validate:"max=500"`
	Properties map[string]interface{} `json:"properties"`
}

// Validate validates the command
func (cmd UpdateNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// UpdateNodeHandler handles the UpdateNodeCommand
type UpdateNodeHandler struct {
	graph  *aggregates.Graph
	logger *zap.Logger
}

// NewUpdateNodeHandler creates a new handler instance
func NewUpdateNodeHandler(graph *aggregates.Graph, logger *zap.Logger) *UpdateNodeHandler {
	return &UpdateNodeHandler{graph: graph, logger: logger}
}

// Handle executes the update node command
func (h *UpdateNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(UpdateNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(c.NodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if err := h.graph.UpdateNodeDetails(nodeID, c.Label, valueobjects.NewProperties(c.Properties)); err != nil {
		return err
	}

	h.logger.Debug("node updated", zap.String("node_id", c.NodeID))
	return nil
}

// DeleteNodeCommand removes a node and its incident edges
type DeleteNodeCommand struct {
	NodeID string `json:"node_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// DeleteNodeHandler handles the DeleteNodeCommand
type DeleteNodeHandler struct {
	graph  *aggregates.Graph
	layout ports.LayoutRefresher
	hooks  *extensions.HookManager
	logger *zap.Logger
}

// NewDeleteNodeHandler creates a new handler instance
func NewDeleteNodeHandler(graph *aggregates.Graph, layout ports.LayoutRefresher, hooks *extensions.HookManager, logger *zap.Logger) *DeleteNodeHandler {
	return &DeleteNodeHandler{graph: graph, layout: layout, hooks: hooks, logger: logger}
}

// Handle executes the delete node command
func (h *DeleteNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(DeleteNodeCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(c.NodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	node, found := h.graph.Node(nodeID)
	if err := h.graph.RemoveNode(nodeID); err != nil {
		return err
	}

	h.layout.Rebuild()
	h.layout.Reheat()

	if found {
		h.hooks.Notify(extensions.HookNodeDeleteRequested, extensions.NodeHookData{
			NodeID:   c.NodeID,
			Label:    node.Label(),
			NodeType: node.Type(),
		})
	}

	h.logger.Debug("node deleted", zap.String("node_id", c.NodeID))
	return nil
}
