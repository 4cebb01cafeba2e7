package commands

import (
	"context"

	"go.uber.org/zap"

	"graphcanvas/application/commands/bus"
	"graphcanvas/application/ports"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/validators"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/utils"
)

// NodeInput is a host-supplied node in wire form
type NodeInput struct {
	ID         string                 `json:"id" validate:"required"`
	Label      string                 `json:"label"`
	Type       string                 `json:"type" validate:"required"`
	Properties map[string]interface{} `json:"properties"`
	X          *float64               `json:"x"`
	Y          *float64               `json:"y"`
}

// EdgeInput is a host-supplied edge in wire form
type EdgeInput struct {
	ID         string                 `json:"id"`
	SourceID   string                 `json:"source" validate:"required"`
	TargetID   string                 `json:"target" validate:"required"`
	Type       string                 `json:"type" validate:"required"`
	Label      string                 `json:"label"`
	Properties map[string]interface{} `json:"properties"`
}

// LoadGraphCommand replaces the editor contents with a full graph from the
// host. The host owns the data; the editor is a transient view over it.
type LoadGraphCommand struct {
	Nodes []NodeInput `json:"nodes" validate:"dive"`
	Edges []EdgeInput `json:"edges" validate:"dive"`
}

// Validate validates the command
func (cmd LoadGraphCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// LoadGraphHandler handles the LoadGraphCommand
type LoadGraphHandler struct {
	graph     *aggregates.Graph
	validator *validators.GraphValidator
	layout    ports.LayoutRefresher
	logger    *zap.Logger
}

// NewLoadGraphHandler creates a new handler instance
func NewLoadGraphHandler(
	graph *aggregates.Graph,
	validator *validators.GraphValidator,
	layout ports.LayoutRefresher,
	logger *zap.Logger,
) *LoadGraphHandler {
	return &LoadGraphHandler{
		graph:     graph,
		validator: validator,
		layout:    layout,
		logger:    logger,
	}
}

// Handle executes the load graph command
func (h *LoadGraphHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(LoadGraphCommand)
	if !ok {
		return pkgerrors.NewInternalError("unexpected command type")
	}

	nodes := make([]*entities.Node, 0, len(c.Nodes))
	for _, input := range c.Nodes {
		node, err := buildNode(input)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
	}

	edges := make([]*entities.Edge, 0, len(c.Edges))
	for _, input := range c.Edges {
		edge, err := buildEdge(input)
		if err != nil {
			return err
		}
		edges = append(edges, edge)
	}

	if err := h.validator.ValidateGraphData(nodes, edges); err != nil {
		return err
	}

	if err := h.graph.Load(nodes, edges); err != nil {
		return err
	}

	h.layout.Rebuild()
	h.layout.Reheat()

	h.logger.Info("graph loaded",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))
	return nil
}

// buildNode converts wire input into a node entity, unplaced when the host
// supplied no coordinates
func buildNode(input NodeInput) (*entities.Node, error) {
	nodeID, err := valueobjects.NewNodeIDFromString(input.ID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	properties := valueobjects.NewProperties(input.Properties)

	if input.X == nil || input.Y == nil {
		return entities.NewNode(nodeID, input.Label, input.Type, properties)
	}

	position, err := valueobjects.NewPosition(*input.X, *input.Y)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return entities.ReconstructNode(nodeID, input.Label, input.Type, properties, position)
}

// buildEdge converts wire input into an edge entity
func buildEdge(input EdgeInput) (*entities.Edge, error) {
	sourceID, err := valueobjects.NewNodeIDFromString(input.SourceID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	targetID, err := valueobjects.NewNodeIDFromString(input.TargetID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return entities.NewEdge(input.ID, sourceID, targetID, input.Type, input.Label,
		valueobjects.NewProperties(input.Properties))
}
