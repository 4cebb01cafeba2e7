package services

import (
	"context"

	"go.uber.org/zap"

	"graphcanvas/application/commands"
	commandbus "graphcanvas/application/commands/bus"
	"graphcanvas/pkg/extensions"
)

// EdgeService is the interaction machine's path into the command layer: it
// turns a resolved two-node gesture into a host-visible CreateEdgeCommand.
// The edge-create-requested hook fires before the command runs, so the host
// observes every creation attempt including ones the command layer rejects.
type EdgeService struct {
	bus    *commandbus.CommandBus
	hooks  *extensions.HookManager
	logger *zap.Logger
}

// NewEdgeService creates a new edge service
func NewEdgeService(bus *commandbus.CommandBus, hooks *extensions.HookManager, logger *zap.Logger) *EdgeService {
	return &EdgeService{bus: bus, hooks: hooks, logger: logger}
}

// CreateEdge requests the creation of a typed edge between two nodes
func (s *EdgeService) CreateEdge(sourceID, targetID, edgeType string) error {
	s.hooks.Notify(extensions.HookEdgeCreateRequested, extensions.EdgeCreateRequestData{
		SourceID: sourceID,
		TargetID: targetID,
		EdgeType: edgeType,
	})

	err := s.bus.Send(context.Background(), commands.CreateEdgeCommand{
		SourceID: sourceID,
		TargetID: targetID,
		Type:     edgeType,
	})
	if err != nil {
		s.logger.Warn("edge creation failed",
			zap.String("source", sourceID),
			zap.String("target", targetID),
			zap.String("type", edgeType),
			zap.Error(err))
		return err
	}
	return nil
}
