//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"graphcanvas/application/commands/bus"
	"graphcanvas/application/ports"
	querybus "graphcanvas/application/queries/bus"
	"graphcanvas/application/services"
	"graphcanvas/domain/constraints"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/interaction"
	"graphcanvas/domain/layout"
	"graphcanvas/domain/viewport"
	"graphcanvas/infrastructure/config"
	"graphcanvas/interfaces/editor"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Graph      *aggregates.Graph
	Catalog    *constraints.Catalog
	Resolver   *constraints.Resolver
	Simulation *layout.Simulation
	Viewport   *viewport.Controller
	Machine    *interaction.Machine
	Panel      *services.PanelSync
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Cache      querybus.Cache
	Publisher  ports.EventPublisher
	Editor     *editor.Editor
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideHookManager,
	ProvideGraph,
	ProvideCatalog,
	ProvideResolver,
	ProvideGraphValidator,
	ProvideSimulation,
	ProvideViewport,
	ProvideEventPublisher,
	ProvideEdgeService,
	ProvideMachine,
	ProvidePanelSync,
	ProvideFrameBuilder,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideCache,
	ProvideEditor,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
