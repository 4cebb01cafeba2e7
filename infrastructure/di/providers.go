package di

import (
	"graphcanvas/application/commands"
	"graphcanvas/application/commands/bus"
	"graphcanvas/application/ports"
	"graphcanvas/application/queries"
	querybus "graphcanvas/application/queries/bus"
	"graphcanvas/application/services"
	domaincfg "graphcanvas/domain/config"
	"graphcanvas/domain/constraints"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/validators"
	"graphcanvas/domain/interaction"
	"graphcanvas/domain/layout"
	"graphcanvas/domain/viewport"
	"graphcanvas/infrastructure/config"
	"graphcanvas/interfaces/editor"
	"graphcanvas/interfaces/render"
	"graphcanvas/pkg/extensions"

	"go.uber.org/zap"
)

// statsCacheTTLSeconds bounds how stale the statistics query may be
const statsCacheTTLSeconds = 2

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDomainConfig derives editor tuning from the application config
func ProvideDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	return cfg.DomainConfig()
}

// ProvideHookManager creates the extension hook manager
func ProvideHookManager() *extensions.HookManager {
	return extensions.NewHookManager()
}

// ProvideGraph creates the graph aggregate
func ProvideGraph(dc *domaincfg.DomainConfig) *aggregates.Graph {
	return aggregates.NewGraph(dc)
}

// ProvideCatalog builds the edge-type constraint catalog
func ProvideCatalog(cfg *config.Config) (*constraints.Catalog, error) {
	return cfg.Catalog()
}

// ProvideResolver creates the edge-type resolver
func ProvideResolver(catalog *constraints.Catalog) *constraints.Resolver {
	return constraints.NewResolver(catalog)
}

// ProvideGraphValidator creates the graph data validator
func ProvideGraphValidator(dc *domaincfg.DomainConfig) *validators.GraphValidator {
	return validators.NewGraphValidator(dc)
}

// ProvideSimulation creates the force layout simulation
func ProvideSimulation(graph *aggregates.Graph, dc *domaincfg.DomainConfig, logger *zap.Logger) *layout.Simulation {
	return layout.NewSimulation(graph, dc, logger)
}

// ProvideViewport creates the viewport transform controller
func ProvideViewport(dc *domaincfg.DomainConfig) *viewport.Controller {
	return viewport.NewController(dc)
}

// ProvideEventPublisher fans domain events out through extension hooks
func ProvideEventPublisher(hooks *extensions.HookManager, logger *zap.Logger) ports.EventPublisher {
	return services.NewHookEventPublisher(hooks, logger)
}

// ProvideEdgeService creates the edge creation service used by the
// interaction machine
func ProvideEdgeService(commandBus *bus.CommandBus, hooks *extensions.HookManager, logger *zap.Logger) *services.EdgeService {
	return services.NewEdgeService(commandBus, hooks, logger)
}

// ProvideMachine creates the interaction state machine
func ProvideMachine(
	graph *aggregates.Graph,
	resolver *constraints.Resolver,
	view *viewport.Controller,
	sim *layout.Simulation,
	edges *services.EdgeService,
	hooks *extensions.HookManager,
	dc *domaincfg.DomainConfig,
	logger *zap.Logger,
) *interaction.Machine {
	return interaction.NewMachine(graph, resolver, view, sim, edges, hooks, dc, logger)
}

// ProvidePanelSync creates the properties panel sync service
func ProvidePanelSync(graph *aggregates.Graph, hooks *extensions.HookManager, logger *zap.Logger) *services.PanelSync {
	return services.NewPanelSync(graph, nil, hooks, logger)
}

// ProvideFrameBuilder creates the render frame builder
func ProvideFrameBuilder(
	graph *aggregates.Graph,
	view *viewport.Controller,
	machine *interaction.Machine,
	dc *domaincfg.DomainConfig,
) *render.Builder {
	return render.NewBuilder(graph, view, machine, dc)
}

// ProvideCommandBus creates a command bus with all handlers registered
// behind the logging and hook middleware pipeline
func ProvideCommandBus(
	graph *aggregates.Graph,
	validator *validators.GraphValidator,
	resolver *constraints.Resolver,
	sim *layout.Simulation,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	pipeline := bus.NewPipeline(
		bus.LoggingMiddleware(logger),
		bus.HooksMiddleware(hooks),
	)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.LoadGraphCommand{}, commands.NewLoadGraphHandler(graph, validator, sim, logger)},
		{commands.AddNodeCommand{}, commands.NewAddNodeHandler(graph, sim, logger)},
		{commands.UpdateNodeCommand{}, commands.NewUpdateNodeHandler(graph, logger)},
		{commands.DeleteNodeCommand{}, commands.NewDeleteNodeHandler(graph, sim, hooks, logger)},
		{commands.CreateEdgeCommand{}, commands.NewCreateEdgeHandler(graph, resolver, sim, logger)},
		{commands.DeleteEdgeCommand{}, commands.NewDeleteEdgeHandler(graph, sim, logger)},
		{commands.MoveNodeCommand{}, commands.NewMoveNodeHandler(graph, sim, logger)},
		{commands.PinNodeCommand{}, commands.NewPinNodeHandler(graph, sim, logger)},
		{commands.UnpinNodeCommand{}, commands.NewUnpinNodeHandler(graph, logger)},
		{commands.SelectNodeCommand{}, commands.NewSelectNodeHandler(graph, logger)},
		{commands.ClearSelectionCommand{}, commands.NewClearSelectionHandler(graph)},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, pipeline.Execute(r.handler)); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with all handlers registered. The
// statistics query sits behind a short-lived cache; everything else reads the
// live aggregate directly.
func ProvideQueryBus(
	graph *aggregates.Graph,
	resolver *constraints.Resolver,
	sim *layout.Simulation,
	view *viewport.Controller,
	cache querybus.Cache,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	logging := querybus.NewLoggingMiddleware(logger)
	caching := querybus.NewCachingMiddleware(cache, statsCacheTTLSeconds)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetGraphDataQuery{}, queries.NewGetGraphDataHandler(graph)},
		{queries.GetNodeQuery{}, queries.NewGetNodeHandler(graph)},
		{queries.GetLegalEdgeTypesQuery{}, queries.NewGetLegalEdgeTypesHandler(graph, resolver)},
		{queries.GetViewportQuery{}, queries.NewGetViewportHandler(view)},
		{queries.GetSelectionQuery{}, queries.NewGetSelectionHandler(graph)},
		{queries.GetStatisticsQuery{}, caching.Wrap(queries.NewGetStatisticsHandler(graph, sim))},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, logging.Wrap(r.handler)); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}

// ProvideCache creates the in-memory query cache
func ProvideCache() querybus.Cache {
	return NewInMemoryCache()
}

// ProvideEditor assembles the editor facade
func ProvideEditor(
	dc *domaincfg.DomainConfig,
	graph *aggregates.Graph,
	sim *layout.Simulation,
	view *viewport.Controller,
	machine *interaction.Machine,
	panel *services.PanelSync,
	frames *render.Builder,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	publisher ports.EventPublisher,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) *editor.Editor {
	return editor.New(dc, graph, sim, view, machine, panel, frames, commandBus, queryBus, publisher, hooks, logger)
}
