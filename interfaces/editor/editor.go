package editor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	commandbus "graphcanvas/application/commands/bus"
	querybus "graphcanvas/application/queries/bus"
	"graphcanvas/application/ports"
	"graphcanvas/application/services"
	"graphcanvas/domain/config"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/interaction"
	"graphcanvas/domain/layout"
	"graphcanvas/domain/viewport"
	"graphcanvas/interfaces/render"
	"graphcanvas/pkg/extensions"
)

// Editor is the host-facing facade over the whole editor core. The core
// itself is single-threaded by design; the facade serializes every entry
// point through one mutex so hosts on multi-threaded runtimes get the
// required single-owner mutation for free.
type Editor struct {
	mu sync.Mutex

	cfg     *config.DomainConfig
	graph   *aggregates.Graph
	sim     *layout.Simulation
	view    *viewport.Controller
	machine *interaction.Machine
	panel   *services.PanelSync
	frames  *render.Builder

	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	publisher  ports.EventPublisher
	hooks      *extensions.HookManager
	logger     *zap.Logger

	loopStop chan struct{}
	loopDone chan struct{}
}

// New assembles the facade from its wired components
func New(
	cfg *config.DomainConfig,
	graph *aggregates.Graph,
	sim *layout.Simulation,
	view *viewport.Controller,
	machine *interaction.Machine,
	panel *services.PanelSync,
	frames *render.Builder,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	publisher ports.EventPublisher,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) *Editor {
	return &Editor{
		cfg:        cfg,
		graph:      graph,
		sim:        sim,
		view:       view,
		machine:    machine,
		panel:      panel,
		frames:     frames,
		commandBus: commandBus,
		queryBus:   queryBus,
		publisher:  publisher,
		hooks:      hooks,
		logger:     logger,
	}
}

// SetDimensions propagates the viewport size to every component that needs it
func (e *Editor) SetDimensions(width, height float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.view.SetDimensions(width, height); err != nil {
		return err
	}
	if err := e.sim.SetDimensions(width, height); err != nil {
		return err
	}
	e.frames.SetDimensions(width, height)
	return nil
}

// Execute runs a command through the bus and flushes resulting domain events
func (e *Editor) Execute(ctx context.Context, cmd commandbus.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.commandBus.Send(ctx, cmd)
	e.flushEvents(ctx)
	return err
}

// Query runs a read-only query through the bus
func (e *Editor) Query(ctx context.Context, query querybus.Query) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.queryBus.Ask(ctx, query)
}

// StartLayout seeds and starts the force simulation
func (e *Editor) StartLayout() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sim.Start()
}

// Step advances the simulation one tick, reporting whether it is still hot
func (e *Editor) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sim.Step()
}

// RunToEquilibrium ticks until the layout cools or maxTicks is reached,
// returning the number of ticks run
func (e *Editor) RunToEquilibrium(maxTicks int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	ticks := 0
	for ticks < maxTicks && e.sim.Step() {
		ticks++
	}
	return ticks
}

// StartLoop drives simulation ticks on a timer until Close. Starting twice is
// a no-op.
func (e *Editor) StartLoop(interval time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loopStop != nil {
		return
	}
	e.loopStop = make(chan struct{})
	e.loopDone = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.Step()
			}
		}
	}(e.loopStop, e.loopDone)
}

// Close stops the tick loop and the simulation. The editor must not be used
// afterwards; a dangling timer never drives ticks against a closed editor.
func (e *Editor) Close() {
	e.mu.Lock()
	stop, done := e.loopStop, e.loopDone
	e.loopStop, e.loopDone = nil, nil
	e.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	e.mu.Lock()
	e.sim.Stop()
	e.mu.Unlock()
	e.logger.Info("editor closed")
}

// Pointer input

// PointerDown forwards a press to the interaction machine
func (e *Editor) PointerDown(x, y float64, withModifier bool) {
	e.withLock(func() { e.machine.PointerDown(x, y, withModifier) })
}

// PointerMove forwards pointer motion to the interaction machine
func (e *Editor) PointerMove(x, y float64) {
	e.withLock(func() { e.machine.PointerMove(x, y) })
}

// PointerUp forwards a release to the interaction machine
func (e *Editor) PointerUp(x, y float64) {
	e.withLock(func() { e.machine.PointerUp(x, y) })
}

// DoubleClick forwards a double click to the interaction machine
func (e *Editor) DoubleClick(x, y float64) {
	e.withLock(func() { e.machine.DoubleClick(x, y) })
}

// Wheel forwards wheel input to the interaction machine
func (e *Editor) Wheel(x, y, deltaY float64) {
	e.withLock(func() { e.machine.Wheel(x, y, deltaY) })
}

// CancelGesture aborts any gesture, edge-drag state and open prompt
func (e *Editor) CancelGesture() {
	e.withLock(func() { e.machine.CancelGesture() })
}

// ToggleEdgeCreationMode flips the interaction mode
func (e *Editor) ToggleEdgeCreationMode() {
	e.withLock(func() { e.machine.ToggleEdgeCreationMode() })
}

// ConfirmEdgeType completes a pending edge-type prompt
func (e *Editor) ConfirmEdgeType(edgeType string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.machine.ConfirmEdgeType(edgeType)
	e.flushEvents(context.Background())
	return err
}

// DismissEdgeTypePrompt abandons a pending edge-type prompt
func (e *Editor) DismissEdgeTypePrompt() {
	e.withLock(func() { e.machine.DismissEdgeTypePrompt() })
}

// Viewport operations

// ZoomIn zooms by the configured step, anchored on the viewport center
func (e *Editor) ZoomIn() {
	e.withLock(func() { e.view.ZoomIn() })
}

// ZoomOut zooms out by the configured step
func (e *Editor) ZoomOut() {
	e.withLock(func() { e.view.ZoomOut() })
}

// ResetView restores the identity transform
func (e *Editor) ResetView() {
	e.withLock(func() { e.view.Reset() })
}

// FitToContent frames all placed nodes in the viewport
func (e *Editor) FitToContent() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.view.FitToContent(e.graph.Nodes())
}

// Frame builds the current render description
func (e *Editor) Frame() *render.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.frames.Build()
}

// Panel returns the properties panel sync service
func (e *Editor) Panel() *services.PanelSync {
	return e.panel
}

// Hooks returns the extension hook manager for host callback registration
func (e *Editor) Hooks() *extensions.HookManager {
	return e.hooks
}

// flushEvents publishes drained domain events; callers hold the mutex
func (e *Editor) flushEvents(ctx context.Context) {
	batch := e.graph.DrainEvents()
	if len(batch) == 0 {
		return
	}
	if err := e.publisher.PublishBatch(ctx, batch); err != nil {
		e.logger.Warn("event publish failed", zap.Error(err))
	}
}

func (e *Editor) withLock(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}
