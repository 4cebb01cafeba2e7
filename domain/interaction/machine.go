package interaction

import (
	"math"
	"time"

	"go.uber.org/zap"

	"graphcanvas/domain/config"
	"graphcanvas/domain/constraints"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/viewport"
	pkgerrors "graphcanvas/pkg/errors"
	"graphcanvas/pkg/extensions"
)

// LayoutEngine is the slice of the layout the gesture handler needs: waking
// the simulation when a drag starts and letting it settle when it ends.
type LayoutEngine interface {
	Reheat()
	Cool()
}

// EdgeCreator performs a host-authorized edge creation. The machine never
// inserts edges itself; creation flows through the command layer so the host
// sees every mutation.
type EdgeCreator interface {
	CreateEdge(sourceID, targetID, edgeType string) error
}

// Machine is the interaction mode state machine. It owns the editor mode, the
// transient edge-drag state and the click/drag/pan classification of pointer
// gestures.
//
// Click versus drag uses the movement distance as the primary signal: at or
// below the click threshold the gesture is a click, above the drag threshold
// it is a drag. In the band between the two thresholds the press duration
// breaks the tie, short presses counting as clicks. Ambiguous gestures
// resolve to click so the UI never ends a gesture in an indeterminate state.
type Machine struct {
	cfg      *config.DomainConfig
	graph    *aggregates.Graph
	resolver *constraints.Resolver
	view     *viewport.Controller
	layout   LayoutEngine
	creator  EdgeCreator
	hooks    *extensions.HookManager
	logger   *zap.Logger

	mode     Mode
	phase    GesturePhase
	edgeDrag EdgeDragState

	// Prompt state for ambiguous edge creation
	promptOptions []constraints.Constraint

	// In-flight gesture bookkeeping, screen space
	pressX, pressY float64
	pressedAt      time.Time
	maxDistSq      float64
	lastX, lastY   float64
	withModifier   bool
	pressedNode    *entities.Node

	now func() time.Time
}

// NewMachine creates the state machine in Normal mode with no gesture in
// flight
func NewMachine(
	graph *aggregates.Graph,
	resolver *constraints.Resolver,
	view *viewport.Controller,
	layout LayoutEngine,
	creator EdgeCreator,
	hooks *extensions.HookManager,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *Machine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if hooks == nil {
		hooks = extensions.NewHookManager()
	}
	return &Machine{
		cfg:      cfg,
		graph:    graph,
		resolver: resolver,
		view:     view,
		layout:   layout,
		creator:  creator,
		hooks:    hooks,
		logger:   logger,
		mode:     ModeNormal,
		phase:    PhaseIdle,
		now:      time.Now,
	}
}

// Mode returns the current interaction mode
func (m *Machine) Mode() Mode {
	return m.mode
}

// Phase returns the phase of the gesture in flight
func (m *Machine) Phase() GesturePhase {
	return m.phase
}

// EdgeDrag returns the transient edge-creation state
func (m *Machine) EdgeDrag() EdgeDragState {
	return m.edgeDrag
}

// PromptOptions returns the pending edge-type choices in catalog order, nil
// when no prompt is open
func (m *Machine) PromptOptions() []constraints.Constraint {
	return m.promptOptions
}

// PointerPosition returns the last observed pointer location in model space,
// used to draw the transient edge line
func (m *Machine) PointerPosition() (x, y float64) {
	return m.view.Transform().ToModel(m.lastX, m.lastY)
}

// SetMode switches the interaction mode. Entering edge-creation mode clears
// the selection; leaving it discards any pending edge-drag state.
func (m *Machine) SetMode(mode Mode) {
	if mode == m.mode {
		return
	}
	m.resetGesture()
	m.edgeDrag = m.edgeDrag.reset()
	m.promptOptions = nil
	if mode == ModeEdgeCreation {
		m.graph.ClearSelection()
	}
	m.mode = mode
	m.logger.Debug("interaction mode changed", zap.String("mode", string(mode)))
}

// ToggleEdgeCreationMode flips between Normal and EdgeCreation
func (m *Machine) ToggleEdgeCreationMode() {
	if m.mode == ModeEdgeCreation {
		m.SetMode(ModeNormal)
	} else {
		m.SetMode(ModeEdgeCreation)
	}
}

// PointerDown begins a gesture at a screen point. A gesture already in
// flight is reset first so no stale pins or drag state survive.
func (m *Machine) PointerDown(x, y float64, withModifier bool) {
	if m.phase != PhaseIdle {
		m.resetGesture()
	}

	m.pressX, m.pressY = x, y
	m.lastX, m.lastY = x, y
	m.pressedAt = m.now()
	m.maxDistSq = 0
	m.withModifier = withModifier

	mx, my := m.view.Transform().ToModel(x, y)
	m.pressedNode = m.graph.NodeAt(mx, my, m.cfg.NodeRadius)
	m.phase = PhasePressed
}

// PointerMove advances the gesture in flight. Crossing the drag threshold
// commits the gesture to a node drag, a pan, or a transient edge line.
func (m *Machine) PointerMove(x, y float64) {
	if m.phase == PhaseIdle {
		m.lastX, m.lastY = x, y
		return
	}

	dx, dy := x-m.lastX, y-m.lastY
	m.lastX, m.lastY = x, y

	px, py := x-m.pressX, y-m.pressY
	if d := px*px + py*py; d > m.maxDistSq {
		m.maxDistSq = d
	}

	switch m.phase {
	case PhasePressed:
		if math.Sqrt(m.maxDistSq) <= m.cfg.DragDistancePx {
			return
		}
		m.commitDrag()

	case PhaseDraggingNode:
		m.pinAtPointer()

	case PhasePanning:
		m.view.Pan(dx, dy)
	}
}

// commitDrag decides what kind of drag the gesture becomes once movement is
// unambiguous
func (m *Machine) commitDrag() {
	// Modifier gestures belong to the viewport regardless of target, so they
	// can never steal a node out from under the pointer
	if m.withModifier {
		if m.view.AcceptsGesture(m.pressedNode != nil, false, true) {
			m.phase = PhasePanning
			m.view.Pan(m.lastX-m.pressX, m.lastY-m.pressY)
		}
		return
	}

	switch {
	case m.mode == ModeEdgeCreation && m.pressedNode != nil:
		m.edgeDrag = EdgeDragState{Source: m.pressedNode, Drawing: true}
		m.phase = PhaseDrawingEdge

	case m.mode == ModeNormal && m.pressedNode != nil && m.cfg.EnableDrag:
		m.phase = PhaseDraggingNode
		m.layout.Reheat()
		m.pinAtPointer()

	default:
		if m.view.AcceptsGesture(m.pressedNode != nil, false, false) {
			m.phase = PhasePanning
			// Catch up on the motion that happened before the threshold
			m.view.Pan(m.lastX-m.pressX, m.lastY-m.pressY)
		}
	}
}

// pinAtPointer forces the dragged node to the pointer's model position. The
// pin lands before the next simulation tick, so the node never snaps back for
// a frame.
func (m *Machine) pinAtPointer() {
	if m.pressedNode == nil {
		return
	}
	mx, my := m.view.Transform().ToModel(m.lastX, m.lastY)
	position, err := valueobjects.NewPosition(mx, my)
	if err != nil {
		return
	}
	if err := m.graph.PinNode(m.pressedNode.ID(), position); err != nil {
		m.logger.Warn("pin failed", zap.Error(err))
	}
}

// PointerUp ends the gesture and classifies it
func (m *Machine) PointerUp(x, y float64) {
	phase := m.phase
	node := m.pressedNode
	m.phase = PhaseIdle
	m.pressedNode = nil

	switch phase {
	case PhasePressed:
		if m.isClick() {
			m.handleClick(x, y)
		}

	case PhaseDraggingNode:
		if node != nil {
			if err := m.graph.UnpinNode(node.ID()); err != nil {
				m.logger.Warn("unpin failed", zap.Error(err))
			}
		}
		m.layout.Cool()

	case PhaseDrawingEdge:
		m.finishEdgeDraw(x, y)
	}
}

// isClick applies the distance-primary, duration-tie-break classification
func (m *Machine) isClick() bool {
	dist := math.Sqrt(m.maxDistSq)
	if dist <= m.cfg.ClickDistancePx {
		return true
	}
	if dist <= m.cfg.DragDistancePx {
		return m.now().Sub(m.pressedAt) <= m.cfg.ClickMaxDuration
	}
	return false
}

// handleClick routes a classified click by target and mode
func (m *Machine) handleClick(x, y float64) {
	mx, my := m.view.Transform().ToModel(x, y)
	node := m.graph.NodeAt(mx, my, m.cfg.NodeRadius)

	if m.mode == ModeEdgeCreation {
		m.handleEdgeCreationClick(node)
		return
	}

	if node != nil {
		if err := m.graph.Select(node.ID()); err != nil {
			m.logger.Warn("select failed", zap.Error(err))
		}
		m.hooks.Notify(extensions.HookNodeClicked, extensions.NodeHookData{
			NodeID:   node.ID().String(),
			Label:    node.Label(),
			NodeType: node.Type(),
		})
		return
	}

	// Edge hit tolerance is specified in screen pixels
	tolerance := m.cfg.EdgeHitTolerancePx / m.view.Transform().Scale
	if edge := m.graph.EdgeAt(mx, my, tolerance); edge != nil {
		m.hooks.Notify(extensions.HookEdgeClicked, extensions.EdgeHookData{
			EdgeID:   edge.ID(),
			SourceID: edge.SourceID().String(),
			TargetID: edge.TargetID().String(),
			EdgeType: edge.Type(),
		})
		return
	}

	m.graph.ClearSelection()
	m.hooks.Notify(extensions.HookBackgroundClicked, extensions.PointHookData{X: mx, Y: my})
}

// handleEdgeCreationClick advances the two-click edge creation flow
func (m *Machine) handleEdgeCreationClick(node *entities.Node) {
	if node == nil {
		// Clicking empty space abandons the pending source
		m.edgeDrag = m.edgeDrag.reset()
		m.promptOptions = nil
		mx, my := m.view.Transform().ToModel(m.lastX, m.lastY)
		m.hooks.Notify(extensions.HookBackgroundClicked, extensions.PointHookData{X: mx, Y: my})
		return
	}

	if m.edgeDrag.Source == nil {
		m.edgeDrag = EdgeDragState{Source: node}
		return
	}

	if m.edgeDrag.Source == node {
		// Same node twice cancels, no edge and no selection change
		m.edgeDrag = m.edgeDrag.reset()
		return
	}

	m.resolveEdgeTargets(m.edgeDrag.Source, node)
}

// finishEdgeDraw resolves the drag variant of edge creation on release
func (m *Machine) finishEdgeDraw(x, y float64) {
	source := m.edgeDrag.Source
	if source == nil {
		m.edgeDrag = m.edgeDrag.reset()
		return
	}

	mx, my := m.view.Transform().ToModel(x, y)
	target := m.graph.NodeAt(mx, my, m.cfg.NodeRadius)
	if target == nil || target == source {
		// Released over empty space or back on the source: cancel
		m.edgeDrag = m.edgeDrag.reset()
		return
	}

	m.resolveEdgeTargets(source, target)
}

// resolveEdgeTargets runs the edge type resolution for a chosen node pair
func (m *Machine) resolveEdgeTargets(source, target *entities.Node) {
	existing := m.graph.EdgesBetween(source.ID(), target.ID())
	legal := m.resolver.Resolve(source.Type(), target.Type(), existing)

	switch len(legal) {
	case 0:
		m.logger.Info("no legal edge type",
			zap.String("source_type", source.Type()),
			zap.String("target_type", target.Type()))
		m.hooks.Notify(extensions.HookWarning, extensions.WarningData{
			Code:    "NO_LEGAL_EDGE_TYPE",
			Message: "no relationship type is allowed between " + source.Type() + " and " + target.Type(),
		})
		m.edgeDrag = m.edgeDrag.reset()

	case 1:
		m.createEdge(source, target, legal[0].EdgeType)

	default:
		m.edgeDrag = EdgeDragState{Source: source, Target: target}
		m.promptOptions = legal
		options := make([]string, len(legal))
		labels := make([]string, len(legal))
		for i, c := range legal {
			options[i] = c.EdgeType
			labels[i] = c.DisplayLabel()
		}
		m.hooks.Notify(extensions.HookEdgeTypePromptOpened, extensions.EdgeTypePromptData{
			SourceID: source.ID().String(),
			TargetID: target.ID().String(),
			Options:  options,
			Labels:   labels,
		})
	}
}

// ConfirmEdgeType completes a pending type-selection prompt with the chosen
// type
func (m *Machine) ConfirmEdgeType(edgeType string) error {
	if m.promptOptions == nil || m.edgeDrag.Source == nil || m.edgeDrag.Target == nil {
		return pkgerrors.NewConflictError("no edge type prompt is open")
	}
	allowed := false
	for _, option := range m.promptOptions {
		if option.EdgeType == edgeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return pkgerrors.NewValidationError("edge type " + edgeType + " is not among the legal choices")
	}

	source, target := m.edgeDrag.Source, m.edgeDrag.Target
	m.createEdge(source, target, edgeType)
	return nil
}

// DismissEdgeTypePrompt abandons a pending prompt without creating an edge
func (m *Machine) DismissEdgeTypePrompt() {
	m.promptOptions = nil
	m.edgeDrag = m.edgeDrag.reset()
}

// createEdge hands the creation to the command layer and resets the
// edge-creation state whether or not it succeeded
func (m *Machine) createEdge(source, target *entities.Node, edgeType string) {
	err := m.creator.CreateEdge(source.ID().String(), target.ID().String(), edgeType)
	if err != nil {
		m.logger.Warn("edge creation rejected", zap.Error(err))
		m.hooks.Notify(extensions.HookWarning, extensions.WarningData{
			Code:    "EDGE_CREATE_FAILED",
			Message: err.Error(),
		})
	}
	m.edgeDrag = m.edgeDrag.reset()
	m.promptOptions = nil
}

// DoubleClick notifies the host. On a node it asks for the edit flow; on the
// background it asks the host to add a node at the model point.
func (m *Machine) DoubleClick(x, y float64) {
	mx, my := m.view.Transform().ToModel(x, y)
	if node := m.graph.NodeAt(mx, my, m.cfg.NodeRadius); node != nil {
		m.hooks.Notify(extensions.HookNodeDoubleClicked, extensions.NodeHookData{
			NodeID:   node.ID().String(),
			Label:    node.Label(),
			NodeType: node.Type(),
		})
		return
	}
	m.hooks.Notify(extensions.HookNodeAddRequested, extensions.PointHookData{X: mx, Y: my})
}

// Wheel zooms at the cursor. Wheel gestures are always zoom and never
// conflict with dragging.
func (m *Machine) Wheel(x, y, deltaY float64) {
	factor := m.cfg.ZoomOutFactor
	if deltaY < 0 {
		factor = m.cfg.ZoomInFactor
	}
	m.view.ZoomAt(x, y, factor)
}

// CancelGesture aborts everything transient: the gesture in flight, any
// pending edge-drag state and any open prompt. No pinned node survives.
func (m *Machine) CancelGesture() {
	m.resetGesture()
	m.edgeDrag = m.edgeDrag.reset()
	m.promptOptions = nil
}

// resetGesture clears the in-flight pointer gesture, releasing a drag pin if
// one is held
func (m *Machine) resetGesture() {
	if m.phase == PhaseDraggingNode && m.pressedNode != nil {
		if err := m.graph.UnpinNode(m.pressedNode.ID()); err != nil {
			m.logger.Warn("unpin failed", zap.Error(err))
		}
		m.layout.Cool()
	}
	m.phase = PhaseIdle
	m.pressedNode = nil
	m.maxDistSq = 0
}
