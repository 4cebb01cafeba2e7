package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/config"
	"graphcanvas/domain/constraints"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/viewport"
	"graphcanvas/pkg/extensions"
)

// fakeLayout records reheat/cool calls
type fakeLayout struct {
	reheats int
	cools   int
}

func (f *fakeLayout) Reheat() { f.reheats++ }
func (f *fakeLayout) Cool()   { f.cools++ }

// graphCreator inserts edges straight into the store, standing in for the
// command layer
type graphCreator struct {
	graph    *aggregates.Graph
	failWith error
	requests []string
}

func (c *graphCreator) CreateEdge(sourceID, targetID, edgeType string) error {
	c.requests = append(c.requests, sourceID+"->"+targetID+":"+edgeType)
	if c.failWith != nil {
		return c.failWith
	}
	sid, err := valueobjects.NewNodeIDFromString(sourceID)
	if err != nil {
		return err
	}
	tid, err := valueobjects.NewNodeIDFromString(targetID)
	if err != nil {
		return err
	}
	edge, err := entities.NewEdge("", sid, tid, edgeType, "", valueobjects.EmptyProperties())
	if err != nil {
		return err
	}
	return c.graph.AddEdge(edge)
}

type fixture struct {
	graph   *aggregates.Graph
	machine *Machine
	layout  *fakeLayout
	creator *graphCreator
	hooks   *extensions.HookManager

	warnings   []extensions.WarningData
	prompts    []extensions.EdgeTypePromptData
	clicked    []string
	background int
}

// newFixture builds a machine over nodes a(100,100) and b(300,100) of type
// "concept" with the identity transform, so screen and model coordinates
// coincide
func newFixture(t *testing.T, rules ...constraints.Constraint) *fixture {
	t.Helper()

	cfg := config.DefaultDomainConfig()
	graph := aggregates.NewGraph(cfg)
	for id, x := range map[string]float64{"a": 100, "b": 300} {
		nodeID, err := valueobjects.NewNodeIDFromString(id)
		require.NoError(t, err)
		node, err := entities.NewNode(nodeID, id, "concept", valueobjects.EmptyProperties())
		require.NoError(t, err)
		require.NoError(t, graph.AddNode(node))
		position, err := valueobjects.NewPosition(x, 100)
		require.NoError(t, err)
		node.Seed(position)
	}

	catalog, err := constraints.NewCatalog(rules...)
	require.NoError(t, err)

	view := viewport.NewController(cfg)
	require.NoError(t, view.SetDimensions(800, 600))

	f := &fixture{
		graph:   graph,
		layout:  &fakeLayout{},
		hooks:   extensions.NewHookManager(),
		creator: &graphCreator{graph: graph},
	}
	f.hooks.Register(extensions.HookWarning, func(_ context.Context, data interface{}) error {
		f.warnings = append(f.warnings, data.(extensions.WarningData))
		return nil
	})
	f.hooks.Register(extensions.HookEdgeTypePromptOpened, func(_ context.Context, data interface{}) error {
		f.prompts = append(f.prompts, data.(extensions.EdgeTypePromptData))
		return nil
	})
	f.hooks.Register(extensions.HookNodeClicked, func(_ context.Context, data interface{}) error {
		f.clicked = append(f.clicked, data.(extensions.NodeHookData).NodeID)
		return nil
	})
	f.hooks.Register(extensions.HookBackgroundClicked, func(_ context.Context, _ interface{}) error {
		f.background++
		return nil
	})

	f.machine = NewMachine(graph, constraints.NewResolver(catalog), view, f.layout, f.creator, f.hooks, cfg, nil)
	return f
}

func (f *fixture) click(x, y float64) {
	f.machine.PointerDown(x, y, false)
	f.machine.PointerUp(x, y)
}

func relatedOnly() constraints.Constraint {
	return constraints.Constraint{SourceType: "concept", TargetType: "concept", EdgeType: "related_to", Directed: true}
}

func TestMachine_SingleLegalType_CreatesEdgeImmediately(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()

	f.click(100, 100)
	f.click(300, 100)

	require.Equal(t, 1, f.graph.EdgeCount())
	edge := f.graph.Edges()[0]
	assert.Equal(t, "a", edge.SourceID().String())
	assert.Equal(t, "b", edge.TargetID().String())
	assert.Equal(t, "related_to", edge.Type())
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
	assert.Empty(t, f.prompts)
}

func TestMachine_MultipleLegalTypes_OpensPromptInCatalogOrder(t *testing.T) {
	f := newFixture(t,
		relatedOnly(),
		constraints.Constraint{SourceType: "concept", TargetType: "concept", EdgeType: "depends_on", Directed: true},
	)
	f.machine.ToggleEdgeCreationMode()

	f.click(100, 100)
	f.click(300, 100)

	assert.Equal(t, 0, f.graph.EdgeCount())
	require.Len(t, f.prompts, 1)
	assert.Equal(t, []string{"related_to", "depends_on"}, f.prompts[0].Options)

	require.NoError(t, f.machine.ConfirmEdgeType("depends_on"))

	require.Equal(t, 1, f.graph.EdgeCount())
	assert.Equal(t, "depends_on", f.graph.Edges()[0].Type())
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
	assert.Nil(t, f.machine.PromptOptions())
}

func TestMachine_SameNodeTwice_CancelsWithoutEdge(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()

	f.click(100, 100)
	require.NotNil(t, f.machine.EdgeDrag().Source)

	f.click(100, 100)

	assert.Equal(t, 0, f.graph.EdgeCount())
	assert.Equal(t, EdgeDragState{}, f.machine.EdgeDrag())
}

func TestMachine_NoLegalType_WarnsAndResets(t *testing.T) {
	f := newFixture(t) // empty catalog
	f.machine.ToggleEdgeCreationMode()

	f.click(100, 100)
	f.click(300, 100)

	assert.Equal(t, 0, f.graph.EdgeCount())
	require.Len(t, f.warnings, 1)
	assert.Equal(t, "NO_LEGAL_EDGE_TYPE", f.warnings[0].Code)
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
}

func TestMachine_DuplicateTypeNotOfferedAgain(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()

	f.click(100, 100)
	f.click(300, 100)
	require.Equal(t, 1, f.graph.EdgeCount())

	// Second attempt between the same ordered pair has no types left
	f.click(100, 100)
	f.click(300, 100)

	assert.Equal(t, 1, f.graph.EdgeCount())
	require.Len(t, f.warnings, 1)
	assert.Equal(t, "NO_LEGAL_EDGE_TYPE", f.warnings[0].Code)
}

func TestMachine_ConfirmWithoutPrompt_Fails(t *testing.T) {
	f := newFixture(t, relatedOnly())

	assert.Error(t, f.machine.ConfirmEdgeType("related_to"))
}

func TestMachine_ConfirmIllegalChoice_Fails(t *testing.T) {
	f := newFixture(t,
		relatedOnly(),
		constraints.Constraint{SourceType: "concept", TargetType: "concept", EdgeType: "depends_on", Directed: true},
	)
	f.machine.ToggleEdgeCreationMode()
	f.click(100, 100)
	f.click(300, 100)
	require.Len(t, f.prompts, 1)

	assert.Error(t, f.machine.ConfirmEdgeType("made_up"))
	assert.Equal(t, 0, f.graph.EdgeCount())
}

func TestMachine_DismissPrompt_ResetsWithoutEdge(t *testing.T) {
	f := newFixture(t,
		relatedOnly(),
		constraints.Constraint{SourceType: "concept", TargetType: "concept", EdgeType: "depends_on", Directed: true},
	)
	f.machine.ToggleEdgeCreationMode()
	f.click(100, 100)
	f.click(300, 100)

	f.machine.DismissEdgeTypePrompt()

	assert.Equal(t, 0, f.graph.EdgeCount())
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
	assert.Nil(t, f.machine.PromptOptions())
}

func TestMachine_DragVariant_ReleaseOverTargetCreatesEdge(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(200, 100)
	assert.Equal(t, PhaseDrawingEdge, f.machine.Phase())
	assert.True(t, f.machine.EdgeDrag().Drawing)
	f.machine.PointerUp(300, 100)

	require.Equal(t, 1, f.graph.EdgeCount())
	assert.Equal(t, "related_to", f.graph.Edges()[0].Type())
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
}

func TestMachine_DragVariant_ReleaseOverEmptySpaceCancels(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(200, 300)
	f.machine.PointerUp(200, 300)

	assert.Equal(t, 0, f.graph.EdgeCount())
	assert.Equal(t, EdgeDragState{}, f.machine.EdgeDrag())
}

func TestMachine_NormalClick_SelectsAndNotifies(t *testing.T) {
	f := newFixture(t)

	f.click(100, 100)

	assert.Equal(t, "a", f.graph.SelectedID().String())
	assert.Equal(t, []string{"a"}, f.clicked)
}

func TestMachine_BackgroundClick_ClearsSelection(t *testing.T) {
	f := newFixture(t)
	f.click(100, 100)
	require.False(t, f.graph.SelectedID().IsZero())

	f.click(500, 400)

	assert.True(t, f.graph.SelectedID().IsZero())
	assert.Equal(t, 1, f.background)
}

func TestMachine_NodeDrag_PinsFollowsAndReleases(t *testing.T) {
	f := newFixture(t)
	node, ok := f.graph.Node(mustID(t, "a"))
	require.True(t, ok)

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(130, 140)

	assert.Equal(t, PhaseDraggingNode, f.machine.Phase())
	assert.True(t, node.IsPinned())
	assert.Equal(t, 1, f.layout.reheats)

	f.machine.PointerMove(150, 150)
	assert.InDelta(t, 150, node.Position().X(), 1e-9)
	assert.InDelta(t, 150, node.Position().Y(), 1e-9)

	f.machine.PointerUp(150, 150)

	assert.False(t, node.IsPinned())
	assert.Equal(t, 1, f.layout.cools)
	assert.InDelta(t, 150, node.Position().X(), 1e-9)
	assert.True(t, f.graph.SelectedID().IsZero(), "drag must not select")
}

func TestMachine_DragDisabledByConfig(t *testing.T) {
	f := newFixture(t)
	f.machine.cfg.EnableDrag = false
	node, ok := f.graph.Node(mustID(t, "a"))
	require.True(t, ok)

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(150, 150)
	f.machine.PointerUp(150, 150)

	assert.False(t, node.IsPinned())
	assert.Equal(t, 0, f.layout.reheats)
}

func TestMachine_BackgroundDrag_Pans(t *testing.T) {
	f := newFixture(t)

	f.machine.PointerDown(500, 400, false)
	f.machine.PointerMove(520, 380)
	assert.Equal(t, PhasePanning, f.machine.Phase())
	f.machine.PointerMove(540, 360)
	f.machine.PointerUp(540, 360)

	tr := f.machine.view.Transform()
	assert.InDelta(t, 40, tr.TranslateX, 1e-9)
	assert.InDelta(t, -40, tr.TranslateY, 1e-9)
	assert.Equal(t, 0, f.background, "a pan is not a click")
}

func TestMachine_ModifierDragOnNodePansViewport(t *testing.T) {
	// A modifier press is a viewport gesture even when it lands on a node
	f := newFixture(t)
	node, ok := f.graph.Node(mustID(t, "a"))
	require.True(t, ok)

	f.machine.PointerDown(100, 100, true)
	f.machine.PointerMove(130, 120)

	assert.Equal(t, PhasePanning, f.machine.Phase())
	assert.False(t, node.IsPinned())
	assert.Equal(t, 0, f.layout.reheats)

	f.machine.PointerMove(150, 140)
	f.machine.PointerUp(150, 140)

	tr := f.machine.view.Transform()
	assert.InDelta(t, 50, tr.TranslateX, 1e-9)
	assert.InDelta(t, 40, tr.TranslateY, 1e-9)
	assert.True(t, f.graph.SelectedID().IsZero())
}

func TestMachine_ModifierDragWithZoomDisabledDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.machine.cfg.EnableZoom = false
	node, ok := f.graph.Node(mustID(t, "a"))
	require.True(t, ok)

	f.machine.PointerDown(100, 100, true)
	f.machine.PointerMove(150, 150)
	f.machine.PointerUp(150, 150)

	assert.False(t, node.IsPinned())
	tr := f.machine.view.Transform()
	assert.InDelta(t, 0, tr.TranslateX, 1e-9)
	assert.InDelta(t, 0, tr.TranslateY, 1e-9)
}

func TestMachine_ClickDragTieBreak(t *testing.T) {
	// Movement inside the ambiguity band resolves by press duration
	f := newFixture(t)
	current := time.Now()
	f.machine.now = func() time.Time { return current }

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(106, 100)
	f.machine.PointerUp(106, 100)
	assert.Equal(t, "a", f.graph.SelectedID().String(), "short ambiguous press is a click")

	f.graph.ClearSelection()
	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(106, 100)
	current = current.Add(400 * time.Millisecond)
	f.machine.PointerUp(106, 100)
	assert.True(t, f.graph.SelectedID().IsZero(), "long ambiguous press is not a click")
}

func TestMachine_TinyMovementAlwaysClick(t *testing.T) {
	f := newFixture(t)
	current := time.Now()
	f.machine.now = func() time.Time { return current }

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(102, 101)
	current = current.Add(2 * time.Second)
	f.machine.PointerUp(102, 101)

	assert.Equal(t, "a", f.graph.SelectedID().String())
}

func TestMachine_ToggleIntoEdgeModeClearsSelection(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.click(100, 100)
	require.False(t, f.graph.SelectedID().IsZero())

	f.machine.ToggleEdgeCreationMode()

	assert.True(t, f.graph.SelectedID().IsZero())
	assert.Equal(t, ModeEdgeCreation, f.machine.Mode())
}

func TestMachine_ToggleOffClearsPendingSource(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()
	f.click(100, 100)
	require.NotNil(t, f.machine.EdgeDrag().Source)

	f.machine.ToggleEdgeCreationMode()

	assert.Equal(t, ModeNormal, f.machine.Mode())
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
}

func TestMachine_NewPointerDownResetsInFlightDrag(t *testing.T) {
	f := newFixture(t)
	node, ok := f.graph.Node(mustID(t, "a"))
	require.True(t, ok)

	f.machine.PointerDown(100, 100, false)
	f.machine.PointerMove(150, 150)
	require.True(t, node.IsPinned())

	// A second press without a release must not leave an orphaned pin
	f.machine.PointerDown(300, 100, false)

	assert.False(t, node.IsPinned())
	assert.Equal(t, PhasePressed, f.machine.Phase())
}

func TestMachine_CancelGestureClearsEverything(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.machine.ToggleEdgeCreationMode()
	f.click(100, 100)
	require.NotNil(t, f.machine.EdgeDrag().Source)

	f.machine.CancelGesture()

	assert.True(t, f.machine.EdgeDrag().IsEmpty())
	assert.Equal(t, PhaseIdle, f.machine.Phase())
	assert.Nil(t, f.machine.PromptOptions())
}

func TestMachine_EdgeCreateFailureSurfacesWarning(t *testing.T) {
	f := newFixture(t, relatedOnly())
	f.creator.failWith = assert.AnError
	f.machine.ToggleEdgeCreationMode()

	f.click(100, 100)
	f.click(300, 100)

	assert.Equal(t, 0, f.graph.EdgeCount())
	require.Len(t, f.warnings, 1)
	assert.Equal(t, "EDGE_CREATE_FAILED", f.warnings[0].Code)
	assert.True(t, f.machine.EdgeDrag().IsEmpty())
}

func TestMachine_WheelZoomsAtCursor(t *testing.T) {
	f := newFixture(t)

	before := f.machine.view.Transform().Scale
	f.machine.Wheel(400, 300, -120)

	assert.Greater(t, f.machine.view.Transform().Scale, before)
}

func mustID(t *testing.T, id string) valueobjects.NodeID {
	t.Helper()
	nodeID, err := valueobjects.NewNodeIDFromString(id)
	require.NoError(t, err)
	return nodeID
}
