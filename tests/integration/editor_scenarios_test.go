package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/application/commands"
	"graphcanvas/application/queries"
	"graphcanvas/infrastructure/config"
	"graphcanvas/infrastructure/di"
	"graphcanvas/interfaces/render"
	"graphcanvas/pkg/extensions"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	cfg := &config.Config{
		ServerAddress:  ":0",
		Environment:    "development",
		TickIntervalMs: 16,
		DefaultWidth:   800,
		DefaultHeight:  600,
	}
	container, err := di.InitializeContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Editor.Close() })

	require.NoError(t, container.Editor.SetDimensions(800, 600))
	return container
}

func fptr(v float64) *float64 { return &v }

// loadPair loads two placed concept nodes with no edges
func loadPair(t *testing.T, container *di.Container) {
	t.Helper()
	cmd := commands.LoadGraphCommand{
		Nodes: []commands.NodeInput{
			{ID: "a", Label: "Alpha", Type: "concept", X: fptr(100), Y: fptr(100)},
			{ID: "b", Label: "Beta", Type: "concept", X: fptr(300), Y: fptr(100)},
		},
	}
	require.NoError(t, container.Editor.Execute(context.Background(), cmd))
}

// click presses and releases without moving, which always classifies as a click
func click(container *di.Container, x, y float64) {
	container.Editor.PointerDown(x, y, false)
	container.Editor.PointerUp(x, y)
}

func TestLoadAndSettleProducesDrawableFrame(t *testing.T) {
	container := newContainer(t)

	cmd := commands.LoadGraphCommand{
		Nodes: []commands.NodeInput{
			{ID: "a", Label: "Alpha", Type: "concept"},
			{ID: "b", Label: "Beta", Type: "concept"},
			{ID: "c", Label: "Gamma", Type: "note"},
		},
		Edges: []commands.EdgeInput{
			{ID: "ab", SourceID: "a", TargetID: "b", Type: "related_to"},
			{ID: "ac", SourceID: "a", TargetID: "c", Type: "described_by"},
		},
	}
	require.NoError(t, container.Editor.Execute(context.Background(), cmd))
	require.NoError(t, container.Editor.StartLayout())

	ticks := container.Editor.RunToEquilibrium(5000)
	assert.Greater(t, ticks, 0)
	assert.False(t, container.Simulation.IsRunning())

	frame := container.Editor.Frame()
	assert.Equal(t, render.FrameOK, frame.State)
	assert.Len(t, frame.Nodes, 3)
	assert.Len(t, frame.Edges, 2)

	require.NoError(t, container.Editor.FitToContent())
	fitted := container.Editor.Frame()
	for _, node := range fitted.Nodes {
		assert.GreaterOrEqual(t, node.X, 0.0)
		assert.LessOrEqual(t, node.X, fitted.Width)
		assert.GreaterOrEqual(t, node.Y, 0.0)
		assert.LessOrEqual(t, node.Y, fitted.Height)
	}
}

func TestLoadRejectsDanglingEdge(t *testing.T) {
	container := newContainer(t)

	cmd := commands.LoadGraphCommand{
		Nodes: []commands.NodeInput{{ID: "a", Type: "concept"}},
		Edges: []commands.EdgeInput{{ID: "e", SourceID: "a", TargetID: "ghost", Type: "related_to"}},
	}
	err := container.Editor.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.Zero(t, container.Graph.NodeCount())
}

func TestClickSelectsNodeAndOpensPanel(t *testing.T) {
	container := newContainer(t)
	loadPair(t, container)

	click(container, 100, 100)

	result, err := container.Editor.Query(context.Background(), queries.GetSelectionQuery{})
	require.NoError(t, err)
	selection := result.(*queries.GetSelectionResult)
	require.True(t, selection.Selected)
	assert.Equal(t, "a", selection.Node.ID)

	require.True(t, container.Panel.IsOpen())
	assert.Equal(t, "Alpha", container.Panel.View().Label)

	// Background click clears both
	click(container, 600, 400)
	require.False(t, container.Panel.IsOpen())
}

func TestEdgeCreationWithPromptEndToEnd(t *testing.T) {
	container := newContainer(t)
	loadPair(t, container)

	ed := container.Editor
	ed.ToggleEdgeCreationMode()
	click(container, 100, 100)
	click(container, 300, 100)

	// Two catalog rules fit a concept pair, so the editor asks which one
	options := container.Machine.PromptOptions()
	require.Len(t, options, 2)
	assert.Equal(t, "related_to", options[0].EdgeType)
	assert.Equal(t, "depends_on", options[1].EdgeType)

	require.NoError(t, ed.ConfirmEdgeType("depends_on"))
	require.Equal(t, 1, container.Graph.EdgeCount())
	assert.Equal(t, "depends_on", container.Graph.Edges()[0].Type())

	// The taken type disappears from the next prompt for the same pair
	click(container, 100, 100)
	click(container, 300, 100)
	remaining := container.Machine.PromptOptions()
	assert.Empty(t, remaining)
	require.Equal(t, 2, container.Graph.EdgeCount())
	assert.Equal(t, "related_to", container.Graph.Edges()[1].Type())
}

func TestDeleteNodeCascadesAndClosesPanel(t *testing.T) {
	container := newContainer(t)
	loadPair(t, container)

	var deleted []string
	container.Editor.Hooks().Register(extensions.HookNodeDeleteRequested, func(_ context.Context, data interface{}) error {
		if node, ok := data.(extensions.NodeHookData); ok {
			deleted = append(deleted, node.NodeID)
		}
		return nil
	})

	require.NoError(t, container.Editor.Execute(context.Background(), commands.CreateEdgeCommand{
		EdgeID:   "ab",
		SourceID: "a",
		TargetID: "b",
		Type:     "related_to",
	}))
	click(container, 100, 100)
	require.True(t, container.Panel.IsOpen())

	require.NoError(t, container.Editor.Execute(context.Background(), commands.DeleteNodeCommand{NodeID: "a"}))

	assert.False(t, container.Panel.IsOpen())
	assert.Equal(t, 1, container.Graph.NodeCount())
	assert.Zero(t, container.Graph.EdgeCount())
	assert.Equal(t, []string{"a"}, deleted)
}

func TestIllegalEdgePairRejectedThroughCommandBus(t *testing.T) {
	container := newContainer(t)
	cmd := commands.LoadGraphCommand{
		Nodes: []commands.NodeInput{
			{ID: "t1", Label: "Tag one", Type: "tag", X: fptr(100), Y: fptr(100)},
			{ID: "t2", Label: "Tag two", Type: "tag", X: fptr(300), Y: fptr(100)},
		},
	}
	require.NoError(t, container.Editor.Execute(context.Background(), cmd))

	err := container.Editor.Execute(context.Background(), commands.CreateEdgeCommand{
		SourceID: "t1",
		TargetID: "t2",
		Type:     "related_to",
	})
	require.Error(t, err)
	assert.Zero(t, container.Graph.EdgeCount())
}

func TestFrameSVGExport(t *testing.T) {
	container := newContainer(t)
	loadPair(t, container)

	var out strings.Builder
	require.NoError(t, render.WriteSVG(&out, container.Editor.Frame()))

	svg := out.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "Alpha")
	assert.Contains(t, svg, "Beta")
}
