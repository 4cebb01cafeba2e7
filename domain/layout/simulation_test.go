package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
)

func newTestGraph(t *testing.T, cfg *config.DomainConfig, nodeIDs ...string) *aggregates.Graph {
	t.Helper()
	graph := aggregates.NewGraph(cfg)
	for _, id := range nodeIDs {
		nodeID, err := valueobjects.NewNodeIDFromString(id)
		require.NoError(t, err)
		node, err := entities.NewNode(nodeID, id, "concept", valueobjects.EmptyProperties())
		require.NoError(t, err)
		require.NoError(t, graph.AddNode(node))
	}
	return graph
}

func mustPosition(t *testing.T, x, y float64) valueobjects.Position {
	t.Helper()
	position, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	return position
}

func runToEquilibrium(t *testing.T, sim *Simulation) {
	t.Helper()
	for i := 0; i < 5000; i++ {
		if !sim.Step() {
			return
		}
	}
	t.Fatal("simulation did not settle within 5000 ticks")
}

func TestSimulation_Start_RejectsZeroNodes(t *testing.T) {
	graph := newTestGraph(t, nil)
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))

	err := sim.Start()

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDegenerateGeometry))
}

func TestSimulation_Start_RejectsZeroSizedViewport(t *testing.T) {
	graph := newTestGraph(t, nil, "a")

	sim := NewSimulation(graph, nil, nil)
	assert.Error(t, sim.SetDimensions(0, 600))

	err := sim.Start()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDegenerateGeometry))
}

func TestSimulation_Start_SeedsUnplacedNodes(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b", "c")
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))

	require.NoError(t, sim.Start())

	seen := make(map[string]bool)
	for _, node := range graph.Nodes() {
		require.True(t, node.IsPlaced(), "node %s not seeded", node.ID().String())
		key := fmt.Sprintf("%.4f,%.4f", node.Position().X(), node.Position().Y())
		assert.False(t, seen[key], "two nodes seeded at the same point")
		seen[key] = true
	}
}

func TestSimulation_Start_PreservesHostPositions(t *testing.T) {
	graph := newTestGraph(t, nil, "a")
	placed := mustPosition(t, 123, 456)
	require.NoError(t, graph.SetNodePosition(graph.Nodes()[0].ID(), placed))

	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())

	assert.True(t, placed.Equals(graph.Nodes()[0].Position()))
}

func TestSimulation_CoolsToEquilibrium(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b", "c", "d")
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())

	runToEquilibrium(t, sim)

	assert.False(t, sim.IsRunning())
	assert.Less(t, sim.Alpha(), 0.001)
	for _, node := range graph.Nodes() {
		p := node.Position()
		assert.False(t, math.IsNaN(p.X()) || math.IsNaN(p.Y()), "position went NaN")
	}
}

func TestSimulation_StepAfterEquilibriumIsIdle(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b")
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())
	runToEquilibrium(t, sim)

	assert.False(t, sim.Step())
	assert.False(t, sim.Step())
}

func TestSimulation_ReheatRestartsTicking(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b")
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())
	runToEquilibrium(t, sim)

	sim.Reheat()

	assert.True(t, sim.IsRunning())
	assert.True(t, sim.Step())

	// Lowering the target lets the layout settle again
	sim.Cool()
	runToEquilibrium(t, sim)
	assert.False(t, sim.IsRunning())
}

func TestSimulation_PinnedNodeHeldEveryTick(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b", "c")
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())

	pinned := graph.Nodes()[0]
	hold := mustPosition(t, 50, 50)
	require.NoError(t, graph.PinNode(pinned.ID(), hold))
	sim.Reheat()

	for i := 0; i < 50; i++ {
		sim.Step()
		assert.True(t, hold.Equals(pinned.Position()), "pinned node moved on tick %d", i)
	}
}

func TestSimulation_PinReleaseSymmetry(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b")
	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())

	node := graph.Nodes()[0]
	require.NoError(t, graph.PinNode(node.ID(), mustPosition(t, 10, 10)))
	sim.Reheat()
	sim.Step()

	require.NoError(t, graph.UnpinNode(node.ID()))
	sim.Cool()

	assert.False(t, node.IsPinned())

	// Released node is force-driven again: repulsion from the other node
	// moves it on the next tick
	before := node.Position()
	sim.Step()
	assert.False(t, before.Equals(node.Position()))
}

func TestSimulation_DragDeltaPersistsAfterRelease(t *testing.T) {
	// Drift forces off so the only movement is the drag itself
	cfg := config.DefaultDomainConfig()
	cfg.CenterStrength = 0
	cfg.AxisStrength = 0
	cfg.ChargeStrength = 0

	graph := newTestGraph(t, cfg, "a")
	sim := NewSimulation(graph, cfg, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())
	runToEquilibrium(t, sim)

	node := graph.Nodes()[0]
	start := node.Position()
	dropped := start.Translated(50, 50)

	require.NoError(t, graph.PinNode(node.ID(), dropped))
	sim.Reheat()
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	require.NoError(t, graph.UnpinNode(node.ID()))
	sim.Cool()
	runToEquilibrium(t, sim)

	assert.InDelta(t, dropped.X(), node.Position().X(), 1.0)
	assert.InDelta(t, dropped.Y(), node.Position().Y(), 1.0)
	assert.False(t, node.IsPinned())
}

func TestSimulation_LinkForcePullsTowardRestDistance(t *testing.T) {
	graph := newTestGraph(t, nil, "a", "b")
	a, b := graph.Nodes()[0], graph.Nodes()[1]
	require.NoError(t, graph.SetNodePosition(a.ID(), mustPosition(t, 0, 300)))
	require.NoError(t, graph.SetNodePosition(b.ID(), mustPosition(t, 700, 300)))

	edge, err := entities.NewEdge("", a.ID(), b.ID(), "related_to", "", valueobjects.EmptyProperties())
	require.NoError(t, err)
	require.NoError(t, graph.AddEdge(edge))

	sim := NewSimulation(graph, nil, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())
	runToEquilibrium(t, sim)

	dist := a.Position().DistanceTo(b.Position())
	assert.Less(t, dist, 700.0, "link did not contract")
}

func TestSimulation_CollisionKeepsNodesApart(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	graph := newTestGraph(t, cfg, "a", "b")
	a, b := graph.Nodes()[0], graph.Nodes()[1]
	require.NoError(t, graph.SetNodePosition(a.ID(), mustPosition(t, 400, 300)))
	require.NoError(t, graph.SetNodePosition(b.ID(), mustPosition(t, 401, 300)))

	sim := NewSimulation(graph, cfg, nil)
	require.NoError(t, sim.SetDimensions(800, 600))
	require.NoError(t, sim.Start())
	runToEquilibrium(t, sim)

	minDist := (cfg.NodeRadius + cfg.CollisionMargin) * 2
	assert.GreaterOrEqual(t, a.Position().DistanceTo(b.Position()), minDist*0.95)
}
