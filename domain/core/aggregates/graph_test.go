package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
)

func placedNode(t *testing.T, id string, x, y float64) *entities.Node {
	t.Helper()
	nodeID, err := valueobjects.NewNodeIDFromString(id)
	require.NoError(t, err)
	pos, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	node, err := entities.ReconstructNode(nodeID, id, "concept", valueobjects.EmptyProperties(), pos)
	require.NoError(t, err)
	return node
}

func edgeBetween(t *testing.T, id, source, target, edgeType string) *entities.Edge {
	t.Helper()
	sourceID, err := valueobjects.NewNodeIDFromString(source)
	require.NoError(t, err)
	targetID, err := valueobjects.NewNodeIDFromString(target)
	require.NoError(t, err)
	edge, err := entities.NewEdge(id, sourceID, targetID, edgeType, "", valueobjects.EmptyProperties())
	require.NoError(t, err)
	return edge
}

func mustNodeID(t *testing.T, id string) valueobjects.NodeID {
	t.Helper()
	nodeID, err := valueobjects.NewNodeIDFromString(id)
	require.NoError(t, err)
	return nodeID
}

func TestGraph_AddNode(t *testing.T) {
	graph := NewGraph(nil)

	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	assert.Equal(t, 1, graph.NodeCount())
	assert.True(t, graph.HasNode(mustNodeID(t, "a")))
}

func TestGraph_AddNode_DuplicateIDRejected(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))

	err := graph.AddNode(placedNode(t, "a", 10, 10))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
}

func TestGraph_AddNode_CapacityLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxNodesPerGraph = 1
	graph := NewGraph(cfg)

	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	err := graph.AddNode(placedNode(t, "b", 10, 10))
	require.Error(t, err)
}

func TestGraph_AddEdge_ResolvesEndpoints(t *testing.T) {
	graph := NewGraph(nil)
	a := placedNode(t, "a", 0, 0)
	b := placedNode(t, "b", 100, 0)
	require.NoError(t, graph.AddNode(a))
	require.NoError(t, graph.AddNode(b))

	edge := edgeBetween(t, "e1", "a", "b", "related_to")
	require.NoError(t, graph.AddEdge(edge))

	require.True(t, edge.IsResolved())
	assert.Same(t, a, edge.Source())
	assert.Same(t, b, edge.Target())
}

func TestGraph_AddEdge_DanglingReferenceRejected(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))

	err := graph.AddEdge(edgeBetween(t, "e1", "a", "ghost", "related_to"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeInvalidReference))
	assert.Zero(t, graph.EdgeCount())
}

func TestGraph_AddEdge_DuplicateTypeBetweenPairRejected(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.AddNode(placedNode(t, "b", 100, 0)))
	require.NoError(t, graph.AddEdge(edgeBetween(t, "e1", "a", "b", "related_to")))

	err := graph.AddEdge(edgeBetween(t, "e2", "a", "b", "related_to"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))

	// A different type between the same pair is fine
	require.NoError(t, graph.AddEdge(edgeBetween(t, "e3", "a", "b", "depends_on")))
	assert.Equal(t, 2, graph.EdgeCount())
}

func TestGraph_AddEdge_SelfConnectionRejectedByDefault(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))

	err := graph.AddEdge(edgeBetween(t, "e1", "a", "a", "related_to"))
	require.Error(t, err)

	cfg := config.DefaultDomainConfig()
	cfg.AllowSelfConnections = true
	permissive := NewGraph(cfg)
	require.NoError(t, permissive.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, permissive.AddEdge(edgeBetween(t, "e1", "a", "a", "related_to")))
}

func TestGraph_Load_ReplacesContents(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "old", 0, 0)))

	nodes := []*entities.Node{placedNode(t, "a", 0, 0), placedNode(t, "b", 100, 0)}
	edges := []*entities.Edge{edgeBetween(t, "e1", "a", "b", "related_to")}
	require.NoError(t, graph.Load(nodes, edges))

	assert.Equal(t, 2, graph.NodeCount())
	assert.Equal(t, 1, graph.EdgeCount())
	assert.False(t, graph.HasNode(mustNodeID(t, "old")))
	assert.True(t, edges[0].IsResolved())
}

func TestGraph_Load_DanglingEdgeRejectsWholeLoad(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "keep", 0, 0)))

	nodes := []*entities.Node{placedNode(t, "a", 0, 0)}
	edges := []*entities.Edge{edgeBetween(t, "e1", "a", "ghost", "related_to")}
	err := graph.Load(nodes, edges)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeInvalidReference))

	// The previous contents survive a failed load
	assert.True(t, graph.HasNode(mustNodeID(t, "keep")))
}

func TestGraph_RemoveNode_CascadesIncidentEdges(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.AddNode(placedNode(t, "b", 100, 0)))
	require.NoError(t, graph.AddNode(placedNode(t, "c", 200, 0)))
	require.NoError(t, graph.AddEdge(edgeBetween(t, "ab", "a", "b", "related_to")))
	require.NoError(t, graph.AddEdge(edgeBetween(t, "bc", "b", "c", "related_to")))
	require.NoError(t, graph.AddEdge(edgeBetween(t, "ac", "a", "c", "related_to")))

	require.NoError(t, graph.RemoveNode(mustNodeID(t, "b")))

	assert.Equal(t, 2, graph.NodeCount())
	assert.Equal(t, 1, graph.EdgeCount())
	assert.Equal(t, "ac", graph.Edges()[0].ID())
}

func TestGraph_RemoveNode_ClearsSelection(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.Select(mustNodeID(t, "a")))

	require.NoError(t, graph.RemoveNode(mustNodeID(t, "a")))
	assert.True(t, graph.SelectedID().IsZero())
	_, selected := graph.SelectedNode()
	assert.False(t, selected)
}

func TestGraph_Select_UnknownNodeFails(t *testing.T) {
	graph := NewGraph(nil)
	err := graph.Select(mustNodeID(t, "ghost"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}

func TestGraph_NodeAt_TopmostWins(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "under", 100, 100)))
	require.NoError(t, graph.AddNode(placedNode(t, "over", 105, 100)))

	hit := graph.NodeAt(102, 100, 30)
	require.NotNil(t, hit)
	assert.Equal(t, "over", hit.ID().String())

	assert.Nil(t, graph.NodeAt(500, 500, 30))
}

func TestGraph_EdgeAt(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.AddNode(placedNode(t, "b", 200, 0)))
	require.NoError(t, graph.AddEdge(edgeBetween(t, "ab", "a", "b", "related_to")))

	hit := graph.EdgeAt(100, 4, 6)
	require.NotNil(t, hit)
	assert.Equal(t, "ab", hit.ID())

	assert.Nil(t, graph.EdgeAt(100, 50, 6))
}

func TestGraph_VersionBumpsAndListenersFire(t *testing.T) {
	graph := NewGraph(nil)
	fired := 0
	graph.OnChange(func() { fired++ })

	before := graph.Version()
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.Select(mustNodeID(t, "a")))
	graph.ClearSelection()

	assert.Equal(t, before+3, graph.Version())
	assert.Equal(t, 3, fired)
}

func TestGraph_DrainEvents(t *testing.T) {
	graph := NewGraph(nil)
	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.Select(mustNodeID(t, "a")))

	drained := graph.DrainEvents()
	assert.NotEmpty(t, drained)
	assert.Empty(t, graph.DrainEvents())
}

func TestGraph_Density(t *testing.T) {
	graph := NewGraph(nil)
	assert.Zero(t, graph.Density())

	require.NoError(t, graph.AddNode(placedNode(t, "a", 0, 0)))
	require.NoError(t, graph.AddNode(placedNode(t, "b", 100, 0)))
	require.NoError(t, graph.AddEdge(edgeBetween(t, "ab", "a", "b", "related_to")))

	assert.InDelta(t, 0.5, graph.Density(), 1e-9)
}
