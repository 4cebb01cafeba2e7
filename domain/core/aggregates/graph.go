package aggregates

import (
	"math"
	"time"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	pkgerrors "graphcanvas/pkg/errors"
)

// Graph is the aggregate root for the editor's data store: the single source
// of truth for nodes, edges and the current selection. Node and edge order is
// insertion order, so rendering and hit-testing stay deterministic.
//
// All access is single-threaded by contract (simulation ticks and pointer
// events share one logical thread); hosts on multi-threaded runtimes must
// serialize access through a single owner.
type Graph struct {
	cfg *config.DomainConfig

	nodes     []*entities.Node
	nodesByID map[string]*entities.Node
	edges     []*entities.Edge
	edgesByID map[string]*entities.Edge

	selectedID valueobjects.NodeID

	updatedAt time.Time
	version   int

	listeners []func()
	events    []events.DomainEvent
}

// NewGraph creates an empty graph store
func NewGraph(cfg *config.DomainConfig) *Graph {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Graph{
		cfg:       cfg,
		nodesByID: make(map[string]*entities.Node),
		edgesByID: make(map[string]*entities.Edge),
		updatedAt: time.Now(),
	}
}

// Load replaces the graph contents with host-supplied data. Every edge must
// resolve to nodes present in the node collection; a dangling reference
// rejects the whole load so invalid references never reach the simulation.
func (g *Graph) Load(nodes []*entities.Node, edges []*entities.Edge) error {
	nodesByID := make(map[string]*entities.Node, len(nodes))
	for _, node := range nodes {
		if _, exists := nodesByID[node.ID().String()]; exists {
			return pkgerrors.NewConflictError("duplicate node id " + node.ID().String())
		}
		nodesByID[node.ID().String()] = node
	}

	edgesByID := make(map[string]*entities.Edge, len(edges))
	for _, edge := range edges {
		if _, exists := edgesByID[edge.ID()]; exists {
			return pkgerrors.NewConflictError("duplicate edge id " + edge.ID())
		}
		source, ok := nodesByID[edge.SourceID().String()]
		if !ok {
			return pkgerrors.NewInvalidReferenceError(edge.ID(), edge.SourceID().String())
		}
		target, ok := nodesByID[edge.TargetID().String()]
		if !ok {
			return pkgerrors.NewInvalidReferenceError(edge.ID(), edge.TargetID().String())
		}
		if err := edge.Resolve(source, target); err != nil {
			return err
		}
		edgesByID[edge.ID()] = edge
	}

	g.nodes = nodes
	g.nodesByID = nodesByID
	g.edges = edges
	g.edgesByID = edgesByID

	// Selection survives a reload only if the node still exists
	if !g.selectedID.IsZero() {
		if _, ok := nodesByID[g.selectedID.String()]; !ok {
			g.clearSelectionState()
		}
	}

	g.touch()
	return nil
}

// AddNode inserts a node into the graph
func (g *Graph) AddNode(node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}
	if len(g.nodes) >= g.cfg.MaxNodesPerGraph {
		return pkgerrors.NewValidationError("graph has reached maximum node count")
	}
	if _, exists := g.nodesByID[node.ID().String()]; exists {
		return pkgerrors.NewConflictError("node " + node.ID().String() + " already exists")
	}

	g.nodes = append(g.nodes, node)
	g.nodesByID[node.ID().String()] = node
	g.addEvent(events.NewNodeAdded(node.ID(), node.Type(), node.Label(), time.Now()))
	g.touch()
	return nil
}

// AddEdge attaches an edge, resolving its endpoints to live nodes. A second
// edge of the same type between the same ordered pair is rejected.
func (g *Graph) AddEdge(edge *entities.Edge) error {
	if edge == nil {
		return pkgerrors.NewValidationError("edge cannot be nil")
	}
	if len(g.edges) >= g.cfg.MaxEdgesPerGraph {
		return pkgerrors.NewValidationError("graph has reached maximum edge count")
	}
	if _, exists := g.edgesByID[edge.ID()]; exists {
		return pkgerrors.NewConflictError("edge " + edge.ID() + " already exists")
	}
	if !g.cfg.AllowSelfConnections && edge.SourceID().Equals(edge.TargetID()) {
		return pkgerrors.NewValidationError("self connections are not allowed")
	}

	source, ok := g.nodesByID[edge.SourceID().String()]
	if !ok {
		return pkgerrors.NewInvalidReferenceError(edge.ID(), edge.SourceID().String())
	}
	target, ok := g.nodesByID[edge.TargetID().String()]
	if !ok {
		return pkgerrors.NewInvalidReferenceError(edge.ID(), edge.TargetID().String())
	}

	for _, existing := range g.EdgesBetween(edge.SourceID(), edge.TargetID()) {
		if existing.Type() == edge.Type() {
			return pkgerrors.NewConflictError(
				"edge of type " + edge.Type() + " already exists between " +
					edge.SourceID().String() + " and " + edge.TargetID().String())
		}
	}

	if err := edge.Resolve(source, target); err != nil {
		return err
	}

	g.edges = append(g.edges, edge)
	g.edgesByID[edge.ID()] = edge
	g.touch()
	return nil
}

// RemoveNode deletes a node and every edge incident to it. If the node was
// selected, the selection is cleared.
func (g *Graph) RemoveNode(nodeID valueobjects.NodeID) error {
	node, ok := g.nodesByID[nodeID.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + nodeID.String())
	}

	kept := g.edges[:0]
	for _, edge := range g.edges {
		if edge.SourceID().Equals(nodeID) || edge.TargetID().Equals(nodeID) {
			delete(g.edgesByID, edge.ID())
			g.addEvent(events.NewEdgeRemoved(edge.ID(), time.Now()))
			continue
		}
		kept = append(kept, edge)
	}
	g.edges = kept

	for i, n := range g.nodes {
		if n == node {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	delete(g.nodesByID, nodeID.String())
	g.addEvent(events.NewNodeRemoved(nodeID, time.Now()))

	if g.selectedID.Equals(nodeID) {
		g.clearSelectionState()
	}

	g.touch()
	return nil
}

// RemoveEdge deletes a single edge by id
func (g *Graph) RemoveEdge(edgeID string) error {
	if _, ok := g.edgesByID[edgeID]; !ok {
		return pkgerrors.NewNotFoundError("edge " + edgeID)
	}
	for i, edge := range g.edges {
		if edge.ID() == edgeID {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
	delete(g.edgesByID, edgeID)
	g.addEvent(events.NewEdgeRemoved(edgeID, time.Now()))
	g.touch()
	return nil
}

// Node returns the node with the given id
func (g *Graph) Node(nodeID valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := g.nodesByID[nodeID.String()]
	return node, ok
}

// HasNode reports whether a node with the given id exists
func (g *Graph) HasNode(nodeID valueobjects.NodeID) bool {
	_, ok := g.nodesByID[nodeID.String()]
	return ok
}

// Nodes returns the nodes in insertion order. The slice is shared; callers
// must not mutate it.
func (g *Graph) Nodes() []*entities.Node {
	return g.nodes
}

// Edges returns the edges in insertion order. The slice is shared; callers
// must not mutate it.
func (g *Graph) Edges() []*entities.Edge {
	return g.edges
}

// EdgesBetween returns the edges whose ordered (source, target) pair matches
// exactly; reversed edges are not included
func (g *Graph) EdgesBetween(sourceID, targetID valueobjects.NodeID) []*entities.Edge {
	var result []*entities.Edge
	for _, edge := range g.edges {
		if edge.SourceID().Equals(sourceID) && edge.TargetID().Equals(targetID) {
			result = append(result, edge)
		}
	}
	return result
}

// UpdateNodeDetails edits a node's label and properties in place. Going
// through the aggregate keeps version bumps and change notification in one
// place, which the panel sync relies on.
func (g *Graph) UpdateNodeDetails(nodeID valueobjects.NodeID, label string, properties valueobjects.Properties) error {
	node, ok := g.nodesByID[nodeID.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + nodeID.String())
	}
	node.UpdateDetails(label, properties)
	g.touch()
	return nil
}

// Position ownership: both the simulation and the drag handler route writes
// through these methods rather than mutating node fields themselves.

// SetNodePosition moves a node as a deliberate action (host command or gesture)
func (g *Graph) SetNodePosition(nodeID valueobjects.NodeID, position valueobjects.Position) error {
	node, ok := g.nodesByID[nodeID.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + nodeID.String())
	}
	if err := node.MoveTo(position); err != nil {
		return err
	}
	g.touch()
	return nil
}

// PinNode fixes a node's position for the duration of a drag
func (g *Graph) PinNode(nodeID valueobjects.NodeID, position valueobjects.Position) error {
	node, ok := g.nodesByID[nodeID.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + nodeID.String())
	}
	return node.Pin(position)
}

// UnpinNode releases a pinned node back into free simulation
func (g *Graph) UnpinNode(nodeID valueobjects.NodeID) error {
	node, ok := g.nodesByID[nodeID.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + nodeID.String())
	}
	node.Unpin()
	return nil
}

// UnpinAll releases every pinned node. Used when a gesture is cancelled so no
// orphaned pins survive.
func (g *Graph) UnpinAll() {
	for _, node := range g.nodes {
		node.Unpin()
	}
}

// Selection

// Select makes the given node the current selection (at most one at a time)
func (g *Graph) Select(nodeID valueobjects.NodeID) error {
	if _, ok := g.nodesByID[nodeID.String()]; !ok {
		return pkgerrors.NewNotFoundError("node " + nodeID.String())
	}
	if g.selectedID.Equals(nodeID) {
		return nil
	}
	g.selectedID = nodeID
	g.addEvent(events.NewNodeSelected(nodeID, time.Now()))
	g.touch()
	return nil
}

// ClearSelection empties the current selection
func (g *Graph) ClearSelection() {
	if g.selectedID.IsZero() {
		return
	}
	g.clearSelectionState()
	g.touch()
}

func (g *Graph) clearSelectionState() {
	previous := g.selectedID
	g.selectedID = valueobjects.NodeID{}
	g.addEvent(events.NewSelectionCleared(previous, time.Now()))
}

// SelectedID returns the id of the selected node, zero when none
func (g *Graph) SelectedID() valueobjects.NodeID {
	return g.selectedID
}

// SelectedNode returns the selected node when one exists
func (g *Graph) SelectedNode() (*entities.Node, bool) {
	if g.selectedID.IsZero() {
		return nil, false
	}
	node, ok := g.nodesByID[g.selectedID.String()]
	return node, ok
}

// Hit testing

// NodeAt returns the topmost (last-inserted) placed node whose circle of the
// given radius contains the model-space point, or nil
func (g *Graph) NodeAt(x, y, radius float64) *entities.Node {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		node := g.nodes[i]
		if !node.IsPlaced() {
			continue
		}
		dx := x - node.Position().X()
		dy := y - node.Position().Y()
		if dx*dx+dy*dy <= radius*radius {
			return node
		}
	}
	return nil
}

// EdgeAt returns the first edge whose segment passes within tolerance of the
// model-space point, or nil
func (g *Graph) EdgeAt(x, y, tolerance float64) *entities.Edge {
	for _, edge := range g.edges {
		if !edge.IsResolved() {
			continue
		}
		s, t := edge.Source().Position(), edge.Target().Position()
		if !s.IsPlaced() || !t.IsPlaced() {
			continue
		}
		if pointSegmentDistance(x, y, s.X(), s.Y(), t.X(), t.Y()) <= tolerance {
			return edge
		}
	}
	return nil
}

// pointSegmentDistance returns the distance from point p to segment ab
func pointSegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	abx, aby := bx-ax, by-ay
	apx, apy := px-ax, py-ay
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*abx), py-(ay+t*aby))
}

// Statistics

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Density returns edges / possible directed edges, 0 for graphs below 2 nodes
func (g *Graph) Density() float64 {
	n := len(g.nodes)
	if n < 2 {
		return 0
	}
	return float64(len(g.edges)) / float64(n*(n-1))
}

// Version returns a counter bumped on every mutation; consumers use it to
// detect change between reads
func (g *Graph) Version() int {
	return g.version
}

// UpdatedAt returns the time of the last mutation
func (g *Graph) UpdatedAt() time.Time {
	return g.updatedAt
}

// OnChange registers a listener invoked after every mutation. Listeners run
// synchronously on the mutating call; panel sync and the layout engine
// subscribe here.
func (g *Graph) OnChange(listener func()) {
	g.listeners = append(g.listeners, listener)
}

func (g *Graph) touch() {
	g.version++
	g.updatedAt = time.Now()
	for _, listener := range g.listeners {
		listener()
	}
}

// Events

// addEvent records an aggregate-level domain event
func (g *Graph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}

// DrainEvents returns and clears all pending domain events, including those
// recorded by the contained entities
func (g *Graph) DrainEvents() []events.DomainEvent {
	drained := g.events
	g.events = nil
	for _, node := range g.nodes {
		drained = append(drained, node.DrainEvents()...)
	}
	for _, edge := range g.edges {
		drained = append(drained, edge.DrainEvents()...)
	}
	return drained
}
