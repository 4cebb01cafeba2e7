package layout

import (
	"math"

	"go.uber.org/zap"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
)

// Simulation is the force layout engine. It reads and writes node positions
// through the graph store and nothing else: edge existence and node metadata
// belong to other owners.
//
// Ticks are strictly sequential; each tick reads the positions the previous
// tick wrote. The engine cools geometrically and stops ticking once alpha
// falls below the configured minimum, and must be reheated explicitly by
// events that should wake the layout (a drag start, a structural change).
type Simulation struct {
	cfg    *config.DomainConfig
	graph  *aggregates.Graph
	logger *zap.Logger

	width  float64
	height float64

	alpha       float64
	alphaTarget float64
	running     bool
	tick        int

	forces []Force
}

// NewSimulation creates a layout engine over the graph store
func NewSimulation(graph *aggregates.Graph, cfg *config.DomainConfig, logger *zap.Logger) *Simulation {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulation{
		cfg:    cfg,
		graph:  graph,
		logger: logger,
	}
}

// SetDimensions updates the viewport geometry the centering forces aim at
func (s *Simulation) SetDimensions(width, height float64) error {
	if err := validateDimensions(width, height); err != nil {
		return err
	}
	s.width = width
	s.height = height
	s.Rebuild()
	return nil
}

// Start seeds unplaced nodes, builds the force set and begins ticking.
// Starting against degenerate geometry (no viewport, no nodes) is rejected so
// the distance math never runs on undefined input.
func (s *Simulation) Start() error {
	if err := validateDimensions(s.width, s.height); err != nil {
		return err
	}
	if s.graph.NodeCount() == 0 {
		return pkgerrors.NewDegenerateGeometryError("cannot start layout with zero nodes")
	}

	s.seedUnplaced()
	s.Rebuild()
	s.alpha = s.cfg.InitialAlpha
	s.alphaTarget = 0
	s.running = true
	s.tick = 0

	s.logger.Debug("layout started",
		zap.Int("nodes", s.graph.NodeCount()),
		zap.Int("edges", s.graph.EdgeCount()))
	return nil
}

// Rebuild re-snapshots the node and edge sets into the force pipeline. Called
// after structural changes; positions are read live so nothing else is stale.
func (s *Simulation) Rebuild() {
	nodes := s.graph.Nodes()
	s.forces = []Force{
		&linkForce{edges: s.graph.Edges(), distance: s.cfg.LinkDistance, strength: s.cfg.LinkStrength},
		&chargeForce{nodes: nodes, strength: s.cfg.ChargeStrength},
		&centerForce{nodes: nodes, cx: s.width / 2, cy: s.height / 2, strength: s.cfg.CenterStrength},
		&axisForce{nodes: nodes, cx: s.width / 2, cy: s.height / 2, strength: s.cfg.AxisStrength},
		&collisionForce{nodes: nodes, radius: s.cfg.NodeRadius + s.cfg.CollisionMargin},
	}
}

// Step advances the simulation by one tick. It returns false once the engine
// has cooled below the minimum alpha and gone idle.
func (s *Simulation) Step() bool {
	if !s.running {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay
	if s.alpha < s.cfg.AlphaMin && s.alphaTarget < s.cfg.AlphaMin {
		s.running = false
		s.logger.Debug("layout reached equilibrium", zap.Int("ticks", s.tick))
		return false
	}

	for _, force := range s.forces {
		force.Apply(s.alpha)
	}
	for _, node := range s.graph.Nodes() {
		node.Advance(s.cfg.VelocityDecay)
	}
	s.tick++
	return true
}

// Reheat raises the energy target and restarts ticking. Used when a drag
// starts or the structure changes while the layout is idle.
func (s *Simulation) Reheat() {
	s.alphaTarget = s.cfg.ReheatAlpha
	if s.alpha < s.cfg.ReheatAlpha {
		s.alpha = s.cfg.ReheatAlpha
	}
	if !s.running {
		s.running = true
		s.logger.Debug("layout reheated")
	}
}

// Cool lowers the energy target back to zero so the layout settles. Called
// when a drag ends.
func (s *Simulation) Cool() {
	s.alphaTarget = 0
}

// Stop halts ticking immediately. Used on editor shutdown.
func (s *Simulation) Stop() {
	s.running = false
}

// IsRunning reports whether the engine is still ticking
func (s *Simulation) IsRunning() bool {
	return s.running
}

// Alpha returns the current energy level
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Tick returns the number of ticks since the last Start
func (s *Simulation) Tick() int {
	return s.tick
}

// seedUnplaced assigns a deterministic phyllotaxis position around the
// viewport center to every node the host supplied without coordinates, so
// distance calculations are defined from the first tick
func (s *Simulation) seedUnplaced() {
	const goldenAngle = math.Pi * (3 - 2.2360679774997896) // 3 - sqrt(5)
	cx, cy := s.width/2, s.height/2
	spacing := s.cfg.NodeRadius * 1.5

	for i, node := range s.graph.Nodes() {
		if node.IsPlaced() {
			continue
		}
		radius := spacing * math.Sqrt(0.5+float64(i))
		angle := float64(i) * goldenAngle
		position, err := valueobjects.NewPosition(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
		if err != nil {
			continue
		}
		node.Seed(position)
	}
}

func validateDimensions(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return pkgerrors.NewDegenerateGeometryError("viewport dimensions are not finite")
	}
	if width <= 0 || height <= 0 {
		return pkgerrors.NewDegenerateGeometryError("viewport has no visible area")
	}
	return nil
}
