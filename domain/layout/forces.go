package layout

import (
	"math"

	"graphcanvas/domain/core/entities"
)

// Force applies one acceleration rule to the current node set for a tick.
// Forces accumulate velocity through the node's ApplyForce method; the
// collision force is the exception and separates overlapping nodes
// positionally through Nudge.
type Force interface {
	Apply(alpha float64)
}

// linkForce pulls connected node pairs toward a rest distance
type linkForce struct {
	edges    []*entities.Edge
	distance float64
	strength float64
}

func (f *linkForce) Apply(alpha float64) {
	for _, edge := range f.edges {
		source, target := edge.Source(), edge.Target()
		if source == nil || target == nil {
			continue
		}
		sp, tp := source.Position(), target.Position()
		dx := tp.X() - sp.X()
		dy := tp.Y() - sp.Y()
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 1e-6 {
			dx, dy, dist = jiggle(edge.ID())
		}
		// Positive when the pair is stretched past the rest distance
		pull := (dist - f.distance) / dist * f.strength * alpha * 0.5
		source.ApplyForce(dx*pull, dy*pull)
		target.ApplyForce(-dx*pull, -dy*pull)
	}
}

// chargeForce is pairwise repulsion keeping unrelated nodes apart
type chargeForce struct {
	nodes    []*entities.Node
	strength float64
}

func (f *chargeForce) Apply(alpha float64) {
	for i := 0; i < len(f.nodes); i++ {
		for j := i + 1; j < len(f.nodes); j++ {
			a, b := f.nodes[i], f.nodes[j]
			ap, bp := a.Position(), b.Position()
			dx := bp.X() - ap.X()
			dy := bp.Y() - ap.Y()
			distSq := dx*dx + dy*dy
			if distSq < 1e-6 {
				dx, dy, _ = jiggle(a.ID().String() + b.ID().String())
				distSq = dx*dx + dy*dy
			}
			// Clamping the distance keeps near-coincident nodes from
			// receiving an explosive impulse on a single tick
			if distSq < 100 {
				distSq = 100
			}
			push := f.strength * alpha / distSq
			a.ApplyForce(dx*push, dy*push)
			b.ApplyForce(-dx*push, -dy*push)
		}
	}
}

// centerForce is a weak attraction toward the viewport center preventing
// runaway drift of the whole layout
type centerForce struct {
	nodes    []*entities.Node
	cx, cy   float64
	strength float64
}

func (f *centerForce) Apply(alpha float64) {
	for _, node := range f.nodes {
		p := node.Position()
		node.ApplyForce((f.cx-p.X())*f.strength*alpha, (f.cy-p.Y())*f.strength*alpha)
	}
}

// axisForce pulls each coordinate independently toward the center axes so
// nodes stay in the visible area without a rigid clamp
type axisForce struct {
	nodes    []*entities.Node
	cx, cy   float64
	strength float64
}

func (f *axisForce) Apply(alpha float64) {
	for _, node := range f.nodes {
		p := node.Position()
		node.ApplyForce((f.cx-p.X())*f.strength*alpha, 0)
		node.ApplyForce(0, (f.cy-p.Y())*f.strength*alpha)
	}
}

// collisionForce enforces hard radius separation so rendered circles never
// overlap. It moves positions directly rather than accumulating velocity.
type collisionForce struct {
	nodes  []*entities.Node
	radius float64
}

func (f *collisionForce) Apply(alpha float64) {
	minDist := f.radius * 2
	for i := 0; i < len(f.nodes); i++ {
		for j := i + 1; j < len(f.nodes); j++ {
			a, b := f.nodes[i], f.nodes[j]
			ap, bp := a.Position(), b.Position()
			dx := bp.X() - ap.X()
			dy := bp.Y() - ap.Y()
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= minDist {
				continue
			}
			if dist < 1e-6 {
				dx, dy, dist = jiggle(a.ID().String() + b.ID().String())
			}
			overlap := (minDist - dist) / dist * 0.5
			a.Nudge(-dx*overlap, -dy*overlap)
			b.Nudge(dx*overlap, dy*overlap)
		}
	}
}

// jiggle derives a tiny deterministic offset for coincident points so the
// direction of separation is stable across runs
func jiggle(seed string) (dx, dy, dist float64) {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(seed); i++ {
		h ^= uint64(seed[i])
		h *= 1099511628211
	}
	angle := float64(h%3600) / 3600 * 2 * math.Pi
	dx = math.Cos(angle) * 1e-4
	dy = math.Sin(angle) * 1e-4
	return dx, dy, 1e-4
}
