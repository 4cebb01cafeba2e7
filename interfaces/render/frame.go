package render

import (
	"graphcanvas/domain/config"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/interaction"
	"graphcanvas/domain/viewport"
	"graphcanvas/pkg/utils"
)

// FrameState tells the adapter whether there is anything valid to draw
type FrameState string

const (
	// FrameOK means the frame holds drawable content
	FrameOK FrameState = "ok"

	// FrameEmpty means the graph has no placed nodes; the adapter should
	// show an explicit empty state instead of silently drawing nothing
	FrameEmpty FrameState = "empty"
)

// FrameNode is a node ready to draw, in screen coordinates
type FrameNode struct {
	ID          string  `json:"id"`
	Label       string  `json:"label,omitempty"`
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Selected    bool    `json:"selected"`
	Pinned      bool    `json:"pinned"`
	Highlighted bool    `json:"highlighted"`
}

// FrameEdge is an edge ready to draw, in screen coordinates
type FrameEdge struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label,omitempty"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

// TransientLine is the in-progress edge-creation line from the source node to
// the pointer
type TransientLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Frame is one complete render description. It is a pure function of the
// graph, the viewport transform and the interaction state; the adapter keeps
// no state of its own between frames.
type Frame struct {
	State       FrameState     `json:"state"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Scale       float64        `json:"scale"`
	Mode        string         `json:"mode"`
	Nodes       []FrameNode    `json:"nodes"`
	Edges       []FrameEdge    `json:"edges"`
	Line        *TransientLine `json:"line,omitempty"`
	GeneratedAt string         `json:"generated_at"`
}

// Builder assembles frames from the live editor components
type Builder struct {
	cfg     *config.DomainConfig
	graph   *aggregates.Graph
	view    *viewport.Controller
	machine *interaction.Machine

	width  float64
	height float64
}

// NewBuilder creates a frame builder
func NewBuilder(
	graph *aggregates.Graph,
	view *viewport.Controller,
	machine *interaction.Machine,
	cfg *config.DomainConfig,
) *Builder {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Builder{cfg: cfg, graph: graph, view: view, machine: machine}
}

// SetDimensions records the viewport size stamped onto frames
func (b *Builder) SetDimensions(width, height float64) {
	b.width = width
	b.height = height
}

// Build produces the current frame
func (b *Builder) Build() *Frame {
	transform := b.view.Transform()
	frame := &Frame{
		State:       FrameOK,
		Width:       b.width,
		Height:      b.height,
		Scale:       transform.Scale,
		Mode:        string(b.machine.Mode()),
		GeneratedAt: utils.NowRFC3339(),
	}

	edgeDrag := b.machine.EdgeDrag()

	placed := 0
	for _, node := range b.graph.Nodes() {
		if !node.IsPlaced() {
			continue
		}
		placed++
		sx, sy := transform.ToScreen(node.Position().X(), node.Position().Y())
		label := ""
		if b.cfg.ShowLabels {
			label = node.Label()
		}
		frame.Nodes = append(frame.Nodes, FrameNode{
			ID:          node.ID().String(),
			Label:       label,
			Type:        node.Type(),
			X:           sx,
			Y:           sy,
			Radius:      b.cfg.NodeRadius * transform.Scale,
			Selected:    !b.graph.SelectedID().IsZero() && b.graph.SelectedID().Equals(node.ID()),
			Pinned:      node.IsPinned(),
			Highlighted: edgeDrag.Source == node || edgeDrag.Target == node,
		})
	}

	if placed == 0 {
		frame.State = FrameEmpty
		return frame
	}

	for _, edge := range b.graph.Edges() {
		if !edge.IsResolved() {
			continue
		}
		sp, tp := edge.Source().Position(), edge.Target().Position()
		if !sp.IsPlaced() || !tp.IsPlaced() {
			continue
		}
		x1, y1 := transform.ToScreen(sp.X(), sp.Y())
		x2, y2 := transform.ToScreen(tp.X(), tp.Y())
		label := ""
		if b.cfg.ShowLabels {
			label = edge.Label()
		}
		frame.Edges = append(frame.Edges, FrameEdge{
			ID:    edge.ID(),
			Type:  edge.Type(),
			Label: label,
			X1:    x1,
			Y1:    y1,
			X2:    x2,
			Y2:    y2,
		})
	}

	// The transient line only exists while an edge drag is actually drawing
	if edgeDrag.Drawing && edgeDrag.Source != nil && edgeDrag.Source.IsPlaced() {
		x1, y1 := transform.ToScreen(edgeDrag.Source.Position().X(), edgeDrag.Source.Position().Y())
		px, py := b.machine.PointerPosition()
		x2, y2 := transform.ToScreen(px, py)
		frame.Line = &TransientLine{X1: x1, Y1: y1, X2: x2, Y2: y2}
	}

	return frame
}
