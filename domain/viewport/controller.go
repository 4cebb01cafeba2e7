package viewport

import (
	"math"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/entities"
	pkgerrors "graphcanvas/pkg/errors"
)

// Controller owns the viewport transform. Pan and zoom always compose with
// the current transform; only Reset and FitToContent replace it outright.
type Controller struct {
	cfg *config.DomainConfig

	width  float64
	height float64

	transform Transform
}

// NewController creates a controller with the identity transform
func NewController(cfg *config.DomainConfig) *Controller {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Controller{cfg: cfg, transform: Identity()}
}

// SetDimensions updates the viewport size used for anchoring and fitting
func (c *Controller) SetDimensions(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || width <= 0 || height <= 0 {
		return pkgerrors.NewDegenerateGeometryError("viewport has no visible area")
	}
	c.width = width
	c.height = height
	return nil
}

// Transform returns the current viewport transform
func (c *Controller) Transform() Transform {
	return c.transform
}

// ZoomIn zooms by the configured step factor, anchored on the viewport center
func (c *Controller) ZoomIn() {
	c.zoomAnchored(c.width/2, c.height/2, c.cfg.ZoomInFactor)
}

// ZoomOut zooms out by the configured step factor, anchored on the viewport
// center
func (c *Controller) ZoomOut() {
	c.zoomAnchored(c.width/2, c.height/2, c.cfg.ZoomOutFactor)
}

// ZoomAt zooms by an arbitrary factor anchored on a screen point, so the
// model point under the cursor stays put. Wheel input lands here.
func (c *Controller) ZoomAt(sx, sy, factor float64) {
	if !c.cfg.EnableZoom {
		return
	}
	c.zoomAnchored(sx, sy, factor)
}

func (c *Controller) zoomAnchored(sx, sy, factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	newScale := c.clampScale(c.transform.Scale * factor)
	if newScale == c.transform.Scale {
		return
	}
	// Solve the translate so the model point under the anchor maps back to
	// the same screen point after scaling
	mx, my := c.transform.ToModel(sx, sy)
	c.transform.Scale = newScale
	c.transform.TranslateX = sx - mx*newScale
	c.transform.TranslateY = sy - my*newScale
}

// Pan shifts the viewport by a screen-space delta, composed with the current
// transform
func (c *Controller) Pan(dx, dy float64) {
	c.transform = c.transform.Translated(dx, dy)
}

// Reset restores the identity transform
func (c *Controller) Reset() {
	c.transform = Identity()
}

// FitToContent replaces the transform with one that frames every placed node.
// The bounding box gets a margin of four node radii; the scale never exceeds 1
// so a single node is not blown up to fill the screen.
func (c *Controller) FitToContent(nodes []*entities.Node) error {
	if c.width <= 0 || c.height <= 0 {
		return pkgerrors.NewDegenerateGeometryError("viewport has no visible area")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	placed := 0
	for _, node := range nodes {
		if !node.IsPlaced() {
			continue
		}
		p := node.Position()
		minX = math.Min(minX, p.X())
		minY = math.Min(minY, p.Y())
		maxX = math.Max(maxX, p.X())
		maxY = math.Max(maxY, p.Y())
		placed++
	}
	if placed == 0 {
		return pkgerrors.NewDegenerateGeometryError("no placed nodes to fit")
	}

	margin := c.cfg.NodeRadius * 4
	minX -= margin
	minY -= margin
	maxX += margin
	maxY += margin

	boxWidth := maxX - minX
	boxHeight := maxY - minY

	scale := math.Min(c.width/boxWidth, c.height/boxHeight)
	scale = math.Min(scale, 1) * c.cfg.FitPadding
	scale = c.clampScale(scale)

	// Center the box in the viewport
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	c.transform = Transform{
		Scale:      scale,
		TranslateX: c.width/2 - cx*scale,
		TranslateY: c.height/2 - cy*scale,
	}
	return nil
}

// AcceptsGesture decides whether a continuous pan/zoom gesture may begin.
// Wheel and modifier-key gestures always zoom and cannot conflict with node
// dragging; anything else is refused when it originates on an interactive
// element so node drags win.
func (c *Controller) AcceptsGesture(onInteractive, fromWheel, withModifier bool) bool {
	if fromWheel || withModifier {
		return c.cfg.EnableZoom
	}
	return !onInteractive
}

func (c *Controller) clampScale(scale float64) float64 {
	return math.Max(c.cfg.MinScale, math.Min(c.cfg.MaxScale, scale))
}
