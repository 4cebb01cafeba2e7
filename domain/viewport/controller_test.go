package viewport

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
)

func placedNode(t *testing.T, id string, x, y float64) *entities.Node {
	t.Helper()
	nodeID, err := valueobjects.NewNodeIDFromString(id)
	require.NoError(t, err)
	node, err := entities.NewNode(nodeID, id, "concept", valueobjects.EmptyProperties())
	require.NoError(t, err)
	position, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	node.Seed(position)
	return node
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(nil)
	require.NoError(t, c.SetDimensions(800, 600))
	return c
}

func TestTransform_RoundTrip(t *testing.T) {
	tr := Transform{TranslateX: 120, TranslateY: -40, Scale: 1.7}

	sx, sy := tr.ToScreen(33, 44)
	x, y := tr.ToModel(sx, sy)

	assert.InDelta(t, 33, x, 1e-9)
	assert.InDelta(t, 44, y, 1e-9)
}

func TestController_ZoomIn_KeepsCenterFixed(t *testing.T) {
	c := newTestController(t)
	c.Pan(37, -18)

	beforeX, beforeY := c.Transform().ToModel(400, 300)
	c.ZoomIn()
	afterX, afterY := c.Transform().ToModel(400, 300)

	assert.InDelta(t, beforeX, afterX, 1e-9)
	assert.InDelta(t, beforeY, afterY, 1e-9)
	assert.InDelta(t, 1.3, c.Transform().Scale, 1e-9)
}

func TestController_ZoomAt_KeepsCursorPointFixed(t *testing.T) {
	c := newTestController(t)

	beforeX, beforeY := c.Transform().ToModel(150, 520)
	c.ZoomAt(150, 520, 1.3)
	afterX, afterY := c.Transform().ToModel(150, 520)

	assert.InDelta(t, beforeX, afterX, 1e-9)
	assert.InDelta(t, beforeY, afterY, 1e-9)
}

func TestController_ZoomDisabledByConfig(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.EnableZoom = false
	c := NewController(cfg)
	require.NoError(t, c.SetDimensions(800, 600))

	c.ZoomAt(400, 300, 1.3)

	assert.Equal(t, Identity(), c.Transform())
	assert.False(t, c.AcceptsGesture(false, true, false))
}

func TestController_PanComposes(t *testing.T) {
	c := newTestController(t)

	c.Pan(10, 20)
	c.Pan(-4, 6)

	assert.InDelta(t, 6, c.Transform().TranslateX, 1e-9)
	assert.InDelta(t, 26, c.Transform().TranslateY, 1e-9)
}

func TestController_Reset(t *testing.T) {
	c := newTestController(t)
	c.Pan(100, 100)
	c.ZoomIn()

	c.Reset()

	assert.Equal(t, Identity(), c.Transform())
}

func TestController_FitToContent_CentersSingleNode(t *testing.T) {
	c := newTestController(t)
	node := placedNode(t, "a", 100, 100)

	require.NoError(t, c.FitToContent([]*entities.Node{node}))

	sx, sy := c.Transform().ToScreen(100, 100)
	assert.InDelta(t, 400, sx, 1e-6)
	assert.InDelta(t, 300, sy, 1e-6)
}

func TestController_FitToContent_Idempotent(t *testing.T) {
	c := newTestController(t)
	nodes := []*entities.Node{
		placedNode(t, "a", -200, 50),
		placedNode(t, "b", 900, 700),
		placedNode(t, "c", 300, -100),
	}

	require.NoError(t, c.FitToContent(nodes))
	first := c.Transform()
	require.NoError(t, c.FitToContent(nodes))

	assert.Equal(t, first, c.Transform())
}

func TestController_FitToContent_ContentInsideViewport(t *testing.T) {
	c := newTestController(t)
	nodes := []*entities.Node{
		placedNode(t, "a", -900, -900),
		placedNode(t, "b", 900, 900),
	}

	require.NoError(t, c.FitToContent(nodes))

	for _, node := range nodes {
		sx, sy := c.Transform().ToScreen(node.Position().X(), node.Position().Y())
		assert.GreaterOrEqual(t, sx, 0.0)
		assert.LessOrEqual(t, sx, 800.0)
		assert.GreaterOrEqual(t, sy, 0.0)
		assert.LessOrEqual(t, sy, 600.0)
	}
}

func TestController_FitToContent_RejectsNoPlacedNodes(t *testing.T) {
	c := newTestController(t)

	assert.Error(t, c.FitToContent(nil))

	nodeID, err := valueobjects.NewNodeIDFromString("a")
	require.NoError(t, err)
	unplaced, err := entities.NewNode(nodeID, "a", "concept", valueobjects.EmptyProperties())
	require.NoError(t, err)
	assert.Error(t, c.FitToContent([]*entities.Node{unplaced}))
}

func TestController_AcceptsGesture(t *testing.T) {
	c := newTestController(t)

	// Background drag pans, node drag does not
	assert.True(t, c.AcceptsGesture(false, false, false))
	assert.False(t, c.AcceptsGesture(true, false, false))

	// Wheel and modifier gestures always zoom, even over a node
	assert.True(t, c.AcceptsGesture(true, true, false))
	assert.True(t, c.AcceptsGesture(true, false, true))
}

func TestController_ScaleBoundInvariant(t *testing.T) {
	cfg := config.DefaultDomainConfig()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("scale stays within bounds for any zoom sequence", prop.ForAll(
		func(zoomIns []bool) bool {
			c := NewController(cfg)
			if err := c.SetDimensions(800, 600); err != nil {
				return false
			}
			for _, in := range zoomIns {
				if in {
					c.ZoomIn()
				} else {
					c.ZoomOut()
				}
				s := c.Transform().Scale
				if s < cfg.MinScale || s > cfg.MaxScale {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("cursor zoom respects bounds", prop.ForAll(
		func(sx, sy float64, factors []bool) bool {
			c := NewController(cfg)
			if err := c.SetDimensions(800, 600); err != nil {
				return false
			}
			for _, in := range factors {
				factor := cfg.ZoomOutFactor
				if in {
					factor = cfg.ZoomInFactor
				}
				c.ZoomAt(sx, sy, factor)
				s := c.Transform().Scale
				if s < cfg.MinScale || s > cfg.MaxScale {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 800),
		gen.Float64Range(0, 600),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
