package viewport

// Transform maps model (graph) coordinates to screen coordinates. Scale is
// kept within the configured bounds by the controller; the zero value is not
// usable, start from Identity.
type Transform struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Scale      float64 `json:"scale"`
}

// Identity returns the transform that maps model space onto screen space
// unchanged
func Identity() Transform {
	return Transform{Scale: 1}
}

// ToScreen converts a model-space point to screen space
func (t Transform) ToScreen(x, y float64) (sx, sy float64) {
	return x*t.Scale + t.TranslateX, y*t.Scale + t.TranslateY
}

// ToModel converts a screen-space point to model space
func (t Transform) ToModel(sx, sy float64) (x, y float64) {
	return (sx - t.TranslateX) / t.Scale, (sy - t.TranslateY) / t.Scale
}

// Translated returns the transform shifted by a screen-space delta
func (t Transform) Translated(dx, dy float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return t
}
