package config

import "time"

// DomainConfig holds all configurable editor rules and simulation constants
type DomainConfig struct {
	// Node rendering geometry
	NodeRadius      float64
	CollisionMargin float64

	// Force layout
	LinkDistance   float64
	LinkStrength   float64
	ChargeStrength float64
	CenterStrength float64
	AxisStrength   float64
	VelocityDecay  float64
	InitialAlpha   float64
	AlphaMin       float64
	AlphaDecay     float64
	ReheatAlpha    float64

	// Viewport
	MinScale      float64
	MaxScale      float64
	ZoomInFactor  float64
	ZoomOutFactor float64
	FitPadding    float64

	// Gesture classification. Distance is the primary click-vs-drag signal;
	// duration only breaks ties inside the ambiguity band between the two
	// distance thresholds.
	ClickDistancePx    float64
	DragDistancePx     float64
	ClickMaxDuration   time.Duration
	EdgeHitTolerancePx float64

	// Graph constraints
	MaxNodesPerGraph     int
	MaxEdgesPerGraph     int
	AllowSelfConnections bool

	// Feature flags
	ShowLabels bool
	EnableZoom bool
	EnableDrag bool
}

// DefaultDomainConfig returns the default editor configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		NodeRadius:      30,
		CollisionMargin: 8,

		LinkDistance:   120,
		LinkStrength:   0.7,
		ChargeStrength: -300,
		CenterStrength: 0.05,
		AxisStrength:   0.04,
		VelocityDecay:  0.6,
		InitialAlpha:   1.0,
		AlphaMin:       0.001,
		AlphaDecay:     0.0228, // ~300 ticks from alpha 1 to alphaMin
		ReheatAlpha:    0.3,

		MinScale:      0.1,
		MaxScale:      4.0,
		ZoomInFactor:  1.3,
		ZoomOutFactor: 0.7,
		FitPadding:    0.9,

		ClickDistancePx:    5,
		DragDistancePx:     8,
		ClickMaxDuration:   250 * time.Millisecond,
		EdgeHitTolerancePx: 6,

		MaxNodesPerGraph:     10000,
		MaxEdgesPerGraph:     50000,
		AllowSelfConnections: false,

		ShowLabels: true,
		EnableZoom: true,
		EnableDrag: true,
	}
}
