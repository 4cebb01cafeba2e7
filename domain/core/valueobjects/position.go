package valueobjects

import (
	"encoding/json"
	"fmt"
	"math"
)

// Position is a value object for a point in model (graph) space
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position, rejecting NaN and infinite coordinates.
// Coordinates like these must never reach the distance math in the layout
// engine, so they are stopped at construction.
func NewPosition(x, y float64) (Position, error) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return Position{}, fmt.Errorf("position coordinates cannot be NaN")
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Position{}, fmt.Errorf("position coordinates cannot be infinite")
	}
	return Position{x: x, y: y}, nil
}

// UnplacedPosition returns the sentinel position for a node the host supplied
// without coordinates; the layout engine seeds it before the first tick.
func UnplacedPosition() Position {
	return Position{x: math.NaN(), y: math.NaN()}
}

// X returns the horizontal coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the vertical coordinate
func (p Position) Y() float64 {
	return p.y
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	return p.x == other.x && p.y == other.y
}

// IsPlaced reports whether the position holds finite coordinates
func (p Position) IsPlaced() bool {
	return !math.IsNaN(p.x) && !math.IsNaN(p.y) &&
		!math.IsInf(p.x, 0) && !math.IsInf(p.y, 0)
}

// Translated returns the position shifted by (dx, dy)
func (p Position) Translated(dx, dy float64) Position {
	return Position{x: p.x + dx, y: p.y + dy}
}

// MarshalJSON implements json.Marshaler
func (p Position) MarshalJSON() ([]byte, error) {
	if !p.IsPlaced() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}{p.x, p.y})
}

// DistanceTo returns the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := other.x - p.x
	dy := other.y - p.y
	return math.Sqrt(dx*dx + dy*dy)
}
