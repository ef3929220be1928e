// Package core provides fundamental types and utilities shared by the game,
// the renderer and the terminal host. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an integer axis-aligned box in screen cells.
// Menus use it for mouse hit testing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Box is a float axis-aligned box in playfield units, described by its
// center and half extents. The playfield has y pointing up.
type Box struct {
	CX, CY float64
	HW, HH float64
}

// BoxAt builds a box from center and full width/height.
func BoxAt(cx, cy, w, h float64) Box {
	return Box{CX: cx, CY: cy, HW: w / 2, HH: h / 2}
}

// Left returns the left edge.
func (b Box) Left() float64 { return b.CX - b.HW }

// Right returns the right edge.
func (b Box) Right() float64 { return b.CX + b.HW }

// Bottom returns the lower edge.
func (b Box) Bottom() float64 { return b.CY - b.HH }

// Top returns the upper edge.
func (b Box) Top() float64 { return b.CY + b.HH }

// Overlaps reports whether two boxes share any area. Touching edges count.
func (b Box) Overlaps(o Box) bool {
	if b.Right() < o.Left() || o.Right() < b.Left() {
		return false
	}
	if b.Top() < o.Bottom() || o.Top() < b.Bottom() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
