package render

import "github.com/vovakirdan/neon-pong/internal/core"

type point struct{ x, y float64 }

// Trail remembers the last few ball positions, oldest first.
type Trail struct {
	points []point
	max    int
}

// NewTrail creates a trail holding up to length positions.
func NewTrail(length int) *Trail {
	return &Trail{max: max(length, 0)}
}

// Push records a position, dropping the oldest one when full.
func (t *Trail) Push(x, y float64) {
	if t.max == 0 {
		return
	}
	if len(t.points) == t.max {
		copy(t.points, t.points[1:])
		t.points = t.points[:len(t.points)-1]
	}
	t.points = append(t.points, point{x, y})
}

// Clear forgets all positions.
func (t *Trail) Clear() { t.points = t.points[:0] }

// Len returns the number of stored positions.
func (t *Trail) Len() int { return len(t.points) }

// Draw renders the trail with the newest half brighter than the rest.
// The newest point is skipped since the ball itself is drawn there.
func (t *Trail) Draw(dst *core.Screen, fieldW, fieldH float64) {
	if len(t.points) < 2 {
		return
	}
	v := core.NewViewport(fieldW, fieldH, dst.Width(), dst.Height())
	n := len(t.points) - 1
	for i, p := range t.points[:n] {
		glyph, fg := '·', core.ColorStarDim
		if i >= n/2 {
			glyph, fg = '•', core.ColorTrail
		}
		dst.SetColored(v.Col(p.x), v.Row(p.y), glyph, fg)
	}
}
