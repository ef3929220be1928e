// Package render draws the synthwave backdrop behind the match: a sky
// gradient with twinkling stars, a neon city skyline on the horizon, a
// perspective grid below it and the ball's motion trail.
package render

import (
	"math/rand"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

const (
	// HorizonRatio is the horizon height as a fraction of the field height.
	HorizonRatio = 0.4

	gridVerticals   = 20
	gridHorizontals = 15
	litChance       = 0.7
)

var windowColors = []core.Color{core.ColorNeonCyan, core.ColorNeonPink, core.ColorNeonOrange}

type star struct {
	x, y float64
	size float64
}

type building struct {
	x, width, height float64
	rows, cols       int
	accent           core.Color
	lit              []bool // rows*cols, row-major from the bottom
}

// Background is the static scenery. Star positions and the skyline are
// generated once from the seed; stars twinkle on every Draw.
type Background struct {
	fieldW, fieldH float64
	depth          float64

	stars     []star
	buildings []building

	rng *rand.Rand
}

// NewBackground generates scenery for the playfield described by cfg.
func NewBackground(cfg *settings.GameSettings, seed int64) *Background {
	b := &Background{
		fieldW: float64(cfg.Display.ScreenWidth),
		fieldH: float64(cfg.Display.ScreenHeight),
		depth:  cfg.Visual.GridPerspectiveDepth,
		rng:    rand.New(rand.NewSource(seed)),
	}
	b.generateStars(cfg.Visual.StarCount)
	b.generateBuildings()
	return b
}

func (b *Background) uniform(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}

func (b *Background) intn(lo, hi int) int {
	return lo + b.rng.Intn(hi-lo+1)
}

func (b *Background) generateStars(n int) {
	b.stars = make([]star, 0, n)
	for range n {
		b.stars = append(b.stars, star{
			x:    b.uniform(0, b.fieldW),
			y:    b.uniform(b.fieldH*0.5, b.fieldH),
			size: b.uniform(0.5, 2.5),
		})
	}
}

func (b *Background) generateBuildings() {
	b.buildings = b.buildings[:0]
	for x := 0.0; x < b.fieldW; {
		bl := building{
			x:      x,
			width:  float64(b.intn(60, 120)),
			height: float64(b.intn(80, 200)),
			rows:   b.intn(5, 12),
			cols:   b.intn(3, 6),
			accent: windowColors[b.rng.Intn(len(windowColors))],
		}
		bl.lit = make([]bool, bl.rows*bl.cols)
		for i := range bl.lit {
			bl.lit[i] = b.rng.Float64() < litChance
		}
		b.buildings = append(b.buildings, bl)
		x += bl.width + float64(b.intn(10, 30))
	}
}

// Horizon returns the horizon height in field units.
func (b *Background) Horizon() float64 {
	return b.fieldH * HorizonRatio
}

// Draw paints the whole background onto dst, replacing its contents.
func (b *Background) Draw(dst *core.Screen) {
	dst.Clear()
	v := core.NewViewport(b.fieldW, b.fieldH, dst.Width(), dst.Height())

	b.drawSky(dst, v)
	b.drawStars(dst, v)
	b.drawGrid(dst, v)
	b.drawSkyline(dst, v)
}

func (b *Background) drawSky(dst *core.Screen, v core.Viewport) {
	horizonRow := v.Row(b.Horizon())
	for row := 0; row < dst.Height(); row++ {
		bg := core.ColorSkyTop
		if row < horizonRow {
			idx := row * len(core.SkyGradient) / max(horizonRow, 1)
			bg = core.SkyGradient[min(idx, len(core.SkyGradient)-1)]
		}
		dst.FillBackground(core.NewRect(0, row, dst.Width(), 1), bg)
	}
}

func (b *Background) drawStars(dst *core.Screen, v core.Viewport) {
	for _, s := range b.stars {
		brightness := b.uniform(0.6, 1.0)
		fg := core.ColorStarDim
		if brightness > 0.8 {
			fg = core.ColorStar
		}
		glyph := '·'
		if s.size > 1.5 {
			glyph = '*'
		}
		dst.SetColored(v.Col(s.x), v.Row(s.y), glyph, fg)
	}
}

func (b *Background) drawSkyline(dst *core.Screen, v core.Viewport) {
	horizon := b.Horizon()
	for _, bl := range b.buildings {
		left := v.Col(bl.x)
		right := v.Col(min(bl.x+bl.width, b.fieldW-1))
		top, bottom := v.Span(horizon, horizon+bl.height)
		bottom = max(top, bottom-1) // the horizon row belongs to the grid

		body := core.NewRect(left, top, right-left+1, bottom-top+1)
		dst.DrawRect(body, ' ')
		dst.FillBackground(body, core.ColorCityBase)
		for x := left; x < body.Right(); x++ {
			dst.SetColored(x, top, '▁', bl.accent)
		}

		ww := bl.width / float64(bl.cols+1)
		wh := bl.height / float64(bl.rows+1)
		for r := range bl.rows {
			for c := range bl.cols {
				if !bl.lit[r*bl.cols+c] {
					continue
				}
				col := v.Col(bl.x + float64(c+1)*ww)
				row := v.Row(horizon + float64(r+1)*wh)
				if row > top && row <= bottom {
					dst.SetColored(col, row, '▪', bl.accent)
				}
			}
		}
	}
}

func (b *Background) drawGrid(dst *core.Screen, v core.Viewport) {
	horizon := b.Horizon()
	horizonRow := v.Row(horizon)
	bottomRow := dst.Height() - 1
	if bottomRow <= horizonRow {
		return
	}

	for i := range gridHorizontals + 1 {
		ratio := float64(i) / gridHorizontals
		row := v.Row(ratio * ratio * horizon)
		for x := 0; x < dst.Width(); x++ {
			dst.SetColored(x, row, '─', core.ColorGridLine)
		}
	}

	cx := b.fieldW / 2
	step := b.fieldW / gridVerticals
	for i := range gridVerticals + 1 {
		off := float64(i) - gridVerticals/2
		xTop := cx + off*step*b.depth
		xBottom := cx + off*step

		glyph := '│'
		switch {
		case xBottom < xTop-1:
			glyph = '╱'
		case xBottom > xTop+1:
			glyph = '╲'
		}

		for row := horizonRow; row <= bottomRow; row++ {
			// t is 0 at the horizon and 1 at the bottom edge
			t := float64(row-horizonRow) / float64(bottomRow-horizonRow)
			x := core.Lerp(xTop, xBottom, t)
			if x < 0 || x > b.fieldW {
				continue
			}
			col := v.Col(x)
			g := glyph
			if dst.Get(col, row) == '─' {
				g = '┼'
			}
			dst.SetColored(col, row, g, core.ColorGridLine)
		}
	}

	// fade the far end of the grid
	for x := 0; x < dst.Width(); x++ {
		if c := dst.GetCell(x, horizonRow); c.Rune != ' ' {
			dst.SetColored(x, horizonRow, c.Rune, core.ColorGridGlow)
		}
	}
}

// Skyline returns the number of generated buildings.
func (b *Background) Skyline() int { return len(b.buildings) }

// StarCount returns the number of stars.
func (b *Background) StarCount() int { return len(b.stars) }
