package game

import (
	"fmt"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

// Glyphs used on the terminal.
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '╎'
)

// Render draws the net, paddles, ball and scores onto dst, projecting the
// playfield onto the whole screen. Anything already on dst (the background)
// shows through empty cells. When the match is over the game-over panel is
// drawn on top.
func (m *Match) Render(dst *core.Screen) {
	m.Snapshot().Render(dst, m.cfg, "Press ENTER to play again", "Press ESC for main menu")
}

// Render draws the snapshot the way Match.Render draws a live match. hints
// are the lines shown under the score on the game-over panel.
func (s Snapshot) Render(dst *core.Screen, cfg *settings.GameSettings, hints ...string) {
	w := float64(cfg.Display.ScreenWidth)
	v := core.NewViewport(w, float64(cfg.Display.ScreenHeight), dst.Width(), dst.Height())

	drawNet(dst, v, w/2)
	drawPaddle(dst, v, core.BoxAt(PaddleMargin, float64(s.LeftY), cfg.Paddle.Width, cfg.Paddle.Height), core.ColorNeonCyan)
	drawPaddle(dst, v, core.BoxAt(w-PaddleMargin, float64(s.RightY), cfg.Paddle.Width, cfg.Paddle.Height), core.ColorNeonPink)

	if s.BallVisible {
		col, row := v.Cell(float64(s.BallX), float64(s.BallY))
		dst.SetColored(col, row, BallChar, core.ColorBrightWhite)
	}

	s.drawScores(dst)

	if s.Over {
		s.drawGameOver(dst, hints)
	}
}

func drawNet(dst *core.Screen, v core.Viewport, x float64) {
	col := v.Col(x)
	for row := 1; row < dst.Height(); row += 2 {
		dst.SetColored(col, row, NetChar, core.ColorGridGlow)
	}
}

func drawPaddle(dst *core.Screen, v core.Viewport, box core.Box, fg core.Color) {
	col := v.Col(box.CX)
	top, bottom := v.Span(box.Bottom(), box.Top())
	for row := top; row <= bottom; row++ {
		dst.SetColored(col, row, PaddleChar, fg)
	}
}

func (s Snapshot) drawScores(dst *core.Screen) {
	w := dst.Width()
	left := fmt.Sprintf("%d", s.ScoreLeft)
	right := fmt.Sprintf("%d", s.ScoreRight)
	dst.DrawTextColored(w/4-len(left)/2, 0, left, core.ColorNeonCyan)
	dst.DrawTextColored(w*3/4-len(right)/2, 0, right, core.ColorNeonCyan)

	rightLabel := "P2"
	if s.Mode == ModeSingle {
		rightLabel = "AI"
	}
	dst.DrawTextColored(1, 0, "P1", core.ColorGray)
	dst.DrawTextColored(w-len(rightLabel)-1, 0, rightLabel, core.ColorGray)
}

type panelLine struct {
	text string
	fg   core.Color
}

func (s Snapshot) drawGameOver(dst *core.Screen, hints []string) {
	verdict := "NO CONTEST"
	if s.Winner != "" {
		verdict = s.Winner + " WINS!"
	}
	lines := []panelLine{
		{"GAME OVER", core.ColorBrightCyan},
		{"", core.ColorDefault},
		{verdict, core.ColorBrightYellow},
		{fmt.Sprintf("%d - %d", s.ScoreLeft, s.ScoreRight), core.ColorNeonPink},
	}
	if len(hints) > 0 {
		lines = append(lines, panelLine{"", core.ColorDefault})
		for _, h := range hints {
			lines = append(lines, panelLine{h, core.ColorGray})
		}
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l.text)))
	}
	boxW += 6
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.FillBackground(box, core.ColorCityBase)
	dst.DrawBoxColored(box, core.ColorNeonPink)
	for i, l := range lines {
		dst.DrawTextCenteredColored(box.Y+1+i, l.text, l.fg)
	}
}
