package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-pong/internal/core"
)

// palette maps core.Color to terminal colors. The basic colors use ANSI
// codes; the synthwave palette uses true color and degrades through
// lipgloss on poorer terminals.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorRed:           lipgloss.Color("1"),
	core.ColorGreen:         lipgloss.Color("2"),
	core.ColorYellow:        lipgloss.Color("3"),
	core.ColorBlue:          lipgloss.Color("4"),
	core.ColorMagenta:       lipgloss.Color("5"),
	core.ColorCyan:          lipgloss.Color("6"),
	core.ColorWhite:         lipgloss.Color("7"),
	core.ColorBrightRed:     lipgloss.Color("9"),
	core.ColorBrightGreen:   lipgloss.Color("10"),
	core.ColorBrightYellow:  lipgloss.Color("11"),
	core.ColorBrightBlue:    lipgloss.Color("12"),
	core.ColorBrightMagenta: lipgloss.Color("13"),
	core.ColorBrightCyan:    lipgloss.Color("14"),
	core.ColorBrightWhite:   lipgloss.Color("15"),
	core.ColorOrange:        lipgloss.Color("208"),
	core.ColorGray:          lipgloss.Color("245"),

	core.ColorSkyTop:     lipgloss.Color("#0b0221"),
	core.ColorSkyMid:     lipgloss.Color("#1b0a3f"),
	core.ColorSkyLow:     lipgloss.Color("#3c0f5e"),
	core.ColorSkyHorizon: lipgloss.Color("#7b1163"),
	core.ColorCityBase:   lipgloss.Color("#0a0612"),
	core.ColorNeonCyan:   lipgloss.Color("#00fff7"),
	core.ColorNeonPink:   lipgloss.Color("#ff2fd1"),
	core.ColorNeonOrange: lipgloss.Color("#ff9a1f"),
	core.ColorGridLine:   lipgloss.Color("#c719ff"),
	core.ColorGridGlow:   lipgloss.Color("#5a1a8a"),
	core.ColorTrail:      lipgloss.Color("#ff6ad5"),
	core.ColorStar:       lipgloss.Color("#ffffff"),
	core.ColorStarDim:    lipgloss.Color("#8a7fb0"),
}

type colorPair struct{ fg, bg core.Color }

// styles caches one lipgloss style per foreground/background pair. It is
// filled at init and only read afterwards, so concurrent SSH sessions can
// share it.
var styles = func() map[colorPair]lipgloss.Style {
	m := make(map[colorPair]lipgloss.Style, (len(palette)+1)*(len(palette)+1))
	colors := []core.Color{core.ColorDefault}
	for c := range palette {
		colors = append(colors, c)
	}
	for _, fg := range colors {
		for _, bg := range colors {
			st := lipgloss.NewStyle()
			if c, ok := palette[fg]; ok {
				st = st.Foreground(c)
			}
			if c, ok := palette[bg]; ok {
				st = st.Background(c)
			}
			m[colorPair{fg, bg}] = st
		}
	}
	return m
}()

func styleFor(fg, bg core.Color) lipgloss.Style {
	if st, ok := styles[colorPair{fg, bg}]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.FG == core.ColorDefault && start.BG == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
