// Package ui contains the menu widgets shared by every screen: buttons laid
// out on the terminal grid and a vertical menu with keyboard and mouse
// navigation.
package ui

import "github.com/vovakirdan/neon-pong/internal/core"

// Button is a clickable, selectable menu entry.
type Button struct {
	Label    string
	Rect     core.Rect
	Selected bool
	Hovered  bool

	// Action runs on Click. It may be nil.
	Action func()
	// LabelFunc, when set, recomputes Label on Menu.Refresh.
	LabelFunc func() string
}

// NewButton creates a button with a fixed label.
func NewButton(label string, action func()) *Button {
	return &Button{Label: label, Action: action}
}

// NewDynamicButton creates a button whose label is computed by fn.
func NewDynamicButton(fn func() string, action func()) *Button {
	return &Button{Label: fn(), LabelFunc: fn, Action: action}
}

// Contains reports whether the cell (x, y) is on the button.
func (b *Button) Contains(x, y int) bool {
	return b.Rect.Contains(x, y)
}

// Click runs the button's action.
func (b *Button) Click() {
	if b.Action != nil {
		b.Action()
	}
}

// Draw renders the button: a framed label, highlighted when selected and
// tinted when hovered.
func (b *Button) Draw(dst *core.Screen) {
	frame, text, bg := core.ColorGray, core.ColorWhite, core.ColorDefault
	switch {
	case b.Selected:
		frame, text, bg = core.ColorNeonCyan, core.ColorBrightWhite, core.ColorSkyMid
	case b.Hovered:
		frame, text = core.ColorNeonPink, core.ColorBrightWhite
	}

	r := b.Rect
	dst.DrawRect(r, ' ')
	dst.FillBackground(r, bg)
	if r.H >= 3 {
		dst.DrawBoxColored(r, frame)
	}

	label := b.Label
	if b.Selected {
		label = "▶ " + label + " ◀"
	}
	runes := []rune(label)
	x := r.X + (r.W-len(runes))/2
	dst.DrawTextColored(x, r.Y+r.H/2, label, text)
}
