package ui

import "github.com/vovakirdan/neon-pong/internal/core"

const (
	buttonHeight  = 3
	buttonSpacing = 1
	minButtonW    = 24
)

// Menu is an ordered list of buttons with exactly one selected.
// Up and Down wrap around.
type Menu struct {
	Title   string
	Buttons []*Button

	selected int
}

// NewMenu creates a menu with the first button selected.
func NewMenu(title string, buttons ...*Button) *Menu {
	m := &Menu{Title: title, Buttons: buttons}
	m.Select(0)
	return m
}

// Selected returns the index of the selected button.
func (m *Menu) Selected() int { return m.selected }

// Current returns the selected button, or nil for an empty menu.
func (m *Menu) Current() *Button {
	if len(m.Buttons) == 0 {
		return nil
	}
	return m.Buttons[m.selected]
}

// Select moves the selection to index i, wrapping out-of-range values.
func (m *Menu) Select(i int) {
	n := len(m.Buttons)
	if n == 0 {
		m.selected = 0
		return
	}
	i = ((i % n) + n) % n
	for j, b := range m.Buttons {
		b.Selected = j == i
	}
	m.selected = i
}

// Up selects the previous button.
func (m *Menu) Up() { m.Select(m.selected - 1) }

// Down selects the next button.
func (m *Menu) Down() { m.Select(m.selected + 1) }

// Activate clicks the selected button.
func (m *Menu) Activate() {
	if b := m.Current(); b != nil {
		b.Click()
	}
}

// Hover updates hover state for the pointer at (x, y); hovering a button
// also selects it. It reports whether any button is under the pointer.
func (m *Menu) Hover(x, y int) bool {
	hit := false
	for i, b := range m.Buttons {
		b.Hovered = b.Contains(x, y)
		if b.Hovered {
			hit = true
			if i != m.selected {
				m.Select(i)
			}
		}
	}
	return hit
}

// Click activates the button under (x, y), if any.
func (m *Menu) Click(x, y int) bool {
	for i, b := range m.Buttons {
		if b.Contains(x, y) {
			m.Select(i)
			b.Click()
			return true
		}
	}
	return false
}

// Refresh recomputes dynamic labels.
func (m *Menu) Refresh() {
	for _, b := range m.Buttons {
		if b.LabelFunc != nil {
			b.Label = b.LabelFunc()
		}
	}
}

// Layout stacks the buttons centred horizontally, starting at row top.
// Buttons shrink to a single row when the screen is too short for frames.
func (m *Menu) Layout(screenW, screenH, top int) {
	w := minButtonW
	for _, b := range m.Buttons {
		w = max(w, len([]rune(b.Label))+8)
	}
	w = min(w, max(screenW-2, 1))

	h, gap := buttonHeight, buttonSpacing
	if top+len(m.Buttons)*(h+gap) > screenH {
		h, gap = 1, 0
	}

	x := (screenW - w) / 2
	for i, b := range m.Buttons {
		b.Rect = core.NewRect(x, top+i*(h+gap), w, h)
	}
}

// Draw renders the title (when set) two rows above the first button and
// every button.
func (m *Menu) Draw(dst *core.Screen) {
	if m.Title != "" && len(m.Buttons) > 0 {
		dst.DrawTextCenteredColored(max(m.Buttons[0].Rect.Y-2, 0), m.Title, core.ColorNeonPink)
	}
	for _, b := range m.Buttons {
		b.Draw(dst)
	}
}
