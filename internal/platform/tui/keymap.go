package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

// KeyMap holds every key binding of the session. Paddle bindings come from
// the settings; the rest are fixed.
type KeyMap struct {
	SingleUp   key.Binding
	SingleDown key.Binding
	P1Up       key.Binding
	P1Down     key.Binding
	P2Up       key.Binding
	P2Down     key.Binding

	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Pause      key.Binding
	Mute       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// NewKeyMap builds the bindings for the given controls.
func NewKeyMap(c settings.Controls) KeyMap {
	paddle := func(k, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
	}
	return KeyMap{
		SingleUp:   paddle(c.SinglePlayer.Up, "up"),
		SingleDown: paddle(c.SinglePlayer.Down, "down"),
		P1Up:       paddle(c.TwoPlayerP1.Up, "p1 up"),
		P1Down:     paddle(c.TwoPlayerP1.Down, "p1 down"),
		P2Up:       paddle(c.TwoPlayerP2.Up, "p2 up"),
		P2Down:     paddle(c.TwoPlayerP2.Down, "p2 down"),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Pause:      key.NewBinding(key.WithKeys("esc", "p"), key.WithHelp("esc/p", "pause")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sound")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "volume")),
		VolumeDown: key.NewBinding(key.WithKeys("-", "_")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Movement translates a key to a paddle action for the given mode.
// Single player uses its own binding for the left paddle; two player maps
// both paddles. Returns ActionNone for anything else.
func (k KeyMap) Movement(msg tea.KeyMsg, mode game.Mode) core.Action {
	if mode == game.ModeTwoPlayer {
		switch {
		case key.Matches(msg, k.P1Up):
			return core.ActionP1Up
		case key.Matches(msg, k.P1Down):
			return core.ActionP1Down
		case key.Matches(msg, k.P2Up):
			return core.ActionP2Up
		case key.Matches(msg, k.P2Down):
			return core.ActionP2Down
		}
		return core.ActionNone
	}

	switch {
	case key.Matches(msg, k.SingleUp):
		return core.ActionP1Up
	case key.Matches(msg, k.SingleDown):
		return core.ActionP1Down
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MenuAction translates a key to a menu action.
func (k KeyMap) MenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	}
	return MenuActionNone
}

// menuHelp is the footer shown on menu screens.
type menuHelp struct{ k KeyMap }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Select, h.k.Back, h.k.Mute, h.k.Quit}
}

func (h menuHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

// gameHelp is the footer shown during a match.
type gameHelp struct {
	k    KeyMap
	mode game.Mode
}

func (h gameHelp) ShortHelp() []key.Binding {
	if h.mode == game.ModeTwoPlayer {
		return []key.Binding{h.k.P1Up, h.k.P1Down, h.k.P2Up, h.k.P2Down, h.k.Pause, h.k.Mute, h.k.VolumeUp, h.k.ForceQuit}
	}
	return []key.Binding{h.k.SingleUp, h.k.SingleDown, h.k.Pause, h.k.Mute, h.k.VolumeUp, h.k.ForceQuit}
}

func (h gameHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
