package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
)

// startMatch begins a new match. Each match gets the next seed so a
// session started with a fixed seed replays identically.
func (a *App) startMatch(mode game.Mode) {
	a.leaveMatch()

	a.seed++
	a.match = game.NewMatch(a.cfg, mode, a.seed)
	a.saved = false
	a.trail.Clear()
	a.held.Reset()
	a.pauseMenu.Select(0)
	a.view = viewGame
	a.logger.Debug("match started", "mode", mode, "difficulty", a.cfg.Gameplay.DifficultyPreset, "seed", a.seed)
	a.dispatch(a.match.DrainEvents())
}

func (a *App) restartMatch() {
	a.match.Restart()
	a.saved = false
	a.trail.Clear()
	a.held.Reset()
	a.dispatch(a.match.DrainEvents())
}

// leaveMatch ends the current match, recording it if it was abandoned
// before anyone won.
func (a *App) leaveMatch() {
	if a.match == nil {
		return
	}
	if !a.saved && a.match.Elapsed() > 0 {
		a.record()
	}
	a.audio.StopMusic()
	a.match = nil
	a.held.Reset()
	a.trail.Clear()
}

func (a *App) quitToMenu() {
	a.leaveMatch()
	a.show(viewMainMenu)
}

// record stores the match result. Storage errors are logged; the game
// carries on without history.
func (a *App) record() {
	a.saved = true
	if a.store == nil {
		return
	}
	id, err := a.store.SaveMatch(a.match.Result())
	if err != nil {
		a.logger.Warn("could not save match", "error", err)
		return
	}
	a.logger.Debug("match saved", "id", id)
}

func (a *App) handleGameKey(msg tea.KeyMsg) {
	switch {
	case a.match.Over():
		switch a.keys.MenuAction(msg) {
		case MenuActionSelect:
			a.restartMatch()
		case MenuActionBack, MenuActionQuit:
			a.quitToMenu()
		}

	case a.match.Paused():
		switch a.keys.MenuAction(msg) {
		case MenuActionUp:
			a.pauseMenu.Up()
		case MenuActionDown:
			a.pauseMenu.Down()
		case MenuActionSelect:
			a.pauseMenu.Activate()
		case MenuActionBack:
			a.match.Resume()
		}

	default:
		if act := a.keys.Movement(msg, a.match.Mode()); act != core.ActionNone {
			a.held.Press(act)
			return
		}
		if key.Matches(msg, a.keys.Pause) {
			a.match.TogglePause()
			a.held.Reset()
			a.pauseMenu.Select(0)
		}
	}
}

func (a *App) drawGame() {
	if a.cfg.Display.Effects {
		a.trail.Draw(a.screen, float64(a.cfg.Display.ScreenWidth), float64(a.cfg.Display.ScreenHeight))
	}
	a.match.Render(a.screen)

	if a.match.Paused() {
		a.pauseMenu.Draw(a.screen)
	}
}
