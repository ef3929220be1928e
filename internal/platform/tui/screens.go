package tui

import (
	"fmt"
	"math"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/settings"
	"github.com/vovakirdan/neon-pong/internal/ui"
)

var banner = []string{
	"█▀█ █▀█ █▄ █ █▀▀",
	"█▀▀ █▄█ █ ▀█ █▄█",
}

// winningScores are the choices offered by the settings menu.
var winningScores = []int{3, 5, 7, 10, 15, 21}

// historyLimit is how many matches the history screen loads.
const historyLimit = 100

func (a *App) buildMenus() {
	main := []*ui.Button{
		ui.NewButton("Single Player", func() { a.startMatch(game.ModeSingle) }),
		ui.NewButton("Two Players", func() { a.startMatch(game.ModeTwoPlayer) }),
	}
	if a.online != nil {
		main = append(main, ui.NewButton("Play Online", func() {
			a.lobby.stage = onlineChoose
			a.show(viewOnline)
		}))
	}
	main = append(main,
		ui.NewButton("Settings", func() { a.show(viewSettings) }),
		ui.NewButton("Match History", func() { a.show(viewHistory) }),
		ui.NewButton("Quit", a.quit),
	)
	a.mainMenu = ui.NewMenu("", main...)

	a.settingsMenu = ui.NewMenu("SETTINGS",
		ui.NewDynamicButton(func() string {
			return "Difficulty: " + a.cfg.Gameplay.DifficultyPreset
		}, a.cycleDifficulty),
		ui.NewDynamicButton(func() string {
			return "Sound: " + onOff(a.cfg.Audio.Enabled)
		}, a.toggleSound),
		ui.NewDynamicButton(func() string {
			return volumeLabel(a.cfg.Audio.MasterVolume)
		}, a.cycleVolume),
		ui.NewDynamicButton(func() string {
			return fmt.Sprintf("Winning Score: %d", a.cfg.Gameplay.WinningScore)
		}, a.cycleWinningScore),
		ui.NewDynamicButton(func() string {
			return "Effects: " + onOff(a.cfg.Display.Effects)
		}, a.toggleEffects),
		ui.NewButton("Controls", func() { a.show(viewControls) }),
		ui.NewButton("Back", func() { a.show(viewMainMenu) }),
	)

	buttons := make([]*ui.Button, 0, len(settings.AllSlots)+1)
	for _, slot := range settings.AllSlots {
		buttons = append(buttons, ui.NewDynamicButton(func() string {
			return fmt.Sprintf("%s: %s", slot, a.cfg.Controls.Key(slot))
		}, func() {
			a.remapping = true
			a.remapSlot = slot
		}))
	}
	buttons = append(buttons, ui.NewButton("Back", func() { a.show(viewSettings) }))
	a.controlsMenu = ui.NewMenu("CONTROLS", buttons...)

	a.pauseMenu = ui.NewMenu("PAUSED",
		ui.NewButton("Resume", func() { a.match.Resume() }),
		ui.NewButton("Quit to Menu", a.quitToMenu),
	)

	a.buildOnlineMenu()
}

// layout places the menus for the current screen size.
func (a *App) layout() {
	w, h := a.screen.Width(), a.screen.Height()
	a.mainMenu.Layout(w, h, min(h/2-2, 8))
	a.settingsMenu.Refresh()
	a.settingsMenu.Layout(w, h, 3)
	a.controlsMenu.Refresh()
	a.controlsMenu.Layout(w, h, 3)
	a.pauseMenu.Layout(w, h, max(h/2-3, 2))
	a.onlineMenu.Layout(w, h, max(h/2-4, 3))
}

func (a *App) drawMainMenu() {
	top := max(a.mainMenu.Buttons[0].Rect.Y-len(banner)-3, 0)
	for i, line := range banner {
		a.screen.DrawTextCenteredColored(top+i, line, core.ColorNeonCyan)
	}
	a.screen.DrawTextCenteredColored(top+len(banner)+1, "Arcade Edition", core.ColorNeonPink)
	a.mainMenu.Draw(a.screen)
}

func (a *App) drawControls() {
	a.controlsMenu.Draw(a.screen)

	h := a.screen.Height()
	if !a.remapping {
		a.screen.DrawTextCenteredColored(h-2, "Press ENTER or click to remap a control", core.ColorStarDim)
		return
	}

	w := min(a.screen.Width()-2, 40)
	box := core.NewRect((a.screen.Width()-w)/2, h/2-3, w, 6)
	a.screen.DrawRect(box, ' ')
	a.screen.FillBackground(box, core.ColorSkyTop)
	a.screen.DrawBoxColored(box, core.ColorNeonCyan)
	a.screen.DrawTextCenteredColored(box.Y+2, "Press a key for "+a.remapSlot.String(), core.ColorNeonCyan)
	a.screen.DrawTextCenteredColored(box.Y+3, "ESC to cancel", core.ColorStarDim)
}

// handleRemap binds the next key to the slot being remapped. Bindings that
// would collide are rejected and the old key kept.
func (a *App) handleRemap(msg tea.KeyMsg) {
	if msg.Type == tea.KeyEsc {
		a.remapping = false
		return
	}

	k := msg.String()
	if err := a.cfg.Controls.SetKey(a.remapSlot, k); err != nil {
		a.flash(err.Error())
		return
	}
	a.remapping = false
	a.keys = NewKeyMap(a.cfg.Controls)
	a.layout()
	a.persist()
	a.flash(fmt.Sprintf("%s bound to %s", a.remapSlot, k))
}

func (a *App) cycleDifficulty() {
	next := settings.NextPreset(a.cfg.Gameplay.DifficultyPreset)
	if err := a.cfg.ApplyDifficultyPreset(next); err != nil {
		a.flash(err.Error())
		return
	}
	a.layout()
	a.persist()
}

func (a *App) cycleVolume() {
	v := roundTenth(a.cfg.Audio.MasterVolume + 0.1)
	if v > 1 {
		v = 0
	}
	if err := a.cfg.SetMasterVolume(v); err != nil {
		a.flash(err.Error())
		return
	}
	a.audio.SetVolume(v)
	a.layout()
	a.persist()
}

func (a *App) cycleWinningScore() {
	i := slices.Index(winningScores, a.cfg.Gameplay.WinningScore)
	next := winningScores[(i+1)%len(winningScores)]
	if err := a.cfg.SetWinningScore(next); err != nil {
		a.flash(err.Error())
		return
	}
	a.layout()
	a.persist()
}

func (a *App) toggleEffects() {
	a.cfg.Display.Effects = !a.cfg.Display.Effects
	a.layout()
	a.persist()
}

func (a *App) loadHistory() {
	a.history, a.stats, a.historyOffset = nil, nil, 0
	if a.store == nil {
		a.flash("History unavailable")
		return
	}

	var err error
	if a.history, err = a.store.RecentMatches("", historyLimit); err != nil {
		a.logger.Warn("could not load history", "error", err)
		a.flash("Could not load history")
		return
	}
	if a.stats, err = a.store.Stats(); err != nil {
		a.logger.Warn("could not load stats", "error", err)
	}
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) {
	switch a.keys.MenuAction(msg) {
	case MenuActionQuit:
		a.quit()
	case MenuActionUp:
		a.scrollHistory(-1)
	case MenuActionDown:
		a.scrollHistory(1)
	case MenuActionSelect, MenuActionBack:
		a.show(viewMainMenu)
	}
}

func (a *App) scrollHistory(delta int) {
	last := max(len(a.history)-a.historyRows(), 0)
	a.historyOffset = core.Clamp(a.historyOffset+delta, 0, last)
}

// historyTop is the first table row on the history screen.
const historyTop = 7

func (a *App) historyRows() int {
	return max(a.screen.Height()-historyTop-2, 1)
}

func (a *App) drawHistory() {
	s := a.screen
	s.DrawTextCenteredColored(1, "MATCH HISTORY", core.ColorNeonPink)

	row := 3
	for _, mode := range game.Modes {
		st, ok := a.stats[mode]
		if !ok {
			continue
		}
		right := "P2"
		if mode == game.ModeSingle {
			right = "AI"
		}
		line := fmt.Sprintf("%-12s played %-4d P1 wins %-4d %s wins %-4d avg %s",
			modeLabel(mode), st.Played, st.LeftWins, right, st.RightWins, shortDuration(st.AvgDuration))
		s.DrawTextCenteredColored(row, line, core.ColorNeonCyan)
		row++
	}

	if len(a.history) == 0 {
		s.DrawTextCenteredColored(historyTop, "No matches played yet", core.ColorStarDim)
		return
	}

	const format = "%-16s %-12s %-8s %7s  %-10s %8s"
	s.DrawTextCenteredColored(historyTop-1, fmt.Sprintf(format, "When", "Mode", "Level", "Score", "Winner", "Time"), core.ColorGridLine)

	end := min(a.historyOffset+a.historyRows(), len(a.history))
	for i, m := range a.history[a.historyOffset:end] {
		winner := m.Winner
		fg := core.ColorBrightWhite
		if !m.Completed() {
			winner, fg = "-", core.ColorStarDim
		}
		line := fmt.Sprintf(format,
			m.PlayedAt.Local().Format("2006-01-02 15:04"),
			modeLabel(m.Mode),
			m.Difficulty,
			fmt.Sprintf("%d-%d", m.ScoreLeft, m.ScoreRight),
			winner,
			shortDuration(m.Duration),
		)
		s.DrawTextCenteredColored(historyTop+i, line, fg)
	}
}

func modeLabel(m game.Mode) string {
	switch m {
	case game.ModeTwoPlayer:
		return "Two Players"
	case game.ModeOnline:
		return "Online"
	default:
		return "Single"
	}
}

func shortDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func volumeLabel(v float64) string {
	return fmt.Sprintf("Volume: %d%%", int(math.Round(v*100)))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
