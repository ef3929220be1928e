package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-pong/internal/audio"
	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/render"
	"github.com/vovakirdan/neon-pong/internal/settings"
	"github.com/vovakirdan/neon-pong/internal/storage"
	"github.com/vovakirdan/neon-pong/internal/ui"
)

// Options configures an App.
type Options struct {
	Settings *settings.GameSettings
	// SettingsPath is where menu changes are saved. Empty disables saving.
	SettingsPath string
	Store        *storage.Store
	Audio        *audio.Manager
	Logger       *log.Logger
	Config       core.RuntimeConfig
	// StartMode skips the main menu and starts a match right away. Only
	// local modes are honoured.
	StartMode game.Mode
	// Online enables the online lobby; only SSH sessions have one.
	Online *Online
}

type view int

const (
	viewMainMenu view = iota
	viewSettings
	viewControls
	viewGame
	viewHistory
	viewOnline
)

// statusDuration is how long a status message stays on screen.
const statusDuration = 2 * time.Second

// App is the Bubble Tea model for one player session: menus, settings,
// the match itself and the history screen.
type App struct {
	cfg          *settings.GameSettings
	settingsPath string
	store        *storage.Store
	audio        *audio.Manager
	logger       *log.Logger
	rc           core.RuntimeConfig

	keys   KeyMap
	held   *core.HeldKeys
	help   help.Model
	screen *core.Screen

	background *render.Background
	trail      *render.Trail

	view         view
	mainMenu     *ui.Menu
	settingsMenu *ui.Menu
	controlsMenu *ui.Menu
	pauseMenu    *ui.Menu
	onlineMenu   *ui.Menu

	remapping bool
	remapSlot settings.ControlSlot

	status      string
	statusTicks int

	match      *game.Match
	saved      bool
	seed       int64
	stepCredit int // simulation steps owed, in units of 1/TickRate

	history       []storage.MatchRecord
	stats         map[game.Mode]*storage.ModeStats
	historyOffset int

	online *Online
	lobby  onlineLobby

	quitting bool
}

// NewApp creates a session model.
func NewApp(opts Options) *App {
	cfg := opts.Settings
	if cfg == nil {
		cfg = settings.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	am := opts.Audio
	if am == nil {
		am = audio.Silent()
	}

	rc := opts.Config
	if rc.TickRate <= 0 {
		rc.TickRate = cfg.Display.TargetFPS
	}
	if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		def := core.DefaultConfig()
		rc.ScreenW, rc.ScreenH = def.ScreenW, def.ScreenH
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	a := &App{
		cfg:          cfg,
		settingsPath: opts.SettingsPath,
		store:        opts.Store,
		audio:        am,
		logger:       logger,
		rc:           rc,
		keys:         NewKeyMap(cfg.Controls),
		held:         core.NewHeldKeys(core.HoldWindow, cfg.Display.TargetFPS),
		help:         help.New(),
		screen:       core.NewScreen(rc.ScreenW, max(rc.ScreenH-1, 1)),
		background:   render.NewBackground(cfg, rc.Seed),
		trail:        render.NewTrail(cfg.Visual.MotionBlurLength),
		seed:         rc.Seed,
		online:       opts.Online,
		lobby:        onlineLobby{input: newCodeInput()},
	}
	a.help.Width = rc.ScreenW
	a.buildMenus()
	a.layout()

	if opts.StartMode.Local() {
		a.startMatch(opts.StartMode)
	}
	return a
}

// Init starts the tick loop.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(a.cfg.Display.ScreenTitle),
		tickCmd(a.rc.TickRate),
	}
	if a.online != nil {
		cmds = append(cmds, waitForOnline(a.online.Session))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the session state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case TickMsg:
		a.tick()
		cmd = tickCmd(a.rc.TickRate)

	case tea.KeyMsg:
		a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)

	case onlineEventMsg:
		a.handleOnlineEvent(msg.evt)
		cmd = waitForOnline(a.online.Session)
	}

	if a.quitting {
		return a, tea.Quit
	}
	return a, cmd
}

// View renders the current screen with the help footer below it.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	if a.cfg.Display.Effects {
		a.background.Draw(a.screen)
	} else {
		a.screen.Clear()
	}

	switch a.view {
	case viewMainMenu:
		a.drawMainMenu()
	case viewSettings:
		a.settingsMenu.Draw(a.screen)
	case viewControls:
		a.drawControls()
	case viewHistory:
		a.drawHistory()
	case viewGame:
		a.drawGame()
	case viewOnline:
		a.drawOnline()
	}

	if a.status != "" {
		a.screen.DrawTextCenteredColored(a.screen.Height()-1, a.status, core.ColorNeonOrange)
	}

	var footer help.KeyMap = menuHelp{a.keys}
	switch {
	case a.view == viewGame && a.match != nil:
		footer = gameHelp{a.keys, a.match.Mode()}
	case a.view == viewOnline && a.lobby.stage == onlinePlaying:
		footer = onlineHelp{a.keys}
	}
	return RenderScreen(a.screen) + "\n" + a.help.View(footer)
}

func (a *App) resize(w, h int) {
	a.rc.ScreenW = w
	a.rc.ScreenH = h
	a.screen.Resize(w, max(h-1, 1))
	a.help.Width = w
	a.layout()
}

func (a *App) tick() {
	if a.statusTicks > 0 {
		a.statusTicks--
		if a.statusTicks == 0 {
			a.status = ""
		}
	}

	if a.view != viewGame || a.match == nil {
		return
	}

	// The simulation always runs at target_fps. Each frame earns fps/TickRate
	// steps; the remainder carries over so uneven ratios keep the rate exact.
	fps := max(a.cfg.Display.TargetFPS, 1)
	a.stepCredit += fps
	steps := a.stepCredit / max(a.rc.TickRate, 1)
	a.stepCredit %= max(a.rc.TickRate, 1)
	for range steps {
		a.match.Step(a.held.Frame(), 1/float64(fps))
	}
	a.dispatch(a.match.DrainEvents())

	switch {
	case a.match.Serving():
		a.trail.Clear()
	case !a.match.Paused() && !a.match.Over() && a.match.Ball.Moving():
		a.trail.Push(a.match.Ball.X, a.match.Ball.Y)
	}

	if a.match.Over() && !a.saved {
		a.record()
	}
}

// dispatch forwards match events to the audio manager.
func (a *App) dispatch(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventGameStart:
			a.audio.PlayGameStart()
		case game.EventMusicStart:
			a.audio.StartMusic()
		case game.EventPaddleHit:
			a.audio.PlayPaddleHit()
		case game.EventWallBounce:
			a.audio.PlayWallHit()
		case game.EventScore:
			a.audio.PlayScore()
		case game.EventGameOver:
			a.audio.PlayGameOver()
			left, right := a.match.Scores()
			a.logger.Info("match over", "mode", a.match.Mode(), "winner", a.match.Winner(), "score", []int{left, right})
		}
	}
}

func (a *App) handleKey(msg tea.KeyMsg) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.quit()
		return
	}

	if a.remapping {
		a.handleRemap(msg)
		return
	}

	if a.view == viewOnline && a.handleOnlineKey(msg) {
		return
	}

	switch {
	case key.Matches(msg, a.keys.Mute):
		a.toggleSound()
		return
	case key.Matches(msg, a.keys.VolumeUp):
		a.changeVolume(0.1)
		return
	case key.Matches(msg, a.keys.VolumeDown):
		a.changeVolume(-0.1)
		return
	}

	switch a.view {
	case viewGame:
		a.handleGameKey(msg)
		return
	case viewHistory:
		a.handleHistoryKey(msg)
		return
	}

	menu := a.activeMenu()
	switch a.keys.MenuAction(msg) {
	case MenuActionQuit:
		a.quit()
	case MenuActionUp:
		menu.Up()
	case MenuActionDown:
		menu.Down()
	case MenuActionSelect:
		menu.Activate()
	case MenuActionBack:
		a.back()
	}
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	if a.view == viewHistory {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollHistory(-1)
		case tea.MouseButtonWheelDown:
			a.scrollHistory(1)
		}
		return
	}

	menu := a.activeMenu()
	if menu == nil || a.remapping {
		return
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		menu.Hover(msg.X, msg.Y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		menu.Click(msg.X, msg.Y)
	}
}

// activeMenu returns the menu that receives navigation on this screen.
func (a *App) activeMenu() *ui.Menu {
	switch a.view {
	case viewMainMenu:
		return a.mainMenu
	case viewSettings:
		return a.settingsMenu
	case viewControls:
		return a.controlsMenu
	case viewOnline:
		if a.lobby.stage == onlineChoose {
			return a.onlineMenu
		}
	case viewGame:
		if a.match != nil && a.match.Paused() {
			return a.pauseMenu
		}
	}
	return nil
}

func (a *App) back() {
	switch a.view {
	case viewMainMenu:
		a.quit()
	case viewSettings, viewHistory, viewOnline:
		a.show(viewMainMenu)
	case viewControls:
		a.show(viewSettings)
	}
}

func (a *App) show(v view) {
	a.view = v
	a.remapping = false
	if v == viewHistory {
		a.loadHistory()
	}
	a.layout()
}

func (a *App) quit() {
	a.leaveMatch()
	a.leaveOnline()
	a.quitting = true
}

func (a *App) flash(msg string) {
	a.status = msg
	a.statusTicks = int(statusDuration.Seconds() * float64(a.rc.TickRate))
}

func (a *App) toggleSound() {
	a.cfg.Audio.Enabled = !a.cfg.Audio.Enabled
	a.audio.SetEnabled(a.cfg.Audio.Enabled)
	switch {
	case !a.audio.Available():
		a.flash("Sound " + onOff(a.cfg.Audio.Enabled) + " (no audio device)")
	case a.cfg.Audio.Enabled:
		a.flash("Sound on")
		if a.view == viewGame && a.match != nil && !a.match.Over() {
			a.audio.StartMusic()
		}
	default:
		a.flash("Sound off")
	}
	a.layout()
	a.persist()
}

func (a *App) changeVolume(delta float64) {
	v := max(0, min(1, a.cfg.Audio.MasterVolume+delta))
	if err := a.cfg.SetMasterVolume(roundTenth(v)); err != nil {
		a.flash(err.Error())
		return
	}
	a.audio.SetVolume(a.cfg.Audio.MasterVolume)
	a.flash(volumeLabel(a.cfg.Audio.MasterVolume))
	a.layout()
	a.persist()
}

// persist saves the settings when the session owns a settings file.
func (a *App) persist() {
	if a.settingsPath == "" {
		return
	}
	if err := a.cfg.Save(a.settingsPath); err != nil {
		a.logger.Warn("could not save settings", "path", a.settingsPath, "error", err)
		a.flash("Settings not saved")
	}
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
