package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/multiplayer"
	"github.com/vovakirdan/neon-pong/internal/ui"
)

// Online connects a remote session to the server's lobby coordinator.
type Online struct {
	Coordinator *multiplayer.Coordinator
	Session     *multiplayer.ChannelSession
}

// onlineStage is where a session is in the host/join flow.
type onlineStage int

const (
	onlineChoose     onlineStage = iota // Host or Join
	onlineHosting                       // lobby open, waiting for a joiner
	onlineEnterCode                     // typing a join code
	onlineConnecting                    // join sent, waiting for the match
	onlinePlaying                       // match running
	onlineEnded                         // result on screen
)

type onlineLobby struct {
	stage    onlineStage
	code     string
	input    textinput.Model
	err      string
	matchID  multiplayer.MatchID
	side     game.Side
	opponent string
	snapshot game.Snapshot
	ended    multiplayer.MatchEndedEvent
}

// onlineEventMsg wraps an event from the coordinator.
type onlineEventMsg struct {
	evt multiplayer.SessionEvent
}

// waitForOnline blocks until the next coordinator event for s.
func waitForOnline(s *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return onlineEventMsg{evt}
		case <-s.Done():
			return nil
		}
	}
}

func newCodeInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = multiplayer.CodeLength
	ti.Prompt = ""
	return ti
}

func (a *App) buildOnlineMenu() {
	a.onlineMenu = ui.NewMenu("ONLINE",
		ui.NewButton("Host Game", a.hostGame),
		ui.NewButton("Join Game", func() {
			a.lobby.stage = onlineEnterCode
			a.lobby.err = ""
			a.lobby.input.Reset()
			a.lobby.input.Focus()
		}),
		ui.NewButton("Back", func() { a.show(viewMainMenu) }),
	)
}

func (a *App) sendOnline(msg multiplayer.CoordinatorMessage) {
	a.online.Coordinator.Send(msg)
}

func (a *App) hostGame() {
	a.lobby.stage = onlineHosting
	a.lobby.code = ""
	a.lobby.err = ""
	a.sendOnline(multiplayer.CreateLobbyMsg{SessionID: a.online.Session.ID()})
}

// leaveOnline gives up any lobby or match the session is part of.
func (a *App) leaveOnline() {
	if a.online == nil {
		return
	}
	switch a.lobby.stage {
	case onlineHosting:
		a.sendOnline(multiplayer.CancelLobbyMsg{SessionID: a.online.Session.ID()})
	case onlinePlaying:
		a.sendOnline(multiplayer.LeaveMatchMsg{SessionID: a.online.Session.ID(), MatchID: a.lobby.matchID})
	}
	a.lobby.stage = onlineChoose
	a.lobby.matchID = ""
	a.trail.Clear()
}

func (a *App) handleOnlineEvent(evt multiplayer.SessionEvent) {
	switch e := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		if a.lobby.stage == onlineHosting {
			a.lobby.code = e.Code
		}

	case multiplayer.LobbyErrorEvent:
		a.lobby.err = e.Message
		switch a.lobby.stage {
		case onlineHosting:
			a.lobby.stage = onlineChoose
			a.flash(e.Message)
		case onlineConnecting:
			a.lobby.stage = onlineEnterCode
			a.lobby.input.Focus()
		}

	case multiplayer.MatchStartedEvent:
		a.leaveMatch()
		a.lobby.stage = onlinePlaying
		a.lobby.matchID = e.MatchID
		a.lobby.side = e.Side
		a.lobby.opponent = e.Opponent
		a.lobby.snapshot = game.Snapshot{Mode: game.ModeOnline}
		a.trail.Clear()
		a.view = viewOnline
		a.logger.Info("online match started", "match", e.MatchID, "side", e.Side, "opponent", e.Opponent)

	case multiplayer.SnapshotEvent:
		if a.lobby.stage != onlinePlaying || e.MatchID != a.lobby.matchID {
			return
		}
		a.lobby.snapshot = e.Snapshot
		switch {
		case e.Snapshot.Serving:
			a.trail.Clear()
		case e.Snapshot.BallVisible:
			a.trail.Push(float64(e.Snapshot.BallX), float64(e.Snapshot.BallY))
		}

	case multiplayer.MatchEndedEvent:
		if a.lobby.stage != onlinePlaying || e.MatchID != a.lobby.matchID {
			return
		}
		a.lobby.stage = onlineEnded
		a.lobby.ended = e
		a.trail.Clear()
		if e.Reason != multiplayer.EndReasonCompleted {
			a.flash(e.Reason.String())
		}
	}
}

// handleOnlineKey returns false when the key should fall through to the
// online menu.
func (a *App) handleOnlineKey(msg tea.KeyMsg) bool {
	switch a.lobby.stage {
	case onlineHosting, onlineConnecting:
		switch a.keys.MenuAction(msg) {
		case MenuActionBack:
			a.leaveOnline()
		case MenuActionQuit:
			a.quit()
		}

	case onlineEnterCode:
		switch msg.Type {
		case tea.KeyEsc:
			a.lobby.input.Blur()
			a.lobby.stage = onlineChoose
		case tea.KeyEnter:
			code := strings.ToUpper(a.lobby.input.Value())
			if len(code) != multiplayer.CodeLength {
				a.lobby.err = fmt.Sprintf("Codes have %d characters", multiplayer.CodeLength)
				return true
			}
			a.lobby.input.Blur()
			a.lobby.stage = onlineConnecting
			a.lobby.code = code
			a.lobby.err = ""
			a.sendOnline(multiplayer.JoinLobbyMsg{SessionID: a.online.Session.ID(), Code: code})
		default:
			a.lobby.input, _ = a.lobby.input.Update(msg)
		}

	case onlinePlaying:
		if act := a.onlineMovement(msg); act != core.ActionNone {
			a.sendOnline(multiplayer.PlayerInputMsg{MatchID: a.lobby.matchID, Side: a.lobby.side, Action: act})
			return true
		}
		if key.Matches(msg, a.keys.Back) || key.Matches(msg, a.keys.Quit) {
			a.leaveOnline()
			a.flash("You left the match")
		}

	case onlineEnded:
		switch a.keys.MenuAction(msg) {
		case MenuActionSelect, MenuActionBack, MenuActionQuit:
			a.lobby.stage = onlineChoose
		}

	default:
		return false
	}
	return true
}

// onlineMovement maps the single player bindings onto this session's side.
func (a *App) onlineMovement(msg tea.KeyMsg) core.Action {
	up, down := core.ActionP1Up, core.ActionP1Down
	if a.lobby.side == game.SideRight {
		up, down = core.ActionP2Up, core.ActionP2Down
	}
	switch {
	case key.Matches(msg, a.keys.SingleUp):
		return up
	case key.Matches(msg, a.keys.SingleDown):
		return down
	}
	return core.ActionNone
}

func (a *App) drawOnline() {
	s := a.screen
	mid := s.Height() / 2

	switch a.lobby.stage {
	case onlineChoose:
		a.onlineMenu.Draw(s)
		s.DrawTextCenteredColored(s.Height()-2, "Play against someone on this server", core.ColorStarDim)

	case onlineHosting:
		s.DrawTextCenteredColored(mid-4, "HOSTING GAME", core.ColorNeonPink)
		if a.lobby.code == "" {
			s.DrawTextCenteredColored(mid-1, "Opening lobby...", core.ColorStarDim)
			return
		}
		s.DrawTextCenteredColored(mid-2, "Share this code with your opponent:", core.ColorBrightWhite)
		s.DrawTextCenteredColored(mid, "[ "+a.lobby.code+" ]", core.ColorNeonCyan)
		s.DrawTextCenteredColored(mid+2, "Waiting for player to join...", core.ColorStarDim)

	case onlineEnterCode:
		s.DrawTextCenteredColored(mid-4, "JOIN GAME", core.ColorNeonPink)
		s.DrawTextCenteredColored(mid-2, "Enter the game code:", core.ColorBrightWhite)
		code := strings.ToUpper(a.lobby.input.Value())
		if len(code) < multiplayer.CodeLength {
			code += "_" + strings.Repeat(" ", multiplayer.CodeLength-len(code)-1)
		}
		s.DrawTextCenteredColored(mid, "[ "+code+" ]", core.ColorNeonCyan)
		if a.lobby.err != "" {
			s.DrawTextCenteredColored(mid+2, "Error: "+a.lobby.err, core.ColorNeonOrange)
		}

	case onlineConnecting:
		s.DrawTextCenteredColored(mid-2, "CONNECTING", core.ColorNeonPink)
		s.DrawTextCenteredColored(mid, "Joining game: "+a.lobby.code, core.ColorBrightWhite)

	case onlinePlaying:
		if a.cfg.Display.Effects {
			a.trail.Draw(s, float64(a.cfg.Display.ScreenWidth), float64(a.cfg.Display.ScreenHeight))
		}
		a.lobby.snapshot.Render(s, a.cfg)
		side := "LEFT"
		if a.lobby.side == game.SideRight {
			side = "RIGHT"
		}
		s.DrawTextCenteredColored(s.Height()-1, fmt.Sprintf("You: %s  vs  %s", side, a.lobby.opponent), core.ColorStarDim)

	case onlineEnded:
		snap := a.lobby.snapshot
		res := a.lobby.ended.Result
		snap.Over = true
		snap.BallVisible = false
		snap.Winner = res.Winner
		snap.ScoreLeft, snap.ScoreRight = res.ScoreLeft, res.ScoreRight
		snap.Render(s, a.cfg, a.lobby.ended.Reason.String(), "Press ENTER to continue")
	}
}

// onlineHelp is the footer shown during an online match.
type onlineHelp struct{ k KeyMap }

func (h onlineHelp) ShortHelp() []key.Binding {
	leave := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave"))
	return []key.Binding{h.k.SingleUp, h.k.SingleDown, leave, h.k.ForceQuit}
}

func (h onlineHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
