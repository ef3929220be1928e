package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

const (
	// PaddleMargin is the distance from each side wall to a paddle centre.
	PaddleMargin = 50
	// ServeDelay is the pause in seconds before the ball is relaunched after a point.
	ServeDelay = 0.5
)

// Mode selects who controls the right paddle. The value is the name used
// in storage and on the command line.
type Mode string

const (
	ModeSingle    Mode = "single"
	ModeTwoPlayer Mode = "two_player"
	// ModeOnline is a two player match between remote sessions.
	ModeOnline Mode = "online"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeSingle, ModeTwoPlayer, ModeOnline}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Local reports whether the mode is played on one keyboard. Online
// matches only run between sessions of the SSH server.
func (m Mode) Local() bool { return m == ModeSingle || m == ModeTwoPlayer }

// ParseMode accepts "single", "1p", "two", "two_player", "2p" and "online".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "1p":
		return ModeSingle, nil
	case "two", "two_player", "2p":
		return ModeTwoPlayer, nil
	case "online":
		return ModeOnline, nil
	default:
		return "", fmt.Errorf("game: unknown mode %q", s)
	}
}

// Winner labels recorded in results. Player 1 always plays the left
// paddle.
const (
	WinnerPlayer1 = "Player 1"
	WinnerPlayer2 = "Player 2"
	WinnerAI      = "AI"
)

// EventKind is something the host may want to react to, usually with a sound.
type EventKind int

const (
	EventGameStart EventKind = iota
	EventMusicStart
	EventPaddleHit
	EventWallBounce
	EventScore
	EventGameOver
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventGameStart:
		return "game_start"
	case EventMusicStart:
		return "music_start"
	case EventPaddleHit:
		return "paddle_hit"
	case EventWallBounce:
		return "wall_bounce"
	case EventScore:
		return "score"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a match event. Side is the paddle that hit the ball or the side
// that scored or won; it is meaningless for other kinds.
type Event struct {
	Kind EventKind
	Side Side
}

// Match is one game of Pong: the game view's state without any drawing
// surface or audio attached.
type Match struct {
	cfg  *settings.GameSettings
	mode Mode
	rng  *rand.Rand

	Left  *Paddle
	Right *Paddle
	Ball  *Ball
	ai    *AIController

	scoreLeft  int
	scoreRight int

	paused bool
	over   bool
	winner string

	serveTimer float64
	elapsed    float64
	tick       uint64

	events []Event
}

// NewMatch creates a match and sets it up for play. The seed makes ball
// launches and AI errors reproducible.
func NewMatch(cfg *settings.GameSettings, mode Mode, seed int64) *Match {
	m := &Match{
		cfg:  cfg,
		mode: mode,
		rng:  rand.New(rand.NewSource(seed)),
	}
	m.Reset()
	return m
}

// Reset places paddles and ball, zeroes scores, emits the start events and
// launches the ball in a random direction.
func (m *Match) Reset() {
	w := float64(m.cfg.Display.ScreenWidth)
	h := float64(m.cfg.Display.ScreenHeight)

	m.Left = NewPaddle(PaddleMargin, h/2, SideLeft, m.cfg)
	m.Right = NewPaddle(w-PaddleMargin, h/2, SideRight, m.cfg)
	m.Ball = NewBall(w/2, h/2, m.cfg)

	m.ai = nil
	if m.mode == ModeSingle {
		m.ai = NewAIController(m.Right, m.cfg, m.rng)
	}

	m.scoreLeft = 0
	m.scoreRight = 0
	m.paused = false
	m.over = false
	m.winner = ""
	m.serveTimer = 0
	m.elapsed = 0
	m.tick = 0
	m.events = m.events[:0]

	m.emit(EventGameStart, SideLeft)
	m.emit(EventMusicStart, SideLeft)
	m.Ball.Launch(0, m.rng)
}

// Restart is Reset under the name the game-over screen uses.
func (m *Match) Restart() { m.Reset() }

// Step advances the match by one tick of dt seconds.
func (m *Match) Step(in core.InputFrame, dt float64) {
	if m.paused || m.over {
		return
	}
	m.tick++
	m.elapsed += dt

	if m.serveTimer > 0 {
		m.serveTimer -= dt
		if m.serveTimer <= 0 {
			m.serveTimer = 0
			m.Ball.Launch(0, m.rng)
		}
	}

	if m.Ball.Update() {
		m.emit(EventWallBounce, SideLeft)
	}

	m.applyInput(in)
	m.Left.Update()
	m.Right.Update()

	if m.ai != nil {
		m.ai.Update(m.Ball, dt)
	}

	m.checkPaddleCollisions()
	m.checkScoring()
}

func (m *Match) applyInput(in core.InputFrame) {
	steer(m.Left, in.Has(core.ActionP1Up), in.Has(core.ActionP1Down))
	if m.mode != ModeSingle {
		steer(m.Right, in.Has(core.ActionP2Up), in.Has(core.ActionP2Down))
	}
}

// steer applies one player's keys; up wins when both are held.
func steer(p *Paddle, up, down bool) {
	switch {
	case up:
		p.MoveUp()
	case down:
		p.MoveDown()
	default:
		p.Stop()
	}
}

func (m *Match) checkPaddleCollisions() {
	ball := m.Ball.Box()
	if m.Ball.VX < 0 && m.Left.Box().Overlaps(ball) {
		m.Ball.BounceOffPaddle(m.Left.Y, m.Left.Height)
		m.emit(EventPaddleHit, SideLeft)
	}
	if m.Ball.VX > 0 && m.Right.Box().Overlaps(ball) {
		m.Ball.BounceOffPaddle(m.Right.Y, m.Right.Height)
		m.emit(EventPaddleHit, SideRight)
	}
}

func (m *Match) checkScoring() {
	switch {
	case m.Ball.OutOfBoundsLeft():
		m.scoreRight++
		m.point(SideRight)
	case m.Ball.OutOfBoundsRight():
		m.scoreLeft++
		m.point(SideLeft)
	}
}

func (m *Match) point(scorer Side) {
	m.emit(EventScore, scorer)

	w := float64(m.cfg.Display.ScreenWidth)
	h := float64(m.cfg.Display.ScreenHeight)
	m.Ball.Reset(w/2, h/2)
	m.serveTimer = ServeDelay

	win := m.cfg.Gameplay.WinningScore
	switch {
	case m.scoreLeft >= win:
		m.finish(SideLeft, WinnerPlayer1)
	case m.scoreRight >= win:
		if m.mode == ModeSingle {
			m.finish(SideRight, WinnerAI)
		} else {
			m.finish(SideRight, WinnerPlayer2)
		}
	}
}

func (m *Match) finish(side Side, label string) {
	m.over = true
	m.winner = label
	m.serveTimer = 0
	m.emit(EventGameOver, side)
}

func (m *Match) emit(kind EventKind, side Side) {
	m.events = append(m.events, Event{Kind: kind, Side: side})
}

// DrainEvents returns the events since the last call and clears the list.
func (m *Match) DrainEvents() []Event {
	if len(m.events) == 0 {
		return nil
	}
	out := make([]Event, len(m.events))
	copy(out, m.events)
	m.events = m.events[:0]
	return out
}

// TogglePause pauses or resumes play. It does nothing once the match is over.
func (m *Match) TogglePause() {
	if m.over {
		return
	}
	m.paused = !m.paused
}

// Resume unpauses the match.
func (m *Match) Resume() { m.paused = false }

// Paused reports whether play is paused.
func (m *Match) Paused() bool { return m.paused }

// Over reports whether someone reached the winning score.
func (m *Match) Over() bool { return m.over }

// Winner returns "Player 1", "Player 2", "AI" or "" while playing.
func (m *Match) Winner() string { return m.winner }

// Scores returns the left and right scores.
func (m *Match) Scores() (left, right int) { return m.scoreLeft, m.scoreRight }

// Mode returns the match mode.
func (m *Match) Mode() Mode { return m.mode }

// Serving reports whether the ball is waiting to be relaunched.
func (m *Match) Serving() bool { return m.serveTimer > 0 }

// AI returns the controller of the right paddle, or nil in two player mode.
func (m *Match) AI() *AIController { return m.ai }

// Elapsed returns the seconds of unpaused play.
func (m *Match) Elapsed() float64 { return m.elapsed }
