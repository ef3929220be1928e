package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
)

// MatchResult is the outcome of an online match.
type MatchResult struct {
	MatchID MatchID
	Reason  EndReason
	Result  game.Result
	Ticks   uint64
}

type playerInput struct {
	side   game.Side
	action core.Action
}

type departure struct {
	id     SessionID
	reason EndReason
}

// OnlineMatch runs one authoritative match between two sessions. The host
// plays the left paddle and the joiner the right one.
type OnlineMatch struct {
	id    MatchID
	code  string
	game  *game.Match
	left  SessionHandle
	right SessionHandle

	held   *core.HeldKeys
	inputs chan playerInput
	leave  chan departure

	simRate        int
	broadcastEvery int
	ticks          uint64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
	doneOnce     sync.Once
}

// NewOnlineMatch wraps m, which should be in ModeOnline. simRate is the
// simulation rate in ticks per second; snapshots go out broadcastRate
// times per second.
func NewOnlineMatch(id MatchID, code string, m *game.Match, left, right SessionHandle, simRate, broadcastRate int) *OnlineMatch {
	simRate = max(simRate, 1)
	return &OnlineMatch{
		id:             id,
		code:           code,
		game:           m,
		left:           left,
		right:          right,
		held:           core.NewHeldKeys(core.HoldWindow, simRate),
		inputs:         make(chan playerInput, 64),
		leave:          make(chan departure, 2),
		simRate:        simRate,
		broadcastEvery: max(simRate/max(broadcastRate, 1), 1),
		shutdown:       make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID { return m.id }

// Code returns the join code the match was started from.
func (m *OnlineMatch) Code() string { return m.code }

// Players returns the left and right sessions.
func (m *OnlineMatch) Players() (left, right SessionHandle) { return m.left, m.right }

// SendInput queues a key press. Presses for the wrong side are dropped,
// as are presses that arrive while the queue is full.
func (m *OnlineMatch) SendInput(side game.Side, action core.Action) {
	if !owns(side, action) {
		return
	}
	select {
	case m.inputs <- playerInput{side: side, action: action}:
	default:
	}
}

func owns(side game.Side, a core.Action) bool {
	switch a {
	case core.ActionP1Up, core.ActionP1Down:
		return side == game.SideLeft
	case core.ActionP2Up, core.ActionP2Down:
		return side == game.SideRight
	default:
		return false
	}
}

// PlayerLeft ends the match in favour of the other player.
func (m *OnlineMatch) PlayerLeft(id SessionID, reason EndReason) {
	select {
	case m.leave <- departure{id: id, reason: reason}:
	default:
	}
}

// Run drives the match until someone wins, leaves or the match is shut
// down, then calls onComplete. It returns without calling onComplete when
// the match is stopped.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.simRate))
	defer ticker.Stop()

	go m.monitorSessions()
	m.broadcast()

	for {
		select {
		case <-ticker.C:
			if result, over := m.Step(); over {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case d := <-m.leave:
			if onComplete != nil {
				onComplete(m.forfeit(d))
			}
			return

		case <-m.shutdown:
			if onComplete != nil {
				onComplete(m.interrupted(EndReasonShutdown))
			}
			return

		case <-m.done:
			return
		}
	}
}

// Step advances the simulation by one tick and broadcasts a snapshot when
// one is due. It reports the result once the match is over.
func (m *OnlineMatch) Step() (MatchResult, bool) {
	m.drainInputs()

	m.game.Step(m.held.Frame(), 1/float64(m.simRate))
	m.game.DrainEvents()
	m.ticks++

	over := m.game.Over()
	if over || m.ticks%uint64(m.broadcastEvery) == 0 { //nolint:gosec // broadcastEvery is at least 1
		m.broadcast()
	}
	if !over {
		return MatchResult{}, false
	}
	return MatchResult{
		MatchID: m.id,
		Reason:  EndReasonCompleted,
		Result:  m.game.Result(),
		Ticks:   m.ticks,
	}, true
}

func (m *OnlineMatch) drainInputs() {
	for {
		select {
		case in := <-m.inputs:
			m.held.Press(in.action)
		default:
			return
		}
	}
}

func (m *OnlineMatch) broadcast() {
	evt := SnapshotEvent{MatchID: m.id, Snapshot: m.game.Snapshot()}
	m.left.Send(evt)
	m.right.Send(evt)
}

// forfeit awards the match to whoever stayed.
func (m *OnlineMatch) forfeit(d departure) MatchResult {
	res := m.game.Result()
	if d.id == m.left.ID() {
		res.Winner = game.WinnerPlayer2
	} else {
		res.Winner = game.WinnerPlayer1
	}
	return MatchResult{
		MatchID: m.id,
		Reason:  d.reason,
		Result:  res,
		Ticks:   m.ticks,
	}
}

// interrupted reports the match as it stands, with no winner.
func (m *OnlineMatch) interrupted(reason EndReason) MatchResult {
	res := m.game.Result()
	res.Winner = ""
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Result:  res,
		Ticks:   m.ticks,
	}
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.left.Done():
		m.PlayerLeft(m.left.ID(), EndReasonDisconnect)
	case <-m.right.Done():
		m.PlayerLeft(m.right.ID(), EndReasonDisconnect)
	case <-m.done:
	}
}

// Shutdown ends the match without a winner; Run reports it with
// EndReasonShutdown.
func (m *OnlineMatch) Shutdown() {
	m.shutdownOnce.Do(func() { close(m.shutdown) })
}

// Stop ends the match loop without a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() { close(m.done) })
}
