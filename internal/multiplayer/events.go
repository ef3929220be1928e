package multiplayer

import (
	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
)

// SessionEvent is sent from the coordinator or a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent is sent to the host once its lobby is open.
type LobbyCreatedEvent struct {
	Code string
}

func (LobbyCreatedEvent) sessionEvent() {}

// LobbyErrorEvent reports a failed lobby operation or an expired lobby.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// MatchStartedEvent tells a session which side it plays.
type MatchStartedEvent struct {
	MatchID  MatchID
	Code     string
	Side     game.Side
	Opponent string
}

func (MatchStartedEvent) sessionEvent() {}

// SnapshotEvent carries the match state to both players.
type SnapshotEvent struct {
	MatchID  MatchID
	Snapshot game.Snapshot
}

func (SnapshotEvent) sessionEvent() {}

// MatchEndedEvent is sent to both players when a match finishes.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  EndReason
	Result  game.Result
}

func (MatchEndedEvent) sessionEvent() {}

// EndReason describes why a match ended.
type EndReason int

const (
	EndReasonCompleted  EndReason = iota // someone reached the winning score
	EndReasonForfeit                     // a player left the match
	EndReasonDisconnect                  // a player's connection dropped
	EndReasonShutdown                    // the server stopped
)

func (r EndReason) String() string {
	switch r {
	case EndReasonCompleted:
		return "Match completed"
	case EndReasonForfeit:
		return "Opponent left"
	case EndReasonDisconnect:
		return "Opponent disconnected"
	case EndReasonShutdown:
		return "Server shutting down"
	default:
		return "Unknown"
	}
}

// CoordinatorMessage is sent from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg asks for a new lobby hosted by the session.
type CreateLobbyMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) coordinatorMessage() {}

// JoinLobbyMsg joins the lobby with the given code and starts the match.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinLobbyMsg) coordinatorMessage() {}

// CancelLobbyMsg closes the session's lobby.
type CancelLobbyMsg struct {
	SessionID SessionID
}

func (CancelLobbyMsg) coordinatorMessage() {}

// LeaveMatchMsg forfeits an active match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

func (LeaveMatchMsg) coordinatorMessage() {}

// PlayerInputMsg forwards a paddle key press. Action must belong to Side:
// P1 actions for the left paddle, P2 actions for the right.
type PlayerInputMsg struct {
	MatchID MatchID
	Side    game.Side
	Action  core.Action
}

func (PlayerInputMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session's connection closes.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}
