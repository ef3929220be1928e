package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

// CodeLength is the number of characters in a join code.
const CodeLength = 6

// Lobby is a hosted game waiting for an opponent.
type Lobby struct {
	Code      string
	Host      SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long a lobby waits for an opponent
	CleanupPeriod time.Duration // How often expired lobbies are swept
	BroadcastRate int           // Snapshots per second sent to players
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
		BroadcastRate: 60,
	}
}

// ResultSaver stores finished matches. *storage.Store satisfies it.
type ResultSaver interface {
	SaveMatch(r game.Result) (string, error)
}

// Coordinator manages lobbies and active online matches. Messages from
// sessions are processed one at a time on its own goroutine; matches run
// on theirs and report back when they end.
type Coordinator struct {
	config   CoordinatorConfig
	settings *settings.GameSettings
	sessions *SessionRegistry
	saver    ResultSaver
	logger   *log.Logger

	mu           sync.RWMutex
	lobbies      map[string]*Lobby
	hosting      map[SessionID]string
	matches      map[MatchID]*OnlineMatch
	sessionMatch map[SessionID]MatchID

	msgs     chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	running  sync.WaitGroup
}

// NewCoordinator creates a coordinator. Every match gets a copy of gs;
// saver may be nil.
func NewCoordinator(cfg CoordinatorConfig, gs *settings.GameSettings, sessions *SessionRegistry, saver ResultSaver, logger *log.Logger) *Coordinator {
	return &Coordinator{
		config:       cfg,
		settings:     gs,
		sessions:     sessions,
		saver:        saver,
		logger:       logger,
		lobbies:      make(map[string]*Lobby),
		hosting:      make(map[SessionID]string),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionMatch: make(map[SessionID]MatchID),
		msgs:         make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// Start begins processing messages and sweeping lobbies.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts the coordinator down. Running matches end with
// EndReasonShutdown and are saved and reported like any other.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.RLock()
		for _, m := range c.matches {
			m.Shutdown()
		}
		c.mu.RUnlock()
		c.running.Wait()
	})
}

// Send queues a message for the coordinator.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgs <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgs:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.closeLobby(m.SessionID)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if _, busy := c.hosting[msg.SessionID]; busy {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already hosting a game"})
		return
	}
	if _, busy := c.sessionMatch[msg.SessionID]; busy {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a match"})
		return
	}

	code := c.uniqueCode()
	c.lobbies[code] = &Lobby{Code: code, Host: session, CreatedAt: time.Now()}
	c.hosting[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Info("lobby created", "code", code, "host", session.Name())
	session.Send(LobbyCreatedEvent{Code: code})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	switch {
	case !exists:
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	case lobby.Host.ID() == msg.SessionID:
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}
	if _, busy := c.sessionMatch[msg.SessionID]; busy {
		session.Send(LobbyErrorEvent{Message: "Already in a match"})
		return
	}

	// A joiner that was hosting its own lobby gives it up.
	if own, hosting := c.hosting[msg.SessionID]; hosting {
		delete(c.lobbies, own)
		delete(c.hosting, msg.SessionID)
	}

	delete(c.lobbies, code)
	delete(c.hosting, lobby.Host.ID())
	c.startMatch(lobby, session)
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(lobby *Lobby, joiner SessionHandle) {
	cfg := c.settings.Clone()
	id := MatchID(uuid.NewString())
	m := NewOnlineMatch(id, lobby.Code,
		game.NewMatch(cfg, game.ModeOnline, time.Now().UnixNano()),
		lobby.Host, joiner,
		cfg.Display.TargetFPS, c.config.BroadcastRate,
	)

	c.matches[id] = m
	c.sessionMatch[lobby.Host.ID()] = id
	c.sessionMatch[joiner.ID()] = id

	lobby.Host.Send(MatchStartedEvent{MatchID: id, Code: lobby.Code, Side: game.SideLeft, Opponent: joiner.Name()})
	joiner.Send(MatchStartedEvent{MatchID: id, Code: lobby.Code, Side: game.SideRight, Opponent: lobby.Host.Name()})
	c.logger.Info("online match started", "match", id, "left", lobby.Host.Name(), "right", joiner.Name())

	c.running.Add(1)
	go func() {
		defer c.running.Done()
		m.Run(c.handleMatchEnded)
	}()
}

func (c *Coordinator) handleMatchEnded(result MatchResult) {
	c.mu.Lock()
	m, exists := c.matches[result.MatchID]
	if exists {
		delete(c.matches, result.MatchID)
		left, right := m.Players()
		delete(c.sessionMatch, left.ID())
		delete(c.sessionMatch, right.ID())
	}
	c.mu.Unlock()
	if !exists {
		return
	}

	c.logger.Info("online match over",
		"match", result.MatchID,
		"reason", result.Reason,
		"winner", result.Result.Winner,
		"score", []int{result.Result.ScoreLeft, result.Result.ScoreRight},
	)

	if c.saver != nil {
		if _, err := c.saver.SaveMatch(result.Result); err != nil {
			c.logger.Warn("could not save online match", "match", result.MatchID, "error", err)
		}
	}

	evt := MatchEndedEvent{MatchID: result.MatchID, Reason: result.Reason, Result: result.Result}
	left, right := m.Players()
	left.Send(evt)
	right.Send(evt)
}

// closeLobby removes the lobby hosted by id, if any.
func (c *Coordinator) closeLobby(id SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, ok := c.hosting[id]
	if !ok {
		return
	}
	delete(c.lobbies, code)
	delete(c.hosting, id)
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	m, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		m.PlayerLeft(msg.SessionID, EndReasonForfeit)
	}
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	m, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		m.SendInput(msg.Side, msg.Action)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.closeLobby(msg.SessionID)

	c.mu.RLock()
	id, inMatch := c.sessionMatch[msg.SessionID]
	m := c.matches[id]
	c.mu.RUnlock()

	if inMatch && m != nil {
		m.PlayerLeft(msg.SessionID, EndReasonDisconnect)
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.expireLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) expireLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		if now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.hosting, lobby.Host.ID())
			delete(c.lobbies, code)
		}
	}
}

// uniqueCode must be called with c.mu held.
func (c *Coordinator) uniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode returns CodeLength characters from the base32 alphabet
// (A-Z, 2-7).
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:CodeLength]
}

// Lobby returns the lobby with the given code.
func (c *Coordinator) Lobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// Match returns a running match.
func (c *Coordinator) Match(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
