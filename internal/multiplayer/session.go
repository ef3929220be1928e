// Package multiplayer pairs SSH sessions into online Pong matches. A host
// opens a lobby and shares its join code; the first session to join starts
// a match that runs on the server and streams snapshots to both players.
package multiplayer

import "sync"

// SessionID uniquely identifies a connected session.
type SessionID string

// MatchID uniquely identifies an online match.
type MatchID string

// SessionHandle is how the coordinator and matches talk to a session
// without knowing about SSH or Bubble Tea.
type SessionHandle interface {
	// ID returns the unique session identifier.
	ID() SessionID

	// Name is the player's display name.
	Name() string

	// Send delivers an event without blocking.
	Send(evt SessionEvent)

	// Done returns a channel that closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel. The TUI
// reads Events in a Bubble Tea command.
type ChannelSession struct {
	id       SessionID
	name     string
	events   chan SessionEvent
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a session handle buffering up to size events.
func NewChannelSession(id SessionID, name string, size int) *ChannelSession {
	if size < 1 {
		size = 64
	}
	return &ChannelSession{
		id:     id,
		name:   name,
		events: make(chan SessionEvent, size),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID { return s.id }

// Name returns the player's display name.
func (s *ChannelSession) Name() string { return s.name }

// Send queues evt. When the buffer is full the oldest event is dropped;
// snapshots supersede each other so a slow reader only loses frames.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// Events returns the channel the session reads from.
func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} { return s.done }

// Close marks the session as finished. Safe to call more than once.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() { close(s.done) })
}

// SessionRegistry tracks connected sessions.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

// Register adds a session.
func (r *SessionRegistry) Register(s SessionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Unregister removes a session.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get looks a session up by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
