package multiplayer

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

type fakeSaver struct {
	mu      sync.Mutex
	results []game.Result
}

func (f *fakeSaver) SaveMatch(r game.Result) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return "id", nil
}

func (f *fakeSaver) saved() []game.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]game.Result(nil), f.results...)
}

// next reads events from s until one of type T arrives, skipping snapshots
// and anything else.
func next[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if want, ok := evt.(T); ok {
				return want
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func newTestCoordinator(t *testing.T, saver ResultSaver) (*Coordinator, *ChannelSession, *ChannelSession) {
	t.Helper()
	reg := NewSessionRegistry()
	host := NewChannelSession("host", "alice", 64)
	guest := NewChannelSession("guest", "bob", 64)
	reg.Register(host)
	reg.Register(guest)

	c := NewCoordinator(DefaultCoordinatorConfig(), settings.Default(), reg, saver, log.New(io.Discard))
	t.Cleanup(c.Stop)
	return c, host, guest
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s", "s", 2)
	s.Send(LobbyErrorEvent{Message: "1"})
	s.Send(LobbyErrorEvent{Message: "2"})
	s.Send(LobbyErrorEvent{Message: "3"})

	assert.Equal(t, LobbyErrorEvent{Message: "2"}, <-s.Events())
	assert.Equal(t, LobbyErrorEvent{Message: "3"}, <-s.Events())

	s.Close()
	s.Close()
	s.Send(LobbyErrorEvent{Message: "late"})
	assert.Empty(t, s.Events())
}

func TestSessionRegistry(t *testing.T) {
	reg := NewSessionRegistry()
	s := NewChannelSession("a", "alice", 1)
	reg.Register(s)
	assert.Equal(t, 1, reg.Count())

	got, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alice", got.Name())

	reg.Unregister("a")
	_, ok = reg.Get("a")
	assert.False(t, ok)
}

func TestCreateAndJoinLobbyStartsMatch(t *testing.T) {
	c, host, guest := newTestCoordinator(t, nil)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	created := next[LobbyCreatedEvent](t, host)
	require.Len(t, created.Code, CodeLength)
	_, ok := c.Lobby(created.Code)
	require.True(t, ok)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	assert.Equal(t, "Already hosting a game", next[LobbyErrorEvent](t, host).Message)

	c.handleMessage(JoinLobbyMsg{SessionID: guest.ID(), Code: " " + created.Code + " "})

	hs := next[MatchStartedEvent](t, host)
	gs := next[MatchStartedEvent](t, guest)
	assert.Equal(t, game.SideLeft, hs.Side)
	assert.Equal(t, game.SideRight, gs.Side)
	assert.Equal(t, "bob", hs.Opponent)
	assert.Equal(t, "alice", gs.Opponent)
	assert.Equal(t, hs.MatchID, gs.MatchID)
	assert.Equal(t, 0, c.LobbyCount())
	assert.Equal(t, 1, c.MatchCount())

	snap := next[SnapshotEvent](t, guest)
	assert.Equal(t, game.ModeOnline, snap.Snapshot.Mode)
}

func TestJoinLobbyErrors(t *testing.T) {
	c, host, guest := newTestCoordinator(t, nil)

	c.handleMessage(JoinLobbyMsg{SessionID: guest.ID(), Code: "NOPE00"})
	assert.Equal(t, "Lobby not found", next[LobbyErrorEvent](t, guest).Message)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	code := next[LobbyCreatedEvent](t, host).Code

	c.handleMessage(JoinLobbyMsg{SessionID: host.ID(), Code: code})
	assert.Equal(t, "Cannot join your own lobby", next[LobbyErrorEvent](t, host).Message)
	assert.Equal(t, 1, c.LobbyCount())
}

func TestCancelAndDisconnectCloseLobby(t *testing.T) {
	c, host, guest := newTestCoordinator(t, nil)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	next[LobbyCreatedEvent](t, host)
	c.handleMessage(CancelLobbyMsg{SessionID: host.ID()})
	assert.Equal(t, 0, c.LobbyCount())

	c.handleMessage(CreateLobbyMsg{SessionID: guest.ID()})
	next[LobbyCreatedEvent](t, guest)
	c.handleMessage(SessionDisconnectedMsg{SessionID: guest.ID()})
	assert.Equal(t, 0, c.LobbyCount())
}

func TestExpireLobbies(t *testing.T) {
	c, host, _ := newTestCoordinator(t, nil)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	next[LobbyCreatedEvent](t, host)

	c.expireLobbies(time.Now())
	assert.Equal(t, 1, c.LobbyCount(), "fresh lobby kept")

	c.expireLobbies(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, c.LobbyCount())
	assert.Equal(t, "Lobby expired", next[LobbyErrorEvent](t, host).Message)
}

func TestLeaveMatchForfeits(t *testing.T) {
	saver := &fakeSaver{}
	c, host, guest := newTestCoordinator(t, saver)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	c.handleMessage(JoinLobbyMsg{SessionID: guest.ID(), Code: next[LobbyCreatedEvent](t, host).Code})
	started := next[MatchStartedEvent](t, guest)

	c.handleMessage(LeaveMatchMsg{SessionID: host.ID(), MatchID: started.MatchID})

	ended := next[MatchEndedEvent](t, guest)
	assert.Equal(t, EndReasonForfeit, ended.Reason)
	assert.Equal(t, "Player 2", ended.Result.Winner)
	next[MatchEndedEvent](t, host)

	require.Eventually(t, func() bool { return len(saver.saved()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, game.ModeOnline, saver.saved()[0].Mode)
	assert.Equal(t, 0, c.MatchCount())
}

func TestDisconnectEndsMatch(t *testing.T) {
	c, host, guest := newTestCoordinator(t, nil)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	c.handleMessage(JoinLobbyMsg{SessionID: guest.ID(), Code: next[LobbyCreatedEvent](t, host).Code})
	next[MatchStartedEvent](t, host)

	guest.Close()

	ended := next[MatchEndedEvent](t, host)
	assert.Equal(t, EndReasonDisconnect, ended.Reason)
	assert.Equal(t, "Player 1", ended.Result.Winner)
}

func TestStopEndsRunningMatches(t *testing.T) {
	saver := &fakeSaver{}
	c, host, guest := newTestCoordinator(t, saver)

	c.handleMessage(CreateLobbyMsg{SessionID: host.ID()})
	c.handleMessage(JoinLobbyMsg{SessionID: guest.ID(), Code: next[LobbyCreatedEvent](t, host).Code})
	next[MatchStartedEvent](t, host)
	require.Equal(t, 1, c.MatchCount())

	c.Stop()

	for _, s := range []*ChannelSession{host, guest} {
		ended := next[MatchEndedEvent](t, s)
		assert.Equal(t, EndReasonShutdown, ended.Reason)
		assert.Empty(t, ended.Result.Winner)
	}
	require.Len(t, saver.saved(), 1, "Stop waits for the match to be saved")
	assert.Equal(t, 0, c.MatchCount())
}

func newTestMatch(cfg *settings.GameSettings) (*OnlineMatch, *game.Match, *ChannelSession, *ChannelSession) {
	left := NewChannelSession("l", "left", 256)
	right := NewChannelSession("r", "right", 256)
	gm := game.NewMatch(cfg, game.ModeOnline, 7)
	return NewOnlineMatch("m1", "ABCDEF", gm, left, right, 120, 60), gm, left, right
}

func TestOnlineMatchInputOwnership(t *testing.T) {
	m, gm, _, _ := newTestMatch(settings.Default())
	startL, startR := gm.Left.Y, gm.Right.Y

	m.SendInput(game.SideLeft, core.ActionP2Up) // wrong side, dropped
	m.SendInput(game.SideRight, core.ActionP2Up)
	for range 10 {
		m.Step()
	}

	assert.Equal(t, startL, gm.Left.Y)
	assert.Greater(t, gm.Right.Y, startR)
}

func TestOnlineMatchBroadcastRate(t *testing.T) {
	m, _, left, right := newTestMatch(settings.Default())

	m.Step()
	assert.Empty(t, left.Events())
	m.Step()
	assert.Len(t, left.Events(), 1)
	assert.Len(t, right.Events(), 1)
}

func TestOnlineMatchCompletes(t *testing.T) {
	cfg := settings.Default()
	cfg.Gameplay.WinningScore = 1
	m, gm, left, _ := newTestMatch(cfg)
	gm.Ball.X, gm.Ball.VX, gm.Ball.Y = 5, -10, 700

	result, over := m.Step()
	require.True(t, over)
	assert.Equal(t, EndReasonCompleted, result.Reason)
	assert.Equal(t, "Player 2", result.Result.Winner)
	assert.Equal(t, uint64(1), result.Ticks)

	snap := next[SnapshotEvent](t, left)
	assert.True(t, snap.Snapshot.Over, "final state is always broadcast")
}

func TestOnlineMatchForfeit(t *testing.T) {
	m, _, left, right := newTestMatch(settings.Default())

	r := m.forfeit(departure{id: right.ID(), reason: EndReasonForfeit})
	assert.Equal(t, "Player 1", r.Result.Winner)
	r = m.forfeit(departure{id: left.ID(), reason: EndReasonDisconnect})
	assert.Equal(t, "Player 2", r.Result.Winner)
	assert.Equal(t, EndReasonDisconnect, r.Reason)
}

func TestOnlineMatchShutdown(t *testing.T) {
	m, _, _, _ := newTestMatch(settings.Default())

	results := make(chan MatchResult, 1)
	go m.Run(func(r MatchResult) { results <- r })
	m.Shutdown()
	m.Shutdown()

	select {
	case r := <-results:
		assert.Equal(t, EndReasonShutdown, r.Reason)
		assert.Equal(t, MatchID("m1"), r.MatchID)
		assert.Empty(t, r.Result.Winner)
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not end the match")
	}
}

func TestEndReasonString(t *testing.T) {
	assert.Equal(t, "Opponent left", EndReasonForfeit.String())
	assert.Equal(t, "Unknown", EndReason(99).String())
}
