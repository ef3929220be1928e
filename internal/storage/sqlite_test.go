package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/neon-pong/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Normal", ScoreLeft: 5, ScoreRight: 2, Winner: "Player 1"}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	matches, err := store.RecentMatches("", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match after reopen, got %d", len(matches))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(game.Result{
		Mode:       game.ModeSingle,
		Difficulty: "Hard",
		ScoreLeft:  3,
		ScoreRight: 5,
		Winner:     "AI",
		Duration:   92.5,
	})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveMatch() returned an empty match ID")
	}

	rec, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}
	if rec.Mode != game.ModeSingle || rec.Difficulty != "Hard" {
		t.Errorf("Unexpected mode/difficulty: %s/%s", rec.Mode, rec.Difficulty)
	}
	if rec.ScoreLeft != 3 || rec.ScoreRight != 5 {
		t.Errorf("Unexpected score %d-%d", rec.ScoreLeft, rec.ScoreRight)
	}
	if rec.Winner != "AI" || !rec.Completed() {
		t.Errorf("Expected completed match won by AI, got %q", rec.Winner)
	}
	if rec.Duration != 92500*time.Millisecond {
		t.Errorf("Expected duration 92.5s, got %v", rec.Duration)
	}
	if rec.PlayedAt.IsZero() {
		t.Error("PlayedAt was not set")
	}
}

func TestStoreMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.MatchByID("does-not-exist")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("Expected nil for unknown match, got %+v", rec)
	}
}

func TestStoreAbandonedMatch(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(game.Result{Mode: game.ModeTwoPlayer, Difficulty: "Normal", ScoreLeft: 1})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	rec, err := store.MatchByID(id)
	if err != nil || rec == nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if rec.Completed() {
		t.Error("Match without a winner should not be completed")
	}
}

func TestStoreRecentMatchesOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Easy", ScoreLeft: i}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	matches, err := store.RecentMatches("", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(matches))
	}

	// Newest first
	if matches[0].ScoreLeft != 4 || matches[1].ScoreLeft != 3 || matches[2].ScoreLeft != 2 {
		t.Errorf("Matches not in expected order: %+v", matches)
	}
}

func TestStoreRecentMatchesByMode(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Normal"})
	store.SaveMatch(game.Result{Mode: game.ModeTwoPlayer, Difficulty: "Normal"})
	store.SaveMatch(game.Result{Mode: game.ModeTwoPlayer, Difficulty: "Normal"})

	two, err := store.RecentMatches(game.ModeTwoPlayer, 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(two) != 2 {
		t.Errorf("Expected 2 two-player matches, got %d", len(two))
	}
	for _, m := range two {
		if m.Mode != game.ModeTwoPlayer {
			t.Errorf("Unexpected mode %s in filtered history", m.Mode)
		}
	}
}

func TestStoreClearHistory(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Normal"})
	if err := store.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	matches, _ := store.RecentMatches("", 10)
	if len(matches) != 0 {
		t.Errorf("Expected empty history after clear, got %d", len(matches))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Normal", ScoreLeft: 5, ScoreRight: 1, Winner: "Player 1", Duration: 60})
	store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Normal", ScoreLeft: 2, ScoreRight: 5, Winner: "AI", Duration: 30})
	store.SaveMatch(game.Result{Mode: game.ModeSingle, Difficulty: "Normal", ScoreLeft: 1, ScoreRight: 0, Duration: 0})
	store.SaveMatch(game.Result{Mode: game.ModeTwoPlayer, Difficulty: "Easy", ScoreLeft: 5, ScoreRight: 4, Winner: "Player 1", Duration: 10})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(stats))
	}

	single := stats[game.ModeSingle]
	if single == nil {
		t.Fatal("Missing single-player stats")
	}
	if single.Played != 3 || single.Completed != 2 {
		t.Errorf("Expected 3 played / 2 completed, got %d / %d", single.Played, single.Completed)
	}
	if single.LeftWins != 1 || single.RightWins != 1 {
		t.Errorf("Expected 1-1 wins, got %d-%d", single.LeftWins, single.RightWins)
	}
	if single.AvgDuration != 30*time.Second {
		t.Errorf("Expected average 30s, got %v", single.AvgDuration)
	}

	if stats[game.ModeTwoPlayer].LeftWins != 1 {
		t.Errorf("Expected 1 left win in two-player stats")
	}
}

func TestStoreStatsCountsForfeitsByWinner(t *testing.T) {
	store := openTestStore(t)

	// Player 1 led and left; Player 2 left before anyone scored.
	store.SaveMatch(game.Result{Mode: game.ModeOnline, Difficulty: "Normal", ScoreLeft: 3, ScoreRight: 1, Winner: "Player 2", Duration: 20})
	store.SaveMatch(game.Result{Mode: game.ModeOnline, Difficulty: "Normal", ScoreLeft: 0, ScoreRight: 0, Winner: "Player 1", Duration: 5})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	online := stats[game.ModeOnline]
	if online == nil {
		t.Fatal("Missing online stats")
	}
	if online.Completed != 2 {
		t.Errorf("Expected 2 completed, got %d", online.Completed)
	}
	if online.LeftWins != 1 || online.RightWins != 1 {
		t.Errorf("Expected 1-1 wins, got %d-%d", online.LeftWins, online.RightWins)
	}
}

func TestStoreStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected no stats for empty history, got %d", len(stats))
	}
}
