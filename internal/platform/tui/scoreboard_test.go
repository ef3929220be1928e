package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/storage"
)

func newHistoryStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "pong.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	results := []game.Result{
		{Mode: game.ModeSingle, Difficulty: "Hard", ScoreLeft: 5, ScoreRight: 3, Winner: "Player 1", Duration: 40},
		{Mode: game.ModeTwoPlayer, Difficulty: "Normal", ScoreLeft: 2, ScoreRight: 5, Winner: "Player 2", Duration: 60},
		{Mode: game.ModeTwoPlayer, Difficulty: "Normal", ScoreLeft: 1, ScoreRight: 0, Duration: 12},
	}
	for _, r := range results {
		_, err := store.SaveMatch(r)
		require.NoError(t, err)
	}
	return store
}

func TestScoreboardListsAllModes(t *testing.T) {
	m := NewScoreboardModel(newHistoryStore(t), 100, 30)

	assert.Len(t, m.matches, 3)
	assert.Len(t, m.table.Rows(), 3)

	view := m.View()
	assert.Contains(t, view, "MATCH HISTORY - All")
	assert.Contains(t, view, "played 3")
}

func TestScoreboardTabsFilterByMode(t *testing.T) {
	var model tea.Model = NewScoreboardModel(newHistoryStore(t), 100, 30)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := model.(ScoreboardModel)
	assert.Equal(t, game.ModeSingle, m.tabs[m.tab])
	require.Len(t, m.matches, 1)
	assert.Equal(t, "5-3", m.table.Rows()[0][3])

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(ScoreboardModel)
	assert.Equal(t, game.ModeTwoPlayer, m.tabs[m.tab])
	assert.Len(t, m.matches, 2)
	assert.Contains(t, m.View(), "finished 1")

	// Abandoned matches show no winner.
	winners := []string{m.table.Rows()[0][4], m.table.Rows()[1][4]}
	assert.Contains(t, winners, "-")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = model.(ScoreboardModel)
	assert.Equal(t, game.Mode(""), m.tabs[m.tab])
}

func TestScoreboardWrapsBackwards(t *testing.T) {
	var model tea.Model = NewScoreboardModel(newHistoryStore(t), 100, 30)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	m := model.(ScoreboardModel)
	assert.Equal(t, game.ModeOnline, m.tabs[m.tab])
	assert.Empty(t, m.matches)
	assert.Contains(t, m.View(), "No matches recorded yet.")
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	assert.Contains(t, m.View(), "History unavailable.")
	assert.NotContains(t, m.View(), "Modes")
}

func TestScoreboardQuit(t *testing.T) {
	var model tea.Model = NewScoreboardModel(nil, 100, 30)
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, model.View())
}

func TestScoreboardResize(t *testing.T) {
	var model tea.Model = NewScoreboardModel(newHistoryStore(t), 60, 20)
	assert.NotContains(t, model.View(), "Modes")

	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := model.(ScoreboardModel)
	assert.Equal(t, 120, m.width)
	assert.Len(t, m.table.Rows(), 3)
	assert.Contains(t, m.View(), "Modes")
}
