// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/neon-pong/internal/game"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished or abandoned match.
type MatchRecord struct {
	ID         int64
	MatchID    string
	Mode       game.Mode
	Difficulty string
	ScoreLeft  int
	ScoreRight int
	Winner     string // Empty if the match was abandoned
	Duration   time.Duration
	PlayedAt   time.Time
}

// Completed reports whether the match reached the winning score.
func (r MatchRecord) Completed() bool { return r.Winner != "" }

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score_left INTEGER NOT NULL DEFAULT 0,
			score_right INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
		CREATE INDEX IF NOT EXISTS idx_matches_played ON matches(played_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a match result under a fresh match ID, which is returned.
func (s *Store) SaveMatch(r game.Result) (string, error) {
	matchID := uuid.NewString()
	var winner sql.NullString
	if r.Winner != "" {
		winner = sql.NullString{String: r.Winner, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, difficulty, score_left, score_right, winner, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		matchID,
		string(r.Mode),
		r.Difficulty,
		r.ScoreLeft,
		r.ScoreRight,
		winner,
		int64(r.Duration*1000),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return matchID, nil
}

const matchColumns = `id, match_id, mode, difficulty, score_left, score_right, winner, duration_ms, played_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var (
		r        MatchRecord
		mode     string
		winner   sql.NullString
		duration int64
		played   any
	)
	if err := row.Scan(&r.ID, &r.MatchID, &mode, &r.Difficulty, &r.ScoreLeft, &r.ScoreRight, &winner, &duration, &played); err != nil {
		return r, err
	}
	r.Mode = game.Mode(mode)
	r.Winner = winner.String
	r.Duration = time.Duration(duration) * time.Millisecond
	r.PlayedAt = parseTime(played)
	return r, nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID. It returns nil when no
// such match exists.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	r, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &r, nil
}

// RecentMatches retrieves the most recent matches, newest first. An empty
// mode matches every mode.
func (s *Store) RecentMatches(mode game.Mode, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		string(mode), string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ClearHistory deletes every recorded match.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for one game mode.
type ModeStats struct {
	Mode        game.Mode
	Played      int
	Completed   int
	LeftWins    int
	RightWins   int
	AvgDuration time.Duration
	LastPlayed  time.Time
}

// Stats retrieves statistics for every mode that has been played. Wins are
// counted from the recorded winner, not the score, so forfeits land on the
// player who stayed.
func (s *Store) Stats() (map[game.Mode]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode,
		        COUNT(*),
		        COUNT(winner),
		        COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner IN (?, ?) THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(duration_ms), 0),
		        MAX(played_at)
		 FROM matches
		 GROUP BY mode`,
		game.WinnerPlayer1, game.WinnerPlayer2, game.WinnerAI,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[game.Mode]*ModeStats)
	for rows.Next() {
		var (
			st         ModeStats
			mode       string
			avg        float64
			lastPlayed any
		)
		if err := rows.Scan(&mode, &st.Played, &st.Completed, &st.LeftWins, &st.RightWins, &avg, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Mode = game.Mode(mode)
		st.AvgDuration = time.Duration(avg) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
