package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot is a compact copy of the match state. Positions are rounded to
// whole field units and velocities are scaled by 1000. It carries everything
// needed to draw the match, so remote players render from snapshots alone.
type Snapshot struct {
	Mode       Mode
	Tick       uint64
	BallX      int
	BallY      int
	BallVX     int
	BallVY     int
	LeftY      int
	RightY     int
	ScoreLeft  int
	ScoreRight int
	Paused     bool
	Over       bool
	Serving    bool
	Winner     string
	// BallVisible is false while the ball blinks during a serve and once
	// the match is over.
	BallVisible bool
}

// Snapshot returns the current state.
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Mode:       m.mode,
		Tick:       m.tick,
		BallX:      int(math.Round(m.Ball.X)),
		BallY:      int(math.Round(m.Ball.Y)),
		BallVX:     int(math.Round(m.Ball.VX * 1000)),
		BallVY:     int(math.Round(m.Ball.VY * 1000)),
		LeftY:      int(math.Round(m.Left.Y)),
		RightY:     int(math.Round(m.Right.Y)),
		ScoreLeft:  m.scoreLeft,
		ScoreRight: m.scoreRight,
		Paused:     m.paused,
		Over:       m.over,
		Serving:    m.Serving(),
		Winner:     m.winner,

		BallVisible: !m.over && (!m.Serving() || int(m.serveTimer*10)%2 == 0),
	}
}

// Hash returns an FNV-1a digest of the snapshot, for comparing runs.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //nolint:gosec // bit pattern only
		h.Write(buf[:])
	}
	put(int64(s.Tick)) //nolint:gosec // tick fits
	for _, v := range []int{s.BallX, s.BallY, s.BallVX, s.BallVY, s.LeftY, s.RightY, s.ScoreLeft, s.ScoreRight} {
		put(int64(v))
	}
	flags := 0
	if s.Paused {
		flags |= 1
	}
	if s.Over {
		flags |= 2
	}
	if s.Serving {
		flags |= 4
	}
	put(int64(flags))
	h.Write([]byte(s.Winner))
	return h.Sum64()
}

// Result summarises a finished (or abandoned) match for the history table.
type Result struct {
	Mode       Mode
	Difficulty string
	ScoreLeft  int
	ScoreRight int
	Winner     string
	Duration   float64
}

// Result returns the match summary.
func (m *Match) Result() Result {
	return Result{
		Mode:       m.mode,
		Difficulty: m.cfg.Gameplay.DifficultyPreset,
		ScoreLeft:  m.scoreLeft,
		ScoreRight: m.scoreRight,
		Winner:     m.winner,
		Duration:   m.elapsed,
	}
}
