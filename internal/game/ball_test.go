package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-pong/internal/settings"
)

func newTestBall() *Ball {
	return NewBall(640, 360, settings.Default())
}

func TestBallLaunch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 200 {
		b := newTestBall()
		b.Launch(0, rng)
		assert.InDelta(t, b.Speed, math.Hypot(b.VX, b.VY), 1e-9)
		angle := math.Atan2(math.Abs(b.VY), math.Abs(b.VX))
		assert.LessOrEqual(t, angle, math.Pi/4+1e-9)
	}

	b := newTestBall()
	b.Launch(-1, rng)
	assert.Less(t, b.VX, 0.0)
	b.Launch(1, rng)
	assert.Greater(t, b.VX, 0.0)
}

func TestBallWallBounce(t *testing.T) {
	b := newTestBall()
	b.Y = b.MinY + 1
	b.VX, b.VY = 3, -5
	require.True(t, b.Update())
	assert.Equal(t, b.MinY, b.Y)
	assert.InDelta(t, 5, b.VY, 1e-9)

	b.Y = b.MaxY - 1
	b.VY = 5
	require.True(t, b.Update())
	assert.Equal(t, b.MaxY, b.Y)
	assert.InDelta(t, -5, b.VY, 1e-9)

	b.Y = 360
	assert.False(t, b.Update())
}

func TestBallBounceCenterHit(t *testing.T) {
	b := newTestBall()
	b.Y = 400
	b.VX, b.VY = -5, 0
	b.BounceOffPaddle(400, 120)

	assert.InDelta(t, 5.05, b.Speed, 1e-9)
	assert.InDelta(t, 5.05, b.VX, 1e-9)
	assert.InDelta(t, 0, b.VY, 1e-9)
}

func TestBallBounceAngleVariesWithHitPosition(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		angle  float64
	}{
		{"upper tip", 60, math.Pi / 3},
		{"lower tip", -60, -math.Pi / 3},
		{"half way up", 30, math.Pi / 6},
		{"beyond tip clamps", 200, math.Pi / 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBall()
			b.Y = 300 + tc.offset
			b.VX, b.VY = 5, 0
			b.BounceOffPaddle(300, 120)

			assert.Less(t, b.VX, 0.0, "ball must head back left")
			got := math.Atan2(b.VY, -b.VX)
			assert.InDelta(t, tc.angle, got, 1e-9)
			assert.InDelta(t, b.Speed, math.Hypot(b.VX, b.VY), 1e-9)
		})
	}
}

func TestBallSpeedNeverExceedsMax(t *testing.T) {
	cfg := settings.Default()
	b := newTestBall()
	rng := rand.New(rand.NewSource(3))
	b.Launch(1, rng)
	for i := range 1000 {
		b.Y = 100 + rng.Float64()*500
		b.BounceOffPaddle(350, 120)
		if b.Speed > cfg.Ball.MaxSpeed {
			t.Fatalf("bounce %d: speed %v above max", i, b.Speed)
		}
		if v := math.Hypot(b.VX, b.VY); v > cfg.Ball.MaxSpeed+1e-9 {
			t.Fatalf("bounce %d: velocity %v above max", i, v)
		}
	}
	assert.InDelta(t, cfg.Ball.MaxSpeed, b.Speed, 1e-9)
}

func TestBallBounceFromRest(t *testing.T) {
	b := newTestBall()
	b.X = 1000
	b.BounceOffPaddle(b.Y, 120)
	assert.Less(t, b.VX, 0.0, "ball right of centre should head left")

	b = newTestBall()
	b.X = 100
	b.BounceOffPaddle(b.Y, 120)
	assert.Greater(t, b.VX, 0.0, "ball left of centre should head right")
}

func TestBallResetAndBounds(t *testing.T) {
	b := newTestBall()
	b.Speed = 9
	b.VX, b.VY = 3, 3
	b.Reset(640, 360)
	assert.Equal(t, 5.0, b.Speed)
	assert.False(t, b.Moving())

	b.X = -0.1
	assert.True(t, b.OutOfBoundsLeft())
	b.X = 1280.1
	assert.True(t, b.OutOfBoundsRight())
	b.X = 1280
	assert.False(t, b.OutOfBoundsRight())
}
