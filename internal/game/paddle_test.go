package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/neon-pong/internal/settings"
)

func newTestPaddle() *Paddle {
	return NewPaddle(PaddleMargin, 360, SideLeft, settings.Default())
}

func TestPaddleBounds(t *testing.T) {
	p := newTestPaddle()
	assert.InDelta(t, 60, p.MinY, 1e-9)
	assert.InDelta(t, 660, p.MaxY, 1e-9)
}

func TestPaddleAcceleratesTowardTarget(t *testing.T) {
	p := newTestPaddle()
	p.MoveUp()
	p.Update()
	assert.InDelta(t, 0.8, p.VelocityY, 1e-9)
	assert.InDelta(t, 360.8, p.Y, 1e-9)

	for range 20 {
		p.Update()
	}
	assert.InDelta(t, 6.0, p.VelocityY, 1e-9, "velocity must not overshoot max speed")

	p.MoveDown()
	p.Update()
	assert.InDelta(t, 5.2, p.VelocityY, 1e-9)
}

func TestPaddleFrictionStops(t *testing.T) {
	p := newTestPaddle()
	p.MoveUp()
	for range 10 {
		p.Update()
	}
	p.Stop()
	p.Update()
	// decelerate 6 -> 5.2, then friction 0.85
	assert.InDelta(t, 5.2*0.85, p.VelocityY, 1e-9)

	for range 100 {
		p.Update()
	}
	assert.Zero(t, p.VelocityY)
}

func TestPaddleClampZeroesVelocity(t *testing.T) {
	p := newTestPaddle()
	p.ResetPosition(p.MaxY - 1)
	p.MoveUp()
	for range 5 {
		p.Update()
	}
	assert.Equal(t, p.MaxY, p.Y)
	assert.Zero(t, p.VelocityY)

	p.ResetPosition(p.MinY + 1)
	p.MoveDown()
	for range 5 {
		p.Update()
	}
	assert.Equal(t, p.MinY, p.Y)
}

func TestPaddleStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := newTestPaddle()
	for i := range 5000 {
		switch rng.Intn(3) {
		case 0:
			p.MoveUp()
		case 1:
			p.MoveDown()
		default:
			p.Stop()
		}
		if rng.Intn(50) == 0 {
			p.MaxSpeed = 1 + rng.Float64()*20
		}
		p.Update()
		if p.Y < p.MinY || p.Y > p.MaxY {
			t.Fatalf("step %d: paddle at %v outside [%v, %v]", i, p.Y, p.MinY, p.MaxY)
		}
	}
}

func TestPaddleResetPosition(t *testing.T) {
	p := newTestPaddle()
	p.MoveDown()
	p.Update()
	p.ResetPosition(200)
	assert.Equal(t, 200.0, p.Y)
	assert.Zero(t, p.VelocityY)
	assert.Zero(t, p.TargetVelocity)
}
