package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-pong/internal/settings"
)

func newTestAI(seed int64) (*AIController, *Paddle, *Ball) {
	cfg := settings.Default()
	p := NewPaddle(1280-PaddleMargin, 360, SideRight, cfg)
	b := NewBall(640, 360, cfg)
	return NewAIController(p, cfg, rand.New(rand.NewSource(seed))), p, b
}

func TestAIInitialDifficulty(t *testing.T) {
	ai, p, _ := newTestAI(1)
	assert.InDelta(t, 0.7, ai.SpeedMultiplier(), 1e-9)
	assert.InDelta(t, 0.7, ai.Accuracy(), 1e-9)
	assert.InDelta(t, 6*0.7, p.MaxSpeed, 1e-9)
}

func TestAIReactionDelay(t *testing.T) {
	ai, p, b := newTestAI(1)
	b.Y = 650
	b.VX, b.VY = 5, 0

	ai.Update(b, 0.06)
	assert.Zero(t, p.TargetVelocity, "no decision before the reaction time elapses")

	ai.Update(b, 0.06)
	assert.Greater(t, p.TargetVelocity, 0.0, "ball above paddle, AI should move up")
}

func TestAIReturnsToCenterWhenBallMovesAway(t *testing.T) {
	ai, p, b := newTestAI(1)
	b.VX = -5

	ai.Update(b, 0.2)
	assert.Zero(t, p.TargetVelocity, "already centred within dead zone")

	p.ResetPosition(500)
	ai.Update(b, 0.2)
	assert.Less(t, p.TargetVelocity, 0.0)

	p.ResetPosition(200)
	ai.Update(b, 0.2)
	assert.Greater(t, p.TargetVelocity, 0.0)
}

func TestAIDifficultyRamp(t *testing.T) {
	ai, p, b := newTestAI(1)
	b.VX = -5

	ai.Update(b, 10)
	assert.InDelta(t, 0.75, ai.SpeedMultiplier(), 1e-9)
	assert.InDelta(t, 0.72, ai.Accuracy(), 1e-9)
	assert.InDelta(t, 6*0.75, p.MaxSpeed, 1e-9)

	ai.Update(b, 1000)
	assert.InDelta(t, 1.2, ai.SpeedMultiplier(), 1e-9)
	assert.InDelta(t, 0.95, ai.Accuracy(), 1e-9)
}

func TestAIMultipliersMonotonicAndCapped(t *testing.T) {
	ai, _, b := newTestAI(2)
	rng := rand.New(rand.NewSource(9))
	b.VX = -5

	prevSpeed, prevAcc := ai.SpeedMultiplier(), ai.Accuracy()
	for i := range 2000 {
		ai.Update(b, rng.Float64()*0.5)
		s, a := ai.SpeedMultiplier(), ai.Accuracy()
		if s < prevSpeed || a < prevAcc {
			t.Fatalf("step %d: multipliers decreased (%v -> %v, %v -> %v)", i, prevSpeed, s, prevAcc, a)
		}
		if s > 1.2+1e-9 || a > 0.95+1e-9 {
			t.Fatalf("step %d: multipliers above cap (%v, %v)", i, s, a)
		}
		prevSpeed, prevAcc = s, a
	}
}

func TestAIPredictY(t *testing.T) {
	ai, _, b := newTestAI(1)

	b.VX, b.VY = 5, 5
	// 118 ticks to reach x=1230: 360+590 = 950, mirrored at 710 -> 470
	assert.InDelta(t, 470, ai.PredictY(b), 1e-9)

	b.VX, b.VY = 0, 3
	assert.Equal(t, b.Y, ai.PredictY(b))

	b.VX, b.VY = 5, 0
	assert.InDelta(t, 360, ai.PredictY(b), 1e-9)
}

func TestAIPredictionInsideBounds(t *testing.T) {
	ai, _, b := newTestAI(1)
	rng := rand.New(rand.NewSource(11))
	for range 1000 {
		b.X = rng.Float64() * 1280
		b.Y = b.MinY + rng.Float64()*(b.MaxY-b.MinY)
		b.VX = (rng.Float64()*2 - 1) * 12
		b.VY = (rng.Float64()*2 - 1) * 12
		y := ai.PredictY(b)
		require.GreaterOrEqual(t, y, b.MinY)
		require.LessOrEqual(t, y, b.MaxY)
	}
}

func TestAIReset(t *testing.T) {
	ai, p, b := newTestAI(1)
	b.VX = -5
	ai.Update(b, 100)
	ai.Reset()
	assert.Zero(t, ai.Elapsed())
	assert.InDelta(t, 0.7, ai.SpeedMultiplier(), 1e-9)
	assert.InDelta(t, 0.7, ai.Accuracy(), 1e-9)
	assert.InDelta(t, 6*0.7, p.MaxSpeed, 1e-9)
}

func TestRamp(t *testing.T) {
	r := Ramp{Initial: 1, Max: 2, Rate: 0.25, Interval: 5}
	assert.Equal(t, 1.0, r.At(0))
	assert.Equal(t, 1.0, r.At(4.99))
	assert.Equal(t, 1.25, r.At(5))
	assert.Equal(t, 2.0, r.At(500))
	assert.Equal(t, 1.0, Ramp{Initial: 1, Max: 2, Rate: 1}.At(100), "zero interval never ramps")
}
