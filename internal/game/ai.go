package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-pong/internal/settings"
)

const (
	reactionTime   = 0.1 // seconds between decisions
	trackDeadZone  = 10
	centerDeadZone = 20
	errorFraction  = 0.5 // of paddle height
)

// AIController drives a paddle. It only re-evaluates every reactionTime
// seconds, gets faster and more accurate the longer the match runs, and
// misjudges the intercept when a random draw exceeds its accuracy.
type AIController struct {
	paddle *Paddle
	rng    *rand.Rand

	speed    Ramp
	accuracy Ramp

	baseSpeed   float64
	errorRange  float64
	fieldCenter float64

	elapsed       float64
	sinceDecision float64

	speedMultiplier float64
	currentAccuracy float64
}

// NewAIController creates a controller for paddle using the AI section of cfg.
func NewAIController(paddle *Paddle, cfg *settings.GameSettings, rng *rand.Rand) *AIController {
	a := &AIController{
		paddle: paddle,
		rng:    rng,
		speed: Ramp{
			Initial:  cfg.AI.InitialSpeedMultiplier,
			Max:      cfg.AI.MaxSpeedMultiplier,
			Rate:     cfg.AI.SpeedIncreaseRate,
			Interval: cfg.AI.DifficultyIncreaseInterval,
		},
		accuracy: Ramp{
			Initial:  cfg.AI.InitialAccuracy,
			Max:      cfg.AI.MaxAccuracy,
			Rate:     cfg.AI.AccuracyIncreaseRate,
			Interval: cfg.AI.DifficultyIncreaseInterval,
		},
		baseSpeed:   cfg.Paddle.Speed,
		errorRange:  cfg.Paddle.Height * errorFraction,
		fieldCenter: float64(cfg.Display.ScreenHeight) / 2,
	}
	a.Reset()
	return a
}

// Update advances the controller by dt seconds.
func (a *AIController) Update(ball *Ball, dt float64) {
	a.elapsed += dt
	a.sinceDecision += dt

	a.updateDifficulty()

	if a.sinceDecision >= reactionTime {
		a.sinceDecision = 0
		a.decide(ball)
	}
}

func (a *AIController) updateDifficulty() {
	a.speedMultiplier = a.speed.At(a.elapsed)
	a.currentAccuracy = a.accuracy.At(a.elapsed)
	a.paddle.MaxSpeed = a.baseSpeed * a.speedMultiplier
}

func (a *AIController) decide(ball *Ball) {
	if a.movingAway(ball) {
		a.steer(a.fieldCenter, centerDeadZone)
		return
	}

	target := a.PredictY(ball)
	if a.rng.Float64() > a.currentAccuracy {
		target += (a.rng.Float64()*2 - 1) * a.errorRange
	}
	a.steer(target, trackDeadZone)
}

func (a *AIController) movingAway(ball *Ball) bool {
	if a.paddle.Side == SideRight {
		return ball.VX < 0
	}
	return ball.VX > 0
}

func (a *AIController) steer(target, deadZone float64) {
	switch {
	case math.Abs(a.paddle.Y-target) <= deadZone:
		a.paddle.Stop()
	case a.paddle.Y < target:
		a.paddle.MoveUp()
	default:
		a.paddle.MoveDown()
	}
}

// PredictY extrapolates the ball to the paddle's x and folds the result
// back into the ball's vertical range as the walls would. A ball with no
// horizontal velocity is predicted to stay where it is.
func (a *AIController) PredictY(ball *Ball) float64 {
	if ball.VX == 0 {
		return ball.Y
	}
	t := math.Abs((a.paddle.X - ball.X) / ball.VX)
	return reflect(ball.Y+ball.VY*t, ball.MinY, ball.MaxY)
}

// reflect folds y into [lo, hi] by mirroring at each bound.
func reflect(y, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	period := 2 * span
	d := math.Mod(y-lo, period)
	if d < 0 {
		d += period
	}
	if d > span {
		d = period - d
	}
	return lo + d
}

// Reset restores the initial difficulty and paddle speed.
func (a *AIController) Reset() {
	a.elapsed = 0
	a.sinceDecision = 0
	a.updateDifficulty()
}

// SpeedMultiplier returns the current paddle speed multiplier.
func (a *AIController) SpeedMultiplier() float64 { return a.speedMultiplier }

// Accuracy returns the current probability of an exact prediction.
func (a *AIController) Accuracy() float64 { return a.currentAccuracy }

// Elapsed returns the seconds of play the controller has seen.
func (a *AIController) Elapsed() float64 { return a.elapsed }
