package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

const (
	maxLaunchAngle = math.Pi / 4 // 45 degrees
	maxBounceAngle = math.Pi / 3 // 60 degrees
)

// Ball is the ball. Speed is the scalar speed the next bounce rescales to;
// the velocity magnitude equals it after every launch and bounce.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Speed  float64

	Radius     float64
	MinY, MaxY float64

	fieldW        float64
	initialSpeed  float64
	speedIncrease float64
	maxSpeed      float64
}

// NewBall creates a ball at rest at (x, y).
func NewBall(x, y float64, cfg *settings.GameSettings) *Ball {
	r := cfg.Ball.Radius
	return &Ball{
		X:             x,
		Y:             y,
		Speed:         cfg.Ball.InitialSpeed,
		Radius:        r,
		MinY:          r,
		MaxY:          float64(cfg.Display.ScreenHeight) - r,
		fieldW:        float64(cfg.Display.ScreenWidth),
		initialSpeed:  cfg.Ball.InitialSpeed,
		speedIncrease: cfg.Ball.SpeedIncrease,
		maxSpeed:      cfg.Ball.MaxSpeed,
	}
}

// Launch sends the ball left (-1), right (1) or in a random direction (0)
// at an angle drawn uniformly from [-45°, 45°].
func (b *Ball) Launch(direction int, rng *rand.Rand) {
	if direction == 0 {
		direction = 1
		if rng.Intn(2) == 0 {
			direction = -1
		}
	}
	angle := (rng.Float64()*2 - 1) * maxLaunchAngle
	b.VX = float64(direction) * b.Speed * math.Cos(angle)
	b.VY = b.Speed * math.Sin(angle)
}

// Moving reports whether the ball has a velocity.
func (b *Ball) Moving() bool {
	return b.VX != 0 || b.VY != 0
}

// Update integrates one tick and reflects off the top and bottom walls.
// It reports whether a wall was touched.
func (b *Ball) Update() bool {
	b.X += b.VX
	b.Y += b.VY

	switch {
	case b.Y <= b.MinY:
		b.Y = b.MinY
		b.VY = math.Abs(b.VY)
		return b.Moving()
	case b.Y >= b.MaxY:
		b.Y = b.MaxY
		b.VY = -math.Abs(b.VY)
		return b.Moving()
	}
	return false
}

// BounceOffPaddle reverses the ball off a paddle centred at paddleY.
// The outgoing angle depends on where the ball struck: the centre sends it
// straight back, the tips at up to 60°. The ball speeds up by the configured
// increment, never beyond the maximum.
func (b *Ball) BounceOffPaddle(paddleY, paddleHeight float64) {
	current := math.Hypot(b.VX, b.VY)
	if current == 0 {
		current = b.Speed
		// after the reversal below the ball heads for the centre
		if b.X > b.fieldW/2 {
			b.VX = b.Speed
		} else {
			b.VX = -b.Speed
		}
	}

	b.VX = -b.VX

	hit := core.ClampF((b.Y-paddleY)/(paddleHeight/2), -1, 1)
	angle := hit * maxBounceAngle

	direction := 1.0
	if b.VX < 0 {
		direction = -1
	}

	b.Speed = math.Min(b.Speed+b.speedIncrease, b.maxSpeed)
	b.VX = direction * b.Speed * math.Cos(angle)
	b.VY = b.Speed * math.Sin(angle)
}

// Reset centres the ball at rest and restores the initial speed.
func (b *Ball) Reset(x, y float64) {
	b.X = x
	b.Y = y
	b.VX = 0
	b.VY = 0
	b.Speed = b.initialSpeed
}

// OutOfBoundsLeft reports whether the ball left the field on the left.
func (b *Ball) OutOfBoundsLeft() bool { return b.X < 0 }

// OutOfBoundsRight reports whether the ball left the field on the right.
func (b *Ball) OutOfBoundsRight() bool { return b.X > b.fieldW }

// Box returns the square bounding the ball.
func (b *Ball) Box() core.Box {
	return core.BoxAt(b.X, b.Y, b.Radius*2, b.Radius*2)
}
