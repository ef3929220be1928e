// Package game implements the Pong simulation: paddles, ball physics, the
// heuristic AI opponent and the match rules. It works in logical playfield
// units with y pointing up and knows nothing about terminals or audio.
package game

import (
	"math"

	"github.com/vovakirdan/neon-pong/internal/core"
	"github.com/vovakirdan/neon-pong/internal/settings"
)

// Side identifies a paddle.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Paddle is a vertically moving paddle with acceleration and friction.
// Velocities are in field units per tick.
type Paddle struct {
	X, Y           float64
	VelocityY      float64
	TargetVelocity float64
	MaxSpeed       float64
	Side           Side

	Width, Height float64
	MinY, MaxY    float64

	acceleration float64
	friction     float64
}

// NewPaddle creates a paddle centred at (x, y).
func NewPaddle(x, y float64, side Side, cfg *settings.GameSettings) *Paddle {
	h := cfg.Paddle.Height
	return &Paddle{
		X:            x,
		Y:            y,
		MaxSpeed:     cfg.Paddle.Speed,
		Side:         side,
		Width:        cfg.Paddle.Width,
		Height:       h,
		MinY:         h / 2,
		MaxY:         float64(cfg.Display.ScreenHeight) - h/2,
		acceleration: cfg.Paddle.Acceleration,
		friction:     cfg.Paddle.Friction,
	}
}

// MoveUp sets the target velocity to +MaxSpeed.
func (p *Paddle) MoveUp() { p.TargetVelocity = p.MaxSpeed }

// MoveDown sets the target velocity to -MaxSpeed.
func (p *Paddle) MoveDown() { p.TargetVelocity = -p.MaxSpeed }

// Stop sets the target velocity to zero.
func (p *Paddle) Stop() { p.TargetVelocity = 0 }

// Update advances the paddle by one tick.
func (p *Paddle) Update() {
	switch {
	case p.TargetVelocity > p.VelocityY:
		p.VelocityY = math.Min(p.VelocityY+p.acceleration, p.TargetVelocity)
	case p.TargetVelocity < p.VelocityY:
		p.VelocityY = math.Max(p.VelocityY-p.acceleration, p.TargetVelocity)
	}

	if p.TargetVelocity == 0 {
		p.VelocityY *= p.friction
		if math.Abs(p.VelocityY) < 0.1 {
			p.VelocityY = 0
		}
	}

	p.Y += p.VelocityY

	if p.Y < p.MinY {
		p.Y = p.MinY
		p.VelocityY = 0
	} else if p.Y > p.MaxY {
		p.Y = p.MaxY
		p.VelocityY = 0
	}
}

// ResetPosition moves the paddle to y and stops it.
func (p *Paddle) ResetPosition(y float64) {
	p.Y = y
	p.VelocityY = 0
	p.TargetVelocity = 0
}

// Box returns the paddle's collision box.
func (p *Paddle) Box() core.Box {
	return core.BoxAt(p.X, p.Y, p.Width, p.Height)
}
