package settings

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownPreset = errors.New("settings: unknown difficulty preset")
	ErrUnknownSlot   = errors.New("settings: unknown control slot")
	ErrOutOfRange    = errors.New("settings: value out of range")
	ErrBinding       = errors.New("settings: invalid key binding")
)

// Validate checks every field and returns all problems joined together.
func (s *GameSettings) Validate() error {
	var errs []error

	positiveInt := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrOutOfRange, name, v))
		}
	}
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %g", ErrOutOfRange, name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrOutOfRange, name, v))
		}
	}

	positiveInt("screen_width", s.Display.ScreenWidth)
	positiveInt("screen_height", s.Display.ScreenHeight)
	positiveInt("target_fps", s.Display.TargetFPS)
	positiveInt("winning_score", s.Gameplay.WinningScore)
	if !IsPreset(s.Gameplay.DifficultyPreset) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownPreset, s.Gameplay.DifficultyPreset))
	}

	unit("master_volume", s.Audio.MasterVolume)

	positive("paddle.width", s.Paddle.Width)
	positive("paddle.height", s.Paddle.Height)
	positive("paddle.speed", s.Paddle.Speed)
	positive("paddle.acceleration", s.Paddle.Acceleration)
	unit("paddle.friction", s.Paddle.Friction)
	if s.Paddle.Height >= float64(s.Display.ScreenHeight) {
		errs = append(errs, fmt.Errorf("%w: paddle.height must be smaller than screen_height", ErrOutOfRange))
	}

	positive("ball.radius", s.Ball.Radius)
	positive("ball.initial_speed", s.Ball.InitialSpeed)
	positive("ball.max_speed", s.Ball.MaxSpeed)
	if s.Ball.SpeedIncrease < 0 {
		errs = append(errs, fmt.Errorf("%w: ball.speed_increase must not be negative", ErrOutOfRange))
	}
	if s.Ball.InitialSpeed > s.Ball.MaxSpeed {
		errs = append(errs, fmt.Errorf("%w: ball.initial_speed exceeds ball.max_speed", ErrOutOfRange))
	}

	positive("ai.initial_speed_multiplier", s.AI.InitialSpeedMultiplier)
	positive("ai.max_speed_multiplier", s.AI.MaxSpeedMultiplier)
	unit("ai.initial_accuracy", s.AI.InitialAccuracy)
	unit("ai.max_accuracy", s.AI.MaxAccuracy)
	positive("ai.difficulty_increase_interval", s.AI.DifficultyIncreaseInterval)
	if s.AI.SpeedIncreaseRate < 0 || s.AI.AccuracyIncreaseRate < 0 {
		errs = append(errs, fmt.Errorf("%w: ai increase rates must not be negative", ErrOutOfRange))
	}

	if s.Visual.StarCount < 0 || s.Visual.MotionBlurLength < 0 {
		errs = append(errs, fmt.Errorf("%w: visual counts must not be negative", ErrOutOfRange))
	}
	unit("visual.grid_perspective_depth", s.Visual.GridPerspectiveDepth)

	if err := s.Controls.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ReservedKeys are handled by the game itself (sound, volume, pause, leave
// and quit) and cannot drive a paddle.
var ReservedKeys = []string{"m", "+", "=", "-", "_", "p", "q", "esc", "ctrl+c"}

// Validate checks that every key is set, that none is reserved and that
// keys used together are distinct. The single player scheme may reuse two
// player keys.
func (c Controls) Validate() error {
	for _, slot := range AllSlots {
		k := c.Key(slot)
		if k == "" {
			return fmt.Errorf("%w: %s is unbound", ErrBinding, slot)
		}
		if slices.Contains(ReservedKeys, k) {
			return fmt.Errorf("%w: %q is reserved and cannot be bound to %s", ErrBinding, k, slot)
		}
	}
	if c.SinglePlayer.Up == c.SinglePlayer.Down {
		return fmt.Errorf("%w: single player up and down share %q", ErrBinding, c.SinglePlayer.Up)
	}
	two := []ControlSlot{SlotP1Up, SlotP1Down, SlotP2Up, SlotP2Down}
	seen := make(map[string]ControlSlot, len(two))
	for _, slot := range two {
		k := c.Key(slot)
		if other, dup := seen[k]; dup {
			return fmt.Errorf("%w: %q bound to both %s and %s", ErrBinding, k, other, slot)
		}
		seen[k] = slot
	}
	return nil
}

// SetMasterVolume sets the master volume. Values outside [0, 1] are
// rejected and the previous volume is kept.
func (s *GameSettings) SetMasterVolume(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: master_volume %g", ErrOutOfRange, v)
	}
	s.Audio.MasterVolume = v
	return nil
}

// SetWinningScore sets the score needed to win. Non-positive values are rejected.
func (s *GameSettings) SetWinningScore(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: winning_score %d", ErrOutOfRange, n)
	}
	s.Gameplay.WinningScore = n
	return nil
}
