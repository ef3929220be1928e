package settings

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// Default returns the built-in settings. It matches defaults/settings.yaml.
func Default() *GameSettings {
	return &GameSettings{
		Display: DisplaySettings{
			ScreenWidth:  1280,
			ScreenHeight: 720,
			ScreenTitle:  "Pong - Arcade Edition",
			TargetFPS:    120,
			Effects:      true,
		},
		Gameplay: GameplaySettings{
			WinningScore:     10,
			DifficultyPreset: PresetNormal,
		},
		Audio: AudioSettings{
			Enabled:      true,
			MasterVolume: 0.7,
		},
		Paddle: PaddleSettings{
			Width:        20,
			Height:       120,
			Speed:        6.0,
			Acceleration: 0.8,
			Friction:     0.85,
		},
		Ball: BallSettings{
			Radius:        10,
			InitialSpeed:  5.0,
			SpeedIncrease: 0.05,
			MaxSpeed:      12.0,
		},
		AI: AISettings{
			InitialSpeedMultiplier:     0.7,
			MaxSpeedMultiplier:         1.2,
			InitialAccuracy:            0.7,
			MaxAccuracy:                0.95,
			DifficultyIncreaseInterval: 10,
			SpeedIncreaseRate:          0.05,
			AccuracyIncreaseRate:       0.02,
		},
		Controls: Controls{
			SinglePlayer: Binding{Up: "w", Down: "s"},
			TwoPlayerP1:  Binding{Up: "w", Down: "s"},
			TwoPlayerP2:  Binding{Up: "up", Down: "down"},
		},
		Visual: VisualSettings{
			StarCount:            60,
			GridPerspectiveDepth: 0.3,
			MotionBlurLength:     8,
		},
	}
}

// Clone returns a deep copy.
func (s *GameSettings) Clone() *GameSettings {
	c := *s
	return &c
}
