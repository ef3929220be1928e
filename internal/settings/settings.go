// Package settings holds the game configuration record, its YAML persistence
// and the difficulty presets.
package settings

// GameSettings is the complete, flat configuration of the game. A single
// value is loaded at startup and passed to every component that needs it.
type GameSettings struct {
	Display  DisplaySettings  `yaml:"display"`
	Gameplay GameplaySettings `yaml:"gameplay"`
	Audio    AudioSettings    `yaml:"audio"`
	Paddle   PaddleSettings   `yaml:"paddle"`
	Ball     BallSettings     `yaml:"ball"`
	AI       AISettings       `yaml:"ai"`
	Controls Controls         `yaml:"controls"`
	Visual   VisualSettings   `yaml:"visual"`
}

// DisplaySettings describes the logical playfield and the frame rate.
type DisplaySettings struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	ScreenTitle  string `yaml:"screen_title"`
	TargetFPS    int    `yaml:"target_fps"`
	Effects      bool   `yaml:"effects"`
}

// GameplaySettings holds match rules.
type GameplaySettings struct {
	WinningScore     int    `yaml:"winning_score"`
	DifficultyPreset string `yaml:"difficulty_preset"`
}

// AudioSettings holds sound options.
type AudioSettings struct {
	Enabled      bool    `yaml:"audio_enabled"`
	MasterVolume float64 `yaml:"master_volume"`
}

// PaddleSettings defines paddle size and movement physics.
// Speed is in playfield units per tick.
type PaddleSettings struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
}

// BallSettings defines ball size and speed progression.
type BallSettings struct {
	Radius        float64 `yaml:"radius"`
	InitialSpeed  float64 `yaml:"initial_speed"`
	SpeedIncrease float64 `yaml:"speed_increase"`
	MaxSpeed      float64 `yaml:"max_speed"`
}

// AISettings defines the computer opponent and its difficulty ramp.
type AISettings struct {
	InitialSpeedMultiplier     float64 `yaml:"initial_speed_multiplier"`
	MaxSpeedMultiplier         float64 `yaml:"max_speed_multiplier"`
	InitialAccuracy            float64 `yaml:"initial_accuracy"`
	MaxAccuracy                float64 `yaml:"max_accuracy"`
	DifficultyIncreaseInterval float64 `yaml:"difficulty_increase_interval"`
	SpeedIncreaseRate          float64 `yaml:"speed_increase_rate"`
	AccuracyIncreaseRate       float64 `yaml:"accuracy_increase_rate"`
}

// Binding is an up/down key pair, using Bubble Tea key names ("w", "up").
type Binding struct {
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
}

// Controls holds the three control schemes.
type Controls struct {
	SinglePlayer Binding `yaml:"single_player"`
	TwoPlayerP1  Binding `yaml:"two_player_p1"`
	TwoPlayerP2  Binding `yaml:"two_player_p2"`
}

// VisualSettings tunes the background renderer.
type VisualSettings struct {
	StarCount            int     `yaml:"star_count"`
	GridPerspectiveDepth float64 `yaml:"grid_perspective_depth"`
	MotionBlurLength     int     `yaml:"motion_blur_length"`
}

// ControlSlot names one of the six remappable keys.
type ControlSlot int

const (
	SlotSingleUp ControlSlot = iota
	SlotSingleDown
	SlotP1Up
	SlotP1Down
	SlotP2Up
	SlotP2Down
)

// AllSlots lists the slots in menu order.
var AllSlots = []ControlSlot{SlotSingleUp, SlotSingleDown, SlotP1Up, SlotP1Down, SlotP2Up, SlotP2Down}

// String returns the label shown in the controls menu.
func (s ControlSlot) String() string {
	switch s {
	case SlotSingleUp:
		return "Single Player Up"
	case SlotSingleDown:
		return "Single Player Down"
	case SlotP1Up:
		return "Player 1 Up"
	case SlotP1Down:
		return "Player 1 Down"
	case SlotP2Up:
		return "Player 2 Up"
	case SlotP2Down:
		return "Player 2 Down"
	default:
		return "Unknown"
	}
}

func (c *Controls) slot(s ControlSlot) *string {
	switch s {
	case SlotSingleUp:
		return &c.SinglePlayer.Up
	case SlotSingleDown:
		return &c.SinglePlayer.Down
	case SlotP1Up:
		return &c.TwoPlayerP1.Up
	case SlotP1Down:
		return &c.TwoPlayerP1.Down
	case SlotP2Up:
		return &c.TwoPlayerP2.Up
	case SlotP2Down:
		return &c.TwoPlayerP2.Down
	default:
		return nil
	}
}

// Key returns the key bound to a slot.
func (c Controls) Key(s ControlSlot) string {
	if p := c.slot(s); p != nil {
		return *p
	}
	return ""
}

// SetKey binds a key to a slot. The change is rejected, and the previous
// binding kept, if the result would fail validation.
func (c *Controls) SetKey(s ControlSlot, key string) error {
	p := c.slot(s)
	if p == nil {
		return ErrUnknownSlot
	}
	prev := *p
	*p = key
	if err := c.Validate(); err != nil {
		*p = prev
		return err
	}
	return nil
}
