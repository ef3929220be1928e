package settings

import "fmt"

// Difficulty preset names.
const (
	PresetEasy   = "Easy"
	PresetNormal = "Normal"
	PresetHard   = "Hard"
)

// Presets lists the preset names in cycle order.
var Presets = []string{PresetEasy, PresetNormal, PresetHard}

// presetTable holds the AI parameters each preset overrides.
type presetTable struct {
	initialSpeed    float64
	maxSpeed        float64
	initialAccuracy float64
	maxAccuracy     float64
	interval        float64
}

var presetTables = map[string]presetTable{
	PresetEasy:   {initialSpeed: 0.5, maxSpeed: 0.9, initialAccuracy: 0.5, maxAccuracy: 0.8, interval: 15},
	PresetNormal: {initialSpeed: 0.7, maxSpeed: 1.2, initialAccuracy: 0.7, maxAccuracy: 0.95, interval: 10},
	PresetHard:   {initialSpeed: 0.9, maxSpeed: 1.5, initialAccuracy: 0.85, maxAccuracy: 0.99, interval: 8},
}

// IsPreset reports whether name is a known preset.
func IsPreset(name string) bool {
	_, ok := presetTables[name]
	return ok
}

// NextPreset returns the preset after name, wrapping around.
// Unknown names restart the cycle at Easy.
func NextPreset(name string) string {
	for i, p := range Presets {
		if p == name {
			return Presets[(i+1)%len(Presets)]
		}
	}
	return Presets[0]
}

// ApplyDifficultyPreset overwrites the AI ramp with the named preset.
// Rates are left untouched. Unknown names leave the settings unchanged.
func (s *GameSettings) ApplyDifficultyPreset(name string) error {
	t, ok := presetTables[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	s.Gameplay.DifficultyPreset = name
	s.AI.InitialSpeedMultiplier = t.initialSpeed
	s.AI.MaxSpeedMultiplier = t.maxSpeed
	s.AI.InitialAccuracy = t.initialAccuracy
	s.AI.MaxAccuracy = t.maxAccuracy
	s.AI.DifficultyIncreaseInterval = t.interval
	return nil
}
