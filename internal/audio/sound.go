// Package audio synthesises the game's sound effects and background music,
// writes them as WAV files and plays them back through the speaker.
package audio

// Sound identifies one of the game's audio assets.
type Sound int

const (
	SoundPaddleHit Sound = iota
	SoundWallHit
	SoundScore
	SoundGameStart
	SoundGameOver
	SoundMusic
)

// AllSounds lists every asset in generation order.
var AllSounds = []Sound{SoundPaddleHit, SoundWallHit, SoundScore, SoundGameStart, SoundGameOver, SoundMusic}

// String returns the asset name.
func (s Sound) String() string {
	switch s {
	case SoundPaddleHit:
		return "paddle_hit"
	case SoundWallHit:
		return "wall_hit"
	case SoundScore:
		return "score"
	case SoundGameStart:
		return "game_start"
	case SoundGameOver:
		return "game_over"
	case SoundMusic:
		return "background_music"
	default:
		return "unknown"
	}
}

// FileName returns the WAV file name of the asset.
func (s Sound) FileName() string {
	return s.String() + ".wav"
}

// volumeFactor scales each sound relative to the master volume.
func (s Sound) volumeFactor() float64 {
	switch s {
	case SoundPaddleHit:
		return 0.6
	case SoundWallHit:
		return 0.5
	case SoundScore:
		return 0.7
	case SoundGameStart:
		return 0.6
	case SoundGameOver:
		return 0.8
	case SoundMusic:
		return 0.3
	default:
		return 0
	}
}
