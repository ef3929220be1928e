package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the rate of every generated asset.
const SampleRate = beep.SampleRate(22050)

// Format is the WAV format of the generated assets: mono, 16 bit.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 1, Precision: 2}

// sampleCount returns the number of samples in d seconds.
func sampleCount(d float64) int {
	return int(math.Round(float64(SampleRate) * d))
}

// tone is a finite mono streamer whose i-th sample is fn(i, t).
type tone struct {
	n   int
	pos int
	fn  func(i int, t float64) float64
}

func newTone(seconds float64, fn func(i int, t float64) float64) *tone {
	return &tone{n: sampleCount(seconds), fn: fn}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.n {
			return i, i > 0
		}
		v := g.fn(g.pos, float64(g.pos)/float64(SampleRate))
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

// Len returns the total number of samples.
func (g *tone) Len() int { return g.n }

// Beep is a sine tone shaped by a sine fade in over the first 10 %, a sine
// fade out over the last 30 % and an exp(-3t) decay.
func Beep(freq, seconds, volume float64) beep.Streamer {
	n := sampleCount(seconds)
	fadeIn := int(float64(n) * 0.1)
	fadeOut := int(float64(n) * 0.3)

	return newTone(seconds, func(i int, t float64) float64 {
		in, out := 1.0, 1.0
		if i < fadeIn {
			in = math.Sin(float64(i) / float64(fadeIn) * math.Pi / 2)
		}
		if i > n-fadeOut {
			out = math.Sin(float64(n-i) / float64(fadeOut) * math.Pi / 2)
		}
		env := in * out * math.Exp(-3*t)
		return volume * env * math.Sin(2*math.Pi*freq*t)
	})
}

// sweep glides linearly from f0 to f1 over the duration.
func sweep(f0, f1, seconds, volume float64, env func(t float64) float64) beep.Streamer {
	return newTone(seconds, func(_ int, t float64) float64 {
		f := f0 + (f1-f0)*t/seconds
		return volume * env(t) * math.Sin(2*math.Pi*f*t)
	})
}

// PaddleHit is a soft 220 Hz blip.
func PaddleHit() beep.Streamer { return Beep(220, 0.08, 0.5) }

// WallHit is a muted 165 Hz blip.
func WallHit() beep.Streamer { return Beep(165, 0.06, 0.4) }

// Score falls from 550 to 220 Hz.
func Score() beep.Streamer {
	return sweep(550, 220, 0.3, 0.5, func(t float64) float64 { return math.Exp(-3 * t) })
}

// GameStart rises from 220 to 880 Hz and fades linearly.
func GameStart() beep.Streamer {
	return sweep(220, 880, 0.4, 0.4, func(t float64) float64 { return 1 - t/0.4 })
}

// GameOver falls from 440 to 110 Hz at constant volume.
func GameOver() beep.Streamer {
	return sweep(440, 110, 0.6, 0.5, func(float64) float64 { return 1 })
}

// Generator returns a fresh streamer producing the given asset.
func Generator(s Sound) beep.Streamer {
	switch s {
	case SoundPaddleHit:
		return PaddleHit()
	case SoundWallHit:
		return WallHit()
	case SoundScore:
		return Score()
	case SoundGameStart:
		return GameStart()
	case SoundGameOver:
		return GameOver()
	case SoundMusic:
		return Music(30*time.Second, 120, 0.25)
	default:
		return nil
	}
}
