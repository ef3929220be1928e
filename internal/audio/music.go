package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

type note struct {
	freq  float64
	beats float64
}

const (
	c2 = 65.41
	d2 = 73.42
	e2 = 82.41
	g2 = 98.00
	a2 = 110.00

	c4 = 261.63
	d4 = 293.66
	e4 = 329.63
	g4 = 392.00
	a4 = 440.00
	c5 = 523.25
)

// C major pentatonic arcade melody.
var melody = []note{
	{e4, 0.5}, {g4, 0.5}, {a4, 0.5}, {c5, 0.5},
	{a4, 0.5}, {g4, 0.5}, {e4, 1.0},
	{d4, 0.5}, {e4, 0.5}, {g4, 0.5}, {a4, 0.5},
	{g4, 0.5}, {e4, 0.5}, {d4, 1.0},
	{c4, 0.5}, {e4, 0.5}, {g4, 0.5}, {e4, 0.5},
	{c4, 0.5}, {e4, 0.5}, {c4, 1.0},
	{d4, 0.5}, {e4, 0.5}, {d4, 0.5}, {c4, 0.5},
	{d4, 2.0},
}

var bassLine = []note{
	{c2, 2}, {g2, 2},
	{a2, 2}, {e2, 2},
	{c2, 2}, {g2, 2},
	{d2, 2}, {g2, 2},
}

// ADSR envelope of melody notes, in seconds.
const (
	attack  = 0.01
	decay   = 0.05
	sustain = 0.7
	release = 0.1
)

// voice walks a looping note sequence.
type voice struct {
	notes []note
	beat  float64
	idx   int
	start float64 // time the current note began
}

func (v *voice) advance(t float64) {
	if t >= v.start+v.duration() {
		v.start = t
		v.idx = (v.idx + 1) % len(v.notes)
	}
}

func (v *voice) duration() float64 { return v.notes[v.idx].beats * v.beat }
func (v *voice) freq() float64     { return v.notes[v.idx].freq }

func adsr(nt, dur float64) float64 {
	switch {
	case nt < attack:
		return nt / attack
	case nt < attack+decay:
		return 1 - (nt-attack)/decay*(1-sustain)
	case nt < dur-release:
		return sustain
	default:
		return sustain * (1 - (nt-(dur-release))/release)
	}
}

// Music renders the looping background track: a melody with a second
// harmonic over a decaying sine bass, mixed and clamped to [-1, 1].
func Music(length time.Duration, bpm int, volume float64) beep.Streamer {
	beat := 60.0 / float64(bpm)
	lead := &voice{notes: melody, beat: beat}
	bass := &voice{notes: bassLine, beat: beat}

	return newTone(length.Seconds(), func(_ int, t float64) float64 {
		lead.advance(t)
		bass.advance(t)

		nt := t - lead.start
		lv := math.Sin(2*math.Pi*lead.freq()*t) + 0.3*math.Sin(4*math.Pi*lead.freq()*t)
		lv *= adsr(nt, lead.duration()) * volume * 0.5

		benv := max(0, 1-(t-bass.start)/bass.duration())
		bv := math.Sin(2*math.Pi*bass.freq()*t) * benv * volume * 0.4

		return max(-1, min(1, lv+bv))
	})
}
