package game

import "math"

// Ramp is a value that steps up by Rate every Interval seconds of play,
// starting at Initial and capped at Max.
type Ramp struct {
	Initial  float64
	Max      float64
	Rate     float64
	Interval float64
}

// Intervals returns how many whole intervals fit in elapsed.
func (r Ramp) Intervals(elapsed float64) int {
	if r.Interval <= 0 || elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed / r.Interval))
}

// At returns the ramp value after elapsed seconds.
func (r Ramp) At(elapsed float64) float64 {
	v := r.Initial + float64(r.Intervals(elapsed))*r.Rate
	return math.Min(v, r.Max)
}
