package core

import (
	"math"
	"time"
)

// HoldWindow is how long a key counts as held after a press. Terminals
// report presses only; auto-repeat refreshes the window while a key is
// kept down.
const HoldWindow = 180 * time.Millisecond

// HeldKeys emulates key state from press events. Each press keeps its
// action active for a fixed number of ticks.
type HeldKeys struct {
	ticks     int
	remaining map[Action]int
}

// NewHeldKeys creates a tracker for the given tick rate.
func NewHeldKeys(window time.Duration, tickRate int) *HeldKeys {
	ticks := int(math.Round(window.Seconds() * float64(max(tickRate, 1))))
	return &HeldKeys{
		ticks:     max(ticks, 1),
		remaining: make(map[Action]int),
	}
}

// Press marks the action held and cancels the opposite direction so that
// reversing is immediate.
func (h *HeldKeys) Press(a Action) {
	if a == ActionNone {
		return
	}
	delete(h.remaining, opposite(a))
	h.remaining[a] = h.ticks
}

// Frame returns the actions held during this tick and ages them by one tick.
func (h *HeldKeys) Frame() InputFrame {
	frame := NewInputFrame()
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return frame
}

// Reset releases every key.
func (h *HeldKeys) Reset() { clear(h.remaining) }

func opposite(a Action) Action {
	switch a {
	case ActionP1Up:
		return ActionP1Down
	case ActionP1Down:
		return ActionP1Up
	case ActionP2Up:
		return ActionP2Down
	case ActionP2Down:
		return ActionP2Up
	default:
		return ActionNone
	}
}
