package core

// Action represents a semantic game action, abstracted from physical key presses.
// The host maps keys (through the configurable bindings) onto actions and the
// match only ever sees actions.
type Action int

const (
	ActionNone   Action = iota
	ActionP1Up          // left paddle up
	ActionP1Down        // left paddle down
	ActionP2Up          // right paddle up (two player mode)
	ActionP2Down        // right paddle down (two player mode)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionP1Up:
		return "P1Up"
	case ActionP1Down:
		return "P1Down"
	case ActionP2Up:
		return "P2Up"
	case ActionP2Down:
		return "P2Down"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions held during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}
