package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - move paddle left
	ActionRight          // Right arrow, D - move paddle right
	ActionBoost          // Shift+arrow - double paddle speed
	ActionExpand         // Double-tapped boost key - temporary paddle widening
	ActionRestart        // Held restart key
	ActionPause          // P - pause/unpause game
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionBoost:
		return "Boost"
	case ActionExpand:
		return "Expand"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// Movement, boost and restart are level signals (active while held);
// expand and pause are edge signals (set only on the tick they fire).
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// DoubleTap detects two presses of the same key within a time window.
// A detected double tap consumes both presses, so a triple press is not
// reported as two double taps.
type DoubleTap struct {
	Window time.Duration
	last   time.Time
}

// NewDoubleTap creates a detector with the given window.
func NewDoubleTap(window time.Duration) *DoubleTap {
	return &DoubleTap{Window: window}
}

// Press records a press at t and reports whether it completed a double tap.
func (d *DoubleTap) Press(t time.Time) bool {
	if !d.last.IsZero() && t.Sub(d.last) <= d.Window {
		d.last = time.Time{}
		return true
	}
	d.last = t
	return false
}

// Reset forgets any pending first press.
func (d *DoubleTap) Reset() {
	d.last = time.Time{}
}
