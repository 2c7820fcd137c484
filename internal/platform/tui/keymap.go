package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hitcircle/internal/core"
)

// Terminals report key presses and auto-repeats but never releases, so a
// held key is modelled as a latch that each repeat extends. The first press
// latches for longer to bridge the keyboard's initial repeat delay.
const (
	heldInitial = 250 * time.Millisecond
	heldRepeat  = 100 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to the actions it stands for.
// Shifted arrows carry boost with the direction.
// Returns nil for unbound keys and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	case "left", "a", "h":
		return []core.Action{core.ActionLeft}, false
	case "right", "d", "l":
		return []core.Action{core.ActionRight}, false
	case "shift+left", "A", "H":
		return []core.Action{core.ActionLeft, core.ActionBoost}, false
	case "shift+right", "D", "L":
		return []core.Action{core.ActionRight, core.ActionBoost}, false
	case " ":
		return []core.Action{core.ActionExpand}, false
	case "`", "r":
		return []core.Action{core.ActionRestart}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	}
	return nil, false
}

// HeldKeys latches level actions between key repeats.
type HeldKeys struct {
	initial time.Duration
	repeat  time.Duration
	until   map[core.Action]time.Time
}

// NewHeldKeys creates a latch with the given first-press and repeat windows.
func NewHeldKeys(initial, repeat time.Duration) *HeldKeys {
	return &HeldKeys{
		initial: initial,
		repeat:  repeat,
		until:   make(map[core.Action]time.Time),
	}
}

// Press marks a as held at now. A press while already held is treated as
// an auto-repeat and extends the latch by the repeat window.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if h.Held(a, now) {
		h.until[a] = now.Add(h.repeat)
		return
	}
	h.until[a] = now.Add(h.initial)
}

// Release drops a immediately.
func (h *HeldKeys) Release(a core.Action) {
	delete(h.until, a)
}

// Held reports whether a is still latched at now.
func (h *HeldKeys) Held(a core.Action, now time.Time) bool {
	until, ok := h.until[a]
	return ok && now.Before(until)
}

// Apply sets every action latched at now on frame and forgets expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if !now.Before(until) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
}

// Reset releases everything.
func (h *HeldKeys) Reset() {
	clear(h.until)
}

// Controller turns a stream of key messages into per-tick input frames:
// movement, boost and restart are latched, pause fires once per press, and
// expand fires on a double tap of space.
type Controller struct {
	keys   *KeyMapper
	held   *HeldKeys
	expand *core.DoubleTap
	edges  core.InputFrame
}

// NewController creates a controller with the given expand double-tap window.
func NewController(doubleTap time.Duration) *Controller {
	return &Controller{
		keys:   NewKeyMapper(),
		held:   NewHeldKeys(heldInitial, heldRepeat),
		expand: core.NewDoubleTap(doubleTap),
		edges:  core.NewInputFrame(),
	}
}

// HandleKey records a key press at now and returns the actions it mapped to.
func (c *Controller) HandleKey(msg tea.KeyMsg, now time.Time) (actions []core.Action, isQuit bool) {
	actions, isQuit = c.keys.MapKey(msg)
	boosted := false
	for _, a := range actions {
		switch a {
		case core.ActionLeft:
			c.held.Release(core.ActionRight)
			c.held.Press(a, now)
		case core.ActionRight:
			c.held.Release(core.ActionLeft)
			c.held.Press(a, now)
		case core.ActionBoost:
			boosted = true
			c.held.Press(a, now)
		case core.ActionRestart:
			c.held.Press(a, now)
		case core.ActionExpand:
			if c.expand.Press(now) {
				c.edges.Set(core.ActionExpand)
			}
		case core.ActionPause:
			c.edges.Set(core.ActionPause)
		}
	}
	if !boosted && hasAction(actions, core.ActionLeft, core.ActionRight) {
		c.held.Release(core.ActionBoost)
	}
	return actions, isQuit
}

// Frame builds the input for the tick at now and consumes pending edges.
func (c *Controller) Frame(now time.Time) core.InputFrame {
	frame := c.edges.Clone()
	c.edges.Clear()
	c.held.Apply(&frame, now)
	return frame
}

// Reset drops held keys, pending edges and any half-finished double tap.
// A latched restart key survives, so a key still held from the restart that
// caused the reset keeps reading as held.
func (c *Controller) Reset() {
	restart, ok := c.held.until[core.ActionRestart]
	c.held.Reset()
	if ok {
		c.held.until[core.ActionRestart] = restart
	}
	c.edges.Clear()
	c.expand.Reset()
}

func hasAction(actions []core.Action, want ...core.Action) bool {
	for _, a := range actions {
		for _, w := range want {
			if a == w {
				return true
			}
		}
	}
	return false
}

// MenuAction represents actions in menu context.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key message to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k", "w":
		return MenuActionUp
	case "down", "j", "s":
		return MenuActionDown
	case "left", "h", "a":
		return MenuActionLeft
	case "right", "l", "d":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "esc", "b":
		return MenuActionBack
	case "tab":
		return MenuActionHistory
	}
	return MenuActionNone
}
