package input

import (
	"tally/badge/state"
	"tally/hal"
)

// Action is the state mutation a button maps to.
type Action uint8

const (
	ActionNone Action = iota
	ActionNextMode
	ActionIncrement
	ActionDecrement
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionNextMode:
		return "next-mode"
	case ActionIncrement:
		return "increment"
	case ActionDecrement:
		return "decrement"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// ActionFor maps a badge button to its action. Button B is reserved.
func ActionFor(b hal.Button) Action {
	switch b {
	case hal.ButtonA:
		return ActionNextMode
	case hal.ButtonUp:
		return ActionIncrement
	case hal.ButtonDown:
		return ActionDecrement
	case hal.ButtonC:
		return ActionReset
	default:
		return ActionNone
	}
}

// Apply performs a on c. It never touches the display snapshot.
func Apply(c *state.Counters, a Action) {
	switch a {
	case ActionNextMode:
		NextMode(c)
	case ActionIncrement:
		Increment(c)
	case ActionDecrement:
		Decrement(c)
	case ActionReset:
		Reset(c)
	}
}

// NextMode advances the mode cyclically.
func NextMode(c *state.Counters) {
	c.Mode = c.Mode.Next()
}

// Increment adds one to the counter selected by the mode.
func Increment(c *state.Counters) { adjust(c, 1) }

// Decrement subtracts one from the counter selected by the mode.
func Decrement(c *state.Counters) { adjust(c, -1) }

func adjust(c *state.Counters, d int) {
	switch c.Mode {
	case state.ModeLife:
		c.Life += d
	case state.ModePoison:
		c.Poison += d
	case state.ModeExp:
		c.Exp += d
	}
}

// Reset restores the power-up state, battery included.
func Reset(c *state.Counters) {
	*c = state.Defaults()
}
