// Package state holds the counter record and the snapshot it is diffed against.
package state

import "fmt"

// Mode selects which counter the increment and decrement buttons act on.
type Mode uint8

const (
	ModeLife Mode = iota
	ModePoison
	ModeExp
)

// Modes lists the modes in cycling order.
var Modes = [...]Mode{ModeLife, ModePoison, ModeExp}

// Next returns the mode after m, wrapping to the first.
// An unrecognized mode restarts the cycle at the second entry, as if it were
// the first.
func (m Mode) Next() Mode {
	for i, x := range Modes {
		if x == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[1%len(Modes)]
}

func (m Mode) String() string {
	switch m {
	case ModeLife:
		return "life"
	case ModePoison:
		return "poison"
	case ModeExp:
		return "exp"
	default:
		return "unknown"
	}
}

const (
	DefaultLife    = 40
	BatteryUnknown = -1
)

// Counters is the authoritative game state.
type Counters struct {
	Mode    Mode
	Life    int
	Poison  int
	Exp     int
	Battery int // -1 when unknown or unplugged
}

// Defaults returns the power-up state.
func Defaults() Counters {
	return Counters{
		Mode:    ModeLife,
		Life:    DefaultLife,
		Battery: BatteryUnknown,
	}
}

// Active returns the value of the counter selected by Mode.
func (c Counters) Active() (int, bool) {
	switch c.Mode {
	case ModeLife:
		return c.Life, true
	case ModePoison:
		return c.Poison, true
	case ModeExp:
		return c.Exp, true
	}
	return 0, false
}

func (c Counters) String() string {
	return fmt.Sprintf("mode=%s life=%d poison=%d exp=%d battery=%d",
		c.Mode, c.Life, c.Poison, c.Exp, c.Battery)
}

// Field names one independently diffed part of Counters.
type Field uint8

const (
	FieldMode Field = iota
	FieldLife
	FieldPoison
	FieldExp
	FieldBattery
)

// Fields lists every field in diff order.
var Fields = [...]Field{FieldMode, FieldLife, FieldPoison, FieldExp, FieldBattery}

func (f Field) String() string {
	switch f {
	case FieldMode:
		return "mode"
	case FieldLife:
		return "life"
	case FieldPoison:
		return "poison"
	case FieldExp:
		return "exp"
	case FieldBattery:
		return "battery"
	default:
		return "unknown"
	}
}

func (c Counters) value(f Field) int {
	switch f {
	case FieldMode:
		return int(c.Mode)
	case FieldLife:
		return c.Life
	case FieldPoison:
		return c.Poison
	case FieldExp:
		return c.Exp
	case FieldBattery:
		return c.Battery
	}
	return 0
}

func (c Counters) with(f Field, from Counters) Counters {
	switch f {
	case FieldMode:
		c.Mode = from.Mode
	case FieldLife:
		c.Life = from.Life
	case FieldPoison:
		c.Poison = from.Poison
	case FieldExp:
		c.Exp = from.Exp
	case FieldBattery:
		c.Battery = from.Battery
	}
	return c
}
