package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Rotation is the clockwise rotation applied to drawn text.
type Rotation uint8

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// Gray levels accepted by Surface.SetColor.
const (
	Black uint8 = 0
	White uint8 = 15
)

// Surface is a slow bistable panel with a local drawing buffer.
//
// Drawing calls only touch the buffer. Nothing reaches the glass until
// CommitFull or CommitRegion, both of which block until the refresh is done.
type Surface interface {
	Size() (w, h int)
	SetColor(level uint8)
	FillRect(x, y, w, h int)
	DrawText(s string, x, y int, scale float32, rot Rotation)
	SetLineWidth(px int)
	DrawLine(x0, y0, x1, y1 int)

	// CommitFull redraws the whole panel with the full waveform.
	CommitFull() error
	// CommitRegion pushes one rectangle with the fast partial waveform.
	CommitRegion(x, y, w, h int) error
}

// Button identifies one of the badge's front buttons.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonC
	ButtonUp
	ButtonDown

	ButtonCount
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	case ButtonC:
		return "c"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseButton is the inverse of Button.String.
func ParseButton(s string) (Button, bool) {
	for b := ButtonA; b < ButtonCount; b++ {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}

// Buttons delivers raw press edges.
//
// The handler may be called from interrupt context: it must not block,
// allocate or take locks.
type Buttons interface {
	SetHandler(h func(Button)) error
}

// Presser is implemented by HALs whose buttons can be pressed in software.
type Presser interface {
	Press(b Button)
}

// Analog is the battery-sense circuit: a reference diode, the divided cell
// voltage and the switch powering the reference.
type Analog interface {
	ReadReference() uint16
	ReadBattery() uint16
	Enable(on bool)
}

// Clock is a monotonic millisecond source.
type Clock interface {
	NowMillis() int64
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Surface() Surface
	Buttons() Buttons
	Analog() Analog
	Clock() Clock
}
