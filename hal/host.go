//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// HostConfig tunes the simulated badge.
type HostConfig struct {
	// BatteryVolts is the simulated cell voltage; 0 simulates no battery.
	BatteryVolts float64
	DrainPerHour float64
	Ripple       float64

	// Chatter is the number of extra bounces each simulated press produces.
	Chatter int

	FullLatency    time.Duration
	PartialLatency time.Duration
	NoGhosting     bool

	// Out receives log lines; stdout when nil.
	Out io.Writer
}

// DefaultHostConfig returns a badge with a healthy cell and bouncy buttons.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		BatteryVolts:   3.9,
		DrainPerHour:   0.05,
		Ripple:         0.02,
		Chatter:        2,
		FullLatency:    900 * time.Millisecond,
		PartialLatency: 250 * time.Millisecond,
	}
}

type hostHAL struct {
	logger  *hostLogger
	led     *hostLED
	panel   *hostPanel
	surface *hostSurface
	buttons *pinButtons
	analog  *hostAnalog
	clock   *hostClock
	kbd     *hostKeyboard
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg, newHostClock(time.Now))
}

func newHost(cfg HostConfig, clock *hostClock) *hostHAL {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger := &hostLogger{w: out}
	panel := newHostPanel(PanelWidth, PanelHeight, cfg)
	buttons := newPinButtons(cfg.Chatter)
	return &hostHAL{
		logger:  logger,
		led:     &hostLED{},
		panel:   panel,
		surface: &hostSurface{Canvas: NewCanvas(panel), panel: panel},
		buttons: buttons,
		analog:  newHostAnalog(clock, cfg),
		clock:   clock,
		kbd:     newHostKeyboard(buttons),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Surface() Surface { return h.surface }
func (h *hostHAL) Buttons() Buttons { return h.buttons }
func (h *hostHAL) Analog() Analog   { return h.analog }
func (h *hostHAL) Clock() Clock     { return h.clock }

func (h *hostHAL) Press(b Button) { h.buttons.Press(b) }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED tracks the activity LED; the window draws it as a dot.
type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	l.on = true
	l.mu.Unlock()
}

func (l *hostLED) Low() {
	l.mu.Lock()
	l.on = false
	l.mu.Unlock()
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

type hostClock struct {
	t0  time.Time
	now func() time.Time
}

func newHostClock(now func() time.Time) *hostClock {
	if now == nil {
		now = time.Now
	}
	return &hostClock{t0: now(), now: now}
}

func (c *hostClock) NowMillis() int64 {
	return c.now().Sub(c.t0).Milliseconds()
}
