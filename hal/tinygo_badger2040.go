//go:build tinygo && (badger2040 || badger2040_w)

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/uc8151"
)

// Battery sense wiring on the Badger 2040.
const (
	pinVBatSense = machine.GPIO29
	pinVRef      = machine.GPIO28
	pinVRefPower = machine.GPIO27
)

// BadgerConfig selects the panel waveforms.
type BadgerConfig struct {
	// FullSpeed drives CommitFull. Slower speeds clear ghosting better.
	FullSpeed uc8151.Speed
	// PartialSpeed drives CommitRegion with the flicker-free waveform.
	PartialSpeed uc8151.Speed
}

type badgerHAL struct {
	logger  *serialLogger
	led     *pinLED
	surface *badgerSurface
	buttons *badgerButtons
	analog  *badgerAnalog
	clock   *monoClock
}

// New returns the Badger 2040 HAL.
func New(cfg BadgerConfig) HAL {
	// Keep the board powered while running from battery.
	power := machine.ENABLE_3V3
	power.Configure(machine.PinConfig{Mode: machine.PinOutput})
	power.High()

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 12000000,
		SCK:       machine.EPD_SCK_PIN,
		SDO:       machine.EPD_SDO_PIN,
	})
	dev := uc8151.New(machine.SPI0, machine.EPD_CS_PIN, machine.EPD_DC_PIN, machine.EPD_RESET_PIN, machine.EPD_BUSY_PIN)
	dev.Configure(uc8151.Config{
		Speed:    cfg.FullSpeed,
		Blocking: true,
		Rotation: uc8151.ROTATION_270,
	})

	machine.InitADC()

	return &badgerHAL{
		logger:  &serialLogger{out: machine.Serial},
		led:     &pinLED{pin: ledPin},
		surface: newBadgerSurface(&dev, cfg.PartialSpeed),
		buttons: newBadgerButtons(),
		analog:  newBadgerAnalog(),
		clock:   &monoClock{t0: time.Now()},
	}
}

func (h *badgerHAL) Logger() Logger   { return h.logger }
func (h *badgerHAL) LED() LED         { return h.led }
func (h *badgerHAL) Surface() Surface { return h.surface }
func (h *badgerHAL) Buttons() Buttons { return h.buttons }
func (h *badgerHAL) Analog() Analog   { return h.analog }
func (h *badgerHAL) Clock() Clock     { return h.clock }

// badgerSurface draws into the uc8151 frame buffer.
type badgerSurface struct {
	*Canvas
	dev     *uc8151.Device
	partial uc8151.Speed
}

func newBadgerSurface(dev *uc8151.Device, partial uc8151.Speed) *badgerSurface {
	return &badgerSurface{
		Canvas:  NewCanvas(inkDisplayer{dev: dev}),
		dev:     dev,
		partial: partial,
	}
}

func (s *badgerSurface) CommitFull() error {
	// Display reloads the configured full-refresh waveform itself.
	return s.dev.Display()
}

func (s *badgerSurface) CommitRegion(x, y, w, h int) error {
	win, ok := panelWindowFor(x, y, w, h)
	if !ok {
		return nil
	}
	if err := s.dev.SetLUT(s.partial, true); err != nil {
		return err
	}
	return s.dev.DisplayRect(displayRectArgs(win))
}

// inkDisplayer thresholds grey levels onto the 1-bit panel. The driver inks
// any non-zero colour and applies the landscape rotation itself.
type inkDisplayer struct {
	dev *uc8151.Device
}

var (
	ink   = color.RGBA{R: 1, G: 1, B: 1, A: 0xFF}
	paper = color.RGBA{A: 0xFF}
)

func (d inkDisplayer) Size() (x, y int16) { return d.dev.Size() }

func (d inkDisplayer) Display() error { return d.dev.Display() }

func (d inkDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if LevelOf(c) <= White/2 {
		d.dev.SetPixel(x, y, ink)
		return
	}
	d.dev.SetPixel(x, y, paper)
}

// badgerButtons wires the five front buttons: pulled down, active high,
// rising-edge interrupt.
type badgerButtons struct {
	pins [ButtonCount]machine.Pin
	h    func(Button)
}

func newBadgerButtons() *badgerButtons {
	b := &badgerButtons{pins: [ButtonCount]machine.Pin{
		ButtonA:    machine.BUTTON_A,
		ButtonB:    machine.BUTTON_B,
		ButtonC:    machine.BUTTON_C,
		ButtonUp:   machine.BUTTON_UP,
		ButtonDown: machine.BUTTON_DOWN,
	}}
	for _, p := range b.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	}
	return b
}

func (b *badgerButtons) SetHandler(h func(Button)) error {
	b.h = h
	for i, p := range b.pins {
		if h == nil {
			if err := p.SetInterrupt(0, nil); err != nil {
				return err
			}
			continue
		}
		btn := Button(i)
		if err := p.SetInterrupt(machine.PinRising, func(machine.Pin) { b.h(btn) }); err != nil {
			return err
		}
	}
	return nil
}

type badgerAnalog struct {
	vbat  machine.ADC
	vref  machine.ADC
	power machine.Pin
}

func newBadgerAnalog() *badgerAnalog {
	a := &badgerAnalog{
		vbat:  machine.ADC{Pin: pinVBatSense},
		vref:  machine.ADC{Pin: pinVRef},
		power: pinVRefPower,
	}
	a.vbat.Configure(machine.ADCConfig{})
	a.vref.Configure(machine.ADCConfig{})
	a.power.Configure(machine.PinConfig{Mode: machine.PinOutput})
	a.power.Low()
	return a
}

func (a *badgerAnalog) ReadReference() uint16 { return a.vref.Get() }
func (a *badgerAnalog) ReadBattery() uint16   { return a.vbat.Get() }

func (a *badgerAnalog) Enable(on bool) {
	a.power.Set(on)
}

type monoClock struct {
	t0 time.Time
}

func (c *monoClock) NowMillis() int64 { return time.Since(c.t0).Milliseconds() }

// serialLogger writes lines to the USB CDC console.
type serialLogger struct {
	out machine.Serialer
}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.out.WriteByte(s[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.out.WriteByte(b[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }
