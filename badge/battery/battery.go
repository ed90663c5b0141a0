// Package battery turns the badge's battery-sense ADC readings into a bar
// level.
package battery

import "math"

const (
	NumBars    = 4
	MinVoltage = 3.2
	MaxVoltage = 4.0

	// Below this the sense line is floating: no cell is connected.
	PresenceFloor = 0.5

	refVoltage = 1.24 // on-board reference diode
	adcFull    = 65535
	divider    = 3 // vbat is sensed through a 1/3 divider
)

// Unknown is the level reported when no battery is present.
const Unknown = -1

// Analog is the sampling circuit consumed by the Sampler.
type Analog interface {
	ReadReference() uint16
	ReadBattery() uint16
	Enable(on bool)
}

// Config sets the voltage range mapped onto the bars.
type Config struct {
	Bars int
	Min  float64
	Max  float64
}

// DefaultConfig matches a single-cell LiPo.
func DefaultConfig() Config {
	return Config{Bars: NumBars, Min: MinVoltage, Max: MaxVoltage}
}

// Voltage converts raw reference and battery samples into volts.
func Voltage(rawRef, rawBatt uint16) float64 {
	if rawRef == 0 {
		return 0
	}
	vdd := refVoltage * adcFull / float64(rawRef)
	return float64(rawBatt) / adcFull * divider * vdd
}

// Level maps v onto [0, cfg.Bars], or Unknown below PresenceFloor.
func (cfg Config) Level(v float64) int {
	if v < PresenceFloor {
		return Unknown
	}
	if cfg.Max <= cfg.Min || cfg.Bars <= 0 {
		return 0
	}
	l := int(math.Floor((v - cfg.Min) * float64(cfg.Bars) / (cfg.Max - cfg.Min)))
	if l < 0 {
		return 0
	}
	if l > cfg.Bars {
		return cfg.Bars
	}
	return l
}

// Sampler reads the analog circuit and applies hysteresis to the level.
type Sampler struct {
	cfg Config
	in  Analog
}

func NewSampler(in Analog, cfg Config) *Sampler {
	if cfg.Bars <= 0 {
		cfg = DefaultConfig()
	}
	return &Sampler{cfg: cfg, in: in}
}

// Read powers the reference circuit, takes one sample pair and returns the
// raw voltage.
func (s *Sampler) Read() float64 {
	if s.in == nil {
		return 0
	}
	s.in.Enable(true)
	ref := s.in.ReadReference()
	batt := s.in.ReadBattery()
	s.in.Enable(false)
	return Voltage(ref, batt)
}

// Sample reads the battery and returns the level to store given the current
// one. A missing battery always wins; otherwise the level only moves when it
// differs from cur by more than one bar.
func (s *Sampler) Sample(cur int) (level int, volts float64) {
	volts = s.Read()
	return Next(s.cfg, cur, volts), volts
}

// Next applies the hysteresis band to a new reading.
func Next(cfg Config, cur int, volts float64) int {
	l := cfg.Level(volts)
	if l == Unknown {
		return Unknown
	}
	d := l - cur
	if d > 1 || d < -1 {
		return l
	}
	return cur
}
