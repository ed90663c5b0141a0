//go:build !tinygo

package hal

import (
	"math"
	"sync"
)

// Raw values are produced against a 3.3V supply so the firmware's transfer
// function recovers the simulated voltage.
const (
	simSupply  = 3.3
	simRefDiod = 1.24
	simADCFull = 65535
)

// hostAnalog simulates the battery-sense circuit. Volts <= 0 means no cell.
// The cell drains linearly with time and carries a small ripple so the
// sampler's hysteresis has something to filter.
type hostAnalog struct {
	mu      sync.Mutex
	clock   Clock
	volts   float64
	drain   float64 // volts per hour
	ripple  float64 // peak volts
	enabled bool
}

func newHostAnalog(clock Clock, cfg HostConfig) *hostAnalog {
	return &hostAnalog{
		clock:  clock,
		volts:  cfg.BatteryVolts,
		drain:  cfg.DrainPerHour,
		ripple: cfg.Ripple,
	}
}

func (a *hostAnalog) Enable(on bool) {
	a.mu.Lock()
	a.enabled = on
	a.mu.Unlock()
}

func (a *hostAnalog) ReadReference() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return 0
	}
	return uint16(math.Round(simRefDiod * simADCFull / simSupply))
}

func (a *hostAnalog) ReadBattery() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	v := a.voltsAt(a.clock.NowMillis())
	raw := math.Round(v / (3 * simSupply) * simADCFull)
	if raw < 0 {
		return 0
	}
	if raw > simADCFull {
		return simADCFull
	}
	return uint16(raw)
}

func (a *hostAnalog) voltsAt(ms int64) float64 {
	if a.volts <= 0 {
		return 0
	}
	hours := float64(ms) / 3.6e6
	v := a.volts - a.drain*hours
	if a.ripple > 0 {
		v += a.ripple * math.Sin(float64(ms)/1000)
	}
	if v < 0 {
		return 0
	}
	return v
}

// SetVolts replaces the simulated cell voltage (0 unplugs it).
func (a *hostAnalog) SetVolts(v float64) {
	a.mu.Lock()
	a.volts = v
	a.mu.Unlock()
}
