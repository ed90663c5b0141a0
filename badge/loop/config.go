package loop

import (
	"fmt"
	"strings"
	"time"

	"tally/badge/battery"
	"tally/badge/debounce"
	"tally/badge/input"
)

// Profile trades ghosting against flicker.
type Profile string

const (
	// Aggressive forces a full refresh every fifth drawing tick and uses
	// the fastest partial waveform.
	Aggressive Profile = "aggressive"
	// Conservative tolerates more partial refreshes between full ones and
	// uses a slower, cleaner partial waveform.
	Conservative Profile = "conservative"
)

// ParseProfile accepts a profile name, case-insensitively.
func ParseProfile(s string) (Profile, error) {
	switch p := Profile(strings.ToLower(strings.TrimSpace(s))); p {
	case Aggressive, Conservative:
		return p, nil
	case "":
		return Aggressive, nil
	default:
		return "", fmt.Errorf("unknown refresh profile %q", s)
	}
}

// Threshold is the number of drawing ticks per forced full refresh.
func (p Profile) Threshold() int {
	if p == Conservative {
		return 10
	}
	return 5
}

// Config tunes the main loop.
type Config struct {
	Profile        Profile
	DebounceWindow time.Duration
	// QuietPeriod is how long the buttons must be idle before the loop
	// samples the battery or touches the panel.
	QuietPeriod time.Duration
	// SampleInterval rate-limits battery reads.
	SampleInterval time.Duration
	Battery        battery.Config
	QueueDepth     int
	LogDepth       int
	Debug          bool
}

func DefaultConfig() Config {
	return Config{
		Profile:        Aggressive,
		DebounceWindow: debounce.DefaultWindow,
		QuietPeriod:    500 * time.Millisecond,
		SampleInterval: 10 * time.Second,
		Battery:        battery.DefaultConfig(),
		QueueDepth:     input.DefaultDepth,
		LogDepth:       32,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Profile == "" {
		c.Profile = d.Profile
	}
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = d.DebounceWindow
	}
	if c.QuietPeriod <= 0 {
		c.QuietPeriod = d.QuietPeriod
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = d.SampleInterval
	}
	if c.Battery.Bars <= 0 {
		c.Battery = d.Battery
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = d.QueueDepth
	}
	if c.LogDepth <= 0 {
		c.LogDepth = d.LogDepth
	}
	return c
}
