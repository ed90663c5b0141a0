//go:build !tinygo

// Package hostconfig loads the simulator settings from a config file and
// TALLY_* environment variables.
package hostconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tally/badge/battery"
	"tally/badge/debounce"
	"tally/badge/loop"
	"tally/hal"
)

// Config holds every host-side knob.
type Config struct {
	Profile        string        `mapstructure:"profile"`
	Debounce       time.Duration `mapstructure:"debounce"`
	Quiet          time.Duration `mapstructure:"quiet"`
	SampleInterval time.Duration `mapstructure:"sample-interval"`
	Debug          bool          `mapstructure:"debug"`

	BatteryVolts   float64       `mapstructure:"battery-volts"`
	BatteryDrain   float64       `mapstructure:"battery-drain"`
	BatteryRipple  float64       `mapstructure:"battery-ripple"`
	Chatter        int           `mapstructure:"chatter"`
	FullLatency    time.Duration `mapstructure:"full-latency"`
	PartialLatency time.Duration `mapstructure:"partial-latency"`
	NoGhosting     bool          `mapstructure:"no-ghosting"`

	Headless bool   `mapstructure:"headless"`
	Hz       int    `mapstructure:"hz"`
	Ticks    uint64 `mapstructure:"ticks"`
	Script   string `mapstructure:"script"`
	PNG      string `mapstructure:"png"`

	ConfigPath string `mapstructure:"-"`
}

// Load reads configPath, or $HOME/.config/tally/config.yml when empty. A
// missing file is not an error.
func Load(configPath string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("TALLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	host := hal.DefaultHostConfig()
	v.SetDefault("profile", string(loop.Aggressive))
	v.SetDefault("debounce", debounce.DefaultWindow)
	v.SetDefault("quiet", 500*time.Millisecond)
	v.SetDefault("sample-interval", 10*time.Second)
	v.SetDefault("debug", false)
	v.SetDefault("battery-volts", host.BatteryVolts)
	v.SetDefault("battery-drain", host.DrainPerHour)
	v.SetDefault("battery-ripple", host.Ripple)
	v.SetDefault("chatter", host.Chatter)
	v.SetDefault("full-latency", host.FullLatency)
	v.SetDefault("partial-latency", host.PartialLatency)
	v.SetDefault("no-ghosting", false)
	v.SetDefault("headless", false)
	v.SetDefault("hz", 10)
	v.SetDefault("ticks", 0)
	v.SetDefault("script", "")
	v.SetDefault("png", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".config", "tally", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if _, err := loop.ParseProfile(cfg.Profile); err != nil {
		return cfg, err
	}
	if cfg.Hz <= 0 {
		return cfg, fmt.Errorf("invalid hz: %d", cfg.Hz)
	}
	if cfg.Chatter < 0 {
		return cfg, fmt.Errorf("invalid chatter: %d", cfg.Chatter)
	}
	return cfg, nil
}

// Loop returns the main loop settings.
func (c Config) Loop() (loop.Config, error) {
	p, err := loop.ParseProfile(c.Profile)
	if err != nil {
		return loop.Config{}, err
	}
	out := loop.DefaultConfig()
	out.Profile = p
	out.DebounceWindow = c.Debounce
	out.QuietPeriod = c.Quiet
	out.SampleInterval = c.SampleInterval
	out.Battery = battery.DefaultConfig()
	out.Debug = c.Debug
	return out, nil
}

// Host returns the simulated badge settings.
func (c Config) Host() hal.HostConfig {
	return hal.HostConfig{
		BatteryVolts:   c.BatteryVolts,
		DrainPerHour:   c.BatteryDrain,
		Ripple:         c.BatteryRipple,
		Chatter:        c.Chatter,
		FullLatency:    c.FullLatency,
		PartialLatency: c.PartialLatency,
		NoGhosting:     c.NoGhosting,
	}
}

// HeadlessConfig returns the no-window runner settings. Replay is left for the
// caller to fill in.
func (c Config) HeadlessConfig() hal.HeadlessConfig {
	return hal.HeadlessConfig{
		Enabled: c.Headless,
		Hz:      c.Hz,
		Ticks:   c.Ticks,
		PNG:     c.PNG,
	}
}
