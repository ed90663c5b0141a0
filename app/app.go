package app

import (
	"time"

	"tally/badge/loop"
	"tally/hal"
	"tally/internal/buildinfo"
)

// DefaultTick is the loop period on hardware.
const DefaultTick = 100 * time.Millisecond

type Config struct {
	Loop loop.Config
	Tick time.Duration
}

func DefaultConfig() Config {
	return Config{Loop: loop.DefaultConfig(), Tick: DefaultTick}
}

// New builds the counter loop on h and returns its step function.
func New(h hal.HAL, cfg Config) func() error {
	l, err := loop.New(h, cfg.Loop)
	if err != nil {
		return func() error { return err }
	}
	l.Logf("%s", buildinfo.String())
	return func() (err error) {
		defer recoverPanic(h, &err)
		return l.Step()
	}
}

// Run steps the loop forever (TinyGo entrypoint). A failed step halts the
// badge with the error on the panel.
func Run(h hal.HAL, cfg Config) {
	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	step := New(h, cfg)
	for {
		if err := step(); err != nil {
			if _, ok := err.(*PanicError); !ok {
				showError(h, "tally: halted", err.Error())
			}
			select {}
		}
		time.Sleep(tick)
	}
}
