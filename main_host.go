//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tally/app"
	"tally/hal"
	"tally/internal/buildinfo"
	"tally/internal/hostconfig"
	"tally/internal/script"
)

func main() {
	var configPath string
	var showVersion bool
	var over hostconfig.Config
	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/tally/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&over.Headless, "headless", false, "Run without a window.")
	flag.IntVar(&over.Hz, "hz", 10, "Tick rate in headless mode.")
	flag.Uint64Var(&over.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&over.Script, "script", "", "Replay button presses from a YAML script.")
	flag.StringVar(&over.PNG, "png", "", "Write the final panel image to this file (headless only).")
	flag.StringVar(&over.Profile, "profile", "", "Refresh profile: aggressive or conservative.")
	flag.BoolVar(&over.Debug, "debug", false, "Log debug lines.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := hostconfig.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Headless = over.Headless
		case "hz":
			cfg.Hz = over.Hz
		case "ticks":
			cfg.Ticks = over.Ticks
		case "script":
			cfg.Script = over.Script
		case "png":
			cfg.PNG = over.PNG
		case "profile":
			cfg.Profile = over.Profile
		case "debug":
			cfg.Debug = over.Debug
		}
	})

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg hostconfig.Config) error {
	lc, err := cfg.Loop()
	if err != nil {
		return err
	}
	ac := app.DefaultConfig()
	ac.Loop = lc
	newApp := func(h hal.HAL) func() error { return app.New(h, ac) }

	var replay *script.Script
	if cfg.Script != "" {
		if replay, err = script.Load(cfg.Script); err != nil {
			return err
		}
	}

	if !cfg.Headless {
		if replay != nil {
			return errors.New("-script needs -headless")
		}
		return hal.RunWindow(newApp, cfg.Host())
	}

	hc := cfg.HeadlessConfig()
	if replay != nil {
		hc.Replay = func(ctx context.Context, h hal.HAL) error {
			p, ok := h.(hal.Presser)
			if !ok {
				return hal.ErrNotImplemented
			}
			return replay.Run(ctx, p)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, newApp, hc, cfg.Host())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
