//go:build tinygo && (badger2040 || badger2040_w)

package main

import (
	"tinygo.org/x/drivers/uc8151"

	"tally/app"
	"tally/badge/loop"
	"tally/hal"
)

// profile is set at build time via -ldflags "-X main.profile=conservative".
var profile = string(loop.Aggressive)

func main() {
	cfg := app.DefaultConfig()
	p, err := loop.ParseProfile(profile)
	if err != nil {
		p = loop.Aggressive
	}
	cfg.Loop.Profile = p

	partial := uc8151.TURBO
	if p == loop.Conservative {
		partial = uc8151.FAST
	}
	app.Run(hal.New(hal.BadgerConfig{
		FullSpeed:    uc8151.MEDIUM,
		PartialSpeed: partial,
	}), cfg)
}
