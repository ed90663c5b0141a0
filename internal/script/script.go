// Package script replays button presses from a YAML file against a
// simulated badge.
//
//	steps:
//	  - after: 1s
//	    press: up
//	    repeat: 3
//	    gap: 300ms
//	  - after: 2s
//	    press: a
package script

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tally/hal"
)

// DefaultGap separates repeated presses; it clears the default debounce
// window.
const DefaultGap = 300 * time.Millisecond

// Step waits After, then presses one button Repeat times, Gap apart.
type Step struct {
	After  time.Duration `yaml:"after"`
	Press  string        `yaml:"press"`
	Repeat int           `yaml:"repeat"`
	Gap    time.Duration `yaml:"gap"`

	button hal.Button
}

type Script struct {
	Steps []Step `yaml:"steps"`
}

// Parse decodes and validates a script.
func Parse(b []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		btn, ok := hal.ParseButton(st.Press)
		if !ok {
			return nil, fmt.Errorf("script: step %d: unknown button %q", i+1, st.Press)
		}
		if st.After < 0 || st.Gap < 0 || st.Repeat < 0 {
			return nil, fmt.Errorf("script: step %d: negative value", i+1)
		}
		if st.Repeat == 0 {
			st.Repeat = 1
		}
		if st.Gap == 0 {
			st.Gap = DefaultGap
		}
		st.button = btn
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return Parse(b)
}

// Duration is the time Run takes to press everything.
func (s *Script) Duration() time.Duration {
	var d time.Duration
	for _, st := range s.Steps {
		d += st.After + time.Duration(st.Repeat-1)*st.Gap
	}
	return d
}

// Run presses the script's buttons on p in real time. It returns ctx.Err()
// if cancelled early.
func (s *Script) Run(ctx context.Context, p hal.Presser) error {
	for _, st := range s.Steps {
		if err := sleep(ctx, st.After); err != nil {
			return err
		}
		for n := 0; n < st.Repeat; n++ {
			if n > 0 {
				if err := sleep(ctx, st.Gap); err != nil {
					return err
				}
			}
			p.Press(st.button)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
