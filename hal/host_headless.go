//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Replay, when set, runs alongside the loop and may press buttons
	// through the HAL's Presser. It is cancelled once the loop stops.
	Replay func(ctx context.Context, h HAL) error

	// PNG, when set, receives the visible panel after the run.
	PNG string
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, host HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 10
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := New(host).(*hostHAL)
	step := newApp(h)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer stop()
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-t.C:
				if step != nil {
					if err := step(); err != nil {
						return err
					}
				}
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return nil
				}
			}
		}
	})

	if cfg.Replay != nil {
		g.Go(func() error {
			err := cfg.Replay(gctx, h)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			return nil
		})
	}

	err := g.Wait()
	h.logger.WriteLineString(fmt.Sprintf("panel: %d full, %d partial commits, %d ghosted pixels",
		h.panel.fulls, h.panel.partials, h.panel.ghosted()))
	if cfg.PNG != "" {
		if perr := writePanelPNG(h.panel, cfg.PNG); perr != nil && err == nil {
			err = perr
		}
	}
	if err != nil && ctx.Err() == nil && errors.Is(err, context.Canceled) {
		// The loop stopped on its own and cancelled the replay.
		return nil
	}
	return err
}

func writePanelPNG(p *hostPanel, path string) error {
	img := image.NewGray(image.Rect(0, 0, p.width, p.height))
	levels := make([]uint8, p.width*p.height)
	p.snapshotGray(levels)
	for i, l := range levels {
		img.Pix[i] = l * 17
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("panel png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("panel png: %w", err)
	}
	return f.Close()
}
