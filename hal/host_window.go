//go:build !tinygo && cgo

package hal

import (
	"context"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tally/internal/buildinfo"
)

const (
	windowScale = 3
	windowTick  = 100 * time.Millisecond
)

// RunWindow starts a desktop window that shows the simulated panel and
// forwards keyboard input to the buttons. The firmware steps on its own
// goroutine so slow panel commits do not stall the window. It blocks until
// the window closes or a step fails.
func RunWindow(newApp func(HAL) func() error, cfg HostConfig) error {
	h := New(cfg).(*hostHAL)
	step := newApp(h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &hostGame{h: h, errc: make(chan error, 1)}
	go func() {
		t := time.NewTicker(windowTick)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if step == nil {
					continue
				}
				if err := step(); err != nil {
					g.errc <- err
					return
				}
			}
		}
	}()

	ebiten.SetWindowTitle("tally (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(PanelWidth*windowScale, PanelHeight*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	panImg  *ebiten.Image
	scratch []uint8
	errc    chan error
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.errc:
		return err
	default:
	}
	g.h.kbd.poll()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	p := g.h.panel
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, p.width, p.height))
		g.scratch = make([]uint8, p.width*p.height)
		g.panImg = ebiten.NewImage(p.width, p.height)
	}

	p.snapshotGray(g.scratch)
	dst := g.img.Pix
	for i, level := range g.scratch {
		c := GrayRGBA(level)
		j := i * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = 0xFF
	}

	// Activity LED in the top-left corner.
	if g.h.led.isOn() {
		for y := 1; y < 4; y++ {
			for x := 1; x < 4; x++ {
				j := (y*p.width + x) * 4
				dst[j+0], dst[j+1], dst[j+2] = 0xFF, 0x40, 0x40
			}
		}
	}

	g.panImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.panImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.width, g.h.panel.height
}
