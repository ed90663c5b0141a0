//go:build !tinygo

package hal

import (
	"fmt"
	"image/color"
	"sync"
	"time"
)

// Badge panel geometry in landscape orientation.
const (
	PanelWidth  = 296
	PanelHeight = 128
)

// maxGhost bounds how many gray levels of residue a pixel can accumulate.
const maxGhost = 3

// hostPanel models a 4-bit gray e-paper panel. Drawing goes into ink; only
// commits copy ink onto the visible glass. Partial commits leave residue on
// pixels they change, which a full commit clears.
type hostPanel struct {
	mu     sync.Mutex
	width  int
	height int

	ink   []uint8
	glass []uint8
	ghost []uint8

	fullDelay    time.Duration
	partialDelay time.Duration
	ghosting     bool

	fulls    int
	partials int
}

func newHostPanel(width, height int, cfg HostConfig) *hostPanel {
	n := width * height
	p := &hostPanel{
		width:        width,
		height:       height,
		ink:          make([]uint8, n),
		glass:        make([]uint8, n),
		ghost:        make([]uint8, n),
		fullDelay:    cfg.FullLatency,
		partialDelay: cfg.PartialLatency,
		ghosting:     !cfg.NoGhosting,
	}
	for i := range p.ink {
		p.ink[i] = White
		p.glass[i] = White
	}
	return p
}

// Size, SetPixel and Display make the panel a drivers.Displayer.

func (p *hostPanel) Size() (x, y int16) { return int16(p.width), int16(p.height) }

func (p *hostPanel) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= p.width || iy < 0 || iy >= p.height {
		return
	}
	p.mu.Lock()
	p.ink[iy*p.width+ix] = LevelOf(c)
	p.mu.Unlock()
}

func (p *hostPanel) Display() error { return p.commitFull() }

func (p *hostPanel) commitFull() error {
	p.mu.Lock()
	copy(p.glass, p.ink)
	for i := range p.ghost {
		p.ghost[i] = 0
	}
	p.fulls++
	d := p.fullDelay
	p.mu.Unlock()

	if d > 0 {
		time.Sleep(d)
	}
	return nil
}

func (p *hostPanel) commitRegion(x, y, w, h int) error {
	x0 := clampInt(x, 0, p.width)
	y0 := clampInt(y, 0, p.height)
	x1 := clampInt(x+w, 0, p.width)
	y1 := clampInt(y+h, 0, p.height)
	if x0 >= x1 || y0 >= y1 {
		return fmt.Errorf("panel: empty region %d,%d %dx%d", x, y, w, h)
	}

	p.mu.Lock()
	for py := y0; py < y1; py++ {
		row := py * p.width
		for px := x0; px < x1; px++ {
			i := row + px
			if p.glass[i] == p.ink[i] && p.ghost[i] == 0 {
				continue
			}
			if p.ghosting && p.glass[i] != p.ink[i] && p.ghost[i] < maxGhost {
				p.ghost[i]++
			}
			p.glass[i] = p.ink[i]
		}
	}
	p.partials++
	d := p.partialDelay
	p.mu.Unlock()

	if d > 0 {
		time.Sleep(d)
	}
	return nil
}

// shade returns the visible level of pixel i: light pixels that were
// partially refreshed show their residue.
func (p *hostPanel) shade(i int) uint8 {
	v := p.glass[i]
	g := p.ghost[i]
	if v > White/2 && g > 0 {
		return v - g
	}
	return v
}

// snapshotGray copies the visible panel into dst, one level per pixel.
func (p *hostPanel) snapshotGray(dst []uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < len(dst) && i < len(p.glass); i++ {
		dst[i] = p.shade(i)
	}
}

// ghosted returns the number of pixels carrying residue.
func (p *hostPanel) ghosted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, g := range p.ghost {
		if g > 0 {
			n++
		}
	}
	return n
}

// hostSurface is the Surface a host HAL hands to the firmware.
type hostSurface struct {
	*Canvas
	panel *hostPanel
}

func (s *hostSurface) CommitFull() error                 { return s.panel.commitFull() }
func (s *hostSurface) CommitRegion(x, y, w, h int) error { return s.panel.commitRegion(x, y, w, h) }
