package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// Canvas implements the drawing half of Surface on top of any
// drivers.Displayer. Colors reach the displayer as gray RGBA, 17 steps per
// level; the displayer decides how to quantize them.
type Canvas struct {
	d         drivers.Displayer
	level     uint8
	lineWidth int
}

func NewCanvas(d drivers.Displayer) *Canvas {
	return &Canvas{d: d, lineWidth: 1}
}

// GrayRGBA returns the RGBA value a Canvas emits for level.
func GrayRGBA(level uint8) color.RGBA {
	if level > White {
		level = White
	}
	v := level * 17
	return color.RGBA{R: v, G: v, B: v, A: 0xFF}
}

// LevelOf is the inverse of GrayRGBA, tolerant of arbitrary colors.
func LevelOf(c color.RGBA) uint8 {
	y := (uint16(c.R)*77 + uint16(c.G)*150 + uint16(c.B)*29) >> 8
	return uint8((y + 8) / 17)
}

func (c *Canvas) Size() (w, h int) {
	if c.d == nil {
		return 0, 0
	}
	x, y := c.d.Size()
	return int(x), int(y)
}

func (c *Canvas) SetColor(level uint8) {
	if level > White {
		level = White
	}
	c.level = level
}

func (c *Canvas) SetLineWidth(px int) {
	if px < 1 {
		px = 1
	}
	c.lineWidth = px
}

func (c *Canvas) FillRect(x, y, w, h int) {
	if c.d == nil {
		return
	}
	sw, sh := c.Size()
	x0 := clampInt(x, 0, sw)
	y0 := clampInt(y, 0, sh)
	x1 := clampInt(x+w, 0, sw)
	y1 := clampInt(y+h, 0, sh)
	col := GrayRGBA(c.level)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.d.SetPixel(int16(px), int16(py), col)
		}
	}
}

// DrawLine draws a line with a square pen of the current line width.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	if c.d == nil {
		return
	}
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	half := (c.lineWidth - 1) / 2
	err := dx + dy
	for {
		c.FillRect(x0-half, y0-half, c.lineWidth, c.lineWidth)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawText writes s with its baseline origin at (x, y). Bitmap fonts do not
// scale, so scale picks the nearest font size instead.
func (c *Canvas) DrawText(s string, x, y int, scale float32, rot Rotation) {
	if c.d == nil || s == "" {
		return
	}
	tinyfont.WriteLineRotated(c.d, FontFor(scale), int16(x), int16(y), s, GrayRGBA(c.level), tinyfontRotation(rot))
}

// TextWidth returns the advance width of s at scale.
func TextWidth(s string, scale float32) int {
	_, outbox := tinyfont.LineWidth(FontFor(scale), s)
	return int(outbox)
}

// FontFor maps a drawing scale onto the bundled fonts.
func FontFor(scale float32) tinyfont.Fonter {
	switch {
	case scale >= 3:
		return &freemono.Bold24pt7b
	case scale >= 2:
		return &freemono.Bold18pt7b
	case scale >= 1:
		return &freemono.Bold12pt7b
	default:
		return &freemono.Regular9pt7b
	}
}

func tinyfontRotation(r Rotation) tinyfont.Rotation {
	switch r {
	case Rotation90:
		return tinyfont.ROTATION_90
	case Rotation180:
		return tinyfont.ROTATION_180
	case Rotation270:
		return tinyfont.ROTATION_270
	default:
		return tinyfont.NO_ROTATION
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
