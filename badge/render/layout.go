// Package render paints the counter regions and decides between full and
// partial panel refreshes.
package render

import (
	"strconv"

	"tally/badge/state"
	"tally/hal"
)

// Rect is a panel rectangle in landscape coordinates.
type Rect struct {
	X, Y, W, H int
}

// Region layout. Edges fall on multiples of 8 so partial commits line up with
// the panel's byte columns.
var (
	LifeRect    = Rect{X: 0, Y: 0, W: 136, H: 128}
	ExpRect     = Rect{X: 136, Y: 0, W: 144, H: 64}
	PoisonRect  = Rect{X: 136, Y: 64, W: 144, H: 64}
	BatteryRect = Rect{X: 280, Y: 0, W: 16, H: 128}
)

// RectFor returns the region owned by f. The mode has no region of its own:
// it is drawn as underlines across the counters and always forces a full
// refresh.
func RectFor(f state.Field) (Rect, bool) {
	switch f {
	case state.FieldLife:
		return LifeRect, true
	case state.FieldPoison:
		return PoisonRect, true
	case state.FieldExp:
		return ExpRect, true
	case state.FieldBattery:
		return BatteryRect, true
	}
	return Rect{}, false
}

// Counters at or above this are shown as a kill marker.
const lethalPoison = 10

const (
	labelScale = 0.5
	textRot    = hal.Rotation270
)

// PaintAll clears the whole buffer and draws every region.
func PaintAll(s hal.Surface, c state.Counters) {
	w, h := s.Size()
	s.SetColor(hal.White)
	s.FillRect(0, 0, w, h)
	for _, f := range state.Fields {
		if _, ok := RectFor(f); ok {
			paint(s, f, c)
		}
	}
}

// Paint clears f's region and redraws it. It reports false for fields with no
// region.
func Paint(s hal.Surface, f state.Field, c state.Counters) bool {
	r, ok := RectFor(f)
	if !ok {
		return false
	}
	s.SetColor(hal.White)
	s.FillRect(r.X, r.Y, r.W, r.H)
	paint(s, f, c)
	return true
}

func paint(s hal.Surface, f state.Field, c state.Counters) {
	switch f {
	case state.FieldLife:
		paintLife(s, c)
	case state.FieldPoison:
		v := strconv.Itoa(c.Poison)
		if c.Poison >= lethalPoison {
			v = "X"
		}
		paintCounter(s, PoisonRect, v, "poison", c.Mode == state.ModePoison)
	case state.FieldExp:
		paintCounter(s, ExpRect, strconv.Itoa(c.Exp), "exp", c.Mode == state.ModeExp)
	case state.FieldBattery:
		paintBattery(s, c.Battery)
	}
	s.SetLineWidth(1)
}

// Text is drawn rotated so it reads bottom to top: the baseline is a column
// and glyphs extend toward smaller x.

func paintLife(s hal.Surface, c state.Counters) {
	r := LifeRect
	v := strconv.Itoa(c.Life)
	scale := float32(3)
	if c.Life >= 100 || c.Life <= -10 {
		scale = 2
	}
	s.SetColor(hal.Black)
	drawCentered(s, v, r.X+100, r, scale)
	paintLabel(s, r, r.X+122, r.X+127, "health", c.Mode == state.ModeLife)
}

func paintCounter(s hal.Surface, r Rect, v, label string, active bool) {
	scale := float32(2)
	if hal.TextWidth(v, scale) > r.H-4 {
		scale = 1
	}
	s.SetColor(hal.Black)
	drawCentered(s, v, r.X+96, r, scale)
	paintLabel(s, r, r.X+126, r.X+132, label, active)
}

func paintLabel(s hal.Surface, r Rect, baseline, underline int, label string, active bool) {
	w := hal.TextWidth(label, labelScale)
	y := drawCentered(s, label, baseline, r, labelScale)
	if !active {
		return
	}
	s.SetLineWidth(2)
	s.DrawLine(underline, y+2, underline, y-w-2)
}

// drawCentered centers s along the region's height and returns the starting
// y of the text.
func drawCentered(s hal.Surface, text string, baseline int, r Rect, scale float32) int {
	w := hal.TextWidth(text, scale)
	y := r.Y + (r.H+w)/2
	if y > r.Y+r.H-1 {
		y = r.Y + r.H - 1
	}
	s.DrawText(text, baseline, y, scale, textRot)
	return y
}

// paintBattery draws a vertical gauge of NumBars cells filled from the
// bottom. An unknown level shows an empty outline with a cross.
func paintBattery(s hal.Surface, level int) {
	const (
		bars   = 4
		margin = 2
		gap    = 2
	)
	r := BatteryRect
	x0, y0 := r.X+margin, r.Y+8
	x1, y1 := r.X+r.W-margin-1, r.Y+r.H-8

	s.SetColor(hal.Black)
	s.SetLineWidth(1)
	s.DrawLine(x0, y0, x1, y0)
	s.DrawLine(x1, y0, x1, y1)
	s.DrawLine(x1, y1, x0, y1)
	s.DrawLine(x0, y1, x0, y0)
	// Terminal nub.
	s.FillRect(x0+3, y0-3, x1-x0-5, 3)

	if level < 0 {
		s.DrawLine(x0, y0, x1, y1)
		s.DrawLine(x1, y0, x0, y1)
		return
	}
	if level > bars {
		level = bars
	}
	inner := y1 - y0 - 1
	cell := (inner - gap*(bars+1)) / bars
	for i := 0; i < level; i++ {
		cy := y1 - gap - (i+1)*cell - i*gap
		s.FillRect(x0+gap, cy, x1-x0-2*gap+1, cell)
	}
}
