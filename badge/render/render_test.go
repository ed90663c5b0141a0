package render

import (
	"errors"
	"testing"

	"tally/badge/state"
	"tally/hal"
)

type fakeSurface struct {
	fulls   int
	regions []Rect
	texts   []string
	fills   int

	failFull   error
	failRegion map[Rect]error
}

func (f *fakeSurface) Size() (int, int)            { return 296, 128 }
func (f *fakeSurface) SetColor(uint8)              {}
func (f *fakeSurface) FillRect(x, y, w, h int)     { f.fills++ }
func (f *fakeSurface) SetLineWidth(int)            {}
func (f *fakeSurface) DrawLine(x0, y0, x1, y1 int) {}

func (f *fakeSurface) DrawText(s string, x, y int, _ float32, _ hal.Rotation) {
	f.texts = append(f.texts, s)
}

func (f *fakeSurface) CommitFull() error {
	if f.failFull != nil {
		return f.failFull
	}
	f.fulls++
	return nil
}

func (f *fakeSurface) CommitRegion(x, y, w, h int) error {
	r := Rect{X: x, Y: y, W: w, H: h}
	if err := f.failRegion[r]; err != nil {
		return err
	}
	f.regions = append(f.regions, r)
	return nil
}

func (f *fakeSurface) reset() {
	f.fulls = 0
	f.regions = nil
	f.texts = nil
}

func bootedScheduler(t *testing.T, threshold int) (*Scheduler, *state.Counters, *state.Diff, *fakeSurface) {
	t.Helper()
	c := state.Defaults()
	d := state.NewDiff(&c)
	s := NewScheduler(threshold)
	surf := &fakeSurface{}
	out, err := s.Tick(surf, d)
	if err != nil {
		t.Fatalf("boot tick: %v", err)
	}
	if out != Full || surf.fulls != 1 {
		t.Fatalf("expected boot full refresh, got %s (%d fulls)", out, surf.fulls)
	}
	if s.Staleness() != 0 {
		t.Fatalf("expected staleness 0 after boot, got %d", s.Staleness())
	}
	surf.reset()
	return s, &c, d, surf
}

func TestRegionsDoNotOverlap(t *testing.T) {
	rects := []Rect{LifeRect, ExpRect, PoisonRect, BatteryRect}
	for i, a := range rects {
		if a.X%8 != 0 || a.Y%8 != 0 || a.W%8 != 0 || a.H%8 != 0 {
			t.Fatalf("region %v is not byte aligned", a)
		}
		if a.X+a.W > hal.PanelWidth || a.Y+a.H > hal.PanelHeight {
			t.Fatalf("region %v exceeds the panel", a)
		}
		for _, b := range rects[i+1:] {
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				t.Fatalf("regions %v and %v overlap", a, b)
			}
		}
	}
	if _, ok := RectFor(state.FieldMode); ok {
		t.Fatalf("expected no region for mode")
	}
}

func TestQuietTickDoesNothing(t *testing.T) {
	s, _, d, surf := bootedScheduler(t, 5)
	for i := 0; i < 10; i++ {
		out, err := s.Tick(surf, d)
		if err != nil || out != Quiet {
			t.Fatalf("expected quiet tick, got %s, %v", out, err)
		}
	}
	if surf.fulls != 0 || len(surf.regions) != 0 || s.Staleness() != 0 {
		t.Fatalf("expected no commits, got %d fulls, %d regions, staleness %d", surf.fulls, len(surf.regions), s.Staleness())
	}
}

func TestPartialRefreshCommitsOnlyChangedRegion(t *testing.T) {
	s, c, d, surf := bootedScheduler(t, 5)
	c.Life = 39
	out, err := s.Tick(surf, d)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if out != Partial {
		t.Fatalf("expected partial, got %s", out)
	}
	if len(surf.regions) != 1 || surf.regions[0] != LifeRect {
		t.Fatalf("expected only the life region, got %v", surf.regions)
	}
	if d.Changed(state.FieldLife) {
		t.Fatalf("expected life to be flushed")
	}
	if s.Staleness() != 1 {
		t.Fatalf("expected staleness 1, got %d", s.Staleness())
	}
}

func TestFifthDrawingTickIsFull(t *testing.T) {
	s, c, d, surf := bootedScheduler(t, 5)
	for i := 1; i <= 4; i++ {
		c.Life--
		out, err := s.Tick(surf, d)
		if err != nil || out != Partial {
			t.Fatalf("tick %d: expected partial, got %s, %v", i, out, err)
		}
		if s.Staleness() != i {
			t.Fatalf("tick %d: expected staleness %d, got %d", i, i, s.Staleness())
		}
	}
	c.Life--
	out, err := s.Tick(surf, d)
	if err != nil || out != Full {
		t.Fatalf("expected fifth tick full, got %s, %v", out, err)
	}
	if s.Staleness() != 0 {
		t.Fatalf("expected staleness reset, got %d", s.Staleness())
	}
	if len(d.Dirty()) != 0 {
		t.Fatalf("expected clean diff, got %v", d.Dirty())
	}
}

func TestModeChangeForcesFull(t *testing.T) {
	s, c, d, surf := bootedScheduler(t, 5)
	for i := 0; i < 3; i++ {
		c.Exp++
		if _, err := s.Tick(surf, d); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if s.Staleness() != 3 {
		t.Fatalf("expected staleness 3, got %d", s.Staleness())
	}
	c.Mode = c.Mode.Next()
	out, err := s.Tick(surf, d)
	if err != nil || out != Full {
		t.Fatalf("expected full on mode change, got %s, %v", out, err)
	}
	if s.Staleness() != 0 {
		t.Fatalf("expected staleness 0, got %d", s.Staleness())
	}
}

func TestFailedRegionIsRedetected(t *testing.T) {
	s, c, d, surf := bootedScheduler(t, 10)
	surf.failRegion = map[Rect]error{PoisonRect: errors.New("busy")}
	c.Mode = state.ModePoison
	d.FlushAll()
	c.Poison = 2
	c.Exp = 1

	out, err := s.Tick(surf, d)
	if out != Partial || err == nil {
		t.Fatalf("expected partial with error, got %s, %v", out, err)
	}
	if !d.Changed(state.FieldPoison) {
		t.Fatalf("expected poison to stay dirty")
	}
	if d.Changed(state.FieldExp) {
		t.Fatalf("expected exp to be flushed")
	}

	delete(surf.failRegion, PoisonRect)
	surf.reset()
	out, err = s.Tick(surf, d)
	if err != nil || out != Partial {
		t.Fatalf("expected partial retry, got %s, %v", out, err)
	}
	if len(surf.regions) != 1 || surf.regions[0] != PoisonRect {
		t.Fatalf("expected poison retry, got %v", surf.regions)
	}
}

func TestFailedPartialKeepsStaleness(t *testing.T) {
	s, c, d, surf := bootedScheduler(t, 5)
	surf.failRegion = map[Rect]error{LifeRect: errors.New("busy")}
	c.Life = 39

	out, err := s.Tick(surf, d)
	if out != Partial || err == nil {
		t.Fatalf("expected partial with error, got %s, %v", out, err)
	}
	if s.Staleness() != 0 {
		t.Fatalf("expected staleness 0 when nothing was drawn, got %d", s.Staleness())
	}
	if !d.Changed(state.FieldLife) {
		t.Fatalf("expected life to stay dirty")
	}

	delete(surf.failRegion, LifeRect)
	out, err = s.Tick(surf, d)
	if err != nil || out != Partial {
		t.Fatalf("expected partial retry, got %s, %v", out, err)
	}
	if s.Staleness() != 1 {
		t.Fatalf("expected staleness 1, got %d", s.Staleness())
	}
}

func TestFailedFullKeepsStaleness(t *testing.T) {
	c := state.Defaults()
	d := state.NewDiff(&c)
	s := NewScheduler(5)
	surf := &fakeSurface{failFull: errors.New("busy")}
	if _, err := s.Tick(surf, d); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := d.Snapshot(); ok {
		t.Fatalf("expected no snapshot after failed full")
	}
	surf.failFull = nil
	out, err := s.Tick(surf, d)
	if err != nil || out != Full {
		t.Fatalf("expected full retry, got %s, %v", out, err)
	}
}

func TestPoisonShowsLethalMarker(t *testing.T) {
	surf := &fakeSurface{}
	c := state.Defaults()
	c.Poison = 10
	Paint(surf, state.FieldPoison, c)
	if len(surf.texts) == 0 || surf.texts[0] != "X" {
		t.Fatalf("expected X, got %v", surf.texts)
	}
	surf.reset()
	c.Poison = 9
	Paint(surf, state.FieldPoison, c)
	if len(surf.texts) == 0 || surf.texts[0] != "9" {
		t.Fatalf("expected 9, got %v", surf.texts)
	}
}
