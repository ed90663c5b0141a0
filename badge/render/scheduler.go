package render

import (
	"errors"
	"fmt"

	"tally/badge/state"
	"tally/hal"
)

// Outcome is what one scheduler tick pushed to the panel.
type Outcome uint8

const (
	Quiet Outcome = iota
	Partial
	Full
)

func (o Outcome) String() string {
	switch o {
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "quiet"
	}
}

// Scheduler chooses between per-region partial refreshes and a full refresh.
//
// Each tick that commits regions adds one to the staleness count. Reaching
// the threshold forces a full refresh, which clears the ghosting that partial
// waveforms leave behind. A mode change is always a full refresh because the
// selection underline spans several regions.
type Scheduler struct {
	threshold int
	staleness int
}

// NewScheduler returns a scheduler whose first tick is a full refresh.
func NewScheduler(threshold int) *Scheduler {
	if threshold < 1 {
		threshold = 1
	}
	return &Scheduler{threshold: threshold, staleness: threshold}
}

func (s *Scheduler) Threshold() int { return s.threshold }
func (s *Scheduler) Staleness() int { return s.staleness }

// Tick redraws whatever d reports as changed. Only regions whose commit
// succeeded are flushed, so a failed region is picked up again next tick.
func (s *Scheduler) Tick(surf hal.Surface, d *state.Diff) (Outcome, error) {
	_, ok := d.Snapshot()
	if !ok || s.staleness >= s.threshold || d.Changed(state.FieldMode) {
		return s.full(surf, d)
	}

	var dirty []state.Field
	for _, f := range d.Dirty() {
		if _, ok := RectFor(f); ok {
			dirty = append(dirty, f)
		}
	}
	if len(dirty) == 0 {
		return Quiet, nil
	}
	if s.staleness+1 >= s.threshold {
		return s.full(surf, d)
	}

	cur := d.Current()
	var errs []error
	drawn := 0
	for _, f := range dirty {
		r, _ := RectFor(f)
		Paint(surf, f, cur)
		if err := surf.CommitRegion(r.X, r.Y, r.W, r.H); err != nil {
			errs = append(errs, fmt.Errorf("commit %s region: %w", f, err))
			continue
		}
		d.Flush(f)
		drawn++
	}
	if drawn > 0 {
		s.staleness++
	}
	return Partial, errors.Join(errs...)
}

func (s *Scheduler) full(surf hal.Surface, d *state.Diff) (Outcome, error) {
	PaintAll(surf, d.Current())
	if err := surf.CommitFull(); err != nil {
		return Full, fmt.Errorf("commit full: %w", err)
	}
	d.FlushAll()
	s.staleness = 0
	return Full, nil
}
