package state

// Diff compares live Counters against the snapshot last made visible.
//
// The snapshot is replaced on every flush and never mutated in place. Before
// the first flush there is no snapshot and Changed reports false for every
// field; callers rely on the scheduler's boot-time full refresh instead.
type Diff struct {
	cur  *Counters
	snap *Counters
}

// NewDiff returns a Diff tracking cur.
func NewDiff(cur *Counters) *Diff {
	return &Diff{cur: cur}
}

// Current returns the live state.
func (d *Diff) Current() Counters { return *d.cur }

// Snapshot returns a copy of the last flushed state, if any.
func (d *Diff) Snapshot() (Counters, bool) {
	if d.snap == nil {
		return Counters{}, false
	}
	return *d.snap, true
}

// Changed reports whether f differs from the snapshot.
func (d *Diff) Changed(f Field) bool {
	if d.snap == nil {
		return false
	}
	return d.cur.value(f) != d.snap.value(f)
}

// Dirty returns the fields that changed, in Fields order.
func (d *Diff) Dirty() []Field {
	var out []Field
	for _, f := range Fields {
		if d.Changed(f) {
			out = append(out, f)
		}
	}
	return out
}

// Flush marks f as displayed. Other fields keep their snapshot value. The
// first flush with no snapshot captures the whole state.
func (d *Diff) Flush(f Field) {
	if d.snap == nil {
		d.FlushAll()
		return
	}
	next := d.snap.with(f, *d.cur)
	d.snap = &next
}

// FlushAll marks the whole state as displayed.
func (d *Diff) FlushAll() {
	next := *d.cur
	d.snap = &next
}
