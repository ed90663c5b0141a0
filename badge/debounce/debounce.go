// Package debounce filters contact chatter out of raw button edges.
//
// A single Filter is shared by every button. Each raw edge re-arms the
// window, so a sustained burst of chatter keeps rejecting edges until the
// line has been quiet for a whole window.
package debounce

import (
	"sync/atomic"
	"time"
)

// DefaultWindow is the minimum spacing between accepted edges.
const DefaultWindow = 200 * time.Millisecond

// Filter holds the timestamp of the most recent raw edge.
//
// Accept is safe to call from interrupt callbacks while the loop calls Quiet.
type Filter struct {
	last atomic.Int64 // milliseconds; valid once seen is set
	seen atomic.Bool
}

// Accept records now as the latest edge and reports whether at least window
// elapsed since the previous edge. The very first edge is always accepted.
func (f *Filter) Accept(now int64, window time.Duration) bool {
	prev := f.last.Swap(now)
	if !f.seen.Swap(true) {
		return true
	}
	return now-prev >= window.Milliseconds()
}

// Quiet reports whether d elapsed since the latest edge, accepted or not.
func (f *Filter) Quiet(now int64, d time.Duration) bool {
	if !f.seen.Load() {
		return true
	}
	return now-f.last.Load() >= d.Milliseconds()
}

// Last returns the timestamp of the latest edge and whether one was seen.
func (f *Filter) Last() (int64, bool) {
	if !f.seen.Load() {
		return 0, false
	}
	return f.last.Load(), true
}
