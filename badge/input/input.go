// Package input carries button presses from edge callbacks to the main loop.
//
// The callback side owns the debounce filter and a bounded queue; the loop
// drains the queue and applies each event to the state it owns.
package input

import (
	"sync/atomic"
	"time"

	"tally/badge/debounce"
	"tally/hal"
)

// Event is one debounced press.
type Event struct {
	Button hal.Button
	At     int64 // milliseconds
}

// DefaultDepth bounds the number of presses waiting for the loop.
const DefaultDepth = 16

// Queue is the edge-callback side of the input path.
type Queue struct {
	clock  hal.Clock
	filter *debounce.Filter
	window time.Duration

	ch       chan Event
	dropped  atomic.Uint32
	rejected atomic.Uint32
}

// NewQueue returns a queue that debounces with f over window.
func NewQueue(clock hal.Clock, f *debounce.Filter, window time.Duration, depth int) *Queue {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if window <= 0 {
		window = debounce.DefaultWindow
	}
	if f == nil {
		f = &debounce.Filter{}
	}
	return &Queue{
		clock:  clock,
		filter: f,
		window: window,
		ch:     make(chan Event, depth),
	}
}

// Filter returns the debounce filter shared with the loop's quiet gate.
func (q *Queue) Filter() *debounce.Filter { return q.filter }

// Attach installs q as the edge handler of b.
func (q *Queue) Attach(b hal.Buttons) error {
	if b == nil {
		return hal.ErrNotImplemented
	}
	return b.SetHandler(q.Edge)
}

// Edge handles one raw edge. It never blocks and is safe in interrupt context.
func (q *Queue) Edge(btn hal.Button) {
	now := q.clock.NowMillis()
	if !q.filter.Accept(now, q.window) {
		q.rejected.Add(1)
		return
	}
	select {
	case q.ch <- Event{Button: btn, At: now}:
	default:
		q.dropped.Add(1)
	}
}

// Poll returns the next queued event without blocking.
func (q *Queue) Poll() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return Event{}, false
	}
}

// Stats returns and resets the rejected (chatter) and dropped (queue full)
// edge counts.
func (q *Queue) Stats() (rejected, dropped uint32) {
	return q.rejected.Swap(0), q.dropped.Swap(0)
}
