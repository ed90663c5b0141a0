// Package logger queues log lines for the main loop to write out.
//
// Button callbacks may run in interrupt context where writing to the UART is
// not allowed, so they only enqueue. The loop drains the queue onto a
// hal.Logger once per tick.
package logger

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"tally/hal"
)

// MaxLineBytes bounds a single queued line. Longer lines are cut on a rune
// boundary.
const MaxLineBytes = 128

// Queue is a best-effort line queue: it drops lines when full.
type Queue struct {
	ch      chan string
	dropped atomic.Uint32
	debug   bool
}

// New returns a queue holding up to depth lines.
func New(depth int, debug bool) *Queue {
	if depth <= 0 {
		depth = 32
	}
	return &Queue{ch: make(chan string, depth), debug: debug}
}

// Log enqueues line and reports whether it was accepted.
func (q *Queue) Log(line string) bool {
	if q == nil {
		return false
	}
	if len(line) > MaxLineBytes {
		cut := MaxLineBytes
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	select {
	case q.ch <- line:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Logf formats and enqueues a line.
func (q *Queue) Logf(format string, args ...any) bool {
	return q.Log(fmt.Sprintf(format, args...))
}

// Debugf is Logf gated by the debug flag.
func (q *Queue) Debugf(format string, args ...any) bool {
	if q == nil || !q.debug {
		return false
	}
	return q.Logf(format, args...)
}

// Drain writes every queued line to out and reports drops since the last
// drain. It returns the number of lines written.
func (q *Queue) Drain(out hal.Logger) int {
	if q == nil {
		return 0
	}
	n := 0
	for {
		select {
		case line := <-q.ch:
			if out != nil {
				out.WriteLineString(line)
			}
			n++
		default:
			if d := q.dropped.Swap(0); d > 0 && out != nil {
				out.WriteLineString(fmt.Sprintf("logger: dropped %d lines", d))
			}
			return n
		}
	}
}
