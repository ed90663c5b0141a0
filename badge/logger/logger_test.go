package logger

import (
	"strings"
	"testing"
	"unicode/utf8"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestQueueDropsWhenFull(t *testing.T) {
	q := New(2, false)
	if !q.Log("a") || !q.Log("b") {
		t.Fatal("expected first two lines to queue")
	}
	if q.Log("c") {
		t.Fatal("expected third line to drop")
	}

	var out lines
	if n := q.Drain(&out); n != 2 {
		t.Fatalf("expected 2 lines drained, got %d", n)
	}
	if len(out) != 3 || out[0] != "a" || out[1] != "b" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out[2], "dropped 1") {
		t.Fatalf("expected drop report, got %q", out[2])
	}
}

func TestQueueTruncatesLongLines(t *testing.T) {
	q := New(1, false)
	q.Log(strings.Repeat("x", MaxLineBytes+20))
	var out lines
	q.Drain(&out)
	if len(out[0]) != MaxLineBytes {
		t.Fatalf("expected %d bytes, got %d", MaxLineBytes, len(out[0]))
	}
}

func TestQueueTruncatesOnRuneBoundary(t *testing.T) {
	q := New(1, false)
	q.Log("x" + strings.Repeat("é", MaxLineBytes))
	var out lines
	q.Drain(&out)
	if !utf8.ValidString(out[0]) {
		t.Fatalf("expected valid UTF-8, got %q", out[0])
	}
	if len(out[0]) != MaxLineBytes-1 {
		t.Fatalf("expected %d bytes, got %d", MaxLineBytes-1, len(out[0]))
	}
}

func TestDebugfGated(t *testing.T) {
	q := New(4, false)
	if q.Debugf("x=%d", 1) {
		t.Fatal("expected debug line to be skipped")
	}
	q = New(4, true)
	if !q.Debugf("x=%d", 1) {
		t.Fatal("expected debug line to queue")
	}
	var out lines
	q.Drain(&out)
	if len(out) != 1 || out[0] != "x=1" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNilQueue(t *testing.T) {
	var q *Queue
	if q.Log("x") {
		t.Fatal("expected nil queue to reject")
	}
	if q.Drain(nil) != 0 {
		t.Fatal("expected nil queue to drain nothing")
	}
}
