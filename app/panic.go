package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tally/hal"
)

// PanicError is a panic recovered from a loop step.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

const (
	panicScale      = 0
	panicLineHeight = 18
	panicMargin     = 2
)

func recoverPanic(h hal.HAL, err *error) {
	r := recover()
	if r == nil {
		return
	}
	pe := &PanicError{Value: r, Stack: debug.Stack()}
	lines := []string{fmt.Sprintf("panic: %v", r)}
	if len(pe.Stack) > 0 {
		for _, line := range strings.Split(string(pe.Stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	showError(h, "Tally Panic:", lines...)
	*err = pe
}

// showError logs lines and paints as many as fit onto the panel.
func showError(h hal.HAL, title string, lines ...string) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(title)
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	s := h.Surface()
	if s == nil {
		return
	}
	w, ht := s.Size()
	s.SetColor(hal.White)
	s.FillRect(0, 0, w, ht)
	s.SetColor(hal.Black)

	cols := 1
	if cw := hal.TextWidth("0", panicScale); cw > 0 && (w-2*panicMargin)/cw > 0 {
		cols = (w - 2*panicMargin) / cw
	}

	y := panicLineHeight - 4
	for _, line := range append([]string{title}, lines...) {
		for len(line) > 0 {
			if y > ht {
				_ = s.CommitFull()
				return
			}
			chunk, rest := takeRunes(line, cols)
			s.DrawText(chunk, panicMargin, y, panicScale, hal.Rotation0)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = s.CommitFull()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
