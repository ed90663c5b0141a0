//go:build !tinygo && !cgo

package hal

// Without a window there are no keys; buttons are pressed by replay scripts.
type hostKeyboard struct{}

func newHostKeyboard(*pinButtons) *hostKeyboard { return &hostKeyboard{} }

func (k *hostKeyboard) poll() {}
