//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow needs ebiten, which needs cgo on most hosts.
func RunWindow(func(HAL) func() error, HostConfig) error {
	return errors.New("window mode needs cgo: run with -headless or build with CGO_ENABLED=1")
}
