//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns window key presses into button presses. Each key press
// produces one simulated physical press, chatter included.
type hostKeyboard struct {
	buttons *pinButtons
}

func newHostKeyboard(b *pinButtons) *hostKeyboard {
	return &hostKeyboard{buttons: b}
}

var keyButtons = []struct {
	key ebiten.Key
	btn Button
}{
	{ebiten.KeyA, ButtonA},
	{ebiten.KeyTab, ButtonA},
	{ebiten.KeyB, ButtonB},
	{ebiten.KeyC, ButtonC},
	{ebiten.KeyR, ButtonC},
	{ebiten.KeyArrowUp, ButtonUp},
	{ebiten.KeyArrowDown, ButtonDown},
}

func (k *hostKeyboard) poll() {
	for _, kb := range keyButtons {
		if inpututil.IsKeyJustPressed(kb.key) {
			k.buttons.Press(kb.btn)
		}
	}
}
