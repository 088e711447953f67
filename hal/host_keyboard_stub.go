//go:build !tinygo && !cgo

package hal

import "padcalc/keypad"

type hostKeyboard struct{}

func newHostKeyboard(_ *Host, _ *keypad.Layout) *hostKeyboard { return &hostKeyboard{} }

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
