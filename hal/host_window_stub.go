//go:build !tinygo && !cgo

package hal

import (
	"errors"

	"padcalc/keypad"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale         int
	StepsPerFrame int
	Layout        keypad.Layout
}

func RunWindow(_ *Host, _ func() error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
