// Package numpad passes debounced key levels through as HID key presses.
package numpad

import (
	"errors"
	"fmt"

	"padcalc/hid"
	"padcalc/keypad"
)

// Emitter tracks which keys it has reported as down so that a held key
// produces one press and one release.
type Emitter struct {
	kbd    hid.Keyboard
	usages keypad.Grid[hid.Usage]
	held   keypad.Grid[bool]
	// muted keys were already pressed when the emitter took over.
	muted keypad.Grid[bool]
}

func New(kbd hid.Keyboard, layout keypad.Layout) *Emitter {
	e := &Emitter{kbd: kbd}
	layout.Each(func(c keypad.Cell, k keypad.Key) {
		e.usages.Set(c, hid.UsageFor(k))
	})
	return e
}

// Update compares stable levels with the emitted state and sends the
// difference. A failed press is retried on the next update; a failed release
// is not, the key is considered up.
func (e *Emitter) Update(stable *keypad.Grid[bool]) error {
	var errs []error
	for i := 0; i < keypad.Cells; i++ {
		c := keypad.CellAt(i)
		u := e.usages.At(c)
		if u == hid.UsageNone {
			continue
		}
		level, held := stable.At(c), e.held.At(c)
		if e.muted.At(c) {
			if !level {
				e.muted.Set(c, false)
			}
			continue
		}
		switch {
		case level && !held:
			if err := e.kbd.Down(u); err != nil {
				errs = append(errs, fmt.Errorf("numpad: press %s: %w", u, err))
				continue
			}
			e.held.Set(c, true)
		case !level && held:
			e.held.Set(c, false)
			if err := e.kbd.Up(u); err != nil {
				errs = append(errs, fmt.Errorf("numpad: release %s: %w", u, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Sync mutes keys that are pressed in stable but not reported down: they
// emit nothing until released and pressed again. Used when the emitter takes
// over from another consumer.
func (e *Emitter) Sync(stable *keypad.Grid[bool]) {
	for i := 0; i < keypad.Cells; i++ {
		c := keypad.CellAt(i)
		e.muted.Set(c, stable.At(c) && !e.held.At(c))
	}
}

// ReleaseAll releases every key on the host and forgets the held state.
func (e *Emitter) ReleaseAll() error {
	e.held.Reset()
	if err := e.kbd.ReleaseAll(); err != nil {
		return fmt.Errorf("numpad: release all: %w", err)
	}
	return nil
}

// Held returns the number of keys currently reported as down.
func (e *Emitter) Held() int {
	return e.held.Count(func(v bool) bool { return v })
}
