//go:build !tinygo && cgo

package hal

import (
	"padcalc/keypad"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKey is one host key, optionally qualified by Shift.
type hostKey struct {
	key   ebiten.Key
	shift shiftMode
}

func plain(keys ...ebiten.Key) []hostKey {
	out := make([]hostKey, len(keys))
	for i, k := range keys {
		out[i] = hostKey{key: k}
	}
	return out
}

// keyBinding ties host keys to one matrix cell.
type keyBinding struct {
	cell keypad.Cell
	keys []hostKey
}

// hostKeyboard maps the desktop keyboard onto the simulated key matrix.
// Keys are level-triggered: a cell stays pressed while any bound key is held.
type hostKeyboard struct {
	sim      *Host
	bindings []keyBinding
}

// Laptop keyboards reach '+' and '*' through Shift+'=' and Shift+'8'.
var hostKeyLabels = map[string][]hostKey{
	"0": plain(ebiten.KeyDigit0, ebiten.KeyNumpad0),
	"1": plain(ebiten.KeyDigit1, ebiten.KeyNumpad1),
	"2": plain(ebiten.KeyDigit2, ebiten.KeyNumpad2),
	"3": plain(ebiten.KeyDigit3, ebiten.KeyNumpad3),
	"4": plain(ebiten.KeyDigit4, ebiten.KeyNumpad4),
	"5": plain(ebiten.KeyDigit5, ebiten.KeyNumpad5),
	"6": plain(ebiten.KeyDigit6, ebiten.KeyNumpad6),
	"7": plain(ebiten.KeyDigit7, ebiten.KeyNumpad7),
	"8": {{key: ebiten.KeyDigit8, shift: shiftOff}, {key: ebiten.KeyNumpad8}},
	"9": plain(ebiten.KeyDigit9, ebiten.KeyNumpad9),
	".": plain(ebiten.KeyPeriod, ebiten.KeyNumpadDecimal),
	"+": {{key: ebiten.KeyNumpadAdd}, {key: ebiten.KeyEqual, shift: shiftOn}},
	"-": plain(ebiten.KeyMinus, ebiten.KeyNumpadSubtract),
	"*": {{key: ebiten.KeyNumpadMultiply}, {key: ebiten.KeyDigit8, shift: shiftOn}},
	"/": plain(ebiten.KeySlash, ebiten.KeyNumpadDivide),
	"=": {{key: ebiten.KeyEqual, shift: shiftOff}, {key: ebiten.KeyNumpadEqual}},

	"enter": plain(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
	"clear": plain(ebiten.KeyBackspace, ebiten.KeyEscape, ebiten.KeyDelete),
}

var hostLetterKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

func newHostKeyboard(sim *Host, layout *keypad.Layout) *hostKeyboard {
	k := &hostKeyboard{sim: sim}
	bind := func(label string, keys ...hostKey) {
		cell, _, ok := keypad.Find(layout, label)
		if !ok {
			return
		}
		for i := range k.bindings {
			if k.bindings[i].cell == cell {
				k.bindings[i].keys = append(k.bindings[i].keys, keys...)
				return
			}
		}
		k.bindings = append(k.bindings, keyBinding{cell: cell, keys: append([]hostKey(nil), keys...)})
	}
	for label, keys := range hostKeyLabels {
		bind(label, keys...)
	}
	for i, key := range hostLetterKeys {
		bind(string(rune('a'+i)), hostKey{key: key})
	}
	return k
}

func (k *hostKeyboard) poll() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		k.sim.SetCalculatorMode(!k.sim.CalculatorMode())
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, b := range k.bindings {
		pressed := false
		for _, hk := range b.keys {
			if hk.shift.accepts(shift) && ebiten.IsKeyPressed(hk.key) {
				pressed = true
				break
			}
		}
		k.sim.SetKey(b.cell, pressed)
	}
}
