// Package hid holds the USB HID keyboard usage codes the keypad emits.
package hid

import (
	"fmt"

	"padcalc/keypad"
)

// Usage is a USB HID Keyboard/Keypad page usage id.
type Usage uint8

const UsageNone Usage = 0

// Letters run contiguously from UsageA to UsageZ.
const (
	UsageA Usage = 0x04
	UsageZ Usage = 0x1D
)

const (
	UsageEnter     Usage = 0x28
	UsageBackspace Usage = 0x2A
)

// Keypad usages. Keypad1..Keypad9 are contiguous; Keypad0 follows Keypad9.
const (
	UsageKeypadSlash    Usage = 0x54
	UsageKeypadAsterisk Usage = 0x55
	UsageKeypadMinus    Usage = 0x56
	UsageKeypadPlus     Usage = 0x57
	UsageKeypad1        Usage = 0x59
	UsageKeypad9        Usage = 0x61
	UsageKeypad0        Usage = 0x62
	UsageKeypadDot      Usage = 0x63
	UsageKeypadEqual    Usage = 0x67
)

// Keyboard is the HID emission boundary. At most one press per usage may be
// outstanding until the matching release.
type Keyboard interface {
	Down(u Usage) error
	Up(u Usage) error
	ReleaseAll() error
}

// UsageFor maps a key to the usage the numberpad sends for it.
// Unused keys map to UsageNone.
func UsageFor(k keypad.Key) Usage {
	switch k.Type {
	case keypad.KeyClear:
		return UsageBackspace
	case keypad.KeyEnter:
		return UsageEnter
	case keypad.KeyEquals:
		return UsageKeypadEqual
	case keypad.KeyOperator:
		switch k.Symbol {
		case '+':
			return UsageKeypadPlus
		case '-':
			return UsageKeypadMinus
		case '*':
			return UsageKeypadAsterisk
		case '/':
			return UsageKeypadSlash
		}
	case keypad.KeyDigit:
		switch {
		case k.Symbol == '0':
			return UsageKeypad0
		case k.Symbol == '.':
			return UsageKeypadDot
		case k.Symbol >= '1' && k.Symbol <= '9':
			return UsageKeypad1 + Usage(k.Symbol-'1')
		}
	case keypad.KeyLetter:
		if k.Symbol >= 'a' && k.Symbol <= 'z' {
			return UsageA + Usage(k.Symbol-'a')
		}
	}
	return UsageNone
}

func (u Usage) String() string {
	switch {
	case u == UsageNone:
		return "NONE"
	case u >= UsageA && u <= UsageZ:
		return string(rune('A' + (u - UsageA)))
	case u >= UsageKeypad1 && u <= UsageKeypad9:
		return "KP" + string(rune('1'+(u-UsageKeypad1)))
	}
	switch u {
	case UsageEnter:
		return "ENTER"
	case UsageBackspace:
		return "BACKSPACE"
	case UsageKeypadSlash:
		return "KP/"
	case UsageKeypadAsterisk:
		return "KP*"
	case UsageKeypadMinus:
		return "KP-"
	case UsageKeypadPlus:
		return "KP+"
	case UsageKeypad0:
		return "KP0"
	case UsageKeypadDot:
		return "KP."
	case UsageKeypadEqual:
		return "KP="
	}
	return fmt.Sprintf("0x%02X", uint8(u))
}
