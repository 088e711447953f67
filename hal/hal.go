package hal

import (
	"time"

	"padcalc/hid"
	"padcalc/keypad"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// CharDisplay is a character grid display such as an HD44780 LCD.
type CharDisplay interface {
	Size() (cols, rows int)
	Clear()
	SetCursor(col, row int)
	Print(s string)
}

// Clock is a read-only monotonic time source.
type Clock interface {
	Millis() keypad.Millis
	Sleep(d time.Duration)
}

// Pins maps the keypad wiring onto GPIO pin ids.
type Pins struct {
	Cols [keypad.Cols]int
	Rows [keypad.Rows]int
	Mode int
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	Pins() Pins
	Display() CharDisplay
	Keyboard() hid.Keyboard
	Clock() Clock
}
