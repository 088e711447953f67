//go:build tinygo && baremetal

package hal

import (
	"machine"

	"padcalc/hid"
	"padcalc/keypad"
)

// Board wiring (Raspberry Pi Pico).
var (
	colPins = [keypad.Cols]machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5}
	rowPins = [keypad.Rows]machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9, machine.GP10}
	modePin = machine.GP22

	lcdRS   = machine.GP12
	lcdEN   = machine.GP13
	lcdData = []machine.Pin{machine.GP14, machine.GP15, machine.GP16, machine.GP17}
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	pins   Pins
	lcd    CharDisplay
	kbd    hid.Keyboard
	clock  *tinyGoClock
}

// New returns a Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// LCD: HD44780 16x2 in 4-bit mode, RW tied to ground.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var pins []GPIOPin
	var p Pins
	for i, pin := range colPins {
		p.Cols[i] = len(pins)
		pins = append(pins, newMachinePin("COL", i, pin))
	}
	for i, pin := range rowPins {
		p.Rows[i] = len(pins)
		pins = append(pins, newMachinePin("ROW", i, pin))
	}
	p.Mode = len(pins)
	pins = append(pins, newMachinePin("MODE", 0, modePin))

	var disp CharDisplay = nullDisplay{}
	if d, err := newLCD(16, 2); err == nil {
		disp = d
	} else {
		logger.WriteLineString("lcd: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		gpio:   newPinList(pins),
		pins:   p,
		lcd:    disp,
		kbd:    newUSBKeyboard(),
		clock:  newTinyGoClock(),
	}
}

func (h *tinyGoHAL) Logger() Logger         { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO             { return h.gpio }
func (h *tinyGoHAL) Pins() Pins             { return h.pins }
func (h *tinyGoHAL) Display() CharDisplay   { return h.lcd }
func (h *tinyGoHAL) Keyboard() hid.Keyboard { return h.kbd }
func (h *tinyGoHAL) Clock() Clock           { return h.clock }
