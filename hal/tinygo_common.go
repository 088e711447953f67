//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"machine/usb/hid/keyboard"
	"time"

	"padcalc/hid"
	"padcalc/keypad"

	"tinygo.org/x/drivers/hd44780"
)

type tinyGoClock struct {
	start time.Time
}

func newTinyGoClock() *tinyGoClock { return &tinyGoClock{start: time.Now()} }

func (c *tinyGoClock) Millis() keypad.Millis {
	return keypad.Millis(time.Since(c.start) / time.Millisecond)
}

func (c *tinyGoClock) Sleep(d time.Duration) { time.Sleep(d) }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin adapts a board pin to GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
	mode GPIOMode
}

func newMachinePin(prefix string, i int, pin machine.Pin) *machinePin {
	return &machinePin{name: fmt.Sprintf("%s%d", prefix, i), pin: pin}
}

func (p *machinePin) Name() string { return p.name }
func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	cfg := machine.PinConfig{Mode: machine.PinInput}
	switch {
	case mode == GPIOModeOutput:
		cfg.Mode = machine.PinOutput
	case pull == GPIOPullUp:
		cfg.Mode = machine.PinInputPullup
	case pull == GPIOPullDown:
		cfg.Mode = machine.PinInputPulldown
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

// lcd drives an HD44780 over four data lines. Writes land in the driver's
// buffer and are flushed by Display.
type lcd struct {
	dev  hd44780.Device
	cols int
	rows int
}

func newLCD(cols, rows int) (*lcd, error) {
	dev, err := hd44780.NewGPIO4Bit(lcdData, lcdEN, lcdRS, machine.NoPin)
	if err != nil {
		return nil, err
	}
	if err := dev.Configure(hd44780.Config{Width: int16(cols), Height: int16(rows)}); err != nil {
		return nil, err
	}
	return &lcd{dev: dev, cols: cols, rows: rows}, nil
}

func (d *lcd) Size() (cols, rows int) { return d.cols, d.rows }

func (d *lcd) Clear() {
	d.dev.ClearDisplay()
}

func (d *lcd) SetCursor(col, row int) {
	d.dev.SetCursor(uint8(col), uint8(row))
}

func (d *lcd) Print(s string) {
	_, _ = d.dev.Write([]byte(s))
	_ = d.dev.Display()
}

type nullDisplay struct{}

func (nullDisplay) Size() (cols, rows int) { return 16, 2 }
func (nullDisplay) Clear()                 {}
func (nullDisplay) SetCursor(col, row int) {}
func (nullDisplay) Print(s string)         {}

// usbKeyboard forwards usages to the TinyGo USB HID keyboard. Raw usages are
// passed with the 0xF000 marker the keyboard package uses for key codes.
type usbKeyboard struct {
	port interface {
		Down(c keyboard.Keycode) error
		Up(c keyboard.Keycode) error
		Release() error
	}
}

func newUSBKeyboard() *usbKeyboard { return &usbKeyboard{port: keyboard.Port()} }

func keycode(u hid.Usage) keyboard.Keycode { return keyboard.Keycode(0xF000 | uint16(u)) }

func (k *usbKeyboard) Down(u hid.Usage) error { return k.port.Down(keycode(u)) }
func (k *usbKeyboard) Up(u hid.Usage) error   { return k.port.Up(keycode(u)) }
func (k *usbKeyboard) ReleaseAll() error      { return k.port.Release() }
