//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"padcalc/hid"
	"padcalc/keypad"
)

// Simulator is the control surface of the host HAL used by front-ends and tests.
type Simulator interface {
	SetKey(c keypad.Cell, pressed bool)
	ReleaseKeys()
	SetCalculatorMode(on bool)
	CalculatorMode() bool
	LCDLines() []string
	HIDEvents() []HIDEvent
	HIDHeld() []hid.Usage
}

// HostConfig customizes a host HAL. Zero values select defaults.
type HostConfig struct {
	Clock Clock
	Log   io.Writer
}

// Host is the desktop HAL: a simulated keypad on virtual GPIO, an in-memory
// LCD and a recording HID keyboard.
type Host struct {
	logger *hostLogger
	kp     *simKeypad
	gpio   GPIO
	pins   Pins
	lcd    *hostLCD
	kbd    *hostHID
	clock  Clock
}

var (
	_ HAL       = (*Host)(nil)
	_ Simulator = (*Host)(nil)
)

// New returns a host HAL implementation running on the wall clock.
func New() HAL { return NewHost(HostConfig{}) }

func NewHost(cfg HostConfig) *Host {
	if cfg.Clock == nil {
		cfg.Clock = newRealClock()
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}
	kp := newSimKeypad()
	pins, layout := kp.pins()
	return &Host{
		logger: &hostLogger{w: cfg.Log},
		kp:     kp,
		gpio:   newPinList(pins),
		pins:   layout,
		lcd:    newHostLCD(16, 2),
		kbd:    newHostHID(),
		clock:  cfg.Clock,
	}
}

func (h *Host) Logger() Logger         { return h.logger }
func (h *Host) GPIO() GPIO             { return h.gpio }
func (h *Host) Pins() Pins             { return h.pins }
func (h *Host) Display() CharDisplay   { return h.lcd }
func (h *Host) Keyboard() hid.Keyboard { return h.kbd }
func (h *Host) Clock() Clock           { return h.clock }

func (h *Host) SetKey(c keypad.Cell, pressed bool) {
	h.kp.set(c, pressed)
}

// ReleaseKeys lifts every simulated key.
func (h *Host) ReleaseKeys() {
	h.kp.releaseAll()
}

// SetCalculatorMode moves the mode switch. The pin is active-low.
func (h *Host) SetCalculatorMode(on bool) { h.kp.mode.drive(!on) }

// CalculatorMode reports the switch position.
func (h *Host) CalculatorMode() bool {
	h.kp.mode.mu.Lock()
	defer h.kp.mode.mu.Unlock()
	return !h.kp.mode.external
}

func (h *Host) LCDLines() []string    { return h.lcd.lines() }
func (h *Host) HIDEvents() []HIDEvent { return h.kbd.snapshot() }
func (h *Host) HIDHeld() []hid.Usage  { return h.kbd.held() }

// OnHIDEvent registers a callback invoked after every recorded HID action.
func (h *Host) OnHIDEvent(fn func(HIDEvent)) {
	h.kbd.setOnEvent(fn)
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
