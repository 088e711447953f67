// Package app wires the keypad pipeline to the HAL: scan, debounce, edge
// detection and dispatch to the calculator or the numberpad emitter.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"padcalc/calc"
	"padcalc/hal"
	"padcalc/internal/buildinfo"
	"padcalc/keypad"
	"padcalc/numpad"
)

// Device owns every per-key record and runs one scan cycle per Step.
type Device struct {
	h   hal.HAL
	cfg Config
	log *slog.Logger

	scanner  *keypad.Scanner
	debounce *keypad.Debouncer
	edges    keypad.EdgeDetector
	modePin  hal.GPIOPin

	raw     keypad.Grid[bool]
	stable  keypad.Grid[bool]
	pressed [keypad.Cells]keypad.Cell

	calc *calc.Machine
	pad  *numpad.Emitter

	cycle   keypad.Cycle
	mode    Mode
	started bool
}

// New configures the keypad pins and returns an idle device. The display
// shows a boot banner until the first Step.
func New(h hal.HAL, cfg Config, log *slog.Logger) (*Device, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}

	gpio, pins := h.GPIO(), h.Pins()
	cols := make([]keypad.OutputPin, 0, keypad.Cols)
	for _, id := range pins.Cols {
		pin, err := configurePin(gpio, id, hal.GPIOModeOutput, hal.GPIOPullNone)
		if err != nil {
			return nil, err
		}
		cols = append(cols, pin)
	}
	rows := make([]keypad.InputPin, 0, keypad.Rows)
	for _, id := range pins.Rows {
		pin, err := configurePin(gpio, id, hal.GPIOModeInput, hal.GPIOPullUp)
		if err != nil {
			return nil, err
		}
		rows = append(rows, pin)
	}
	modePin, err := configurePin(gpio, pins.Mode, hal.GPIOModeInput, hal.GPIOPullUp)
	if err != nil {
		return nil, err
	}

	clock := h.Clock()
	scanner, err := keypad.NewScanner(cols, rows, cfg.Settle, clock.Sleep)
	if err != nil {
		return nil, err
	}
	if err := scanner.Idle(); err != nil {
		return nil, fmt.Errorf("app: idle columns: %w", err)
	}

	d := &Device{
		h:        h,
		cfg:      cfg,
		log:      log,
		scanner:  scanner,
		debounce: keypad.NewDebouncer(cfg.Debounce),
		modePin:  modePin,
		calc:     calc.New(h.Display()),
		pad:      numpad.New(h.Keyboard(), cfg.Layout),
	}
	d.bootScreen()
	log.Info("device ready", "version", buildinfo.Short(), "debounce", cfg.Debounce, "settle", cfg.Settle)
	return d, nil
}

func configurePin(gpio hal.GPIO, id int, mode hal.GPIOMode, pull hal.GPIOPull) (hal.GPIOPin, error) {
	pin := gpio.Pin(id)
	if pin == nil {
		return nil, fmt.Errorf("app: no gpio pin %d", id)
	}
	if err := pin.Configure(mode, pull); err != nil {
		return nil, fmt.Errorf("app: configure %s: %w", pin.Name(), err)
	}
	return pin, nil
}

func (d *Device) bootScreen() {
	disp := d.h.Display()
	disp.Clear()
	disp.SetCursor(0, 0)
	disp.Print("padcalc")
	disp.SetCursor(0, 1)
	disp.Print(buildinfo.Short())
}

func (d *Device) Mode() Mode                { return d.mode }
func (d *Device) Calculator() *calc.Machine { return d.calc }
func (d *Device) Numpad() *numpad.Emitter   { return d.pad }
func (d *Device) Config() Config            { return d.cfg }

// Stable reports the debounced level of a cell.
func (d *Device) Stable(c keypad.Cell) bool { return d.stable.At(c) }

// Step runs one scan cycle. Scan and mode pin errors abort the cycle and are
// returned; HID errors are logged.
func (d *Device) Step() error {
	d.cycle++
	now := d.h.Clock().Millis()

	if err := d.scanner.Scan(&d.raw); err != nil {
		return err
	}
	for i := 0; i < keypad.Cells; i++ {
		c := keypad.CellAt(i)
		d.stable.Set(c, d.debounce.Update(c, d.raw.At(c), now))
	}

	// Edges are tracked in both modes so a key held across a mode change
	// does not fire when the calculator takes over.
	n := 0
	for i := 0; i < keypad.Cells; i++ {
		c := keypad.CellAt(i)
		if d.edges.Update(c, d.stable.At(c), d.cycle) {
			d.pressed[n] = c
			n++
		}
	}

	mode, err := d.readMode()
	if err != nil {
		return err
	}
	if !d.started || mode != d.mode {
		d.enter(mode)
	}

	switch mode {
	case ModeCalculator:
		for _, c := range d.pressed[:n] {
			k := d.cfg.Layout.At(c)
			if d.calc.Press(k) {
				d.log.Debug("calc", "key", k.Label(), "state", d.calc.State())
			}
		}
	case ModeNumpad:
		d.calc.Reset()
		if err := d.pad.Update(&d.stable); err != nil {
			d.log.Warn("hid update failed", "error", err)
		}
	}
	return nil
}

// readMode samples the mode switch; low selects the calculator.
func (d *Device) readMode() (Mode, error) {
	level, err := d.modePin.Read()
	if err != nil {
		return d.mode, fmt.Errorf("app: read mode pin: %w", err)
	}
	if level {
		return ModeNumpad, nil
	}
	return ModeCalculator, nil
}

func (d *Device) enter(mode Mode) {
	transition := d.started
	if transition {
		d.log.Info("mode change", "from", d.mode, "to", mode)
	} else {
		d.log.Info("mode", "mode", mode)
	}
	d.mode = mode
	d.started = true

	disp := d.h.Display()
	switch mode {
	case ModeCalculator:
		if transition {
			if err := d.pad.ReleaseAll(); err != nil {
				d.log.Warn("hid release failed", "error", err)
			}
		}
		d.calc.Clear()
	case ModeNumpad:
		// Keys held from calculator mode already had their press.
		d.pad.Sync(&d.stable)
		disp.Clear()
		disp.SetCursor(0, 0)
		disp.Print("Numberpad")
	}
}

// Run cycles until ctx ends. Cycle errors are logged and the loop continues.
func (d *Device) Run(ctx context.Context) error {
	defer d.recoverPanic()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := d.Step(); err != nil {
			d.log.Error("cycle failed", "error", err)
		}
		if d.cfg.CycleDelay > 0 {
			d.h.Clock().Sleep(d.cfg.CycleDelay)
		}
	}
}
