//go:build !tinygo

package script

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"padcalc/hal"
	"padcalc/keypad"
)

// DefaultTick is the simulated time between device cycles.
const DefaultTick = time.Millisecond

// ExpectError is a failed expect command.
type ExpectError struct {
	What string
	Want string
	Got  string
}

func (e *ExpectError) Error() string {
	return fmt.Sprintf("expect %s: want %q, got %q", e.What, e.Want, e.Got)
}

// Config wires a Runner to a device.
type Config struct {
	Sim hal.Simulator
	// Step runs one device cycle.
	Step func() error
	// Advance moves the device clock forward; nil when the clock runs on its own.
	Advance  func(time.Duration)
	Layout   keypad.Layout
	Debounce time.Duration
	Tick     time.Duration
	// Out receives a trace of executed commands; may be nil.
	Out io.Writer
}

// Runner executes commands against the simulated keypad, stepping the
// device between key changes.
type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) *Runner {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = keypad.DefaultDebounce
	}
	return &Runner{cfg: cfg}
}

// settle is long enough for any level change to pass the debouncer.
func (r *Runner) settle() time.Duration { return 2 * r.cfg.Debounce }

// Cycles runs n device cycles.
func (r *Runner) Cycles(n int) error {
	for i := 0; i < n; i++ {
		if err := r.cfg.Step(); err != nil {
			return err
		}
		if r.cfg.Advance != nil {
			r.cfg.Advance(r.cfg.Tick)
		}
	}
	return nil
}

func (r *Runner) wait(d time.Duration) error {
	n := int((d + r.cfg.Tick - 1) / r.cfg.Tick)
	return r.Cycles(n)
}

func (r *Runner) cell(sym string) (keypad.Cell, error) {
	c, _, ok := keypad.Find(&r.cfg.Layout, sym)
	if !ok {
		return keypad.Cell{}, fmt.Errorf("no key %q on the layout", sym)
	}
	return c, nil
}

// Exec parses and runs one command line.
func (r *Runner) Exec(line string) error {
	c, err := ParseCommand(line)
	if err != nil {
		return err
	}
	if r.cfg.Out != nil {
		fmt.Fprintln(r.cfg.Out, "> "+strings.TrimSpace(line))
	}
	return r.Do(c)
}

// Do runs a parsed command.
func (r *Runner) Do(c Command) error {
	sim := r.cfg.Sim
	switch c.Op {
	case OpPress, OpRelease:
		cell, err := r.cell(c.Args[0])
		if err != nil {
			return err
		}
		sim.SetKey(cell, c.Op == OpPress)
		return nil

	case OpTap:
		for _, sym := range c.Args {
			cell, err := r.cell(sym)
			if err != nil {
				return err
			}
			sim.SetKey(cell, true)
			if err := r.wait(r.settle()); err != nil {
				return err
			}
			sim.SetKey(cell, false)
			if err := r.wait(r.settle()); err != nil {
				return err
			}
		}
		return nil

	case OpHold:
		cell, err := r.cell(c.Args[0])
		if err != nil {
			return err
		}
		sim.SetKey(cell, true)
		if err := r.Cycles(c.Cycles); err != nil {
			return err
		}
		sim.SetKey(cell, false)
		return r.wait(r.settle())

	case OpMode:
		sim.SetCalculatorMode(c.Calc)
		return r.Cycles(1)

	case OpWait:
		return r.wait(c.Duration)

	case OpExpect:
		return r.expect(c)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Op)
}

func (r *Runner) expect(c Command) error {
	switch c.Args[0] {
	case "lcd":
		lines := r.cfg.Sim.LCDLines()
		got := ""
		if c.Row < len(lines) {
			got = strings.TrimSpace(lines[c.Row])
		}
		if got != c.Text {
			return &ExpectError{What: fmt.Sprintf("lcd row %d", c.Row), Want: c.Text, Got: got}
		}
	case "hid":
		got := len(r.cfg.Sim.HIDEvents())
		if got != c.Count {
			return &ExpectError{What: "hid events", Want: fmt.Sprint(c.Count), Got: fmt.Sprint(got)}
		}
	}
	return nil
}

// Run executes every step of s, stopping at the first failure or when ctx ends.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(step); err != nil {
			return fmt.Errorf("script %s: step %d %q: %w", s.Name, i+1, step, err)
		}
	}
	return nil
}
