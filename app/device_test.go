//go:build !tinygo

package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padcalc/calc"
	"padcalc/hal"
	"padcalc/keypad"
)

type rig struct {
	t      *testing.T
	h      *hal.Host
	clk    *hal.SimClock
	dev    *Device
	layout keypad.Layout
}

func newRig(t *testing.T) *rig {
	t.Helper()
	clk := hal.NewSimClock()
	h := hal.NewHost(hal.HostConfig{Clock: clk, Log: io.Discard})
	cfg := DefaultConfig()
	dev, err := New(h, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return &rig{t: t, h: h, clk: clk, dev: dev, layout: cfg.Layout}
}

func (r *rig) cycles(n int) {
	r.t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(r.t, r.dev.Step())
		r.clk.Advance(time.Millisecond)
	}
}

func (r *rig) cell(label string) keypad.Cell {
	r.t.Helper()
	c, _, ok := keypad.Find(&r.layout, label)
	require.True(r.t, ok, "no key %q", label)
	return c
}

func (r *rig) tap(labels ...string) {
	r.t.Helper()
	for _, l := range labels {
		c := r.cell(l)
		r.h.SetKey(c, true)
		r.cycles(100)
		r.h.SetKey(c, false)
		r.cycles(100)
	}
}

func (r *rig) value() string {
	return strings.TrimSpace(r.h.LCDLines()[1])
}

func (r *rig) events() []string {
	var out []string
	for _, ev := range r.h.HIDEvents() {
		out = append(out, ev.String())
	}
	return out
}

func TestBootBannerUntilFirstStep(t *testing.T) {
	r := newRig(t)
	assert.Equal(t, "padcalc", r.h.LCDLines()[0])

	r.cycles(1)
	assert.Equal(t, ModeNumpad, r.dev.Mode())
	assert.Equal(t, "Numberpad", r.h.LCDLines()[0])
}

func TestCalculatorAddition(t *testing.T) {
	r := newRig(t)
	r.h.SetCalculatorMode(true)
	r.cycles(1)
	assert.Equal(t, ModeCalculator, r.dev.Mode())
	assert.Equal(t, "0", r.value())

	r.tap("5", "3", "+", "2", "=")
	assert.Equal(t, calc.StateDone, r.dev.Calculator().State())
	assert.Equal(t, "55", r.value())
	assert.Empty(t, r.events(), "calculator mode must not emit HID")
}

func TestCalculatorDivideByZero(t *testing.T) {
	r := newRig(t)
	r.h.SetCalculatorMode(true)
	r.tap("8", "/", "0", "enter")
	assert.Equal(t, "Err: div by 0", r.value())
	assert.Equal(t, calc.StateStart, r.dev.Calculator().State())

	r.tap("clear")
	assert.Equal(t, "0", r.value())
}

func TestNumpadHeldKeyEmitsOnce(t *testing.T) {
	r := newRig(t)
	c := r.cell("5")

	r.h.SetKey(c, true)
	r.cycles(300)
	assert.Equal(t, []string{"down KP5"}, r.events())

	r.h.SetKey(c, false)
	r.cycles(100)
	assert.Equal(t, []string{"down KP5", "up KP5"}, r.events())
	assert.Empty(t, r.h.HIDHeld())
}

func TestNumpadSpecialKeys(t *testing.T) {
	r := newRig(t)
	r.tap("enter", "clear", ".", "=")
	assert.Equal(t, []string{
		"down ENTER", "up ENTER",
		"down BACKSPACE", "up BACKSPACE",
		"down KP.", "up KP.",
		"down KP=", "up KP=",
	}, r.events())
}

func TestBounceIsRejected(t *testing.T) {
	r := newRig(t)
	c := r.cell("7")

	for i := 0; i < 10; i++ {
		r.h.SetKey(c, i%2 == 0)
		r.cycles(10)
	}
	r.cycles(100)
	assert.Empty(t, r.events())
	assert.False(t, r.dev.Stable(c))
}

func TestShortPressIsAccepted(t *testing.T) {
	r := newRig(t)
	c := r.cell("7")

	r.h.SetKey(c, true)
	r.cycles(60)
	r.h.SetKey(c, false)
	r.cycles(60)
	assert.Equal(t, []string{"down KP7", "up KP7"}, r.events())
}

func TestModeSwitchWhileHeld(t *testing.T) {
	r := newRig(t)
	c := r.cell("5")

	r.h.SetKey(c, true)
	r.cycles(100)
	require.Equal(t, []string{"down KP5"}, r.events())

	r.h.SetCalculatorMode(true)
	r.cycles(50)
	assert.Equal(t, []string{"down KP5", "release-all"}, r.events())
	assert.Equal(t, 0, r.dev.Numpad().Held())
	assert.Equal(t, calc.StateStart, r.dev.Calculator().State(), "held key must not reach the calculator")
	assert.Equal(t, "0", r.value())

	r.h.SetKey(c, false)
	r.cycles(100)
	r.tap("6")
	assert.Equal(t, "6", r.value())
	assert.Equal(t, []string{"down KP5", "release-all"}, r.events())
}

func TestSwitchToNumpadWhileHeld(t *testing.T) {
	r := newRig(t)
	r.h.SetCalculatorMode(true)
	c := r.cell("5")

	r.h.SetKey(c, true)
	r.cycles(100)
	require.Equal(t, "5", r.value())

	r.h.SetCalculatorMode(false)
	r.cycles(100)
	assert.Empty(t, r.events(), "a key held across the switch is not a new press")
	assert.Empty(t, r.h.HIDHeld())

	r.h.SetKey(c, false)
	r.cycles(100)
	assert.Empty(t, r.events())

	r.tap("5")
	assert.Equal(t, []string{"down KP5", "up KP5"}, r.events())
}

func TestNumpadModeResetsCalculator(t *testing.T) {
	r := newRig(t)
	r.h.SetCalculatorMode(true)
	r.tap("4", "+")
	require.Equal(t, calc.StateOper, r.dev.Calculator().State())

	r.h.SetCalculatorMode(false)
	r.cycles(5)
	assert.Equal(t, "Numberpad", r.h.LCDLines()[0])
	assert.Equal(t, calc.StateStart, r.dev.Calculator().State())

	r.h.SetCalculatorMode(true)
	r.cycles(5)
	assert.Equal(t, "0", r.value())
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.dev.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, r.clk.Now(), time.Duration(0))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, keypad.DefaultDebounce, cfg.Debounce)
	assert.Equal(t, time.Duration(0), cfg.Settle)
	assert.Equal(t, time.Duration(0), cfg.CycleDelay)
	_, k, ok := keypad.Find(&cfg.Layout, "enter")
	assert.True(t, ok)
	assert.Equal(t, keypad.KeyEnter, k.Type)
	assert.Equal(t, "numpad", ModeNumpad.String())
	assert.Equal(t, "calculator", ModeCalculator.String())
}
