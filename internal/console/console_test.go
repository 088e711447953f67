//go:build !tinygo

package console

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padcalc/app"
	"padcalc/hal"
	"padcalc/internal/script"
)

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	clk := hal.NewSimClock()
	h := hal.NewHost(hal.HostConfig{Clock: clk, Log: io.Discard})
	cfg := app.DefaultConfig()
	dev, err := app.New(h, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	r := script.NewRunner(script.Config{
		Sim:      h,
		Step:     dev.Step,
		Advance:  clk.Advance,
		Layout:   cfg.Layout,
		Debounce: cfg.Debounce,
	})
	var out bytes.Buffer
	return newConsole(h, r, &out), &out
}

func TestConsoleCalculatorSession(t *testing.T) {
	c, out := newTestConsole(t)

	assert.False(t, c.handle("mode calc"))
	assert.False(t, c.handle("tap 6 * 7 ="))
	assert.Contains(t, out.String(), "|              42|")
	assert.Contains(t, out.String(), "calculator")

	out.Reset()
	assert.False(t, c.handle("expect lcd 1 41"))
	assert.Contains(t, out.String(), "error: expect lcd row 1")
}

func TestConsoleHIDListing(t *testing.T) {
	c, out := newTestConsole(t)

	assert.False(t, c.handle("hid"))
	assert.Contains(t, out.String(), "no HID events")

	out.Reset()
	assert.False(t, c.handle("tap 9"))
	assert.False(t, c.handle("hid"))
	assert.Contains(t, out.String(), "down KP9")
	assert.Contains(t, out.String(), "up KP9")
}

func TestConsoleQuitAndErrors(t *testing.T) {
	c, out := newTestConsole(t)

	assert.False(t, c.handle("   "))
	assert.False(t, c.handle("fly away"))
	assert.Contains(t, out.String(), "error:")
	assert.False(t, c.handle("help"))
	assert.Contains(t, out.String(), "expect hid <count>")
	assert.True(t, c.handle("quit"))
}
