//go:build !tinygo

package hal

import (
	"io"
	"testing"
	"time"

	"padcalc/hid"
	"padcalc/keypad"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	h := NewHost(HostConfig{Clock: NewSimClock(), Log: io.Discard})
	p := h.Pins()
	for _, id := range p.Cols {
		pin := h.GPIO().Pin(id)
		if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
			t.Fatalf("Configure %s: %v", pin.Name(), err)
		}
		if err := pin.Write(true); err != nil {
			t.Fatalf("Write %s: %v", pin.Name(), err)
		}
	}
	for _, id := range append(p.Rows[:], p.Mode) {
		pin := h.GPIO().Pin(id)
		if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
			t.Fatalf("Configure %s: %v", pin.Name(), err)
		}
	}
	return h
}

func readPin(t *testing.T, h *Host, id int) bool {
	t.Helper()
	level, err := h.GPIO().Pin(id).Read()
	if err != nil {
		t.Fatalf("Read %d: %v", id, err)
	}
	return level
}

func TestHostRowReadsLowOnlyWhenColumnDriven(t *testing.T) {
	h := newTestHost(t)
	p := h.Pins()
	h.SetKey(keypad.Cell{Row: 1, Col: 2}, true)

	if !readPin(t, h, p.Rows[1]) {
		t.Fatal("row 1 low with every column idle")
	}

	col := h.GPIO().Pin(p.Cols[2])
	if err := col.Write(false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if readPin(t, h, p.Rows[1]) {
		t.Fatal("expected row 1 low while col 2 driven")
	}
	for r := 0; r < keypad.Rows; r++ {
		if r != 1 && !readPin(t, h, p.Rows[r]) {
			t.Fatalf("row %d unexpectedly low", r)
		}
	}
	_ = col.Write(true)

	other := h.GPIO().Pin(p.Cols[1])
	_ = other.Write(false)
	if !readPin(t, h, p.Rows[1]) {
		t.Fatal("row 1 low while the wrong column is driven")
	}
	_ = other.Write(true)

	h.ReleaseKeys()
	_ = col.Write(false)
	if !readPin(t, h, p.Rows[1]) {
		t.Fatal("row 1 low after release")
	}
}

func TestHostModePinActiveLow(t *testing.T) {
	h := newTestHost(t)
	mode := h.Pins().Mode

	if !readPin(t, h, mode) || h.CalculatorMode() {
		t.Fatal("expected numpad mode by default")
	}
	h.SetCalculatorMode(true)
	if readPin(t, h, mode) || !h.CalculatorMode() {
		t.Fatal("expected mode pin low in calculator mode")
	}
	h.SetCalculatorMode(false)
	if !readPin(t, h, mode) {
		t.Fatal("expected mode pin high in numpad mode")
	}
}

func TestHostRowPinIsInputOnly(t *testing.T) {
	h := newTestHost(t)
	row := h.GPIO().Pin(h.Pins().Rows[0])
	if err := row.Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("expected row pin to reject output mode")
	}
	if err := row.Write(false); err == nil {
		t.Fatal("expected row pin write to fail")
	}
}

func TestHostLCD(t *testing.T) {
	d := newHostLCD(16, 2)
	d.SetCursor(3, 0)
	d.Print("53+2")
	d.SetCursor(14, 1)
	d.Print("55xyz")
	d.SetCursor(0, 5)
	d.Print("ignored")

	lines := d.lines()
	if lines[0] != "   53+2" {
		t.Fatalf("row 0 = %q", lines[0])
	}
	if lines[1] != "              55" {
		t.Fatalf("row 1 = %q", lines[1])
	}

	_, gen := d.snapshot()
	d.Clear()
	_, gen2 := d.snapshot()
	if gen2 == gen {
		t.Fatal("expected Clear to bump generation")
	}
	if d.lines()[0] != "" {
		t.Fatal("expected blank row after Clear")
	}
}

func TestHostHIDRecorder(t *testing.T) {
	k := newHostHID()
	kp5 := hid.UsageKeypad1 + 4
	var seen []HIDEvent
	k.setOnEvent(func(ev HIDEvent) { seen = append(seen, ev) })

	if err := k.Down(kp5); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if err := k.Down(kp5); err == nil {
		t.Fatal("expected duplicate Down to fail")
	}
	if got := k.held(); len(got) != 1 || got[0] != kp5 {
		t.Fatalf("held=%v", got)
	}
	if err := k.Up(kp5); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := k.Up(kp5); err == nil {
		t.Fatal("expected Up without Down to fail")
	}
	_ = k.Down(hid.UsageEnter)
	_ = k.ReleaseAll()
	if len(k.held()) != 0 {
		t.Fatal("expected nothing held after ReleaseAll")
	}

	events := k.snapshot()
	want := []string{"down KP5", "up KP5", "down ENTER", "release-all"}
	if len(events) != len(want) || len(seen) != len(want) {
		t.Fatalf("events=%v seen=%v", events, seen)
	}
	for i, ev := range events {
		if ev.String() != want[i] {
			t.Fatalf("event %d = %q, want %q", i, ev, want[i])
		}
	}
}

func TestSimClock(t *testing.T) {
	c := NewSimClock()
	if c.Millis() != 0 {
		t.Fatalf("Millis=%d", c.Millis())
	}
	c.Sleep(1500 * time.Microsecond)
	c.Advance(-time.Second)
	if c.Millis() != 1 {
		t.Fatalf("Millis=%d", c.Millis())
	}
	c.Advance(49 * time.Millisecond)
	if c.Millis() != 50 || c.Now() != 50500*time.Microsecond {
		t.Fatalf("Millis=%d Now=%v", c.Millis(), c.Now())
	}
}

func TestHostRendererTracksChanges(t *testing.T) {
	h := NewHost(HostConfig{Clock: NewSimClock(), Log: io.Discard})
	r := newHostRenderer(h)

	if !r.render() {
		t.Fatal("expected first render to draw")
	}
	if r.render() {
		t.Fatal("expected no redraw without changes")
	}

	h.Display().SetCursor(15, 1)
	h.Display().Print("8")
	if !r.render() {
		t.Fatal("expected redraw after LCD change")
	}
	lit := 0
	cell := r.lcdArea
	for y := 0; y < cell.h; y++ {
		for x := 0; x < cell.w; x++ {
			px := r.fb.at(cell.x+x, cell.y+y)
			if px.R > 0xE0 && px.G > 0xE0 && px.B > 0xE0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected glyph pixels on the LCD panel")
	}

	h.SetCalculatorMode(true)
	if !r.render() {
		t.Fatal("expected redraw after mode change")
	}
	_ = h.Keyboard().Down(hid.UsageA)
	if !r.render() {
		t.Fatal("expected redraw after HID event")
	}
}

func TestShiftModeAccepts(t *testing.T) {
	cases := []struct {
		mode        shiftMode
		plain, held bool
	}{
		{shiftAny, true, true},
		{shiftOff, true, false},
		{shiftOn, false, true},
	}
	for _, c := range cases {
		if got := c.mode.accepts(false); got != c.plain {
			t.Fatalf("mode %d without shift = %v", c.mode, got)
		}
		if got := c.mode.accepts(true); got != c.held {
			t.Fatalf("mode %d with shift = %v", c.mode, got)
		}
	}
}
