//go:build !tinygo

package hal

import (
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	screenWidth  = 240
	screenHeight = 200

	lcdCellW = 13
	lcdCellH = 18
	lcdPad   = 8

	logFontHeight = 10
	logFontOffset = 6
)

var (
	colBackground = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xFF}
	colLCDPanel   = color.RGBA{R: 0x20, G: 0x50, B: 0xC0, A: 0xFF}
	colLCDCell    = color.RGBA{R: 0x28, G: 0x60, B: 0xD8, A: 0xFF}
	colLCDText    = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
	colStatus     = color.RGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF}
	colCalc       = color.RGBA{R: 0x40, G: 0xE0, B: 0x60, A: 0xFF}
)

// hostRenderer draws the simulated LCD, a status line and the HID event log
// into the window framebuffer.
type hostRenderer struct {
	h  *Host
	fb *hostFramebuffer

	lcdArea    fbRegion
	lcdLeft    int
	statusArea fbRegion
	logArea    fbRegion

	font    *tinyfont.Font
	lcdGen  uint64
	events  int
	calc    bool
	started bool
}

func newHostRenderer(h *Host) *hostRenderer {
	fb := newHostFramebuffer(screenWidth, screenHeight)
	cols, rows := h.lcd.Size()
	lcdH := rows*lcdCellH + 2*lcdPad
	r := &hostRenderer{
		h:          h,
		fb:         fb,
		lcdArea:    fbRegion{fb: fb, x: 0, y: 0, w: screenWidth, h: lcdH},
		lcdLeft:    max((screenWidth-cols*lcdCellW)/2, 0),
		statusArea: fbRegion{fb: fb, x: 0, y: lcdH, w: screenWidth, h: 14},
		logArea:    fbRegion{fb: fb, x: 0, y: lcdH + 14, w: screenWidth, h: screenHeight - lcdH - 14},
		font:       &proggy.TinySZ8pt7b,
	}
	fb.fill(0, 0, screenWidth, screenHeight, colBackground)
	return r
}

// render redraws whatever changed since the last call and reports whether
// the framebuffer was touched.
func (r *hostRenderer) render() bool {
	lines, gen := r.h.lcd.snapshot()
	events := r.h.HIDEvents()
	calc := r.h.CalculatorMode()

	changed := false
	if !r.started || gen != r.lcdGen {
		r.drawLCD(lines)
		r.lcdGen = gen
		changed = true
	}
	if !r.started || calc != r.calc {
		r.drawStatus(calc)
		r.calc = calc
		changed = true
	}
	if !r.started || len(events) != r.events {
		r.drawLog(events)
		r.events = len(events)
		changed = true
	}
	r.started = true
	return changed
}

func (r *hostRenderer) drawLCD(lines []string) {
	r.lcdArea.clear(colLCDPanel)
	for row, line := range lines {
		y := lcdPad + row*lcdCellH
		for col := 0; col < len(line); col++ {
			x := r.lcdLeft + col*lcdCellW
			_ = r.lcdArea.FillRectangle(int16(x), int16(y), lcdCellW-1, lcdCellH-1, colLCDCell)
			if line[col] == ' ' {
				continue
			}
			tinyfont.DrawChar(r.lcdArea, r.font, int16(x+3), int16(y+lcdCellH-5), rune(line[col]), colLCDText)
		}
	}
}

func (r *hostRenderer) drawStatus(calc bool) {
	r.statusArea.clear(colBackground)
	mode, c := "NUMPAD", colStatus
	if calc {
		mode, c = "CALCULATOR", colCalc
	}
	tinyfont.WriteLine(r.statusArea, r.font, 4, 11, "mode: "+mode+"  (F1 toggles)", c)
}

// drawLog rebuilds the terminal with the newest events so it never scrolls.
func (r *hostRenderer) drawLog(events []HIDEvent) {
	r.logArea.clear(colBackground)
	t := tinyterm.NewTerminal(r.logArea)
	t.Configure(&tinyterm.Config{
		Font:       r.font,
		FontHeight: logFontHeight,
		FontOffset: logFontOffset,
	})

	rows := r.logArea.h/logFontHeight - 1
	if rows < 1 {
		return
	}
	if len(events) > rows {
		events = events[len(events)-rows:]
	}
	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(ev.String())
	}
	_, _ = t.Write([]byte(b.String()))
}
