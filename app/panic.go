package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"padcalc/calc"
)

// recoverPanic reports a panic from the scan loop on the logger and the LCD,
// then panics again.
func (d *Device) recoverPanic() {
	v := recover()
	if v == nil {
		return
	}

	if l := d.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("padcalc panic: cycle=%d panic=%v", d.cycle, v))
		for _, line := range strings.Split(string(debug.Stack()), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	if disp := d.h.Display(); disp != nil {
		lines := []string{"Panic:", fmt.Sprint(v)}
		disp.Clear()
		for row, line := range lines {
			disp.SetCursor(0, row)
			disp.Print(takeColumns(line, calc.Width))
		}
	}
	panic(v)
}

// takeColumns truncates s to at most n bytes; the LCD character set is ASCII.
func takeColumns(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}
