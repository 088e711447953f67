//go:build !tinygo

package hal

import (
	"strings"
	"sync"
)

// hostLCD is an in-memory character display.
type hostLCD struct {
	mu   sync.Mutex
	cols int
	rows int
	grid [][]byte
	cx   int
	cy   int
	gen  uint64
}

func newHostLCD(cols, rows int) *hostLCD {
	d := &hostLCD{cols: cols, rows: rows, grid: make([][]byte, rows)}
	for i := range d.grid {
		d.grid[i] = make([]byte, cols)
	}
	d.Clear()
	return d
}

func (d *hostLCD) Size() (cols, rows int) { return d.cols, d.rows }

func (d *hostLCD) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, row := range d.grid {
		for i := range row {
			row[i] = ' '
		}
	}
	d.cx, d.cy = 0, 0
	d.gen++
}

func (d *hostLCD) SetCursor(col, row int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cx, d.cy = col, row
}

// Print writes at the cursor; text past the end of the row is dropped.
func (d *hostLCD) Print(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cy < 0 || d.cy >= d.rows {
		return
	}
	for i := 0; i < len(s); i++ {
		if d.cx >= 0 && d.cx < d.cols {
			d.grid[d.cy][d.cx] = s[i]
		}
		d.cx++
	}
	d.gen++
}

// lines returns the rows with trailing blanks trimmed.
func (d *hostLCD) lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, d.rows)
	for i, row := range d.grid {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

// snapshot returns the raw rows and a generation counter bumped on every change.
func (d *hostLCD) snapshot() ([]string, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, d.rows)
	for i, row := range d.grid {
		out[i] = string(row)
	}
	return out, d.gen
}
