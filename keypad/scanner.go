package keypad

import (
	"errors"
	"fmt"
	"time"
)

// DefaultSettle lets the row lines settle after a column is driven.
const DefaultSettle = 5 * time.Microsecond

var ErrPinCount = errors.New("keypad: wrong pin count")

// OutputPin drives one column line.
type OutputPin interface {
	Write(level bool) error
}

// InputPin senses one row line.
type InputPin interface {
	Read() (level bool, err error)
}

// Scanner strobes the columns of the matrix and samples its rows.
// Column drive and row sense are both active-low.
type Scanner struct {
	cols   [Cols]OutputPin
	rows   [Rows]InputPin
	settle time.Duration
	sleep  func(time.Duration)
}

// NewScanner wires a scanner to already configured pins. sleep may be nil
// when no settle delay is wanted.
func NewScanner(cols []OutputPin, rows []InputPin, settle time.Duration, sleep func(time.Duration)) (*Scanner, error) {
	if len(cols) != Cols || len(rows) != Rows {
		return nil, fmt.Errorf("%w: have %d cols %d rows, want %d cols %d rows", ErrPinCount, len(cols), len(rows), Cols, Rows)
	}
	s := &Scanner{settle: settle, sleep: sleep}
	for i, p := range cols {
		if p == nil {
			return nil, fmt.Errorf("keypad: col %d: nil pin", i)
		}
		s.cols[i] = p
	}
	for i, p := range rows {
		if p == nil {
			return nil, fmt.Errorf("keypad: row %d: nil pin", i)
		}
		s.rows[i] = p
	}
	return s, nil
}

// Idle drives every column inactive.
func (s *Scanner) Idle() error {
	for i, col := range s.cols {
		if err := col.Write(true); err != nil {
			return fmt.Errorf("keypad: idle col %d: %w", i, err)
		}
	}
	return nil
}

// Scan overwrites frame with the raw pressed state of every cell.
func (s *Scanner) Scan(frame *Grid[bool]) error {
	for c, col := range s.cols {
		if err := col.Write(false); err != nil {
			return fmt.Errorf("keypad: drive col %d: %w", c, err)
		}
		if s.settle > 0 && s.sleep != nil {
			s.sleep(s.settle)
		}
		for r, row := range s.rows {
			level, err := row.Read()
			if err != nil {
				_ = col.Write(true)
				return fmt.Errorf("keypad: read row %d col %d: %w", r, c, err)
			}
			frame.Set(Cell{Row: r, Col: c}, !level)
		}
		if err := col.Write(true); err != nil {
			return fmt.Errorf("keypad: release col %d: %w", c, err)
		}
	}
	return nil
}
