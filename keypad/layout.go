package keypad

import "strings"

// KeyType classifies what a key does.
type KeyType uint8

const (
	KeyUnused KeyType = iota
	KeyDigit
	KeyOperator
	KeyClear
	KeyEquals
	KeyEnter
	KeyLetter
)

func (t KeyType) String() string {
	switch t {
	case KeyUnused:
		return "unused"
	case KeyDigit:
		return "digit"
	case KeyOperator:
		return "operator"
	case KeyClear:
		return "clear"
	case KeyEquals:
		return "equals"
	case KeyEnter:
		return "enter"
	case KeyLetter:
		return "letter"
	default:
		return "unknown"
	}
}

// Key is the fixed label and function of one matrix position.
type Key struct {
	Symbol rune
	Type   KeyType
}

// NewKey classifies a key symbol. The zero rune marks an unpopulated position.
// The decimal point counts as a digit.
func NewKey(sym rune) Key {
	switch {
	case sym >= '0' && sym <= '9', sym == '.':
		return Key{Symbol: sym, Type: KeyDigit}
	case sym == '+', sym == '-', sym == '*', sym == '/':
		return Key{Symbol: sym, Type: KeyOperator}
	case sym == 'c':
		return Key{Symbol: sym, Type: KeyClear}
	case sym == '=':
		return Key{Symbol: sym, Type: KeyEquals}
	case sym == '\r':
		return Key{Symbol: sym, Type: KeyEnter}
	case sym >= 'a' && sym <= 'z':
		return Key{Symbol: sym, Type: KeyLetter}
	default:
		return Key{Symbol: sym, Type: KeyUnused}
	}
}

// Label is the printable name of the key.
func (k Key) Label() string {
	switch k.Type {
	case KeyUnused:
		return ""
	case KeyEnter:
		return "enter"
	case KeyClear:
		return "clear"
	default:
		return string(k.Symbol)
	}
}

func (k Key) String() string {
	if k.Type == KeyUnused {
		return "<unused>"
	}
	return k.Label()
}

// Layout is the immutable key assignment of the matrix.
type Layout = Grid[Key]

// NewLayout builds a layout from symbols given row by row.
func NewLayout(rows [Rows][Cols]rune) Layout {
	var l Layout
	for r := range rows {
		for c, sym := range rows[r] {
			l.Set(Cell{Row: r, Col: c}, NewKey(sym))
		}
	}
	return l
}

// DefaultLayout is the physical keypad:
//
//	c = / *
//	7 8 9 -
//	4 5 6 +
//	1 2 3 ⏎
//	0 _ . _
func DefaultLayout() Layout {
	return NewLayout([Rows][Cols]rune{
		{'c', '=', '/', '*'},
		{'7', '8', '9', '-'},
		{'4', '5', '6', '+'},
		{'1', '2', '3', '\r'},
		{'0', 0, '.', 0},
	})
}

// Find returns the first cell, in row-major order, whose key matches label.
// Labels are matched against Key.Label and the raw symbol, ignoring case.
func Find(l *Layout, label string) (Cell, Key, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Cell{}, Key{}, false
	}
	for i := 0; i < Cells; i++ {
		c := CellAt(i)
		k := l.At(c)
		if k.Type == KeyUnused {
			continue
		}
		if strings.EqualFold(k.Label(), label) || string(k.Symbol) == label {
			return c, k, true
		}
	}
	return Cell{}, Key{}, false
}
