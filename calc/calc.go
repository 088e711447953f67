// Package calc is the two-operand calculator driven by keypad press edges.
package calc

import (
	"strconv"
	"strings"

	"padcalc/keypad"
)

const (
	// MaxDigits bounds the characters typed into one operand.
	MaxDigits = 10

	// Width and Height are the character display geometry.
	Width  = 16
	Height = 2
)

// Display is the character display the calculator draws on.
type Display interface {
	Clear()
	SetCursor(col, row int)
	Print(s string)
}

// Machine is the calculator accumulator. The zero value is not usable; use New.
type Machine struct {
	disp Display

	state    State
	operand1 float64
	operand2 float64
	op       Operator

	buf [MaxDigits]byte
	n   int

	text1  string
	expr   string
	result float64
	err    error
}

// New returns a machine in the start state. disp may be nil.
func New(disp Display) *Machine {
	return &Machine{disp: disp}
}

func (m *Machine) State() State       { return m.state }
func (m *Machine) Operand1() float64  { return m.operand1 }
func (m *Machine) Operand2() float64  { return m.operand2 }
func (m *Machine) Operator() Operator { return m.op }
func (m *Machine) Buffer() string     { return string(m.buf[:m.n]) }

// Result returns the last computed value; valid in StateDone.
func (m *Machine) Result() float64 { return m.result }

// Err returns the error of the last evaluation, cleared by the next accepted key.
func (m *Machine) Err() error { return m.err }

// Reset returns to the start state with empty buffers without touching the display.
func (m *Machine) Reset() {
	*m = Machine{disp: m.disp}
}

// Clear resets the machine and redraws the display.
func (m *Machine) Clear() {
	m.Reset()
	m.Redraw()
}

// Press applies one press edge. It reports whether the key was accepted;
// rejected keys leave the state and the display untouched.
func (m *Machine) Press(k keypad.Key) bool {
	var ok bool
	switch k.Type {
	case keypad.KeyClear:
		m.Reset()
		ok = true
	case keypad.KeyDigit:
		ok = m.digit(byte(k.Symbol))
	case keypad.KeyOperator:
		ok = m.operator(k.Symbol)
	case keypad.KeyEquals, keypad.KeyEnter:
		ok = m.equals()
	}
	if ok {
		m.Redraw()
	}
	return ok
}

func (m *Machine) digit(ch byte) bool {
	switch m.state {
	case StateStart, StateDone:
		m.Reset()
		if !m.appendDigit(ch) {
			return false
		}
		m.state = StateNum1
		m.operand1 = m.parse()
	case StateNum1:
		if !m.appendDigit(ch) {
			return false
		}
		m.operand1 = m.parse()
	case StateOper, StateNum2:
		if !m.appendDigit(ch) {
			return false
		}
		m.state = StateNum2
		m.operand2 = m.parse()
	default:
		return false
	}
	m.err = nil
	return true
}

func (m *Machine) operator(sym rune) bool {
	op, ok := operatorFor(sym)
	if !ok {
		return false
	}
	switch m.state {
	case StateNum1:
		m.operand1 = m.parse()
		m.text1 = m.Buffer()
	case StateDone:
		m.operand1 = m.result
		m.text1 = formatNumber(m.result)
		m.operand2 = 0
		m.expr = ""
	default:
		return false
	}
	m.op = op
	m.n = 0
	m.state = StateOper
	return true
}

func (m *Machine) equals() bool {
	if m.state != StateNum2 {
		return false
	}
	expr := m.text1 + m.op.Symbol() + m.Buffer() + "="
	res, err := m.op.apply(m.operand1, m.operand2)
	if err != nil {
		m.Reset()
		m.err = err
		m.expr = expr
		return true
	}
	m.expr = expr
	m.result = res
	m.n = 0
	m.state = StateDone
	return true
}

func (m *Machine) appendDigit(ch byte) bool {
	cur := m.buf[:m.n]
	switch {
	case ch == '.':
		if strings.IndexByte(string(cur), '.') >= 0 {
			return false
		}
		if m.n == 0 {
			return m.push('0', '.')
		}
		return m.push('.')
	case ch >= '0' && ch <= '9':
		if m.n == 1 && cur[0] == '0' {
			if ch == '0' {
				return false
			}
			m.buf[0] = ch
			return true
		}
		return m.push(ch)
	}
	return false
}

func (m *Machine) push(chs ...byte) bool {
	if m.n+len(chs) > MaxDigits {
		return false
	}
	for _, ch := range chs {
		m.buf[m.n] = ch
		m.n++
	}
	return true
}

func (m *Machine) parse() float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(m.Buffer(), "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// Lines returns the two display rows: the expression and the current value.
func (m *Machine) Lines() (expr, value string) {
	switch m.state {
	case StateStart:
		if m.err != nil {
			return fit(m.expr), errorText(m.err)
		}
		return "", "0"
	case StateNum1:
		return "", fit(m.Buffer())
	case StateOper:
		return fit(m.text1 + m.op.Symbol()), fit(m.text1)
	case StateNum2:
		return fit(m.text1 + m.op.Symbol() + m.Buffer()), fit(m.Buffer())
	case StateDone:
		return fit(m.expr), fit(formatNumber(m.result))
	}
	return "", ""
}

// Redraw writes the current lines to the display, the value right-aligned.
func (m *Machine) Redraw() {
	if m.disp == nil {
		return
	}
	expr, value := m.Lines()
	m.disp.Clear()
	m.disp.SetCursor(0, 0)
	m.disp.Print(expr)
	m.disp.SetCursor(0, 1)
	m.disp.Print(strings.Repeat(" ", Width-len(value)) + value)
}

// formatNumber drops significant digits until the value fits the display.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	for prec := MaxDigits; ; prec-- {
		s := strconv.FormatFloat(v, 'g', prec, 64)
		if len(s) <= Width || prec == 1 {
			return s
		}
	}
}

func errorText(err error) string {
	switch err {
	case ErrDivideByZero:
		return "Err: div by 0"
	case ErrOverflow:
		return "Err: overflow"
	}
	return "Err"
}

// fit keeps the rightmost Width characters.
func fit(s string) string {
	if len(s) <= Width {
		return s
	}
	return s[len(s)-Width:]
}
