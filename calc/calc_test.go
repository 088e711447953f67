package calc

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padcalc/keypad"
)

type fakeDisplay struct {
	rows   [Height][]byte
	col    int
	row    int
	clears int
}

func newFakeDisplay() *fakeDisplay {
	d := &fakeDisplay{}
	d.Clear()
	d.clears = 0
	return d
}

func (d *fakeDisplay) Clear() {
	for i := range d.rows {
		d.rows[i] = []byte(strings.Repeat(" ", Width))
	}
	d.col, d.row = 0, 0
	d.clears++
}

func (d *fakeDisplay) SetCursor(col, row int) { d.col, d.row = col, row }

func (d *fakeDisplay) Print(s string) {
	for i := 0; i < len(s) && d.col < Width; i++ {
		d.rows[d.row][d.col] = s[i]
		d.col++
	}
}

func (d *fakeDisplay) line(i int) string { return strings.TrimSpace(string(d.rows[i])) }

func press(t *testing.T, m *Machine, keys string) {
	t.Helper()
	for _, r := range keys {
		m.Press(keypad.NewKey(r))
	}
}

func TestAddition(t *testing.T) {
	disp := newFakeDisplay()
	m := New(disp)

	press(t, m, "53+2=")

	assert.Equal(t, StateDone, m.State())
	assert.Equal(t, 53.0, m.Operand1())
	assert.Equal(t, 2.0, m.Operand2())
	assert.Equal(t, OpAdd, m.Operator())
	assert.Equal(t, 55.0, m.Result())
	assert.Equal(t, "55", disp.line(1))
	assert.Equal(t, "53+2=", disp.line(0))
}

func TestDivideByZero(t *testing.T) {
	disp := newFakeDisplay()
	m := New(disp)

	press(t, m, "7/0=")

	assert.Equal(t, StateStart, m.State())
	assert.ErrorIs(t, m.Err(), ErrDivideByZero)
	assert.Equal(t, "", m.Buffer())
	assert.Equal(t, OpNone, m.Operator())
	assert.Equal(t, "Err: div by 0", disp.line(1))
	assert.Equal(t, "7/0=", disp.line(0))

	// The next digit starts over.
	press(t, m, "4")
	assert.NoError(t, m.Err())
	assert.Equal(t, StateNum1, m.State())
	assert.Equal(t, "4", disp.line(1))
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		keys   string
		state  State
		buffer string
		value  string
	}{
		{"", StateStart, "", "0"},
		{"+", StateStart, "", "0"},
		{"=", StateStart, "", "0"},
		{"12", StateNum1, "12", "12"},
		{"12*", StateOper, "", "12"},
		{"12**", StateOper, "", "12"},
		{"12*=", StateOper, "", "12"},
		{"12*3", StateNum2, "3", "3"},
		{"12*3+", StateNum2, "3", "3"},
		{"12*3=", StateDone, "", "36"},
		{"12*3\r", StateDone, "", "36"},
		{"12*3=4", StateNum1, "4", "4"},
		{"12*3=-6=", StateDone, "", "30"},
		{"12*3=c", StateStart, "", "0"},
		{"9-c", StateStart, "", "0"},
		{"7/2=", StateDone, "", "3.5"},
		{"1-5=", StateDone, "", "-4"},
		{"1/3=", StateDone, "", "0.3333333333"},
		{".5+.5=", StateDone, "", "1"},
		{"1..2", StateNum1, "1.2", "1.2"},
		{"007", StateNum1, "7", "7"},
		{"12345678901", StateNum1, "1234567890", "1234567890"},
		{"2a", StateNum1, "2", "2"},
	}
	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.keys, "\r", "⏎"), func(t *testing.T) {
			disp := newFakeDisplay()
			m := New(disp)
			press(t, m, tt.keys)

			assert.Equal(t, tt.state, m.State())
			assert.Equal(t, tt.buffer, m.Buffer())
			_, value := m.Lines()
			assert.Equal(t, tt.value, value)
			if tt.keys != "" && tt.keys != "+" && tt.keys != "=" {
				assert.Equal(t, tt.value, disp.line(1))
			}
		})
	}
}

func TestRejectedKeysLeaveDisplay(t *testing.T) {
	disp := newFakeDisplay()
	m := New(disp)

	assert.False(t, m.Press(keypad.NewKey('*')))
	assert.False(t, m.Press(keypad.NewKey('=')))
	assert.False(t, m.Press(keypad.NewKey(0)))
	assert.Equal(t, 0, disp.clears)

	require.True(t, m.Press(keypad.NewKey('8')))
	assert.Equal(t, 1, disp.clears)
}

func TestChainFromResult(t *testing.T) {
	m := New(nil)
	press(t, m, "6*7=")
	require.Equal(t, 42.0, m.Result())

	press(t, m, "/")
	assert.Equal(t, StateOper, m.State())
	assert.Equal(t, 42.0, m.Operand1())
	expr, _ := m.Lines()
	assert.Equal(t, "42/", expr)

	press(t, m, "0=")
	assert.ErrorIs(t, m.Err(), ErrDivideByZero)
	assert.Equal(t, StateStart, m.State())
}

func TestOverflow(t *testing.T) {
	m := New(nil)
	press(t, m, "9999999999*9999999999=")
	require.Equal(t, StateDone, m.State())

	for i := 0; i < 40; i++ {
		press(t, m, "*9999999999=")
		if m.Err() != nil {
			break
		}
	}
	assert.ErrorIs(t, m.Err(), ErrOverflow)
	assert.Equal(t, StateStart, m.State())
	_, value := m.Lines()
	assert.Equal(t, "Err: overflow", value)
}

func TestLongNegativeResultKeepsSign(t *testing.T) {
	disp := newFakeDisplay()
	m := New(disp)
	press(t, m, "0-9999999999=")
	for i := 0; i < 10; i++ {
		press(t, m, "*9999999999=")
	}
	require.Equal(t, StateDone, m.State())
	require.NoError(t, m.Err())
	require.Less(t, m.Result(), -1e100)

	_, value := m.Lines()
	assert.LessOrEqual(t, len(value), Width)
	assert.True(t, strings.HasPrefix(value, "-"), "value %q", value)
	shown, err := strconv.ParseFloat(value, 64)
	require.NoError(t, err)
	assert.InEpsilon(t, m.Result(), shown, 1e-6)
	assert.Equal(t, value, disp.line(1))
}

func TestFormatNumberFitsWidth(t *testing.T) {
	for _, v := range []float64{55, -0.5, 1e21, -1.234567891e-120, -9.999999989000002e+109} {
		s := formatNumber(v)
		assert.LessOrEqual(t, len(s), Width, "%v", v)
		assert.Equal(t, v < 0, strings.HasPrefix(s, "-"), "%v", v)
	}
}

func TestResetKeepsDisplay(t *testing.T) {
	disp := newFakeDisplay()
	m := New(disp)
	press(t, m, "12+")
	clears := disp.clears

	m.Reset()
	assert.Equal(t, StateStart, m.State())
	assert.Equal(t, clears, disp.clears)

	m.Clear()
	assert.Equal(t, clears+1, disp.clears)
	assert.Equal(t, "0", disp.line(1))
}

func TestLongExpressionFits(t *testing.T) {
	m := New(nil)
	press(t, m, "1234567890+1234567890")
	expr, value := m.Lines()
	assert.Len(t, expr, Width)
	assert.True(t, strings.HasSuffix(expr, "+1234567890"))
	assert.Equal(t, "1234567890", value)
}
