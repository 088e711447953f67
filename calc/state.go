package calc

import (
	"errors"
	"math"
)

// State is the position of the accumulator in an expression.
type State uint8

const (
	StateStart State = iota
	StateNum1
	StateOper
	StateNum2
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateNum1:
		return "NUM1"
	case StateOper:
		return "OPER"
	case StateNum2:
		return "NUM2"
	case StateDone:
		return "DONE"
	default:
		return "INVALID"
	}
}

// Operator is a binary arithmetic operation.
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var (
	ErrDivideByZero = errors.New("calc: division by zero")
	ErrOverflow     = errors.New("calc: overflow")
)

func operatorFor(sym rune) (Operator, bool) {
	switch sym {
	case '+':
		return OpAdd, true
	case '-':
		return OpSub, true
	case '*':
		return OpMul, true
	case '/':
		return OpDiv, true
	}
	return OpNone, false
}

// Symbol is the character shown on the display for o.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return ""
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	}
	return "none"
}

func (o Operator) apply(a, b float64) (float64, error) {
	var r float64
	switch o {
	case OpAdd:
		r = a + b
	case OpSub:
		r = a - b
	case OpMul:
		r = a * b
	case OpDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		r = a / b
	default:
		return 0, errors.New("calc: no operator")
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, ErrOverflow
	}
	return r, nil
}
