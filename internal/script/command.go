//go:build !tinygo

package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Op is a command verb.
type Op string

const (
	OpPress   Op = "press"
	OpRelease Op = "release"
	OpTap     Op = "tap"
	OpHold    Op = "hold"
	OpMode    Op = "mode"
	OpWait    Op = "wait"
	OpExpect  Op = "expect"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed line.
type Command struct {
	Op   Op
	Args []string

	// Parsed arguments.
	Cycles   int
	Duration time.Duration
	Calc     bool
	Row      int
	Count    int
	Text     string
}

// ParseCommand parses and validates one command line.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}
	c := Command{Op: Op(strings.ToLower(fields[0])), Args: fields[1:]}

	switch c.Op {
	case OpPress, OpRelease:
		if len(c.Args) != 1 {
			return c, fmt.Errorf("%s: want one key", c.Op)
		}
	case OpTap:
		if len(c.Args) == 0 {
			return c, fmt.Errorf("%s: want at least one key", c.Op)
		}
	case OpHold:
		if len(c.Args) != 2 {
			return c, fmt.Errorf("%s: want <key> <cycles>", c.Op)
		}
		n, err := strconv.Atoi(c.Args[1])
		if err != nil || n < 0 {
			return c, fmt.Errorf("%s: bad cycle count %q", c.Op, c.Args[1])
		}
		c.Cycles = n
	case OpMode:
		if len(c.Args) != 1 {
			return c, fmt.Errorf("%s: want calc or pad", c.Op)
		}
		switch strings.ToLower(c.Args[0]) {
		case "calc", "calculator":
			c.Calc = true
		case "pad", "numpad":
		default:
			return c, fmt.Errorf("%s: want calc or pad, got %q", c.Op, c.Args[0])
		}
	case OpWait:
		if len(c.Args) != 1 {
			return c, fmt.Errorf("%s: want a duration", c.Op)
		}
		d, err := time.ParseDuration(c.Args[0])
		if err != nil || d < 0 {
			return c, fmt.Errorf("%s: bad duration %q", c.Op, c.Args[0])
		}
		c.Duration = d
	case OpExpect:
		return parseExpect(c)
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return c, nil
}

func parseExpect(c Command) (Command, error) {
	if len(c.Args) < 2 {
		return c, errors.New("expect: want lcd <row> <text> or hid <n>")
	}
	switch c.Args[0] {
	case "lcd":
		if len(c.Args) < 3 {
			return c, errors.New("expect lcd: want <row> <text>")
		}
		row, err := strconv.Atoi(c.Args[1])
		if err != nil || row < 0 || row > 1 {
			return c, fmt.Errorf("expect lcd: bad row %q", c.Args[1])
		}
		c.Row = row
		c.Text = strings.Join(c.Args[2:], " ")
	case "hid":
		n, err := strconv.Atoi(c.Args[1])
		if err != nil || n < 0 {
			return c, fmt.Errorf("expect hid: bad count %q", c.Args[1])
		}
		c.Count = n
	default:
		return c, fmt.Errorf("expect: unknown target %q", c.Args[0])
	}
	return c, nil
}
