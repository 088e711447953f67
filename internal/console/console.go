//go:build !tinygo

// Package console is an interactive prompt for the simulated keypad.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"padcalc/hal"
	"padcalc/internal/script"
)

// Console reads commands from a readline prompt and runs them against the
// simulator.
type Console struct {
	sim    hal.Simulator
	runner *script.Runner
	rl     *readline.Instance
	out    io.Writer
}

// New creates a console with its own readline instance.
func New(sim hal.Simulator, runner *script.Runner) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "padcalc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	c := newConsole(sim, runner, rl.Stdout())
	c.rl = rl
	return c, nil
}

func newConsole(sim hal.Simulator, runner *script.Runner, out io.Writer) *Console {
	return &Console{sim: sim, runner: runner, out: out}
}

// Stdout returns a writer that coordinates with the prompt; use it for logs.
func (c *Console) Stdout() io.Writer {
	return c.out
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("press"),
		readline.PcItem("release"),
		readline.PcItem("tap"),
		readline.PcItem("hold"),
		readline.PcItem("mode", readline.PcItem("calc"), readline.PcItem("pad")),
		readline.PcItem("wait"),
		readline.PcItem("expect", readline.PcItem("lcd"), readline.PcItem("hid")),
		readline.PcItem("lcd"),
		readline.PcItem("hid"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	defer c.rl.Close()

	c.printHelp()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		}
		if c.handle(line) {
			return nil
		}
	}
}

// handle runs one input line and reports whether the user asked to quit.
func (c *Console) handle(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "help", "?":
		c.printHelp()
	case "lcd":
		c.printLCD()
	case "hid":
		c.printHID()
	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true
	default:
		if err := c.runner.Exec(input); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		c.printLCD()
	}
	return false
}

func (c *Console) printLCD() {
	mode := "numpad"
	if c.sim.CalculatorMode() {
		mode = "calculator"
	}
	fmt.Fprintf(c.out, "+----------------+ %s\n", mode)
	for _, line := range c.sim.LCDLines() {
		fmt.Fprintf(c.out, "|%-16s|\n", line)
	}
	fmt.Fprintln(c.out, "+----------------+")
}

func (c *Console) printHID() {
	events := c.sim.HIDEvents()
	if len(events) == 0 {
		fmt.Fprintln(c.out, "no HID events")
		return
	}
	for i, ev := range events {
		fmt.Fprintf(c.out, "%3d  %s\n", i+1, ev)
	}
	if held := c.sim.HIDHeld(); len(held) > 0 {
		fmt.Fprintf(c.out, "held: %v\n", held)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
padcalc console:
  Keys:
    press <key>          - Close a key switch
    release <key>        - Open a key switch
    tap <key>...         - Press and release keys in turn
    hold <key> <cycles>  - Hold a key for a number of scan cycles
    Keys are their symbol (0-9 . + - * / =) or enter, clear.

  Device:
    mode calc|pad        - Move the mode switch
    wait <duration>      - Let the device run (e.g. 200ms)
    lcd                  - Show the display
    hid                  - Show HID events sent to the host

  Checks:
    expect lcd <row> <text>
    expect hid <count>

  help, quit`)
}
