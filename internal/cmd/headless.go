//go:build !tinygo

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"padcalc/app"
	"padcalc/hal"
	"padcalc/internal/script"
)

// Headless runs the device without a window. With a script it runs on a
// simulated clock and exits when the script ends; without one it cycles in
// real time.
type Headless struct {
	Script string `arg:"" optional:"" type:"existingfile" help:"YAML or TOML script to run"`
	Hz     int    `help:"Tick rate when running in real time" default:"1000"`
	Ticks  uint64 `help:"Stop after N ticks (0 = run until interrupted)" default:"0"`

	out io.Writer
}

// Run is called by Kong when the headless command is executed.
func (c *Headless) Run(logger *slog.Logger, flags DeviceFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Script != "" {
		return c.runScript(ctx, logger, flags)
	}

	h := hal.NewHost(hal.HostConfig{})
	h.SetCalculatorMode(flags.Calc)
	dev, err := app.New(h, flags.AppConfig(), logger)
	if err != nil {
		return err
	}
	h.OnHIDEvent(func(ev hal.HIDEvent) {
		logger.Info("hid", "event", ev.String())
	})

	logger.Info("Running headless", "hz", c.Hz, "ticks", c.Ticks)
	err = hal.RunHeadless(ctx, tolerant(dev.Step, logger), hal.HeadlessConfig{Hz: c.Hz, Ticks: c.Ticks})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Headless) runScript(ctx context.Context, logger *slog.Logger, flags DeviceFlags) error {
	s, err := script.Load(c.Script)
	if err != nil {
		return err
	}
	sim, err := newSimulation(flags, logger)
	if err != nil {
		return err
	}

	logger.Info("Running script", "name", s.Name, "steps", len(s.Steps))
	runErr := sim.runner.Run(ctx, s)

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	for _, line := range sim.host.LCDLines() {
		fmt.Fprintf(out, "|%-16s|\n", line)
	}
	fmt.Fprintf(out, "hid events: %d, simulated time: %s\n", len(sim.host.HIDEvents()), sim.clock.Now())

	if runErr != nil {
		return runErr
	}
	logger.Info("Script passed", "name", s.Name)
	return nil
}
