//go:build !tinygo

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"padcalc/internal/console"
	"padcalc/internal/log"
)

// Console starts the interactive prompt on a simulated clock.
type Console struct{}

// Run is called by Kong when the console command is executed.
func (c *Console) Run(logger *slog.Logger, logCfg LogConfig, flags DeviceFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim, err := newSimulation(flags, logger)
	if err != nil {
		return err
	}
	con, err := console.New(sim.host, sim.runner)
	if err != nil {
		return err
	}
	// Later device logs go through the prompt-aware writer.
	*logger = *log.New(con.Stdout(), logCfg.Level)

	err = con.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
