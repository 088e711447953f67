//go:build !tinygo

// Package cmd holds the host command-line front-ends.
package cmd

import (
	"log/slog"
	"time"

	"padcalc/app"
	"padcalc/hal"
	"padcalc/internal/script"
)

// CLI is the root command grammar.
type CLI struct {
	Log    LogConfig   `embed:"" prefix:"log-"`
	Device DeviceFlags `embed:""`
	Config string      `help:"Configuration file (YAML or TOML)" env:"PADCALC_CONFIG" placeholder:"FILE"`

	Window    Window        `cmd:"" default:"withargs" help:"Run the simulator in a desktop window"`
	Headless  Headless      `cmd:"" help:"Run without a window, optionally driven by a script"`
	Console   Console       `cmd:"" help:"Drive the simulator from an interactive prompt"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Version   Version       `cmd:"" help:"Print build information"`
}

// LogConfig selects log verbosity and destination.
type LogConfig struct {
	Level string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"PADCALC_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"PADCALC_LOG_FILE"`
}

// DeviceFlags are the tunables shared by every front-end.
type DeviceFlags struct {
	Debounce   time.Duration `help:"Quiet period before a key level is accepted" default:"50ms" env:"PADCALC_DEBOUNCE"`
	Settle     time.Duration `help:"Delay between driving a column and reading the rows" default:"5us"`
	CycleDelay time.Duration `help:"Pause between scan cycles" default:"1ms"`
	Calc       bool          `help:"Start with the mode switch in calculator position"`
}

// AppConfig converts the flags to a device configuration.
func (f DeviceFlags) AppConfig() app.Config {
	cfg := app.DefaultConfig()
	cfg.Debounce = f.Debounce
	cfg.Settle = f.Settle
	cfg.CycleDelay = f.CycleDelay
	return cfg
}

// simulation is a host device on a simulated clock, stepped by a script runner.
type simulation struct {
	host   *hal.Host
	clock  *hal.SimClock
	dev    *app.Device
	runner *script.Runner
}

func newSimulation(flags DeviceFlags, logger *slog.Logger) (*simulation, error) {
	clk := hal.NewSimClock()
	h := hal.NewHost(hal.HostConfig{Clock: clk})
	h.SetCalculatorMode(flags.Calc)

	cfg := flags.AppConfig()
	dev, err := app.New(h, cfg, logger)
	if err != nil {
		return nil, err
	}
	cfg = dev.Config()
	r := script.NewRunner(script.Config{
		Sim:      h,
		Step:     dev.Step,
		Advance:  clk.Advance,
		Layout:   cfg.Layout,
		Debounce: cfg.Debounce,
		Tick:     max(cfg.CycleDelay, script.DefaultTick),
	})
	return &simulation{host: h, clock: clk, dev: dev, runner: r}, nil
}

// tolerant wraps a device step so that cycle errors are logged and the loop
// keeps running.
func tolerant(step func() error, logger *slog.Logger) func() error {
	return func() error {
		if err := step(); err != nil {
			logger.Error("cycle failed", "error", err)
		}
		return nil
	}
}
