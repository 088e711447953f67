//go:build !tinygo

package cmd

import (
	"log/slog"

	"padcalc/app"
	"padcalc/hal"
)

// Window opens the desktop simulator.
type Window struct {
	Scale         int `help:"Window scale factor" default:"2"`
	StepsPerFrame int `help:"Scan cycles per 60Hz frame" default:"16"`
}

// Run is called by Kong when the window command is executed.
func (w *Window) Run(logger *slog.Logger, flags DeviceFlags) error {
	h := hal.NewHost(hal.HostConfig{})
	h.SetCalculatorMode(flags.Calc)

	dev, err := app.New(h, flags.AppConfig(), logger)
	if err != nil {
		return err
	}
	h.OnHIDEvent(func(ev hal.HIDEvent) {
		logger.Debug("hid", "event", ev.String())
	})

	logger.Info("Starting window", "scale", w.Scale, "steps_per_frame", w.StepsPerFrame)
	return hal.RunWindow(h, tolerant(dev.Step, logger), hal.WindowConfig{
		Scale:         w.Scale,
		StepsPerFrame: w.StepsPerFrame,
		Layout:        dev.Config().Layout,
	})
}
