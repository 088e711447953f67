//go:build tinygo

package main

import (
	"context"

	"padcalc/app"
	"padcalc/hal"
	"padcalc/internal/log"
)

func main() {
	h := hal.New()
	logger := log.New(hal.LogWriter(h.Logger()), "info")

	dev, err := app.New(h, app.DefaultConfig(), logger)
	if err != nil {
		logger.Error("device init failed", "error", err)
		for {
			h.Clock().Sleep(1e9)
		}
	}
	_ = dev.Run(context.Background())
}
