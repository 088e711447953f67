package app

import (
	"time"

	"padcalc/keypad"
)

// Config tunes the scan loop. Pin assignment comes from the HAL.
type Config struct {
	// Debounce is the quiet period a level must hold before it is accepted.
	Debounce time.Duration
	// Settle is the delay between driving a column and sampling the rows.
	Settle time.Duration
	// CycleDelay is the pause between scan cycles in Run.
	CycleDelay time.Duration
	Layout     keypad.Layout
}

func DefaultConfig() Config {
	return Config{
		Debounce:   keypad.DefaultDebounce,
		Settle:     keypad.DefaultSettle,
		CycleDelay: time.Millisecond,
		Layout:     keypad.DefaultLayout(),
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Debounce <= 0 {
		c.Debounce = def.Debounce
	}
	if c.Settle < 0 {
		c.Settle = def.Settle
	}
	if c.CycleDelay < 0 {
		c.CycleDelay = def.CycleDelay
	}
	if c.Layout.Count(func(k keypad.Key) bool { return k.Type != keypad.KeyUnused }) == 0 {
		c.Layout = def.Layout
	}
	return c
}
