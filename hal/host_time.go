//go:build !tinygo

package hal

import (
	"sync"
	"time"

	"padcalc/keypad"
)

type realClock struct {
	start time.Time
}

func newRealClock() *realClock { return &realClock{start: time.Now()} }

func (c *realClock) Millis() keypad.Millis {
	return keypad.Millis(time.Since(c.start) / time.Millisecond)
}

func (c *realClock) Sleep(d time.Duration) { time.Sleep(d) }

// SimClock is a manually advanced clock. Sleep advances it instead of blocking.
type SimClock struct {
	mu  sync.Mutex
	now time.Duration
}

func NewSimClock() *SimClock { return &SimClock{} }

func (c *SimClock) Millis() keypad.Millis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return keypad.Millis(c.now / time.Millisecond)
}

// Now returns the simulated time since start.
func (c *SimClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

func (c *SimClock) Sleep(d time.Duration) { c.Advance(d) }
