//go:build !tinygo

package hal

import (
	"fmt"
	"sync"

	"padcalc/hid"
)

// HIDEventKind is the action a HIDEvent records.
type HIDEventKind uint8

const (
	HIDDown HIDEventKind = iota
	HIDUp
	HIDReleaseAll
)

// HIDEvent is one action received by the host keyboard.
type HIDEvent struct {
	Kind  HIDEventKind
	Usage hid.Usage
}

func (e HIDEvent) String() string {
	switch e.Kind {
	case HIDDown:
		return "down " + e.Usage.String()
	case HIDUp:
		return "up " + e.Usage.String()
	case HIDReleaseAll:
		return "release-all"
	}
	return "?"
}

// hostHID records emitted key actions and enforces one outstanding press per usage.
type hostHID struct {
	mu      sync.Mutex
	down    [256]bool
	events  []HIDEvent
	onEvent func(HIDEvent)
}

func newHostHID() *hostHID { return &hostHID{} }

func (k *hostHID) Down(u hid.Usage) error {
	k.mu.Lock()
	if k.down[u] {
		k.mu.Unlock()
		return fmt.Errorf("hid: %s already down", u)
	}
	k.down[u] = true
	fn := k.record(HIDEvent{Kind: HIDDown, Usage: u})
	k.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (k *hostHID) Up(u hid.Usage) error {
	k.mu.Lock()
	if !k.down[u] {
		k.mu.Unlock()
		return fmt.Errorf("hid: %s not down", u)
	}
	k.down[u] = false
	fn := k.record(HIDEvent{Kind: HIDUp, Usage: u})
	k.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (k *hostHID) ReleaseAll() error {
	k.mu.Lock()
	k.down = [256]bool{}
	fn := k.record(HIDEvent{Kind: HIDReleaseAll})
	k.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

// record appends ev and returns the notification to run once unlocked.
func (k *hostHID) record(ev HIDEvent) func() {
	k.events = append(k.events, ev)
	if k.onEvent == nil {
		return nil
	}
	cb := k.onEvent
	return func() { cb(ev) }
}

func (k *hostHID) setOnEvent(fn func(HIDEvent)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.onEvent = fn
}

func (k *hostHID) snapshot() []HIDEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]HIDEvent(nil), k.events...)
}

func (k *hostHID) held() []hid.Usage {
	k.mu.Lock()
	defer k.mu.Unlock()
	var out []hid.Usage
	for u, d := range k.down {
		if d {
			out = append(out, hid.Usage(u))
		}
	}
	return out
}
