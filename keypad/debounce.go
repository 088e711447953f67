package keypad

import "time"

// DefaultDebounce is how long a raw level must hold before it is accepted.
const DefaultDebounce = 50 * time.Millisecond

// Millis is a wrapping monotonic millisecond counter.
type Millis uint32

// Since returns the time elapsed from earlier to m. Correct across wraparound
// as long as the real gap is below 2^32 ms.
func (m Millis) Since(earlier Millis) Millis { return m - earlier }

// ToMillis truncates d to whole milliseconds.
func ToMillis(d time.Duration) Millis {
	if d <= 0 {
		return 0
	}
	return Millis(d / time.Millisecond)
}

type debounceRecord struct {
	lastRaw    bool
	lastChange Millis
	stable     bool
}

// Debouncer accepts a level change only after the raw input has been quiet
// for longer than the delay.
type Debouncer struct {
	delay Millis
	recs  Grid[debounceRecord]
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: ToMillis(delay)}
}

// Update feeds one raw sample for c taken at now and returns the stable level.
// Calling it again with the same sample and time returns the same result.
func (d *Debouncer) Update(c Cell, raw bool, now Millis) bool {
	rec := d.recs.Ptr(c)
	if raw != rec.lastRaw {
		rec.lastRaw = raw
		rec.lastChange = now
	}
	if now.Since(rec.lastChange) > d.delay {
		rec.stable = rec.lastRaw
	}
	return rec.stable
}

// Stable returns the last committed level of c.
func (d *Debouncer) Stable(c Cell) bool { return d.recs.At(c).stable }

func (d *Debouncer) Delay() time.Duration { return time.Duration(d.delay) * time.Millisecond }
