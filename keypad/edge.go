package keypad

// Cycle numbers scan cycles. The zero value is never a real cycle.
type Cycle uint64

type edgeRecord struct {
	last bool

	cycle Cycle
	input bool
	out   bool
}

// EdgeDetector reports the cycle on which a stable level goes from released
// to pressed, once per press.
type EdgeDetector struct {
	recs Grid[edgeRecord]
}

// Update feeds the stable level of c for cycle and reports a rising edge.
// A repeated call within the same cycle with the same level returns the
// first answer again.
func (e *EdgeDetector) Update(c Cell, stable bool, cycle Cycle) bool {
	rec := e.recs.Ptr(c)
	if cycle != 0 && rec.cycle == cycle && rec.input == stable {
		return rec.out
	}

	out := false
	switch {
	case stable && !rec.last:
		rec.last = true
		out = true
	case !stable && rec.last:
		rec.last = false
	}

	rec.cycle = cycle
	rec.input = stable
	rec.out = out
	return out
}

// Reset forgets every recorded level.
func (e *EdgeDetector) Reset() { e.recs.Reset() }
