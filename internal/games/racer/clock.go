package racer

import "math"

// FrameClock turns monotonically increasing frame timestamps into clamped
// deltas. The first timestamp after Invalidate only anchors the clock.
type FrameClock struct {
	clamp float64 // Largest delta in milliseconds
	last  float64
	valid bool
}

// NewFrameClock creates a clock that never reports more than clampMs per frame.
func NewFrameClock(clampMs float64) FrameClock {
	return FrameClock{clamp: clampMs}
}

// Tick records ts (milliseconds) and returns the elapsed time since the
// previous tick. ok is false when the tick only anchored the clock.
func (c *FrameClock) Tick(ts float64) (dt float64, ok bool) {
	if !c.valid {
		c.last = ts
		c.valid = true
		return 0, false
	}
	dt = math.Max(0, math.Min(c.clamp, ts-c.last))
	c.last = ts
	return dt, true
}

// Invalidate drops the anchor so the next tick starts a new measurement.
func (c *FrameClock) Invalidate() {
	c.valid = false
}

// Frame is the loop callback: given the frame timestamp in milliseconds it
// steps the simulation. It returns false outside the running phase; no further
// frame is needed until an input starts or resumes the run.
func (s *Sim) Frame(tsMs float64) bool {
	if s.phase != PhaseRunning {
		return false
	}
	if dt, ok := s.clock.Tick(tsMs); ok {
		s.Update(dt)
	}
	return true
}
