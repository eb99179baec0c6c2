package clock

import "time"

// Pausable accumulates frame deltas into an elapsed time base. While paused,
// Advance is ignored, so resuming continues from the frozen value rather than
// jumping or resetting.
//
// It is driven from the frame loop only and is not safe for concurrent use.
type Pausable struct {
	elapsed time.Duration
	paused  bool
}

// NewPausable returns a running clock at zero.
func NewPausable() *Pausable {
	return &Pausable{}
}

// Advance adds dt to the elapsed time unless the clock is paused. Negative deltas are ignored.
func (c *Pausable) Advance(dt time.Duration) {
	if c.paused || dt <= 0 {
		return
	}
	c.elapsed += dt
}

// Pause freezes the clock.
func (c *Pausable) Pause() {
	c.paused = true
}

// Resume lets Advance accumulate again.
func (c *Pausable) Resume() {
	c.paused = false
}

// IsPaused reports the pause state.
func (c *Pausable) IsPaused() bool {
	return c.paused
}

// Elapsed returns the accumulated running time.
func (c *Pausable) Elapsed() time.Duration {
	return c.elapsed
}

// Seconds returns Elapsed in seconds.
func (c *Pausable) Seconds() float32 {
	return float32(c.elapsed.Seconds())
}

// Millis returns Elapsed in milliseconds, with sub-millisecond precision.
func (c *Pausable) Millis() float32 {
	return float32(float64(c.elapsed) / float64(time.Millisecond))
}

// Reset sets the elapsed time back to zero without changing the pause state.
func (c *Pausable) Reset() {
	c.elapsed = 0
}
