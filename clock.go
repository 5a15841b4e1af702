package text2d

import "time"

// Clock supplies the elapsed-seconds value the animator reads. Advance is
// called once per frame by Scene.Update; Elapsed returns the same value until
// the next Advance.
type Clock interface {
	Advance()
	Elapsed() float64
}

// WallClock measures real time since its creation.
type WallClock struct {
	start   time.Time
	elapsed float64
}

// NewWallClock returns a clock that starts now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Advance samples the monotonic time since start.
func (c *WallClock) Advance() {
	c.elapsed = time.Since(c.start).Seconds()
}

// Elapsed returns the value sampled by the last Advance.
func (c *WallClock) Elapsed() float64 {
	return c.elapsed
}

// FixedClock advances by a constant step per frame, independent of real time.
type FixedClock struct {
	step    float64
	elapsed float64
	held    bool // set by Seek; the next Advance keeps the seeked time
}

// NewFixedClock returns a clock at zero that advances step seconds per frame.
// A negative step is treated as zero so the clock never runs backwards.
func NewFixedClock(step float64) *FixedClock {
	if step < 0 {
		step = 0
	}
	return &FixedClock{step: step}
}

// Advance moves the clock forward by one step, unless Seek was called since
// the last Advance.
func (c *FixedClock) Advance() {
	if c.held {
		c.held = false
		return
	}
	c.elapsed += c.step
}

// Elapsed returns the current time in seconds.
func (c *FixedClock) Elapsed() float64 {
	return c.elapsed
}

// Seek jumps to t seconds. Negative values clamp to zero. The following
// Advance leaves the clock at t so the next frame is rendered at exactly t.
func (c *FixedClock) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	c.elapsed = t
	c.held = true
}
