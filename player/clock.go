package player

import "time"

// Clock converts real-time deltas into a musical time position, scaled
// by a speed multiplier. It accumulates actual elapsed wall time between
// ticks rather than the nominal tick interval, so scheduler jitter does
// not drift the position.
type Clock struct {
	pos      float64
	speed    float64
	prev     time.Time
	havePrev bool
}

// NewClock returns a clock at position 0 with speed 1.
func NewClock() Clock {
	return Clock{speed: 1}
}

// Advance moves the position forward by speed times the real time since
// the previous Advance, and returns the new position. The first Advance
// after a baseline drop only records the timestamp; without a previous
// tick there is no delta to accumulate, which keeps time spent stopped
// from counting as elapsed.
func (c *Clock) Advance(now time.Time) float64 {
	if c.havePrev {
		c.pos += c.speed * now.Sub(c.prev).Seconds()
	}
	c.prev = now
	c.havePrev = true
	return c.pos
}

// DropBaseline forgets the previous-tick timestamp. Called on every
// stopped/running transition and on rewind/seek.
func (c *Clock) DropBaseline() {
	c.havePrev = false
}

// Pos returns the current position in seconds.
func (c *Clock) Pos() float64 { return c.pos }

// SetPos overrides the position directly (rewind and seek).
func (c *Clock) SetPos(pos float64) { c.pos = pos }

// Speed returns the current speed multiplier.
func (c *Clock) Speed() float64 { return c.speed }

// SetSpeed sets the speed multiplier, effective from the next Advance.
// Zero freezes the position; negative values move it backwards, which a
// forward-only reader will simply wait out.
func (c *Clock) SetSpeed(speed float64) { c.speed = speed }
