package player

import (
	"math"
	"testing"
	"time"
)

func TestClockFirstAdvanceOnlyRecordsBaseline(t *testing.T) {
	c := NewClock()
	if got := c.Advance(at(500)); got != 0 {
		t.Fatalf("first advance moved position to %v", got)
	}
	if got := c.Advance(at(600)); math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("position = %v, want 0.1", got)
	}
}

func TestClockSpeedScalesDeltas(t *testing.T) {
	c := NewClock()
	c.Advance(at(0))
	c.Advance(at(100))
	c.SetSpeed(2)
	c.Advance(at(200))
	if got := c.Pos(); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("position = %v, want 0.3", got)
	}

	c.SetSpeed(0)
	c.Advance(at(300))
	if got := c.Pos(); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("zero speed moved position to %v", got)
	}
}

func TestClockDropBaselineSwallowsGap(t *testing.T) {
	c := NewClock()
	c.Advance(at(0))
	c.Advance(at(100))
	c.DropBaseline()
	c.Advance(at(0).Add(time.Hour)) // baseline only
	if got := c.Pos(); math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("gap counted as elapsed: %v", got)
	}
	c.Advance(at(0).Add(time.Hour + 50*time.Millisecond))
	if got := c.Pos(); math.Abs(got-0.15) > 1e-9 {
		t.Fatalf("position = %v, want 0.15", got)
	}
}

func TestClockSetPosOverrides(t *testing.T) {
	c := NewClock()
	c.Advance(at(0))
	c.Advance(at(100))
	c.SetPos(42)
	if c.Pos() != 42 {
		t.Fatalf("position = %v, want 42", c.Pos())
	}
}
