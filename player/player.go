// Package player schedules the events of a flattened MIDI sequence onto
// real time. A host timer ticks the player; each tick advances the clock
// and delivers every event whose timestamp has come due to the event
// callback, in sequence order. Playback can be started, stopped, rewound
// and repositioned at any time.
//
// A Player is not safe for concurrent use. The host must confine all
// calls, including the timer ticks, to a single goroutine; the loop
// package provides such a goroutine. Callbacks run synchronously inside
// the tick and may call back into the player.
package player

import (
	"time"

	"smfplay/debug"
	"smfplay/seq"
)

// DefaultClockRate is the tick frequency used by new players, in Hz.
const DefaultClockRate = 1000.0

// EventFunc receives each due event during playback, and the synthesized
// channel-state events after a seek.
type EventFunc func(ev seq.Event)

// FinishFunc is called once when the sequence is exhausted.
type FinishFunc func()

// Player steps a sequence cursor forward under a host timer.
type Player struct {
	cur   *seq.Cursor
	clk   Clock
	timer Timer
	rate  float64 // tick frequency in Hz

	running bool

	// look-ahead slot: the next event read from the cursor but not yet due
	ev     seq.Event
	haveEv bool

	onEvent  EventFunc
	onFinish FinishFunc
}

// New creates a stopped player over the sequence, bound to the given
// host timer. The player owns its cursor and the timer registration;
// it does not own the timer's loop.
func New(s *seq.Sequence, timer Timer) *Player {
	return &Player{
		cur:   s.Cursor(),
		clk:   NewClock(),
		timer: timer,
		rate:  DefaultClockRate,
	}
}

// Start begins ticking. Starting a running player is a no-op. Playback
// resumes from the current position; time spent stopped does not count.
func (p *Player) Start() {
	if p.running {
		return
	}
	p.clk.DropBaseline()
	p.timer.Start(p.interval(), p.tick)
	p.running = true
	debug.Log("player", "start at %.3fs speed=%.2f", p.clk.Pos(), p.clk.Speed())
}

// Stop ceases ticking. Stopping a stopped player is a no-op. No tick
// runs after Stop returns.
func (p *Player) Stop() {
	if !p.running {
		return
	}
	p.clk.DropBaseline()
	p.timer.Stop()
	p.running = false
	debug.Log("player", "stop at %.3fs", p.clk.Pos())
}

// Rewind resets the position to zero and the cursor to the first event.
// It does not change the running state.
func (p *Player) Rewind() {
	p.cur.Rewind()
	p.clk.SetPos(0)
	p.clk.DropBaseline()
	p.haveEv = false
	debug.Log("player", "rewind")
}

// Close stops the player if it is running. The player must not be used
// afterwards.
func (p *Player) Close() {
	if p.running {
		p.timer.Stop()
		p.running = false
	}
}

// Running reports whether the player is ticking.
func (p *Player) Running() bool { return p.running }

// Time returns the current playback position in seconds.
func (p *Player) Time() float64 { return p.clk.Pos() }

// Speed returns the current speed multiplier.
func (p *Player) Speed() float64 { return p.clk.Speed() }

// SetSpeed sets the speed multiplier, effective from the next tick.
// Any value is accepted; zero freezes playback and negative values move
// the position backwards without re-delivering past events (the cursor
// only reads forward).
func (p *Player) SetSpeed(speed float64) { p.clk.SetSpeed(speed) }

// ClockRate returns the tick frequency in Hz.
func (p *Player) ClockRate() float64 { return p.rate }

// SetClockRate sets the tick frequency in Hz. The rate must be positive;
// anything else is a programming error and panics rather than silently
// corrupting timing. A running player is rescheduled immediately, keeping
// its clock baseline.
func (p *Player) SetClockRate(hz float64) {
	if hz <= 0 {
		panic("player: clock rate must be positive")
	}
	p.rate = hz
	if p.running {
		p.timer.Stop()
		p.timer.Start(p.interval(), p.tick)
	}
}

// SetEventFunc registers the event callback, replacing any previous one.
// A nil fn clears it; events are still consumed on schedule.
func (p *Player) SetEventFunc(fn EventFunc) { p.onEvent = fn }

// SetFinishFunc registers the finish callback, replacing any previous
// one. A nil fn clears it.
func (p *Player) SetFinishFunc(fn FinishFunc) { p.onFinish = fn }

func (p *Player) interval() time.Duration {
	return time.Duration(float64(time.Second) / p.rate)
}

// tick advances the clock and drains every event older than the new
// position. The loop re-reads player state on each iteration instead of
// caching it, so a callback that stops, rewinds or seeks the player is
// honored by the remainder of the same drain.
func (p *Player) tick(now time.Time) {
	if !p.running {
		// stale tick from a schedule cancelled mid-flight
		return
	}
	p.clk.Advance(now)

	if !p.haveEv {
		p.ev, p.haveEv = p.cur.Next()
	}
	for p.running && p.haveEv && p.ev.Time < p.clk.Pos() {
		ev := p.ev
		p.haveEv = false
		if p.onEvent != nil {
			p.onEvent(ev)
		}
		if !p.haveEv {
			// a reentrant seek may have refilled the slot already
			p.ev, p.haveEv = p.cur.Next()
		}
	}

	if p.running && !p.haveEv {
		// sequence exhausted: stop ticking and notify once
		p.timer.Stop()
		p.running = false
		debug.Log("player", "finished at %.3fs", p.clk.Pos())
		if p.onFinish != nil {
			p.onFinish()
		}
	}
}
