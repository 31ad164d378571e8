package player

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"smfplay/debug"
	"smfplay/seq"
)

// Control change numbers used when rebuilding channel state.
const (
	ccAllSoundOff         = 120
	ccResetAllControllers = 121
)

// ctrlValue is a controller slot that knows whether it was ever written.
type ctrlValue struct {
	set bool
	val uint8
}

// channelState is the last-writer-wins program and controller state of
// one MIDI channel, rebuilt by scanning the sequence up to a target time.
// Note history is intentionally not tracked.
type channelState struct {
	program  uint8
	controls [128]ctrlValue
}

// Seek repositions playback to t seconds, leaving the cursor at the
// first event with timestamp >= t. Instead of replaying everything
// before t, it rebuilds the audible channel state: the events up to t
// are scanned silently for program and control changes, then a reset
// block is emitted through the event callback for each channel in order
// 0-15: all sound off, reset all controllers, the channel's program,
// and every controller that was set, in ascending controller order.
// Notes sounding at t are not resumed. Negative targets are clamped to
// zero. Seek does not change the running state.
func (p *Player) Seek(t float64) {
	if t < 0 {
		t = 0
	}

	var chans [16]channelState

	p.Rewind()
	for {
		ev, ok := p.cur.Peek()
		if !ok || ev.Time >= t {
			break
		}
		var ch, ctrl, val uint8
		switch {
		case ev.Message.GetProgramChange(&ch, &val):
			chans[ch&0xf].program = val & 0x7f
		case ev.Message.GetControlChange(&ch, &ctrl, &val):
			chans[ch&0xf].controls[ctrl&0x7f] = ctrlValue{set: true, val: val & 0x7f}
		}
		p.cur.Next()
	}

	p.clk.SetPos(t)
	debug.Log("player", "seek to %.3fs", t)

	if p.onEvent == nil {
		return
	}
	for ch := 0; ch < 16; ch++ {
		c := uint8(ch)
		p.emit(t, midi.ControlChange(c, ccAllSoundOff, 0))
		p.emit(t, midi.ControlChange(c, ccResetAllControllers, 0))
		p.emit(t, midi.ProgramChange(c, chans[ch].program))
		for id := 0; id < 128; id++ {
			if v := chans[ch].controls[id]; v.set {
				p.emit(t, midi.ControlChange(c, uint8(id), v.val))
			}
		}
	}
}

// emit delivers a synthesized event through the event callback. Track -1
// marks it as not coming from the file.
func (p *Player) emit(t float64, msg midi.Message) {
	p.onEvent(seq.Event{Time: t, Track: -1, Message: smf.Message(msg)})
}
