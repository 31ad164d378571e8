package player

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"smfplay/seq"
)

// seekFixture has, on channel 0, a program change to 5 at t=1s and
// controller 7 set to 64 at t=2s, then a note at t=3s.
func seekFixture(t *testing.T) *seq.Sequence {
	t.Helper()
	return mkSequence(t,
		timedMsg{1000, midi.ProgramChange(0, 5)},
		timedMsg{2000, midi.ControlChange(0, 7, 64)},
		timedMsg{3000, midi.NoteOn(0, 60, 100)},
	)
}

func TestSeekEmitsResetBlock(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	var got []seq.Event
	p.SetEventFunc(func(ev seq.Event) { got = append(got, ev) })

	p.Seek(3)

	if p.Time() != 3 {
		t.Fatalf("time after seek = %v, want 3", p.Time())
	}

	// 16 channels x (all sound off, reset controllers, program change)
	// plus the one set controller on channel 0
	if len(got) != 49 {
		t.Fatalf("got %d synthesized events, want 49", len(got))
	}
	for i, ev := range got {
		if ev.Track != -1 {
			t.Fatalf("event %d has track %d, want -1", i, ev.Track)
		}
		if ev.Time != 3 {
			t.Fatalf("event %d has time %v, want 3", i, ev.Time)
		}
	}

	// channel 0 block carries the reconstructed state
	var ch, ctrl, val, prog uint8
	if !got[0].Message.GetControlChange(&ch, &ctrl, &val) || ch != 0 || ctrl != 120 || val != 0 {
		t.Fatalf("event 0 = %s, want ch0 CC120=0", got[0].Message)
	}
	if !got[1].Message.GetControlChange(&ch, &ctrl, &val) || ch != 0 || ctrl != 121 || val != 0 {
		t.Fatalf("event 1 = %s, want ch0 CC121=0", got[1].Message)
	}
	if !got[2].Message.GetProgramChange(&ch, &prog) || ch != 0 || prog != 5 {
		t.Fatalf("event 2 = %s, want ch0 program 5", got[2].Message)
	}
	if !got[3].Message.GetControlChange(&ch, &ctrl, &val) || ch != 0 || ctrl != 7 || val != 64 {
		t.Fatalf("event 3 = %s, want ch0 CC7=64", got[3].Message)
	}

	// channel 1 follows with defaults and no extra controllers
	if !got[4].Message.GetControlChange(&ch, &ctrl, &val) || ch != 1 || ctrl != 120 {
		t.Fatalf("event 4 = %s, want ch1 CC120", got[4].Message)
	}
	if !got[6].Message.GetProgramChange(&ch, &prog) || ch != 1 || prog != 0 {
		t.Fatalf("event 6 = %s, want ch1 program 0", got[6].Message)
	}
}

func TestSeekResumesAtFirstEventPastTarget(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	var notes []seq.Event
	p.SetEventFunc(func(ev seq.Event) {
		if ev.Track >= 0 {
			notes = append(notes, ev)
		}
	})

	p.Seek(3)
	p.Start()
	tm.fire(at(0))
	tm.fire(at(100)) // timepos 3.1
	if len(notes) != 1 {
		t.Fatalf("delivered %d file events, want 1", len(notes))
	}
	var ch, key, vel uint8
	if !notes[0].Message.GetNoteOn(&ch, &key, &vel) || key != 60 {
		t.Fatalf("resumed with %s, want the note at t=3", notes[0].Message)
	}
}

func TestSeekSkipsEventsSilently(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	var fileEvents int
	p.SetEventFunc(func(ev seq.Event) {
		if ev.Track >= 0 {
			fileEvents++
		}
	})

	p.Seek(2.5)
	if fileEvents != 0 {
		t.Fatalf("seek delivered %d file events, want 0", fileEvents)
	}
}

func TestSeekWithoutCallbackStaysSilent(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	p.Seek(2.5)
	if p.Time() != 2.5 {
		t.Fatalf("time = %v, want 2.5", p.Time())
	}
}

func TestSeekClampsNegativeTarget(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	p.Seek(-1)
	if p.Time() != 0 {
		t.Fatalf("time = %v, want 0", p.Time())
	}
}

func TestSeekToZeroEmitsDefaults(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	var got []seq.Event
	p.SetEventFunc(func(ev seq.Event) { got = append(got, ev) })

	p.Seek(0)
	// nothing before t=0, so only the per-channel reset triple
	if len(got) != 48 {
		t.Fatalf("got %d synthesized events, want 48", len(got))
	}
}

func TestSeekPastEndThenTickFinishes(t *testing.T) {
	tm := &manualTimer{}
	p := New(seekFixture(t), tm)

	finished := 0
	p.SetFinishFunc(func() { finished++ })

	p.Seek(100)
	p.Start()
	tm.fire(at(0))
	if finished != 1 {
		t.Fatalf("finish fired %d times, want 1", finished)
	}
}
