// Package seq flattens a Standard MIDI File into a single time-ordered
// event stream and serves it through a rewindable cursor.
package seq

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Event is one message from the merged stream, stamped with its absolute
// position in seconds. Track is the SMF track the message came from; seek
// reset events synthesized by the player carry Track -1.
type Event struct {
	Time    float64
	Track   int
	Message smf.Message
}

// Sequence is an immutable, time-ordered view of all tracks of an SMF.
// Meta and sysex messages are kept in the stream (players forward them
// unexamined); only end-of-track markers are dropped.
type Sequence struct {
	events []Event
}

// Tempo changes apply from their own tick onward. 120 BPM is the SMF
// default before the first tempo event.
const defaultBPM = 120.0

// FromSMF merges all tracks by absolute tick and converts tick positions
// to seconds using the file's tempo map. Ties are broken by track index,
// so events keep their file order. SMPTE-timed files are not supported.
func FromSMF(sm *smf.SMF) (*Sequence, error) {
	mt, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported SMF time format %v", sm.TimeFormat)
	}
	if len(sm.Tracks) == 0 {
		return nil, fmt.Errorf("SMF has no tracks")
	}

	// trackPos is the index of the next unread event per track,
	// trackTick the absolute tick of the last read one.
	trackPos := make([]int, len(sm.Tracks))
	trackTick := make([]int64, len(sm.Tracks))

	var (
		events   []Event
		lastTick int64
		elapsed  float64
		bpm      = defaultBPM
	)

	for {
		earliest := -1
		var earliestTick int64
		for i, tr := range sm.Tracks {
			p := trackPos[i]
			if p >= len(tr) {
				continue
			}
			at := trackTick[i] + int64(tr[p].Delta)
			if earliest < 0 || at < earliestTick {
				earliest = i
				earliestTick = at
			}
		}
		if earliest < 0 {
			break
		}

		msg := sm.Tracks[earliest][trackPos[earliest]].Message
		trackPos[earliest]++
		trackTick[earliest] = earliestTick

		if earliestTick > lastTick {
			elapsed += mt.Duration(bpm, uint32(earliestTick-lastTick)).Seconds()
			lastTick = earliestTick
		}

		var newBPM float64
		if msg.GetMetaTempo(&newBPM) && newBPM > 0 {
			bpm = newBPM
		}
		if msg.Is(smf.MetaEndOfTrackMsg) {
			continue
		}

		events = append(events, Event{
			Time:    elapsed,
			Track:   earliest,
			Message: msg,
		})
	}

	return &Sequence{events: events}, nil
}

// Load reads an SMF file from disk and flattens it.
func Load(path string) (*Sequence, error) {
	sm, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := FromSMF(sm)
	if err != nil {
		return nil, fmt.Errorf("flattening %s: %w", path, err)
	}
	return s, nil
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int { return len(s.events) }

// Duration returns the timestamp of the last event, in seconds.
func (s *Sequence) Duration() float64 {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].Time
}

// Cursor returns a new cursor positioned at the start of the sequence.
func (s *Sequence) Cursor() *Cursor {
	return &Cursor{s: s}
}

// Cursor is a forward reader over a Sequence. Cursors are independent;
// a Sequence may serve several at once.
type Cursor struct {
	s   *Sequence
	pos int
}

// Peek returns the next event without advancing past it.
func (c *Cursor) Peek() (Event, bool) {
	if c.pos >= len(c.s.events) {
		return Event{}, false
	}
	return c.s.events[c.pos], true
}

// Next returns the next event and advances past it.
func (c *Cursor) Next() (Event, bool) {
	ev, ok := c.Peek()
	if ok {
		c.pos++
	}
	return ev, ok
}

// Rewind moves the cursor back to the start of the sequence.
func (c *Cursor) Rewind() {
	c.pos = 0
}
