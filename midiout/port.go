// Package midiout locates and opens MIDI output ports.
package midiout

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"smfplay/debug"
)

// Ports returns the names of all available output ports.
func Ports() []string {
	var names []string
	for _, p := range midi.GetOutPorts() {
		names = append(names, p.String())
	}
	return names
}

// Find returns the first output port whose name contains the given
// substring, case-insensitively. An empty substring matches the first
// available port.
func Find(substr string) (drivers.Out, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output ports available")
	}
	if substr == "" {
		return outs[0], nil
	}
	want := strings.ToLower(substr)
	for _, p := range outs {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", substr)
}

// Open finds a port and returns a sender for it.
func Open(substr string) (func(midi.Message) error, error) {
	port, err := Find(substr)
	if err != nil {
		return nil, err
	}
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("opening port %s: %w", port.String(), err)
	}
	debug.Log("midiout", "opened port %s", port.String())
	return send, nil
}

// Printer returns a sender that only logs messages, for running without
// a MIDI port.
func Printer() func(midi.Message) error {
	return func(msg midi.Message) error {
		debug.Log("midiout", "msg %s", msg.String())
		return nil
	}
}

// Silence sends all-notes-off and all-sound-off on every channel, for
// cleanup when playback is interrupted mid-note.
func Silence(send func(midi.Message) error) {
	for ch := uint8(0); ch < 16; ch++ {
		send(midi.ControlChange(ch, 123, 0)) // all notes off
		send(midi.ControlChange(ch, 120, 0)) // all sound off
	}
}
