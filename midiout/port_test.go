package midiout

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestSilenceCoversAllChannels(t *testing.T) {
	var sent []midi.Message
	Silence(func(msg midi.Message) error {
		sent = append(sent, msg)
		return nil
	})

	if len(sent) != 32 {
		t.Fatalf("sent %d messages, want 32", len(sent))
	}
	for ch := uint8(0); ch < 16; ch++ {
		var c, ctrl, val uint8
		if !sent[2*ch].GetControlChange(&c, &ctrl, &val) || c != ch || ctrl != 123 || val != 0 {
			t.Fatalf("message %d = %s, want ch%d CC123=0", 2*ch, sent[2*ch], ch)
		}
		if !sent[2*ch+1].GetControlChange(&c, &ctrl, &val) || c != ch || ctrl != 120 || val != 0 {
			t.Fatalf("message %d = %s, want ch%d CC120=0", 2*ch+1, sent[2*ch+1], ch)
		}
	}
}

func TestPrinterAcceptsMessages(t *testing.T) {
	send := Printer()
	if err := send(midi.NoteOn(0, 60, 100)); err != nil {
		t.Fatalf("printer sender returned %v", err)
	}
}
