package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2"

	"smfplay/config"
	"smfplay/debug"
	"smfplay/loop"
	"smfplay/midiout"
	"smfplay/player"
	"smfplay/seq"
	"smfplay/tui"
)

func main() {
	portFlag := flag.String("port", "", "substring of the MIDI output port name")
	speedFlag := flag.Float64("speed", 0, "playback speed multiplier (overrides config)")
	printFlag := flag.Bool("print", false, "log events instead of sending MIDI")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: smfplay [flags] file.mid")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	debug.EnableFromEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	portName := cfg.Output.PortName
	if *portFlag != "" {
		portName = *portFlag
	}
	speed := cfg.Player.Speed
	if *speedFlag != 0 {
		speed = *speedFlag
	}

	sequence, err := seq.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var send func(midi.Message) error
	if *printFlag {
		send = midiout.Printer()
	} else {
		send, err = midiout.Open(portName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v - logging events instead\n", err)
			send = midiout.Printer()
		}
	}

	// The loop goroutine owns the player; everything below reaches it
	// through posted closures only.
	lp := loop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go lp.Run(ctx)

	p := player.New(sequence, lp.NewTimer())
	lp.Do(func() {
		if cfg.Player.ClockRate > 0 {
			p.SetClockRate(cfg.Player.ClockRate)
		}
		if speed != 0 {
			p.SetSpeed(speed)
		}
		p.SetEventFunc(func(ev seq.Event) {
			if ev.Message.IsMeta() {
				return // tempo is already folded into timestamps
			}
			send(midi.Message(ev.Message))
		})
		p.SetFinishFunc(func() {
			debug.Log("main", "playback finished")
		})
		p.Start()
	})

	ctl := &control{lp: lp, p: p, file: path, dur: sequence.Duration()}
	m := tui.NewModel(ctl)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lp.Do(p.Close)
	midiout.Silence(send)
}

// control adapts the loop-confined player to the UI's Transport
// interface. Every method is a synchronous round-trip onto the loop.
type control struct {
	lp   *loop.Loop
	p    *player.Player
	file string
	dur  float64
}

func (c *control) TogglePlay() {
	c.lp.Do(func() {
		if c.p.Running() {
			c.p.Stop()
			return
		}
		if c.dur > 0 && c.p.Time() >= c.dur {
			c.p.Rewind() // restart a finished run
		}
		c.p.Start()
	})
}

func (c *control) Rewind() {
	c.lp.Do(c.p.Rewind)
}

func (c *control) SeekBy(seconds float64) {
	c.lp.Do(func() {
		c.p.Seek(c.p.Time() + seconds)
	})
}

func (c *control) AdjustSpeed(delta float64) {
	c.lp.Do(func() {
		c.p.SetSpeed(c.p.Speed() + delta)
	})
}

func (c *control) Status() tui.Status {
	var s tui.Status
	c.lp.Do(func() {
		s = tui.Status{
			File:     c.file,
			Time:     c.p.Time(),
			Duration: c.dur,
			Speed:    c.p.Speed(),
			Playing:  c.p.Running(),
		}
	})
	return s
}
