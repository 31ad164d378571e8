package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	cmd := "list"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "list":
		listPorts()
	case "watch":
		watchPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI port tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list   - List all MIDI ports (default)")
	fmt.Println("  watch  - Poll for port changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range midi.GetInPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range midi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func watchPorts() {
	fmt.Println("Polling for port changes every 2 seconds. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		var inNames, outNames []string
		for _, p := range midi.GetInPorts() {
			inNames = append(inNames, p.String())
		}
		for _, p := range midi.GetOutPorts() {
			outNames = append(outNames, p.String())
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Port change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
