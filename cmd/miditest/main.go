package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"cliplaunch/clipgen"
	cmidi "cliplaunch/midi"
	"cliplaunch/router"
)

const defaultPort = "loopMIDI Port 1"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer cmidi.Close()

	port := os.Getenv("MIDITEST_PORT")
	if port == "" {
		port = defaultPort
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "note":
		sendNote(port, os.Args[2:])
	case "clip":
		sendClip(port, os.Args[2:])
	case "mmc":
		sendMMC(port, os.Args[2:])
	case "monitor":
		monitor(port)
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                 - List all MIDI ports")
	fmt.Println("  note <n>             - Send note-on n (velocity 100)")
	fmt.Println("  clip <track> <scene> - Send the note that launches a slot")
	fmt.Println("  mmc <action>         - Send an MMC transport message")
	fmt.Println("  monitor              - Print what the router would see on the input port")
	fmt.Println("  poll                 - Poll for device changes")
	fmt.Println("")
	fmt.Printf("Output port: $MIDITEST_PORT (default %q)\n", defaultPort)
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, err := cmidi.Ports(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func send(port string, msg midi.Message) {
	out, err := cmidi.OpenSender(port)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := out(msg); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Sent % X to %s\n", msg.Bytes(), port)
}

func sendNote(port string, args []string) {
	if len(args) != 1 {
		usage()
		return
	}
	n, err := strconv.ParseUint(args[0], 10, 7)
	if err != nil {
		fmt.Printf("Bad note %q: %v\n", args[0], err)
		return
	}
	send(port, midi.NoteOn(0, uint8(n), 100))
}

func sendClip(port string, args []string) {
	if len(args) != 2 {
		usage()
		return
	}
	track, err1 := strconv.Atoi(args[0])
	scene, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("track and scene must be numbers")
		return
	}
	clip := clipgen.Clip{Track: track, Scene: scene}
	fmt.Printf("Launching %s (note %d)\n", clip, clip.Note())
	send(port, midi.NoteOn(0, clip.Note(), 100))
}

func sendMMC(port string, args []string) {
	var names []string
	for _, a := range router.Actions() {
		names = append(names, a.String())
	}
	if len(args) != 1 {
		fmt.Printf("Actions: %s\n", strings.Join(names, ", "))
		return
	}

	for _, a := range router.Actions() {
		if !strings.EqualFold(a.String(), args[0]) {
			continue
		}
		msg, _ := router.MMCMessage(a)
		raw, err := hex.DecodeString(msg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		// SysEx adds the F0/F7 framing
		send(port, midi.SysEx(raw[1:len(raw)-1]))
		return
	}
	fmt.Printf("Unknown action %q (want one of %s)\n", args[0], strings.Join(names, ", "))
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect a controller to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		inNames, outNames, err := cmidi.Ports(3 * time.Second)
		if err != nil {
			fmt.Printf("[%s] %v\n", time.Now().Format("15:04:05"), err)
			time.Sleep(2 * time.Second)
			continue
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			if cmidi.MatchPort(inNames, defaultPort) >= 0 {
				fmt.Printf("  -> %s detected!\n", defaultPort)
			}

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}

// printer is a sink that runs every message through a router wired to
// stdout-only fakes
type printer struct {
	r *router.EventRouter
}

func (p printer) DeliverShort(status, data1, data2 uint8) bool {
	fmt.Printf("short  %02X %02X %02X\n", status, data1, data2)
	p.r.HandleShortMessage(status, data1, data2)
	return true
}

func (p printer) DeliverSysex(messageHex string) bool {
	fmt.Printf("sysex  %s\n", messageHex)
	p.r.HandleSysex(messageHex)
	return true
}

func (p printer) Realtime(status uint8) {
	if status != cmidi.TimingClock {
		fmt.Printf("rt     %02X\n", status)
	}
}

type printTransport struct{}

func (printTransport) Rewind()      { fmt.Println("  -> rewind") }
func (printTransport) FastForward() { fmt.Println("  -> fastForward") }
func (printTransport) Stop()        { fmt.Println("  -> stop") }
func (printTransport) Play()        { fmt.Println("  -> play") }
func (printTransport) Record()      { fmt.Println("  -> record") }

type printTracks struct{}

func (printTracks) Channel(index int) router.ClipLauncherSlotBank { return printSlots(index) }

type printSlots int

func (t printSlots) Launch(slot int) { fmt.Printf("  -> launch track %d slot %d\n", int(t), slot) }

type stdout struct{}

func (stdout) Println(v ...any) { fmt.Println(append([]any{"  "}, v...)...) }

func monitor(port string) {
	in, err := cmidi.FindInPort(port)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	p := printer{r: router.New(printTransport{}, printTracks{}, stdout{})}
	b, err := cmidi.Bind(in.String(), in, p, p)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer b.Close()

	fmt.Printf("Monitoring %s. Ctrl+C to exit.\n", in.String())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	<-ctx.Done()
}
