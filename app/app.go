// Package app wires the router, host, MIDI ports and monitor together.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cliplaunch/clipgen"
	"cliplaunch/config"
	"cliplaunch/debug"
	"cliplaunch/host"
	"cliplaunch/midi"
	"cliplaunch/router"
	"cliplaunch/theme"
	"cliplaunch/tui"
)

// Run wires everything and blocks until quit. A MIDI driver must be
// registered by the caller.
func Run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if cfg.Debug.Enabled {
		path := cfg.Debug.Path
		if path == "" {
			path = debug.DefaultPath()
		}
		if err := debug.Enable(path); err != nil {
			fmt.Printf("Warning: debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	var gen clipgen.Generator
	if cfg.Clock.Enabled {
		if gen, err = newGenerator(cfg.Clock.Generator); err != nil {
			debug.Log("main", "%v", err)
			return err
		}
	}
	debug.Log("main", "controller %s %s %s (%s)", cfg.Controller.Vendor, cfg.Controller.Name, cfg.Controller.Version, cfg.Controller.ID)

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		fmt.Printf("Warning: palette: %v (using %s)\n", err, palette.Name)
	}

	var diag router.Diagnostics
	var logPane *tui.LogPane
	if cfg.UI.Headless {
		diag = debug.NewSink(os.Stdout)
	} else {
		logPane = tui.NewLogPane(10)
		diag = logPane
	}

	h := host.New()
	r := router.New(h.Transport, h.Tracks, diag)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	defer midi.Close()

	go h.Run(ctx, r)

	var follower *clipgen.Follower
	if cfg.Clock.Enabled {
		follower, err = newFollower(cfg, gen, h, diag)
		if err != nil {
			return err
		}
	}

	// one binding per physical port
	var inputClock midi.ClockSink
	if follower != nil {
		if sharesInputPort(cfg) {
			inputClock = follower
		} else {
			clockMgr := midi.NewDeviceManager(cfg.Clock.PortName, nil, follower)
			go clockMgr.Run(ctx)
		}
	}

	deviceMgr := midi.NewDeviceManager(cfg.Input.PortName, h, inputClock)
	go deviceMgr.Run(ctx)

	diag.Println(fmt.Sprintf("%s initialized!", cfg.Controller.Name))

	if cfg.UI.Headless {
		go logDeviceEvents(ctx, deviceMgr, diag)
		<-ctx.Done()
		return nil
	}

	m := tui.NewModel(h, deviceMgr, theme.New(palette), logPane)
	m.Title = cfg.Controller.Name
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// sharesInputPort reports whether the clock and input patterns resolve to
// the same port right now
func sharesInputPort(cfg *config.Config) bool {
	ins, _, err := midi.Ports(3 * time.Second)
	if err != nil {
		debug.Log("main", "port scan: %v", err)
	}
	same := midi.SamePort(ins, cfg.Input.PortName, cfg.Clock.PortName)
	debug.Log("main", "clock on input port: %v", same)
	return same
}

func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("cliplaunch", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "config file (default ~/.config/cliplaunch/config.json)")
		inPort     = fs.String("in", "", "input port carrying clip notes and MMC")
		clockPort  = fs.String("clock", "", "clock input port; enables the clip sender")
		outPort    = fs.String("out", "", "output port for the clip sender")
		headless   = fs.Bool("headless", false, "print diagnostics instead of running the TUI")
		debugLog   = fs.Bool("debug", false, "write a debug log")
		generator  = fs.String("gen", "", "clip generator: random or markov")
		save       = fs.Bool("save", false, "write the effective config back to disk")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if *inPort != "" {
		cfg.Input.PortName = *inPort
	}
	if *clockPort != "" {
		cfg.Clock.PortName = *clockPort
		cfg.Clock.Enabled = true
	}
	if *outPort != "" {
		cfg.Output.PortName = *outPort
	}
	if *generator != "" {
		cfg.Clock.Generator = *generator
	}
	if *headless {
		cfg.UI.Headless = true
	}
	if *debugLog {
		cfg.Debug.Enabled = true
	}

	if *save {
		if *configPath != "" {
			err = cfg.SaveFile(*configPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return nil, fmt.Errorf("save config: %w", err)
		}
	}
	return cfg, nil
}

func newGenerator(name string) (clipgen.Generator, error) {
	switch name {
	case "", config.GeneratorRandom:
		return clipgen.NewRandomGenerator(nil), nil
	case config.GeneratorMarkov:
		return clipgen.NewGridWalk(nil), nil
	}
	return nil, fmt.Errorf("unknown clip generator %q", name)
}

func newFollower(cfg *config.Config, gen clipgen.Generator, h *host.Host, diag router.Diagnostics) (*clipgen.Follower, error) {
	send, err := midi.OpenSender(cfg.Output.PortName)
	if err != nil {
		return nil, fmt.Errorf("clip sender: %w", err)
	}

	f := clipgen.NewFollower(gen, send, cfg.OutputChannel())
	f.OnPulse = func() {
		h.Transport.Advance(1.0 / clipgen.PulsesPerQuarter)
	}
	f.OnSend = func(bar int, clip clipgen.Clip, err error) {
		if err != nil {
			diag.Println(fmt.Sprintf("[bar %d: send track %d scene %d failed: %v]", bar, clip.Track, clip.Scene, err))
			return
		}
		diag.Println(fmt.Sprintf("[bar %d: sending track %d scene %d (midival=%d)]", bar, clip.Track, clip.Scene, clip.Note()))
	}
	return f, nil
}

func logDeviceEvents(ctx context.Context, deviceMgr *midi.DeviceManager, diag router.Diagnostics) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-deviceMgr.Events():
			if !ok {
				return
			}
			switch ev.Type {
			case midi.DeviceConnected:
				diag.Println("Input connected: " + ev.ID)
			case midi.DeviceDisconnected:
				diag.Println("Input disconnected: " + ev.ID)
			}
		}
	}
}
