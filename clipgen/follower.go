package clipgen

import (
	"sync"

	"cliplaunch/debug"
	"cliplaunch/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI clock resolution and the fixed 4/4 bar
const (
	PulsesPerQuarter = 24
	BeatsPerBar      = 4
	PulsesPerBar     = PulsesPerQuarter * BeatsPerBar

	// a due clip goes out once the bar is past this pulse (beat 3 done)
	sendAfterPulse = PulsesPerQuarter * 3
)

// Follower counts MIDI clock and sends one clip note per bar, late in the
// bar so the receiving launcher quantizes it onto the next downbeat.
type Follower struct {
	gen      Generator
	send     func(gomidi.Message) error
	channel  uint8
	velocity uint8

	// OnPulse runs for every counted clock pulse
	OnPulse func()
	// OnSend runs after each clip note is sent
	OnSend func(bar int, clip Clip, err error)

	mu       sync.Mutex
	running  bool
	pulse    int
	bar      int
	due      bool
	launches []Launch
}

// Launch is one clip note the follower sent (or failed to send)
type Launch struct {
	Bar  int
	Clip Clip
	Note uint8
	Err  error
}

// NewFollower creates a follower that is already counting, with a clip due
// in the first bar
func NewFollower(gen Generator, send func(gomidi.Message) error, channel uint8) *Follower {
	return &Follower{
		gen:      gen,
		send:     send,
		channel:  channel & 0x0F,
		velocity: 100,
		running:  true,
		due:      true,
	}
}

// Realtime handles clock, start, continue and stop
func (f *Follower) Realtime(status uint8) {
	switch status {
	case midi.Start:
		f.mu.Lock()
		f.running = true
		f.pulse = 0
		f.bar = 0
		f.due = true
		f.mu.Unlock()
		debug.Log("clock", "start")
	case midi.Continue:
		f.mu.Lock()
		f.running = true
		f.mu.Unlock()
	case midi.Stop:
		f.mu.Lock()
		f.running = false
		f.mu.Unlock()
		debug.Log("clock", "stop")
	case midi.TimingClock:
		f.tick()
	}
}

func (f *Follower) tick() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}

	f.pulse++
	if f.pulse == PulsesPerBar {
		f.bar++
		f.due = true
		f.pulse = 0
		debug.Log("clock", "bar %d", f.bar)
	}

	var clip Clip
	fire := f.due && f.pulse > sendAfterPulse
	if fire {
		f.due = false
		clip = f.gen.Next(f.bar)
	}
	bar := f.bar
	f.mu.Unlock()

	if f.OnPulse != nil {
		f.OnPulse()
	}
	if !fire {
		return
	}

	var err error
	if f.send != nil {
		err = f.send(gomidi.NoteOn(f.channel, clip.Note(), f.velocity))
	}
	f.mu.Lock()
	f.launches = append(f.launches, Launch{Bar: bar, Clip: clip, Note: clip.Note(), Err: err})
	f.mu.Unlock()

	if err != nil {
		debug.Log("clock", "bar %d: send %s: %v", bar, clip, err)
	} else {
		debug.Log("clock", "bar %d: sent %s note=%d", bar, clip, clip.Note())
	}
	if f.OnSend != nil {
		f.OnSend(bar, clip, err)
	}
}

// Position returns the current bar and pulse within it
func (f *Follower) Position() (bar, pulse int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bar, f.pulse
}

// EventLog returns every launch so far, oldest first. Start does not clear it.
func (f *Follower) EventLog() []Launch {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Launch, len(f.launches))
	copy(out, f.launches)
	return out
}
