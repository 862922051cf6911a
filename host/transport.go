package host

import (
	"sync"

	"cliplaunch/debug"
)

// BeatsPerBar is the fixed 4/4 meter used for playhead moves
const BeatsPerBar = 4

// Transport is the playback state the router drives with MMC commands
type Transport struct {
	mu       sync.RWMutex
	playing  bool
	armed    bool
	position float64 // beats from the start
	onChange func()
}

// NewTransport creates a stopped transport at position 0
func NewTransport(onChange func()) *Transport {
	return &Transport{onChange: onChange}
}

func (t *Transport) Play() {
	t.update("play", func() { t.playing = true })
}

// Stop halts playback and disarms recording
func (t *Transport) Stop() {
	t.update("stop", func() {
		t.playing = false
		t.armed = false
	})
}

// Record arms recording; it takes effect while playing
func (t *Transport) Record() {
	t.update("record", func() { t.armed = true })
}

// Rewind moves the playhead back one bar, not past the start
func (t *Transport) Rewind() {
	t.update("rewind", func() {
		t.position -= BeatsPerBar
		if t.position < 0 {
			t.position = 0
		}
	})
}

// FastForward moves the playhead forward one bar
func (t *Transport) FastForward() {
	t.update("fastForward", func() { t.position += BeatsPerBar })
}

// Advance moves the playhead while playing (driven by clock pulses)
func (t *Transport) Advance(beats float64) {
	t.mu.Lock()
	if !t.playing {
		t.mu.Unlock()
		return
	}
	t.position += beats
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange()
	}
}

// State returns (playing, recording, position in beats)
func (t *Transport) State() (playing, recording bool, position float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.playing, t.playing && t.armed, t.position
}

func (t *Transport) update(name string, fn func()) {
	t.mu.Lock()
	fn()
	playing, armed, pos := t.playing, t.armed, t.position
	t.mu.Unlock()

	debug.Log("transport", "%s playing=%v armed=%v pos=%.2f", name, playing, armed, pos)
	if t.onChange != nil {
		t.onChange()
	}
}
