package router

import "fmt"

// Transport is the host transport control surface
type Transport interface {
	Rewind()
	FastForward()
	Stop()
	Play()
	Record()
}

// ClipLauncherSlotBank is one track's row of clip slots
type ClipLauncherSlotBank interface {
	Launch(slot int)
}

// TrackBank gives access to a track's clip launcher slots by index
type TrackBank interface {
	Channel(index int) ClipLauncherSlotBank
}

// Diagnostics receives human-readable status lines. *log.Logger satisfies it.
type Diagnostics interface {
	Println(v ...any)
}

// EventRouter turns short MIDI messages into clip launches and MMC sysex
// messages into transport commands. It keeps no state between calls and is
// not safe for concurrent use; the caller serializes delivery.
type EventRouter struct {
	transport Transport
	tracks    TrackBank
	diag      Diagnostics
}

// New creates a router bound to the given host collaborators
func New(transport Transport, tracks TrackBank, diag Diagnostics) *EventRouter {
	return &EventRouter{
		transport: transport,
		tracks:    tracks,
		diag:      diag,
	}
}

// HandleShortMessage launches the clip addressed by a note-on. Anything else
// is ignored.
func (r *EventRouter) HandleShortMessage(status, data1, data2 uint8) {
	if !IsNoteOn(status, data2) {
		return
	}

	track, scene := Coordinate(data1)
	if !InBounds(track, scene) {
		r.diag.Println(fmt.Sprintf("Out of bounds: track %d scene %d", track, scene))
		return
	}

	r.diag.Println(fmt.Sprintf("Launching track %d scene %d", track, scene))
	r.tracks.Channel(track).Launch(scene)
}

// HandleSysex runs the transport command for a known MMC message. Unknown
// messages are ignored without a diagnostic.
func (r *EventRouter) HandleSysex(messageHex string) {
	action, ok := ActionFor(messageHex)
	if !ok {
		return
	}

	switch action {
	case Rewind:
		r.transport.Rewind()
	case FastForward:
		r.transport.FastForward()
	case Stop:
		r.transport.Stop()
	case Play:
		r.transport.Play()
	case Record:
		r.transport.Record()
	}
}
