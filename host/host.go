package host

import (
	"context"

	"cliplaunch/debug"
)

// Bank dimensions the controller is configured with
const (
	BankTracks = 8
	BankSends  = 5
	BankScenes = 8
)

// EventKind tells a short message from a sysex message
type EventKind int

const (
	ShortMessage EventKind = iota
	Sysex
)

// Event is one inbound message waiting for dispatch
type Event struct {
	Kind   EventKind
	Status uint8
	Data1  uint8
	Data2  uint8
	Hex    string // sysex only
}

// Handler receives events one at a time. *router.EventRouter implements it.
type Handler interface {
	HandleShortMessage(status, data1, data2 uint8)
	HandleSysex(messageHex string)
}

// Host owns the transport and track bank and serializes event delivery:
// Run is the only goroutine that calls the handler.
type Host struct {
	Transport *Transport
	Tracks    *TrackBank

	events  chan Event
	updates chan struct{}
}

// New creates a host with an 8x5x8 track bank
func New() *Host {
	h := &Host{
		events:  make(chan Event, 64),
		updates: make(chan struct{}, 1),
	}
	h.Transport = NewTransport(h.notifyUpdate)
	h.Tracks = NewTrackBank(BankTracks, BankSends, BankScenes, h.notifyUpdate)
	return h
}

// Deliver queues an event. It never blocks; a full queue drops the event.
func (h *Host) Deliver(ev Event) bool {
	select {
	case h.events <- ev:
		return true
	default:
		debug.Log("host", "event queue full, dropping kind=%d", ev.Kind)
		return false
	}
}

// DeliverShort queues a short MIDI message
func (h *Host) DeliverShort(status, data1, data2 uint8) bool {
	return h.Deliver(Event{Kind: ShortMessage, Status: status, Data1: data1, Data2: data2})
}

// DeliverSysex queues a sysex message given as lowercase hex
func (h *Host) DeliverSysex(messageHex string) bool {
	return h.Deliver(Event{Kind: Sysex, Hex: messageHex})
}

// Run dispatches queued events to handler until ctx is done
func (h *Host) Run(ctx context.Context, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.events:
			switch ev.Kind {
			case ShortMessage:
				handler.HandleShortMessage(ev.Status, ev.Data1, ev.Data2)
			case Sysex:
				handler.HandleSysex(ev.Hex)
			}
		}
	}
}

// Updates signals that transport or track state changed
func (h *Host) Updates() <-chan struct{} {
	return h.updates
}

// Snapshot is a consistent-enough copy of host state for display
type Snapshot struct {
	Playing   bool
	Recording bool
	Position  float64
	Tracks    []Track
}

// Snapshot copies the current state
func (h *Host) Snapshot() Snapshot {
	playing, recording, pos := h.Transport.State()
	return Snapshot{
		Playing:   playing,
		Recording: recording,
		Position:  pos,
		Tracks:    h.Tracks.Tracks(),
	}
}

// Bar and beat (both 1-based) of the playhead
func (s Snapshot) BarBeat() (bar, beat int) {
	whole := int(s.Position)
	return whole/BeatsPerBar + 1, whole%BeatsPerBar + 1
}

func (h *Host) notifyUpdate() {
	select {
	case h.updates <- struct{}{}:
	default:
	}
}
