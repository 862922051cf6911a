package midi

import (
	"encoding/hex"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI status bytes
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0

	SysExStart uint8 = 0xF0
	SysExEnd   uint8 = 0xF7

	TimingClock uint8 = 0xF8
	Start       uint8 = 0xFA
	Continue    uint8 = 0xFB
	Stop        uint8 = 0xFC
)

// Kind classifies an inbound message
type Kind int

const (
	KindOther Kind = iota
	KindShort
	KindSysEx
	KindRealtime
)

// Event is an inbound message in the shape the host expects: a status/data
// triple, a sysex hex string or a realtime status byte
type Event struct {
	Kind   Kind
	Status uint8
	Data1  uint8
	Data2  uint8
	Hex    string // lowercase, f0...f7 included
}

// Split classifies msg. Two-byte channel messages get Data2 = 0.
func Split(msg gomidi.Message) Event {
	b := msg.Bytes()
	if len(b) == 0 {
		return Event{}
	}

	status := b[0]
	switch {
	case status == SysExStart:
		return Event{Kind: KindSysEx, Status: status, Hex: hex.EncodeToString(b)}
	case status >= TimingClock:
		return Event{Kind: KindRealtime, Status: status}
	case status >= 0xF0:
		// system common: song position, MTC quarter frame ...
		return Event{Kind: KindOther, Status: status}
	case status < 0x80:
		return Event{}
	}

	ev := Event{Kind: KindShort, Status: status}
	if len(b) > 1 {
		ev.Data1 = b[1]
	}
	if len(b) > 2 {
		ev.Data2 = b[2]
	}
	return ev
}
