package midi

import (
	"fmt"

	"cliplaunch/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// InputBinding forwards everything arriving on one input port
type InputBinding struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	sink  Sink
	clock ClockSink
}

// NewInputBinding creates a binding without opening a port. Messages can be
// fed to Dispatch directly; Bind opens a real port.
func NewInputBinding(id string, sink Sink, clock ClockSink) *InputBinding {
	return &InputBinding{
		id:    id,
		sink:  sink,
		clock: clock,
	}
}

// Bind opens inPort and forwards its messages. Either sink may be nil.
func Bind(id string, inPort drivers.In, sink Sink, clock ClockSink) (*InputBinding, error) {
	b := NewInputBinding(id, sink, clock)
	b.inPort = inPort

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		b.Dispatch(msg)
	}, gomidi.UseSysEx(), gomidi.HandleError(func(listenErr error) {
		debug.Log("input", "%s: listener error: %v", id, listenErr)
	}))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	b.stopFunc = stop

	debug.Log("input", "bound %s", id)
	return b, nil
}

// Dispatch routes one message to the sinks
func (b *InputBinding) Dispatch(msg gomidi.Message) {
	ev := Split(msg)
	switch ev.Kind {
	case KindShort:
		if b.sink != nil {
			b.sink.DeliverShort(ev.Status, ev.Data1, ev.Data2)
		}
	case KindSysEx:
		debug.Log("input", "%s: sysex %s", b.id, ev.Hex)
		if b.sink != nil {
			b.sink.DeliverSysex(ev.Hex)
		}
	case KindRealtime:
		if ev.Status == TimingClock {
			debug.LogEvery(96, "input", "%s: clock", b.id)
		}
		if b.clock != nil {
			b.clock.Realtime(ev.Status)
		}
	}
}

func (b *InputBinding) ID() string {
	return b.id
}

func (b *InputBinding) Close() error {
	if b.stopFunc != nil {
		b.stopFunc()
		b.stopFunc = nil
	}
	debug.Log("input", "closed %s", b.id)
	return nil
}
