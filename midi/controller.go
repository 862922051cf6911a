package midi

// Sink receives short and sysex messages. *host.Host implements it.
type Sink interface {
	DeliverShort(status, data1, data2 uint8) bool
	DeliverSysex(messageHex string) bool
}

// ClockSink receives realtime messages (clock, start, continue, stop)
type ClockSink interface {
	Realtime(status uint8)
}

// Input is a bound MIDI input port
type Input interface {
	ID() string
	Close() error
}
