package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"cliplaunch/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DeviceEvent is emitted when the watched input connects/disconnects
type DeviceEvent struct {
	Type  DeviceEventType
	Input Input
	ID    string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager keeps one input port bound while it is present, handling
// hot-plug by polling
type DeviceManager struct {
	portName string
	sink     Sink
	clock    ClockSink

	current  Input
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration

	bind func(id string, in drivers.In) (Input, error)
}

// NewDeviceManager watches for an input port whose name contains portName
// (case-insensitive) and binds it to sink and clock
func NewDeviceManager(portName string, sink Sink, clock ClockSink) *DeviceManager {
	dm := &DeviceManager{
		portName: portName,
		sink:     sink,
		clock:    clock,
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
	}
	dm.bind = func(id string, in drivers.In) (Input, error) {
		return Bind(id, in, dm.sink, dm.clock)
	}
	return dm
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Current returns the bound input (or nil)
func (dm *DeviceManager) Current() Input {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.current
}

// PortName returns the name pattern being watched
func (dm *DeviceManager) PortName() string {
	return dm.portName
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// CoreMIDI can hang
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("ports", "port scan timed out")
		return
	}

	names := make([]string, len(inPorts))
	for i, p := range inPorts {
		names[i] = p.String()
	}
	dm.sync(names, func(i int) drivers.In { return inPorts[i] })
}

// sync binds the first matching port if none is bound and drops the bound
// one when it disappears
func (dm *DeviceManager) sync(names []string, port func(i int) drivers.In) {
	dm.mu.Lock()
	current := dm.current
	dm.mu.Unlock()

	if current != nil {
		for _, name := range names {
			if name == current.ID() {
				return
			}
		}
		current.Close()
		dm.mu.Lock()
		dm.current = nil
		dm.mu.Unlock()
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: current.ID()})
	}

	i := MatchPort(names, dm.portName)
	if i < 0 {
		return
	}

	in, err := dm.bind(names[i], port(i))
	if err != nil {
		debug.Log("ports", "bind %s: %v", names[i], err)
		return
	}

	dm.mu.Lock()
	dm.current = in
	dm.mu.Unlock()
	dm.emit(DeviceEvent{Type: DeviceConnected, Input: in, ID: names[i]})
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("ports", "device event dropped: %s", ev.ID)
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.current != nil {
		dm.current.Close()
		dm.current = nil
	}
}

// MatchPort returns the index of the first name containing want
// (case-insensitive), or -1. An empty want matches nothing.
func MatchPort(names []string, want string) int {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" {
		return -1
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i
		}
	}
	return -1
}

// SamePort reports whether patterns a and b select the same port from
// names. When neither resolves, the patterns themselves are compared.
func SamePort(names []string, a, b string) bool {
	i, j := MatchPort(names, a), MatchPort(names, b)
	if i >= 0 || j >= 0 {
		return i == j
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
