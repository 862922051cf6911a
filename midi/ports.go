package midi

import (
	"errors"
	"fmt"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	ErrPortNotFound = errors.New("port not found")
	ErrScanTimeout  = errors.New("port scan timed out")
)

// Ports lists input and output port names, giving up after timeout
// (CoreMIDI can hang)
func Ports(timeout time.Duration) (ins, outs []string, err error) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for _, p := range r.ins {
			ins = append(ins, p.String())
		}
		for _, p := range r.outs {
			outs = append(outs, p.String())
		}
		return ins, outs, nil
	case <-time.After(timeout):
		return nil, nil, ErrScanTimeout
	}
}

// FindInPort returns the first input port whose name contains name
func FindInPort(name string) (drivers.In, error) {
	ins := gomidi.GetInPorts()
	names := make([]string, len(ins))
	for i, p := range ins {
		names[i] = p.String()
	}
	i := MatchPort(names, name)
	if i < 0 {
		return nil, fmt.Errorf("input %q: %w", name, ErrPortNotFound)
	}
	return ins[i], nil
}

// OpenSender opens the first output port whose name contains name
func OpenSender(name string) (func(gomidi.Message) error, error) {
	outs := gomidi.GetOutPorts()
	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	i := MatchPort(names, name)
	if i < 0 {
		return nil, fmt.Errorf("output %q: %w", name, ErrPortNotFound)
	}

	send, err := gomidi.SendTo(outs[i])
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return send, nil
}

// Close releases the MIDI driver
func Close() {
	gomidi.CloseDriver()
}
