package tui

import (
	"fmt"
	"strings"
	"sync"

	"cliplaunch/debug"
)

// LogPane keeps the last diagnostics lines for display. It implements
// router.Diagnostics.
type LogPane struct {
	mu      sync.Mutex
	lines   []string
	max     int
	updates chan struct{}
}

// NewLogPane keeps up to max lines
func NewLogPane(max int) *LogPane {
	return &LogPane{
		max:     max,
		updates: make(chan struct{}, 1),
	}
}

func (l *LogPane) Println(v ...any) {
	line := strings.TrimRight(fmt.Sprintln(v...), "\n")

	l.mu.Lock()
	l.lines = append(l.lines, line)
	if len(l.lines) > l.max {
		l.lines = l.lines[len(l.lines)-l.max:]
	}
	l.mu.Unlock()

	debug.Log("diag", "%s", line)
	select {
	case l.updates <- struct{}{}:
	default:
	}
}

// Lines returns a copy of the kept lines, oldest first
func (l *LogPane) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Updates signals new lines
func (l *LogPane) Updates() <-chan struct{} {
	return l.updates
}
