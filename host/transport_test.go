package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportCommands(t *testing.T) {
	tr := NewTransport(nil)

	playing, recording, pos := tr.State()
	assert.False(t, playing)
	assert.False(t, recording)
	assert.Zero(t, pos)

	tr.Record()
	_, recording, _ = tr.State()
	assert.False(t, recording, "armed but not playing")

	tr.Play()
	tr.Play()
	playing, recording, _ = tr.State()
	assert.True(t, playing)
	assert.True(t, recording)

	tr.Stop()
	playing, recording, _ = tr.State()
	assert.False(t, playing)
	assert.False(t, recording)

	tr.Play()
	_, recording, _ = tr.State()
	assert.False(t, recording, "stop disarms")
}

func TestTransportPlayhead(t *testing.T) {
	changes := 0
	tr := NewTransport(func() { changes++ })

	tr.Rewind()
	_, _, pos := tr.State()
	assert.Zero(t, pos, "rewind clamps at the start")

	tr.FastForward()
	tr.FastForward()
	_, _, pos = tr.State()
	assert.Equal(t, 8.0, pos)

	tr.Rewind()
	_, _, pos = tr.State()
	assert.Equal(t, 4.0, pos)

	tr.Advance(1)
	_, _, pos = tr.State()
	assert.Equal(t, 4.0, pos, "advance is ignored while stopped")

	tr.Play()
	tr.Advance(0.5)
	_, _, pos = tr.State()
	assert.Equal(t, 4.5, pos)

	assert.Equal(t, 6, changes)
}
