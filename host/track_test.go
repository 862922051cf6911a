package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackBankLaunch(t *testing.T) {
	changes := 0
	b := NewTrackBank(8, 5, 8, func() { changes++ })

	tracks, sends, scenes := b.Size()
	assert.Equal(t, 8, tracks)
	assert.Equal(t, 5, sends)
	assert.Equal(t, 8, scenes)

	b.Channel(2).Launch(4)
	b.Channel(2).Launch(4)
	b.Channel(2).Launch(1)

	got := b.Tracks()
	assert.Equal(t, 1, got[2].Playing)
	assert.Equal(t, 3, got[2].Launches)
	assert.Equal(t, "T3", got[2].Name)
	assert.Equal(t, NoClip, got[0].Playing)
	assert.Equal(t, 3, changes)
}

func TestTrackBankDropsOutOfRange(t *testing.T) {
	changes := 0
	b := NewTrackBank(8, 5, 8, func() { changes++ })

	b.Channel(-1).Launch(-5)
	b.Channel(8).Launch(0)
	b.Channel(0).Launch(8)
	b.Channel(0).Launch(-1)

	for _, tr := range b.Tracks() {
		assert.Equal(t, NoClip, tr.Playing)
		assert.Zero(t, tr.Launches)
	}
	assert.Zero(t, changes)
}

func TestTracksReturnsCopies(t *testing.T) {
	b := NewTrackBank(2, 0, 2, nil)
	got := b.Tracks()
	got[0].Playing = 1
	assert.Equal(t, NoClip, b.Tracks()[0].Playing)
}
