package clipgen

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"cliplaunch/midi"
	"cliplaunch/router"
)

func TestClipNoteRoundTrip(t *testing.T) {
	seen := map[uint8]bool{}
	for track := 0; track < 8; track++ {
		for scene := 0; scene < 8; scene++ {
			c := Clip{Track: track, Scene: scene}
			note := c.Note()
			assert.False(t, seen[note], "duplicate note %d", note)
			seen[note] = true

			gotTrack, gotScene := router.Coordinate(note)
			assert.Equal(t, track, gotTrack)
			assert.Equal(t, scene, gotScene)
		}
	}
	assert.Equal(t, uint8(10), Clip{0, 0}.Note())
	assert.Equal(t, uint8(73), Clip{7, 7}.Note())
	assert.Equal(t, "[Track 1:Scene 2]", Clip{1, 2}.String())
}

func TestRandomGeneratorStaysOnGrid(t *testing.T) {
	g := NewRandomGenerator(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 500; i++ {
		c := g.Next(i)
		assert.True(t, c.Track >= 0 && c.Track < 8, "track %d", c.Track)
		assert.True(t, c.Scene >= 0 && c.Scene < 8, "scene %d", c.Scene)
	}

	c := NewRandomGenerator(nil).Next(0)
	assert.True(t, c.Track >= 0 && c.Track < 8)
}

type sequence struct {
	clips []Clip
	bars  []int
}

func (s *sequence) Next(bar int) Clip {
	s.bars = append(s.bars, bar)
	c := s.clips[0]
	s.clips = s.clips[1:]
	return c
}

type sent struct {
	pulse int
	msg   gomidi.Message
}

func clock(f *Follower, n int) {
	for i := 0; i < n; i++ {
		f.Realtime(midi.TimingClock)
	}
}

func TestFollowerSendsOncePerBar(t *testing.T) {
	gen := &sequence{clips: []Clip{{0, 0}, {1, 0}, {7, 7}}}
	var out []sent
	pulses := 0

	f := NewFollower(gen, func(msg gomidi.Message) error {
		out = append(out, sent{pulse: pulses, msg: msg})
		return nil
	}, 0)
	f.OnPulse = func() { pulses++ }

	clock(f, sendAfterPulse)
	assert.Empty(t, out, "nothing before beat 3 is done")

	clock(f, 1)
	require.Len(t, out, 1)
	assert.Equal(t, sendAfterPulse+1, out[0].pulse)
	assert.Equal(t, gomidi.NoteOn(0, 10, 100), out[0].msg)

	clock(f, PulsesPerBar-sendAfterPulse-1)
	assert.Len(t, out, 1, "one clip per bar")

	clock(f, 2*PulsesPerBar)
	require.Len(t, out, 3)
	assert.Equal(t, gomidi.NoteOn(0, 18, 100), out[1].msg)
	assert.Equal(t, gomidi.NoteOn(0, 73, 100), out[2].msg)
	assert.Equal(t, []int{0, 1, 2}, gen.bars)

	bar, pulse := f.Position()
	assert.Equal(t, 3, bar)
	assert.Equal(t, 0, pulse)
	assert.Equal(t, 3*PulsesPerBar, pulses)
}

func TestFollowerStopStart(t *testing.T) {
	gen := &sequence{clips: []Clip{{2, 3}, {4, 5}}}
	count := 0
	f := NewFollower(gen, func(gomidi.Message) error { count++; return nil }, 3)

	clock(f, 50)
	f.Realtime(midi.Stop)
	clock(f, 200)
	bar, pulse := f.Position()
	assert.Equal(t, 0, bar)
	assert.Equal(t, 50, pulse)
	assert.Zero(t, count)

	f.Realtime(midi.Continue)
	clock(f, 23)
	assert.Equal(t, 1, count)

	f.Realtime(midi.Start)
	bar, pulse = f.Position()
	assert.Zero(t, bar)
	assert.Zero(t, pulse)

	clock(f, sendAfterPulse+1)
	assert.Equal(t, 2, count, "start makes a clip due again")
}

func TestFollowerReportsSendErrors(t *testing.T) {
	gen := &sequence{clips: []Clip{{0, 1}}}
	boom := errors.New("port gone")
	var gotErr error
	var gotClip Clip

	f := NewFollower(gen, func(gomidi.Message) error { return boom }, 0)
	f.OnSend = func(bar int, clip Clip, err error) {
		gotClip, gotErr = clip, err
	}

	clock(f, sendAfterPulse+1)
	assert.Equal(t, Clip{0, 1}, gotClip)
	assert.ErrorIs(t, gotErr, boom)

	log := f.EventLog()
	require.Len(t, log, 1)
	assert.Equal(t, Launch{Bar: 0, Clip: Clip{0, 1}, Note: 11, Err: boom}, log[0])
}
