package host

import (
	"fmt"
	"sync"

	"cliplaunch/debug"
	"cliplaunch/router"
)

// NoClip marks a track with nothing playing
const NoClip = -1

// Track represents a column in the session view.
type Track struct {
	Name     string
	Playing  int // slot index or NoClip
	Launches int // launch count, repeats included
}

// TrackBank is a fixed window over the project's tracks: numTracks wide,
// numScenes deep. Sends are kept for parity with the host API and unused.
type TrackBank struct {
	mu        sync.RWMutex
	tracks    []*Track
	numSends  int
	numScenes int
	onChange  func()
}

// NewTrackBank creates a bank of empty tracks
func NewTrackBank(numTracks, numSends, numScenes int, onChange func()) *TrackBank {
	b := &TrackBank{
		tracks:    make([]*Track, numTracks),
		numSends:  numSends,
		numScenes: numScenes,
		onChange:  onChange,
	}
	for i := range b.tracks {
		b.tracks[i] = &Track{Name: fmt.Sprintf("T%d", i+1), Playing: NoClip}
	}
	return b
}

// Size returns (tracks, sends, scenes)
func (b *TrackBank) Size() (tracks, sends, scenes int) {
	return len(b.tracks), b.numSends, b.numScenes
}

// Channel returns the clip launcher slots of track index. Indices outside
// the bank give a slot bank whose launches are dropped.
func (b *TrackBank) Channel(index int) router.ClipLauncherSlotBank {
	return &ClipLauncherSlotBank{bank: b, track: index}
}

// Tracks returns a copy of every track
func (b *TrackBank) Tracks() []Track {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Track, len(b.tracks))
	for i, t := range b.tracks {
		out[i] = *t
	}
	return out
}

// ClipLauncherSlotBank is one track's row of slots
type ClipLauncherSlotBank struct {
	bank  *TrackBank
	track int
}

// Launch starts the clip in slot, replacing whatever the track was playing
func (s *ClipLauncherSlotBank) Launch(slot int) {
	b := s.bank
	b.mu.Lock()
	if s.track < 0 || s.track >= len(b.tracks) {
		b.mu.Unlock()
		debug.Log("tracks", "launch dropped: no track %d", s.track)
		return
	}
	if slot < 0 || slot >= b.numScenes {
		b.mu.Unlock()
		debug.Log("tracks", "launch dropped: track %d has no slot %d", s.track, slot)
		return
	}
	t := b.tracks[s.track]
	t.Playing = slot
	t.Launches++
	b.mu.Unlock()

	debug.Log("tracks", "track=%d slot=%d", s.track, slot)
	if b.onChange != nil {
		b.onChange()
	}
}
