package clipgen

import (
	"fmt"
	"math/rand/v2"

	"cliplaunch/router"
)

// Clip addresses one slot of the 8x8 grid
type Clip struct {
	Track int
	Scene int
}

// Note is the note number the router maps back to this clip
func (c Clip) Note() uint8 {
	return uint8(c.Track*router.NumScenes + c.Scene + router.FirstNote)
}

func (c Clip) String() string {
	return fmt.Sprintf("[Track %d:Scene %d]", c.Track, c.Scene)
}

// Generator picks the clip to launch for a bar
type Generator interface {
	Next(bar int) Clip
}

// RandomGenerator picks tracks and scenes uniformly
type RandomGenerator struct {
	Tracks int
	Scenes int
	rng    *rand.Rand
}

// NewRandomGenerator covers the full grid. A nil rng uses the global source.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	return &RandomGenerator{
		Tracks: router.NumTracks,
		Scenes: router.NumScenes,
		rng:    rng,
	}
}

func (g *RandomGenerator) Next(bar int) Clip {
	if g.rng == nil {
		return Clip{Track: rand.IntN(g.Tracks), Scene: rand.IntN(g.Scenes)}
	}
	return Clip{Track: g.rng.IntN(g.Tracks), Scene: g.rng.IntN(g.Scenes)}
}
