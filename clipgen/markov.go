package clipgen

import (
	"math/rand/v2"
	"sync"

	"cliplaunch/router"
)

// MarkovNode is a clip with weighted transitions to other nodes
type MarkovNode struct {
	Clip Clip

	transitions []transition
	total       float64
}

type transition struct {
	to     *MarkovNode
	weight float64
}

// AddTransition adds an edge to to. Weights are relative; non-positive
// weights are ignored.
func (n *MarkovNode) AddTransition(to *MarkovNode, weight float64) {
	if to == nil || weight <= 0 {
		return
	}
	n.transitions = append(n.transitions, transition{to: to, weight: weight})
	n.total += weight
}

// pick selects a transition for u in [0,1): the first edge whose running
// weight exceeds u*total. A node without edges returns nil.
func (n *MarkovNode) pick(u float64) *MarkovNode {
	target := u * n.total
	sum := 0.0
	for _, t := range n.transitions {
		sum += t.weight
		if sum > target {
			return t.to
		}
	}
	if len(n.transitions) > 0 {
		// u*total rounded up to total
		return n.transitions[len(n.transitions)-1].to
	}
	return nil
}

// MarkovGenerator walks a clip graph, one step per bar. The first call to
// Next returns the start clip; a node without transitions repeats.
type MarkovGenerator struct {
	mu      sync.Mutex
	current *MarkovNode
	started bool
	history []Clip
	rng     *rand.Rand
}

// NewMarkovGenerator starts a walk at start. A nil rng uses the global source.
func NewMarkovGenerator(start *MarkovNode, rng *rand.Rand) *MarkovGenerator {
	return &MarkovGenerator{current: start, rng: rng}
}

func (g *MarkovGenerator) Next(bar int) Clip {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		if next := g.current.pick(g.float()); next != nil {
			g.current = next
		}
	}
	g.started = true
	g.history = append(g.history, g.current.Clip)
	return g.current.Clip
}

// History returns every clip the walk produced, oldest first
func (g *MarkovGenerator) History() []Clip {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Clip, len(g.history))
	copy(out, g.history)
	return out
}

func (g *MarkovGenerator) float() float64 {
	if g.rng == nil {
		return rand.Float64()
	}
	return g.rng.Float64()
}

// Grid walk edge weights
const (
	weightNextScene = 4
	weightNeighbour = 2
	weightRepeat    = 1
)

// NewGridWalk builds a graph over the full grid and starts at track 0
// scene 0. From each clip the walk favours the next scene down the same
// track, then the same scene on either neighbouring track, then a repeat.
// Edges wrap at the grid edges.
func NewGridWalk(rng *rand.Rand) *MarkovGenerator {
	nodes := make([][]*MarkovNode, router.NumTracks)
	for t := range nodes {
		nodes[t] = make([]*MarkovNode, router.NumScenes)
		for s := range nodes[t] {
			nodes[t][s] = &MarkovNode{Clip: Clip{Track: t, Scene: s}}
		}
	}

	wrap := func(i, n int) int { return (i%n + n) % n }
	for t := range nodes {
		for s, n := range nodes[t] {
			n.AddTransition(nodes[t][wrap(s+1, router.NumScenes)], weightNextScene)
			n.AddTransition(nodes[wrap(t-1, router.NumTracks)][s], weightNeighbour)
			n.AddTransition(nodes[wrap(t+1, router.NumTracks)][s], weightNeighbour)
			n.AddTransition(n, weightRepeat)
		}
	}
	return NewMarkovGenerator(nodes[0][0], rng)
}
