package field

import (
	"math/rand"

	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// Generator produces the sequence of tetromino kinds a conductor
// spawns. ok is false once a finite generator (Fixed) is exhausted;
// Random never returns false.
type Generator interface {
	Next() (tetromino.Kind, bool)
}

var bagKinds = [7]tetromino.Kind{
	tetromino.I, tetromino.J, tetromino.L, tetromino.O,
	tetromino.S, tetromino.T, tetromino.Z,
}

// RandomGenerator draws pieces using the standard 7-bag algorithm:
// each bag holds one of every kind, and the next piece is removed
// from a random remaining index (not a shuffle-then-pop), refilling
// the bag whenever it empties.
type RandomGenerator struct {
	rng *rand.Rand
	bag []tetromino.Kind
}

// NewRandomGenerator returns a 7-bag generator seeded from rng.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	return &RandomGenerator{rng: rng}
}

func (g *RandomGenerator) refill() {
	g.bag = append([]tetromino.Kind(nil), bagKinds[:]...)
}

// Next removes and returns one kind from the current bag, refilling
// it first if empty. It always succeeds.
func (g *RandomGenerator) Next() (tetromino.Kind, bool) {
	if len(g.bag) == 0 {
		g.refill()
	}

	i := g.rng.Intn(len(g.bag))
	k := g.bag[i]
	g.bag = append(g.bag[:i], g.bag[i+1:]...)
	return k, true
}

// FixedGenerator replays a predetermined sequence of kinds, for
// deterministic tests. Next returns ok == false once the sequence is
// exhausted.
type FixedGenerator struct {
	source []tetromino.Kind
}

// NewFixedGenerator returns a generator that yields kinds in order.
func NewFixedGenerator(kinds ...tetromino.Kind) *FixedGenerator {
	return &FixedGenerator{source: append([]tetromino.Kind(nil), kinds...)}
}

// Next returns the next kind in the fixed sequence, or
// (tetromino.None, false) once exhausted.
func (g *FixedGenerator) Next() (tetromino.Kind, bool) {
	if len(g.source) == 0 {
		return tetromino.None, false
	}

	k := g.source[0]
	g.source = g.source[1:]
	return k, true
}
