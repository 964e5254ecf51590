package game

import "math/rand/v2"

// Bag deals shapes using the 7-bag system: each run of seven contains every
// shape exactly once, so droughts are bounded at twelve pieces.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag backed by the given source. Pass a seeded source for
// deterministic tests, or rand.NewPCG with entropy for play.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// NewSeededBag is a convenience for deterministic sequences.
func NewSeededBag(seed uint64) *Bag {
	return NewBag(rand.New(rand.NewPCG(seed, seed)))
}

// Next deals the next shape, refilling and reshuffling when the bag empties.
func (b *Bag) Next() Kind {
	if len(b.queue) == 0 {
		b.queue = append(b.queue, Kinds[:]...)
		b.rng.Shuffle(len(b.queue), func(i, j int) {
			b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
		})
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}
