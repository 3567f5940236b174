package domain

import (
	"math/rand/v2"
)

// Shuffler supplies uniform random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	IntN(n int) int
}

// NewShuffler returns a PCG-backed Shuffler. A zero seed draws a random seed.
func NewShuffler(seed uint64) Shuffler {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns the cards in a uniformly random order (Fisher–Yates).
// The input slice is left untouched.
func Shuffle(cards []Card, r Shuffler) []Card {
	out := cloneCards(cards)

	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}
