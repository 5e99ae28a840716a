// Package fingerprint builds position hashes for the solver.
package fingerprint

import (
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"retrograde/game"
)

// keys are drawn from [1, 2^60)
const keyBound = 1<<60 - 1

// drawFunc returns a fresh key for value in slot.
type drawFunc func(slot int, value uint64) uint64

func cryptoKey(int, uint64) uint64 {
	return frand.Uint64n(keyBound) + 1
}

type Option func(z *Zobrist)

// WithSeed derives keys deterministically from seed so repeated solves of one game produce the
// same hashes. Each key depends only on seed, slot and value, not on the order keys are drawn in.
func WithSeed(seed uint64) Option {
	return func(z *Zobrist) {
		z.draw = func(slot int, value uint64) uint64 {
			r := rand.New(rand.NewSource(seed ^ uint64(Combine(uint64(slot), value))))
			return r.Uint64n(keyBound) + 1
		}
	}
}

// Zobrist hashes positions made of slots holding small values. A key is drawn the first time a
// (slot, value) pair is seen and kept for the lifetime of the table.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// A Zobrist is not safe for concurrent use; build one per solve.
type Zobrist struct {
	draw  drawFunc
	slots []map[uint64]uint64
}

func NewZobrist(options ...Option) *Zobrist {
	z := &Zobrist{draw: cryptoKey}
	for _, option := range options {
		option(z)
	}
	return z
}

// Key returns the random key of value in slot.
func (z *Zobrist) Key(slot int, value uint64) uint64 {
	if slot < 0 {
		panic("zobrist: negative slot")
	}
	for len(z.slots) <= slot {
		z.slots = append(z.slots, map[uint64]uint64{})
	}
	keys := z.slots[slot]
	k, ok := keys[value]
	if !ok {
		k = z.draw(slot, value)
		keys[value] = k
	}
	return k
}

// Hash combines the keys of values[i] in slot i.
func (z *Zobrist) Hash(values []int) game.Hash {
	key := uint64(0)
	for i, v := range values {
		key ^= z.Key(i, uint64(v))
	}
	return game.Hash(key)
}

// Toggle updates h after slot changes from one value to another, without rehashing the other
// slots.
func (z *Zobrist) Toggle(h game.Hash, slot int, from, to uint64) game.Hash {
	return h ^ game.Hash(z.Key(slot, from)^z.Key(slot, to))
}
