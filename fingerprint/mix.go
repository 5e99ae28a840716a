package fingerprint

import (
	"github.com/cespare/xxhash/v2"

	"retrograde/game"
)

// Mix scrambles an integer key. https://stackoverflow.com/a/12996028/1737333
func Mix(x uint64) game.Hash {
	x = (x ^ (x >> 30)) * uint64(0xbf58476d1ce4e5b9)
	x = (x ^ (x >> 27)) * uint64(0x94d049bb133111eb)
	x = x ^ (x >> 31)
	return game.Hash(x)
}

// Combine folds several integer fields into one hash. Order matters.
func Combine(fields ...uint64) game.Hash {
	h := uint64(0x9e3779b97f4a7c15)
	for _, f := range fields {
		h = uint64(Mix(h ^ f))
	}
	return game.Hash(h)
}

// String hashes text keyed positions.
func String(s string) game.Hash {
	return game.Hash(xxhash.Sum64String(s))
}
