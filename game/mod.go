package game

// Hash is the fingerprint of a position. Equal positions must hash equal; unequal positions
// should collide only with negligible probability.
type Hash uint64

// Game is the capability set a concrete game supplies to the solver. Positions are values:
// Successors and Symmetries must return positions that are independent of their argument.
type Game[P any] interface {
	Initial() P
	// DefaultOutcome is the result for the player to move in a position without legal moves
	DefaultOutcome() Outcome
	// Successors may be empty and may repeat a position once per move leading to it
	Successors(p P) []P
	// Symmetries yields every position equivalent to p, p itself included
	Symmetries(p P) []P
	// Evaluate reports the result of a terminal position
	Evaluate(p P) (Outcome, bool)
}

// Hasher computes the fingerprint of a position. A Hasher may own lazily built state (zobrist
// keys) so it should not be shared across concurrent solves.
type Hasher[P any] interface {
	Hash(p P) Hash
}

// HashFunc adapts a plain function to a Hasher.
type HashFunc[P any] func(P) Hash

func (f HashFunc[P]) Hash(p P) Hash {
	return f(p)
}
