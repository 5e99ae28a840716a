package engine

import "retrograde/solver"

// MaxPlies bounds a played line.
const MaxPlies = 10000

// Step is one position of a played line with its solved value.
type Step[P any] struct {
	Position P
	Value    solver.Value
}

type Engine[P any] interface {
	// Run plays from the initial position until the game ends, a position repeats or MaxPlies is reached
	Run() ([]Step[P], error)
}
