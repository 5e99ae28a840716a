// Package stones is the subtraction game: players alternately remove one of a fixed set of
// amounts from a pile. Under normal play the player facing a pile they cannot reduce loses.
package stones

import (
	"fmt"

	"retrograde/fingerprint"
	"retrograde/game"
)

type Option func(g *Game)

// Misere makes the player left without a move win.
func Misere() Option {
	return func(g *Game) {
		g.stalemate = game.Win
	}
}

type Game struct {
	stones    int
	moves     []int
	stalemate game.Outcome
}

func New(stones int, moves []int, options ...Option) (*Game, error) {
	if stones < 0 {
		return nil, fmt.Errorf("negative pile %d", stones)
	}
	for _, m := range moves {
		if m <= 0 {
			return nil, fmt.Errorf("move %d must remove at least one stone", m)
		}
	}
	g := &Game{stones: stones, moves: moves, stalemate: game.Loss}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

func (g *Game) Initial() int {
	return g.stones
}

func (g *Game) DefaultOutcome() game.Outcome {
	return g.stalemate
}

func (g *Game) Successors(pile int) []int {
	next := make([]int, 0, len(g.moves))
	for _, m := range g.moves {
		if pile-m >= 0 {
			next = append(next, pile-m)
		}
	}
	return next
}

func (g *Game) Symmetries(pile int) []int {
	return []int{pile}
}

func (g *Game) Evaluate(pile int) (game.Outcome, bool) {
	return game.Draw, false
}

// Hasher fingerprints a pile size.
var Hasher = game.HashFunc[int](func(pile int) game.Hash {
	return fingerprint.Mix(uint64(pile))
})
