package solver

import (
	"retrograde/fingerprint"
	"retrograde/game"
)

// mockGame is a token game on an explicit graph of int vertices.
type mockGame struct {
	start     int
	edges     map[int][]int
	terminal  map[int]game.Outcome
	stalemate game.Outcome
	images    map[int][]int // extra symmetric images per vertex
}

func (g *mockGame) Initial() int {
	return g.start
}

func (g *mockGame) DefaultOutcome() game.Outcome {
	return g.stalemate
}

func (g *mockGame) Successors(p int) []int {
	return append([]int(nil), g.edges[p]...)
}

func (g *mockGame) Symmetries(p int) []int {
	return append([]int{p}, g.images[p]...)
}

func (g *mockGame) Evaluate(p int) (game.Outcome, bool) {
	o, ok := g.terminal[p]
	return o, ok
}

var mockHasher = game.HashFunc[int](func(p int) game.Hash {
	return fingerprint.Mix(uint64(p))
})

// named vertices for readable graphs
const (
	vA = iota
	vB
	vC
	vL
	vM
	vP
	vR
	vX
	vY
	vZ
)

// mockSubtraction is the take-1-2-3 pile game.
type mockSubtraction struct {
	pile int
}

func (g mockSubtraction) Initial() int                 { return g.pile }
func (g mockSubtraction) DefaultOutcome() game.Outcome { return game.Loss }
func (g mockSubtraction) Symmetries(p int) []int       { return []int{p} }
func (g mockSubtraction) Evaluate(int) (game.Outcome, bool) {
	return game.Draw, false
}

func (g mockSubtraction) Successors(p int) []int {
	var next []int
	for _, m := range []int{1, 2, 3} {
		if p-m >= 0 {
			next = append(next, p-m)
		}
	}
	return next
}

func win(d int) Value  { return Value{Outcome: game.Win, Distance: d} }
func loss(d int) Value { return Value{Outcome: game.Loss, Distance: d} }
func draw(d int) Value { return Value{Outcome: game.Draw, Distance: d} }
