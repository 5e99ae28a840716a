package solver

import (
	"retrograde/game"
	"retrograde/metrics"
)

type status uint8

const (
	unknown  status = iota // no successor has reported yet
	proposed               // holds the best value reported so far
	resolved               // value is final
)

// graph holds one node per equivalence class of positions. Nodes are dense int32 indices into
// the parallel slices.
type graph[P any] struct {
	game    game.Game[P]
	hasher  game.Hasher[P]
	metrics metrics.Collector

	index   map[game.Hash]int32
	preds   [][]int32 // reverse edges, one entry per move
	pending []int32   // outgoing edges whose target has not resolved
	value   []Value
	status  []status
	leaves  []int32 // terminal and stalemate nodes, valued at build time
}

type frame[P any] struct {
	position P
	idx      int32
}

func newGraph[P any](g game.Game[P], hasher game.Hasher[P], collector metrics.Collector) *graph[P] {
	return &graph[P]{
		game:    g,
		hasher:  hasher,
		metrics: collector,
		index:   map[game.Hash]int32{},
	}
}

func (g *graph[P]) size() int {
	return len(g.value)
}

// register allocates a node for p and aliases the fingerprint of every symmetric image of p to
// it. The caller must have checked that p's own fingerprint is unknown.
func (g *graph[P]) register(p P) (int32, error) {
	idx := int32(g.size())
	aliases := 0
	alias := func(h game.Hash) error {
		existing, ok := g.index[h]
		if !ok {
			g.index[h] = idx
			aliases++
			return nil
		}
		if existing != idx {
			return &SymmetryViolation{Hash: h, Existing: int(existing), Registering: int(idx)}
		}
		return nil
	}

	if err := alias(g.hasher.Hash(p)); err != nil {
		return 0, err
	}
	for _, image := range g.game.Symmetries(p) {
		if err := alias(g.hasher.Hash(image)); err != nil {
			return 0, err
		}
	}

	g.preds = append(g.preds, nil)
	g.pending = append(g.pending, 0)
	g.value = append(g.value, Value{Outcome: game.Draw, Distance: NoDistance})
	g.status = append(g.status, unknown)
	g.metrics.AddNode(aliases)
	return idx, nil
}

func (g *graph[P]) leaf(idx int32, outcome game.Outcome) {
	g.value[idx] = Value{Outcome: outcome, Distance: 0}
	g.status[idx] = proposed
	g.leaves = append(g.leaves, idx)
	g.metrics.AddLeaf()
}

// build explores every position reachable from the initial one. Terminal positions are valued
// and not expanded; a registered position is never expanded twice.
func (g *graph[P]) build() error {
	initial := g.game.Initial()
	root, err := g.register(initial)
	if err != nil {
		return err
	}
	if outcome, ok := g.game.Evaluate(initial); ok {
		g.leaf(root, outcome)
		return nil
	}

	stack := []frame[P]{{position: initial, idx: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range g.game.Successors(top.position) {
			nextIdx, ok := g.index[g.hasher.Hash(next)]
			if !ok {
				nextIdx, err = g.register(next)
				if err != nil {
					return err
				}
				if outcome, terminal := g.game.Evaluate(next); terminal {
					g.leaf(nextIdx, outcome)
				} else {
					stack = append(stack, frame[P]{position: next, idx: nextIdx})
				}
			}
			g.pending[top.idx]++
			g.preds[nextIdx] = append(g.preds[nextIdx], top.idx)
			g.metrics.AddEdge()
		}

		if g.pending[top.idx] == 0 {
			g.leaf(top.idx, g.game.DefaultOutcome())
		}
	}
	return nil
}
