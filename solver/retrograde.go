package solver

import (
	"retrograde/game"
)

// frontier orders nodes holding a non-negative proposal: wins by increasing distance, then
// draws. A node may be queued more than once; stale entries are skipped when popped.
type frontier struct {
	wins   [][]int32 // bucket per distance
	cursor int       // lowest bucket that may be non-empty
	draws  []int32
	head   int
}

func (f *frontier) push(idx int32, v Value) {
	switch v.Outcome {
	case game.Win:
		for len(f.wins) <= v.Distance {
			f.wins = append(f.wins, nil)
		}
		f.wins[v.Distance] = append(f.wins[v.Distance], idx)
		if v.Distance < f.cursor {
			f.cursor = v.Distance
		}
	case game.Draw:
		f.draws = append(f.draws, idx)
	}
}

func (f *frontier) pop() (int32, bool) {
	for f.cursor < len(f.wins) {
		bucket := f.wins[f.cursor]
		if n := len(bucket); n > 0 {
			idx := bucket[n-1]
			f.wins[f.cursor] = bucket[:n-1]
			return idx, true
		}
		f.wins[f.cursor] = nil
		f.cursor++
	}
	if f.head < len(f.draws) {
		idx := f.draws[f.head]
		f.head++
		return idx, true
	}
	return 0, false
}

type analysis[P any] struct {
	*graph[P]
	policy   LossPolicy
	maxDepth int
	retain   bool // keep reverse edges after resolution
	queue    frontier
}

// run resolves every node. Leaves seed the propagation; queued proposals are then settled best
// first, and whatever is left unresolved sits on a cycle with no forced result and is a draw.
func (a *analysis[P]) run() error {
	for _, idx := range a.leaves {
		if a.pending[idx] != 0 {
			return invariant(idx, "leaf has %d pending edges", a.pending[idx])
		}
		a.status[idx] = resolved
		if err := a.propagate(idx); err != nil {
			return err
		}
	}

	for {
		idx, ok := a.queue.pop()
		if !ok {
			break
		}
		if a.status[idx] == resolved {
			continue
		}
		if a.status[idx] != proposed {
			return invariant(idx, "queued without a proposal")
		}
		a.status[idx] = resolved
		a.pending[idx] = 0
		if err := a.propagate(idx); err != nil {
			return err
		}
	}

	for i := range a.status {
		if a.status[i] == resolved {
			continue
		}
		a.value[i] = Value{Outcome: game.Draw, Distance: NoDistance}
		a.status[i] = resolved
		a.metrics.AddCycleDraw()
	}

	if a.policy == HastenLoss {
		return a.shortenLines()
	}
	return nil
}

// propagate reports resolved node start to its predecessors, and every predecessor that runs
// out of pending edges in turn.
func (a *analysis[P]) propagate(start int32) error {
	work := []int32{start}
	for len(work) > 0 {
		idx := work[len(work)-1]
		work = work[:len(work)-1]

		if a.status[idx] != resolved {
			return invariant(idx, "propagating an unresolved node")
		}
		reply := a.value[idx].Reply()
		if reply.Distance >= a.maxDepth {
			return invariant(idx, "distance %d reaches max depth %d", reply.Distance, a.maxDepth)
		}

		for _, prev := range a.preds[idx] {
			if a.status[prev] == resolved {
				continue
			}
			if a.pending[prev] <= 0 {
				return invariant(prev, "pending count underflow")
			}
			a.pending[prev]--

			if a.status[prev] == unknown || a.policy.Better(reply, a.value[prev]) {
				a.value[prev] = reply
				a.status[prev] = proposed
				if reply.Outcome != game.Loss {
					a.queue.push(prev, reply)
				}
			}
			if a.pending[prev] == 0 {
				a.status[prev] = resolved
				work = append(work, prev)
			}
		}
		if !a.retain {
			a.preds[idx] = nil
		}
	}
	return nil
}

// shortenLines recomputes the distance of every won or lost node as the shortest forcing line,
// breadth first from the decided leaves over the retained reverse edges. Outcomes are unchanged.
func (a *analysis[P]) shortenLines() error {
	dist := make([]int, a.size())
	for i := range dist {
		dist[i] = NoDistance
	}
	queue := make([]int32, 0, len(a.leaves))
	for _, idx := range a.leaves {
		if a.value[idx].Outcome != game.Draw {
			dist[idx] = 0
			queue = append(queue, idx)
		}
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		outcome := a.value[idx].Outcome
		for _, prev := range a.preds[idx] {
			if dist[prev] != NoDistance || a.value[prev].Outcome != outcome.Negate() {
				continue
			}
			dist[prev] = dist[idx] + 1
			queue = append(queue, prev)
		}
	}

	for i, v := range a.value {
		if v.Outcome == game.Draw {
			continue
		}
		if dist[i] == NoDistance {
			return invariant(int32(i), "%s has no forcing line", v.Outcome)
		}
		a.value[i].Distance = dist[i]
	}
	for i := range a.preds {
		a.preds[i] = nil
	}
	return nil
}
