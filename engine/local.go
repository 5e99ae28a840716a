package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"retrograde/game"
	"retrograde/solver"
)

// Local replays optimal play from a solved result: every mover picks a successor realising its
// position's value.
type Local[P any] struct {
	game     game.Game[P]
	result   *solver.Result[P]
	maxPlies int
}

var _ Engine[int] = (*Local[int])(nil)

func LocalEngine[P any](g game.Game[P], res *solver.Result[P], maxPlies int) *Local[P] {
	if maxPlies <= 0 {
		maxPlies = MaxPlies
	}
	return &Local[P]{game: g, result: res, maxPlies: maxPlies}
}

func (e *Local[P]) Run() ([]Step[P], error) {
	p := e.game.Initial()
	seen := map[game.Hash]bool{}
	var line []Step[P]

	for ply := 0; ply <= e.maxPlies; ply++ {
		v, ok := e.result.Lookup(p)
		if !ok {
			return line, fmt.Errorf("ply %d: position was not solved", ply)
		}
		line = append(line, Step[P]{Position: p, Value: v})

		h := e.result.Fingerprint(p)
		if seen[h] {
			log.Debug().Msgf("position repeats after %d plies", ply)
			break
		}
		seen[h] = true

		if _, terminal := e.game.Evaluate(p); terminal {
			break
		}
		successors := e.game.Successors(p)
		if len(successors) == 0 {
			break
		}
		next, err := e.choose(v, successors)
		if err != nil {
			return line, fmt.Errorf("ply %d: %w", ply, err)
		}
		p = next
	}
	return line, nil
}

// choose returns the first successor whose reply is v. A perpetual draw is kept by moving to
// any drawn successor.
func (e *Local[P]) choose(v solver.Value, successors []P) (P, error) {
	for _, next := range successors {
		child, ok := e.result.Lookup(next)
		if !ok {
			continue
		}
		if v.Distance == solver.NoDistance {
			if child.Outcome == game.Draw {
				return next, nil
			}
			continue
		}
		if child.Reply() == v {
			return next, nil
		}
	}
	var zero P
	return zero, fmt.Errorf("no successor realises %s", v)
}
