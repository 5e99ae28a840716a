package solver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"retrograde/fingerprint"
	"retrograde/game"
)

/*
- build: every reachable position gets one node, symmetric images alias it, terminals are not expanded
- retrograde:
	- leaves seed propagation, wins settle before draws
	- cycles with no forced result become perpetual draws
	- each edge counts once, parallel edges included
- fatal errors: symmetry violation, max depth
- properties over random graphs: every value is the best reply, solves are deterministic
*/

func TestSolve(t *testing.T) {
	t.Run("subtraction game matches the known table", func(t *testing.T) {
		want := []Value{loss(0), win(1), win(1), win(1), loss(2), win(3), win(3), win(3), loss(4), win(5), win(5)}
		for _, policy := range []LossPolicy{DelayLoss, HastenLoss} {
			res, err := Solve[int](mockSubtraction{pile: 10}, mockHasher, WithLossPolicy(policy))
			require.NoError(t, err)
			require.Equal(t, 11, res.Len())
			for pile, v := range want {
				got, ok := res.Lookup(pile)
				require.True(t, ok, "pile %d should be solved", pile)
				require.Equal(t, v, got, "pile %d under %s", pile, policy)
			}
		}
	})

	t.Run("single position without moves takes the default outcome", func(t *testing.T) {
		g := &mockGame{start: vA, stalemate: game.Win}

		res, err := Solve[int](g, mockHasher)

		require.NoError(t, err)
		require.Equal(t, 1, res.Len())
		got, ok := res.Lookup(vA)
		require.True(t, ok)
		require.Equal(t, win(0), got)
	})

	t.Run("terminal initial position is evaluated, not expanded", func(t *testing.T) {
		g := &mockGame{
			start:    vA,
			edges:    map[int][]int{vA: {vB}},
			terminal: map[int]game.Outcome{vA: game.Draw},
		}

		res, err := Solve[int](g, mockHasher)

		require.NoError(t, err)
		require.Equal(t, 1, res.Len())
		got, _ := res.Lookup(vA)
		require.Equal(t, draw(0), got)
		_, ok := res.Lookup(vB)
		require.False(t, ok, "successors of a terminal position are never reached")
	})

	t.Run("terminal values are kept as evaluated", func(t *testing.T) {
		g := &mockGame{
			start:    vA,
			edges:    map[int][]int{vA: {vB, vC, vL}},
			terminal: map[int]game.Outcome{vB: game.Win, vC: game.Draw, vL: game.Win},
		}

		res, err := Solve[int](g, mockHasher)

		require.NoError(t, err)
		for p, want := range map[int]Value{vA: draw(1), vB: win(0), vC: draw(0), vL: win(0)} {
			got, _ := res.Lookup(p)
			require.Equal(t, want, got)
		}
	})

	t.Run("two-cycle is a perpetual draw", func(t *testing.T) {
		g := &mockGame{
			start:     vA,
			edges:     map[int][]int{vA: {vB}, vB: {vA}},
			stalemate: game.Loss,
		}

		res, err := Solve[int](g, mockHasher, WithMetrics())

		require.NoError(t, err)
		for _, p := range []int{vA, vB} {
			got, _ := res.Lookup(p)
			require.Equal(t, draw(NoDistance), got)
		}
		m := res.Metric()
		require.Equal(t, 2, m.Nodes)
		require.Equal(t, 2, m.Edges)
		require.Equal(t, 0, m.Leaves)
		require.Equal(t, 2, m.CycleDraws)
	})

	t.Run("cycle with an escape the mover avoids", func(t *testing.T) {
		g := &mockGame{
			start:     vA,
			edges:     map[int][]int{vA: {vB}, vB: {vA, vC}, vC: {vA, vL}},
			stalemate: game.Loss,
		}

		res, err := Solve[int](g, mockHasher)

		require.NoError(t, err)
		want := map[int]Value{vA: draw(NoDistance), vB: draw(NoDistance), vC: win(1), vL: loss(0)}
		for p, v := range want {
			got, _ := res.Lookup(p)
			require.Equal(t, v, got, "vertex %d", p)
		}
	})

	t.Run("parallel edges are counted once each", func(t *testing.T) {
		g := &mockGame{
			start:     vA,
			edges:     map[int][]int{vA: {vB, vB}, vB: {vL}},
			stalemate: game.Loss,
		}

		res, err := Solve[int](g, mockHasher, WithMetrics())

		require.NoError(t, err)
		got, _ := res.Lookup(vA)
		require.Equal(t, loss(2), got)
		require.Equal(t, 3, res.Metric().Edges)
		require.Equal(t, 3, res.Metric().Nodes)
	})

	t.Run("loss policy chooses between losing lines", func(t *testing.T) {
		g := &mockGame{
			start: vR,
			edges: map[int][]int{
				vR: {vX}, vX: {vY, vZ}, vY: {vL}, vZ: {vM}, vM: {vP}, vP: {vL},
			},
			stalemate: game.Loss,
		}

		delay, err := Solve[int](g, mockHasher)
		require.NoError(t, err)
		hasten, err := Solve[int](g, mockHasher, WithLossPolicy(HastenLoss))
		require.NoError(t, err)

		wantDelay := map[int]Value{
			vR: win(5), vX: loss(4), vY: win(1), vZ: win(3), vM: loss(2), vP: win(1), vL: loss(0),
		}
		wantHasten := map[int]Value{
			vR: win(3), vX: loss(2), vY: win(1), vZ: win(3), vM: loss(2), vP: win(1), vL: loss(0),
		}
		for p := range wantDelay {
			got, _ := delay.Lookup(p)
			require.Equal(t, wantDelay[p], got, "delay: vertex %d", p)
			got, _ = hasten.Lookup(p)
			require.Equal(t, wantHasten[p], got, "hasten: vertex %d", p)
		}
	})

	t.Run("symmetric images share one node", func(t *testing.T) {
		g := &mockGame{
			start:     vA,
			edges:     map[int][]int{vA: {vB, vC}, vB: {vL}, vC: {vL}},
			images:    map[int][]int{vB: {vC}, vC: {vB}},
			stalemate: game.Loss,
		}

		res, err := Solve[int](g, mockHasher, WithMetrics())

		require.NoError(t, err)
		require.Equal(t, 3, res.Len())
		b, _ := res.Lookup(vB)
		c, _ := res.Lookup(vC)
		require.Equal(t, win(1), b)
		require.Equal(t, b, c)
		a, _ := res.Lookup(vA)
		require.Equal(t, loss(2), a)
		require.Len(t, res.Entries(), 4)
		require.Equal(t, 4, res.Metric().Aliases)
	})

	t.Run("inconsistent symmetries abort the solve", func(t *testing.T) {
		g := &mockGame{
			start:  vA,
			edges:  map[int][]int{vA: {vC, vB}},
			images: map[int][]int{vB: {vC}},
		}

		res, err := Solve[int](g, mockHasher)

		require.Nil(t, res)
		require.ErrorIs(t, err, ErrSymmetryContract)
		var violation *SymmetryViolation
		require.ErrorAs(t, err, &violation)
		require.Equal(t, fingerprint.Mix(uint64(vC)), violation.Hash)
		require.Equal(t, 1, violation.Existing)
		require.Equal(t, 2, violation.Registering)
	})

	t.Run("line longer than max depth aborts the solve", func(t *testing.T) {
		res, err := Solve[int](mockSubtraction{pile: 10}, mockHasher, WithMaxDepth(3))

		require.Nil(t, res)
		require.ErrorIs(t, err, ErrEngineInvariant)
		var violation *InvariantViolation
		require.ErrorAs(t, err, &violation)
	})

	t.Run("non-positive max depth keeps the default", func(t *testing.T) {
		_, err := Solve[int](mockSubtraction{pile: 10}, mockHasher, WithMaxDepth(0))
		require.NoError(t, err)
	})

	t.Run("unknown loss policy panics", func(t *testing.T) {
		require.Panics(t, func() {
			_, _ = Solve[int](mockSubtraction{pile: 1}, mockHasher, WithLossPolicy(LossPolicy(7)))
		})
	})
}

func randomGame(r *rand.Rand) *mockGame {
	n := 5 + r.Intn(300)
	outcomes := []game.Outcome{game.Loss, game.Draw, game.Win}
	g := &mockGame{
		edges:     map[int][]int{},
		terminal:  map[int]game.Outcome{},
		stalemate: outcomes[r.Intn(3)],
	}
	for v := 0; v < n; v++ {
		for k := r.Intn(4); k > 0; k-- {
			g.edges[v] = append(g.edges[v], r.Intn(n))
		}
		if r.Intn(10) == 0 {
			g.terminal[v] = outcomes[r.Intn(3)]
		}
	}
	return g
}

func reachable(g *mockGame) []int {
	seen := map[int]bool{g.start: true}
	order := []int{g.start}
	for i := 0; i < len(order); i++ {
		p := order[i]
		if _, ok := g.terminal[p]; ok {
			continue
		}
		for _, next := range g.edges[p] {
			if !seen[next] {
				seen[next] = true
				order = append(order, next)
			}
		}
	}
	return order
}

func TestSolveProperties(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	for i := 0; i < 200; i++ {
		g := randomGame(r)
		for _, policy := range []LossPolicy{DelayLoss, HastenLoss} {
			res, err := Solve[int](g, mockHasher, WithLossPolicy(policy))
			require.NoError(t, err)

			positions := reachable(g)
			require.Equal(t, len(positions), res.Len(), "every reachable position is one node")

			for _, p := range positions {
				v, ok := res.Lookup(p)
				require.True(t, ok)
				if o, terminal := g.terminal[p]; terminal {
					require.Equal(t, Value{Outcome: o}, v, "terminal fidelity")
					continue
				}
				if len(g.edges[p]) == 0 {
					require.Equal(t, Value{Outcome: g.stalemate}, v, "stalemate default")
					continue
				}

				replies := make([]Value, 0, len(g.edges[p]))
				for _, next := range g.edges[p] {
					child, _ := res.Lookup(next)
					replies = append(replies, child.Reply())
				}
				best := replies[0]
				for _, reply := range replies[1:] {
					if policy.Better(reply, best) {
						best = reply
					}
				}

				switch {
				case v.Distance == NoDistance:
					require.Equal(t, game.Draw, v.Outcome)
					require.NotEqual(t, game.Win, best.Outcome, "a perpetual draw has no winning move")
					allLost := true
					for _, reply := range replies {
						allLost = allLost && reply.Outcome == game.Loss
					}
					require.False(t, allLost, "a perpetual draw has a move that does not lose")
				case v.Outcome == game.Draw:
					require.Equal(t, game.Draw, best.Outcome)
					require.Contains(t, replies, v)
				default:
					require.Equal(t, best, v, "position %d under %s", p, policy)
				}
			}
		}
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		g := randomGame(r)
		first, err := Solve[int](g, mockHasher)
		require.NoError(t, err)
		second, err := Solve[int](g, mockHasher)
		require.NoError(t, err)
		require.Equal(t, first.Entries(), second.Entries())
	}
}

func TestSolveAll(t *testing.T) {
	t.Run("runs every job", func(t *testing.T) {
		var ran atomic.Int32
		jobs := make([]func(context.Context) error, 10)
		for i := range jobs {
			jobs[i] = func(context.Context) error {
				_, err := Solve[int](mockSubtraction{pile: 20}, mockHasher)
				ran.Add(1)
				return err
			}
		}

		require.NoError(t, SolveAll(context.Background(), 3, jobs...))
		require.Equal(t, int32(10), ran.Load())
	})

	t.Run("respects the limit", func(t *testing.T) {
		var running, peak atomic.Int32
		jobs := make([]func(context.Context) error, 8)
		for i := range jobs {
			jobs[i] = func(context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				_, err := Solve[int](mockSubtraction{pile: 200}, mockHasher)
				running.Add(-1)
				return err
			}
		}

		require.NoError(t, SolveAll(context.Background(), 2, jobs...))
		require.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("returns the first error", func(t *testing.T) {
		boom := errors.New("boom")
		err := SolveAll(context.Background(), 0,
			func(context.Context) error { return nil },
			func(context.Context) error { return boom },
		)
		require.ErrorIs(t, err, boom)
	})

	t.Run("skips jobs once the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var ran atomic.Int32

		err := SolveAll(ctx, 1, func(context.Context) error {
			ran.Add(1)
			return nil
		})

		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, ran.Load())
	})
}
