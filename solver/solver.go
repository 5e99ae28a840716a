// Package solver labels every position reachable in a finite two-player game with its
// game-theoretic value. It builds the position graph forward, then resolves it backward from
// terminal positions (retrograde analysis). Positions repeating forever without a forced result
// are draws.
package solver

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"retrograde/game"
	"retrograde/metrics"
)

type Option func(s *settings)

type settings struct {
	maxDepth int
	policy   LossPolicy
	metrics  metrics.Collector
}

// WithMaxDepth bounds solved distances; a longer line aborts the solve.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func WithLossPolicy(policy LossPolicy) Option {
	return func(s *settings) {
		s.policy = policy
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

// Solve explores every position reachable from g's initial position and resolves all of them.
// The returned error is a *SymmetryViolation or an *InvariantViolation; in both cases no partial
// result is returned.
func Solve[P any](g game.Game[P], hasher game.Hasher[P], options ...Option) (*Result[P], error) {
	s := settings{
		maxDepth: DefaultMaxDepth,
		policy:   DelayLoss,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	if s.policy != DelayLoss && s.policy != HastenLoss {
		panic("unknown loss policy")
	}

	s.metrics.Start()
	gr := newGraph(g, hasher, s.metrics)
	if err := gr.build(); err != nil {
		return nil, err
	}
	log.Debug().Msgf("built position graph: %d nodes, %d fingerprints, %d leaves",
		gr.size(), len(gr.index), len(gr.leaves))

	s.metrics.StartAnalysis()
	a := &analysis[P]{
		graph:    gr,
		policy:   s.policy,
		maxDepth: s.maxDepth,
		retain:   s.policy == HastenLoss,
	}
	if err := a.run(); err != nil {
		return nil, err
	}
	metric := s.metrics.Complete()
	log.Debug().Msgf("resolved %d nodes (policy %s)", gr.size(), s.policy)

	return &Result[P]{
		hasher: hasher,
		index:  gr.index,
		values: gr.value,
		metric: metric,
	}, nil
}

// SolveAll runs independent jobs with at most limit running at once (no limit if limit <= 0)
// and returns the first error. Jobs that have not started when ctx is done are skipped; a
// running solve is not interrupted.
func SolveAll(ctx context.Context, limit int, jobs ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return job(ctx)
		})
	}
	return g.Wait()
}
