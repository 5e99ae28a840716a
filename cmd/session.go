package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"retrograde/config"
	"retrograde/engine"
	"retrograde/game"
	"retrograde/metrics"
	"retrograde/solver"
	"retrograde/store"
)

// session is the state shared by one command invocation.
type session struct {
	cfg    *config.Config
	store  *store.Store // nil when results are not cached
	report *metrics.Writer
	out    io.Writer

	mu     sync.Mutex
	solves []metrics.SolveRecord
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.out = cmd.OutOrStdout()
	setupLogging(cmd.ErrOrStderr(), cfg.Debug())

	if path := cfg.DB(); path != "" {
		s.store, err = store.Open(cmd.Context(), path)
		if err != nil {
			return err
		}
	}
	if dir := cfg.Report(); dir != "" {
		s.report, err = metrics.NewWriter(dir)
		if err != nil {
			return err
		}
	}
	return nil
}

// close writes the solve report and releases the store. It runs whether or not the command
// succeeded.
func (s *session) close() error {
	var errs []error
	if s.report != nil && len(s.solves) > 0 {
		errs = append(errs, s.report.WriteSolveRecords(s.solves))
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
		s.store = nil
	}
	return errors.Join(errs...)
}

// run wraps a command body so the session is closed after it, even on failure.
func (s *session) run(body func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := body(cmd, args)
		return errors.Join(err, s.close())
	}
}

// storeKey names a stored result: the game plus every setting that changes its values.
func (s *session) storeKey(name string) (string, error) {
	policy, err := s.cfg.LossPolicy()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-d%d", name, policy, s.cfg.MaxDepth()), nil
}

func setupLogging(w io.Writer, debug bool) {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// solve returns the result of g, reusing the one stored under name when caching is on. Results
// whose fingerprints do not survive the process are never stored.
func solve[P any](ctx context.Context, s *session, name string, persistent bool, g game.Game[P], hasher game.Hasher[P]) (*solver.Result[P], error) {
	cached := s.store != nil && persistent
	key, err := s.storeKey(name)
	if err != nil {
		return nil, err
	}
	if cached {
		ok, err := s.store.Has(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			entries, err := s.store.Load(ctx, key)
			if err != nil {
				return nil, err
			}
			log.Info().Msgf("reusing stored result %s", key)
			res, err := solver.Restore(hasher, entries)
			if err != nil {
				return nil, fmt.Errorf("stored result %s is corrupt: %w", name, err)
			}
			return res, s.writePositions(name, res.Entries())
		}
	}

	options, err := s.cfg.SolverOptions()
	if err != nil {
		return nil, err
	}
	res, err := solver.Solve(g, hasher, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to solve %s: %w", name, err)
	}
	log.Info().Msgf("solved %s: %d positions", name, res.Len())

	if cached {
		if err := s.store.Save(ctx, key, res.Entries()); err != nil {
			return nil, err
		}
	}
	if s.report != nil {
		s.mu.Lock()
		s.solves = append(s.solves, metrics.SolveRecord{Game: name, SolveMetric: res.Metric()})
		s.mu.Unlock()
	}
	return res, s.writePositions(name, res.Entries())
}

func (s *session) writePositions(name string, entries []solver.Entry) error {
	if s.report == nil {
		return nil
	}
	records := lo.Map(entries, func(e solver.Entry, _ int) metrics.PositionRecord {
		return metrics.PositionRecord{
			Hash:     uint64(e.Hash),
			Outcome:  e.Value.Outcome.String(),
			Distance: e.Value.Distance,
		}
	})
	return s.report.WritePositionRecords(name, records)
}

// printLine prints the principal line from the initial position when --line is set.
func printLine[P any](s *session, g game.Game[P], res *solver.Result[P], format func(P) string) error {
	if !s.cfg.Line() {
		return nil
	}
	line, err := engine.LocalEngine(g, res, 0).Run()
	if err != nil {
		return fmt.Errorf("failed to play the principal line: %w", err)
	}
	for ply, step := range line {
		fmt.Fprintf(s.out, "  %3d  %s  %s\n", ply, format(step.Position), step.Value)
	}
	return nil
}
