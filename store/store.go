// Package store persists solved results in SQLite so a game is solved once and queried later.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"retrograde/game"
	"retrograde/solver"
)

// ErrNotFound is returned by Load for a key that was never saved.
var ErrNotFound = errors.New("result not found")

const batchSize = 500

const schema = `
CREATE TABLE IF NOT EXISTS games (
	name     TEXT PRIMARY KEY,
	nodes    INTEGER NOT NULL,
	saved_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS positions (
	game     TEXT NOT NULL,
	hash     INTEGER NOT NULL,
	node     INTEGER NOT NULL,
	outcome  INTEGER NOT NULL,
	distance INTEGER NOT NULL,
	PRIMARY KEY (game, hash)
);`

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces whatever is stored under key with entries.
func (s *Store) Save(ctx context.Context, key string, entries []solver.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := purge(ctx, tx, key); err != nil {
		return err
	}
	nodes := lo.Uniq(lo.Map(entries, func(e solver.Entry, _ int) int { return e.Node }))
	if _, err := tx.ExecContext(ctx, "INSERT INTO games (name, nodes, saved_at) VALUES (?, ?, ?)",
		key, len(nodes), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record %s: %w", key, err)
	}

	for _, batch := range lo.Chunk(entries, batchSize) {
		rows := strings.TrimSuffix(strings.Repeat("(?, ?, ?, ?, ?), ", len(batch)), ", ")
		args := make([]any, 0, 5*len(batch))
		for _, e := range batch {
			args = append(args, key, int64(e.Hash), e.Node, int(e.Value.Outcome), e.Value.Distance)
		}
		query := "INSERT INTO positions (game, hash, node, outcome, distance) VALUES " + rows
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to write positions of %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	log.Debug().Msgf("saved %d fingerprints of %d nodes under %s", len(entries), len(nodes), key)
	return nil
}

// Load returns the entries saved under key, sorted by hash.
func (s *Store) Load(ctx context.Context, key string) ([]solver.Entry, error) {
	ok, err := s.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT hash, node, outcome, distance FROM positions WHERE game = ?", key)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", key, err)
	}
	defer rows.Close()

	var entries []solver.Entry
	for rows.Next() {
		var (
			hash     int64
			e        solver.Entry
			outcome  int
			distance int
		)
		if err := rows.Scan(&hash, &e.Node, &outcome, &distance); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		e.Hash = game.Hash(uint64(hash))
		e.Value = solver.Value{Outcome: game.Outcome(outcome), Distance: distance}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	solver.SortEntries(entries)
	return entries, nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games WHERE name = ?", key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if err := purge(ctx, tx, key); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

func purge(ctx context.Context, tx *sql.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM positions WHERE game = ?", key); err != nil {
		return fmt.Errorf("failed to clear positions of %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM games WHERE name = ?", key); err != nil {
		return fmt.Errorf("failed to clear %s: %w", key, err)
	}
	return nil
}

// Games lists the saved keys in order.
func (s *Store) Games(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM games ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to list games: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
