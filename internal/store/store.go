// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists match runs and their results in SQLite so past
// runs can be listed and queried without rescoring.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/match-score/internal/match"
	"github.com/pdiddy/match-score/pkg/types"
)

const defaultMaxResults = 100

var (
	// ErrNoPath reports a store configuration without a database path.
	ErrNoPath = errors.New("store path is not set")

	// ErrRunNotFound reports a run id, or an empty store, with nothing to query.
	ErrRunNotFound = errors.New("run not found")
)

// Store manages the results database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// Run describes one saved find run.
type Run struct {
	ID        string             `json:"id" yaml:"id"`
	Input     string             `json:"input" yaml:"input"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
	Summary   types.MatchSummary `json:"summary" yaml:"summary"`
}

// NewStore opens or creates the database at cfg.Path, creating parent
// directories and the schema as needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			input TEXT NOT NULL,
			created_at TEXT NOT NULL,
			pairs INTEGER NOT NULL,
			high INTEGER NOT NULL,
			medium INTEGER NOT NULL,
			low INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			source_id TEXT NOT NULL,
			match_id TEXT NOT NULL,
			accuracy TEXT NOT NULL,
			score REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_accuracy ON matches(run_id, accuracy)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records results under a new run id and returns it. Result order is
// kept.
func (s *Store) SaveRun(ctx context.Context, input string, results []types.MatchResult) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Input:     input,
		CreatedAt: s.now().UTC(),
		Summary:   match.Summarize(results),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, created_at, pairs, high, medium, low) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.CreatedAt.Format(time.RFC3339Nano),
		run.Summary.Pairs, run.Summary.High, run.Summary.Medium, run.Summary.Low,
	); err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO matches (run_id, position, source_id, match_id, accuracy, score) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing match insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.ExecContext(ctx, run.ID, i, r.SourceID, r.MatchID, string(r.Accuracy), r.Score); err != nil {
			return Run{}, fmt.Errorf("inserting match %s/%s: %w", r.SourceID, r.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

// ListRuns returns saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, created_at, pairs, high, medium, low FROM runs ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run looks up one run. An empty id selects the most recent run.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	query := `SELECT id, input, created_at, pairs, high, medium, low FROM runs WHERE id = ?`
	args := []any{id}
	if id == "" {
		query = `SELECT id, input, created_at, pairs, high, medium, low FROM runs ORDER BY seq DESC LIMIT 1`
		args = nil
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		if id == "" {
			return Run{}, fmt.Errorf("%w: the store has no runs", ErrRunNotFound)
		}
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run     Run
		created string
	)
	if err := row.Scan(&run.ID, &run.Input, &created,
		&run.Summary.Pairs, &run.Summary.High, &run.Summary.Medium, &run.Summary.Low); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run time %q: %w", created, err)
	}
	run.CreatedAt = t
	return run, nil
}
