// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/match-score/pkg/types"
)

// QueryOptions holds parameters for result queries.
type QueryOptions struct {
	// RunID selects the run. Empty means the most recent run.
	RunID string

	// Accuracy keeps only results with this label.
	Accuracy types.Accuracy

	// MinScore keeps only results scoring at least this much.
	MinScore float64

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Results returns the matches of one run in the order they were saved.
func (s *Store) Results(ctx context.Context, opts QueryOptions) (Run, []types.MatchResult, error) {
	run, err := s.Run(ctx, opts.RunID)
	if err != nil {
		return Run{}, nil, err
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args = []any{run.ID}
	)
	qb.WriteString(`SELECT source_id, match_id, accuracy, score FROM matches WHERE run_id = ?`)

	if opts.Accuracy != "" {
		qb.WriteString(` AND accuracy = ?`)
		args = append(args, string(opts.Accuracy))
	}
	if opts.MinScore > 0 {
		qb.WriteString(` AND score >= ?`)
		args = append(args, opts.MinScore)
	}

	qb.WriteString(` ORDER BY position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return Run{}, nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []types.MatchResult
	for rows.Next() {
		var (
			r   types.MatchResult
			acc string
		)
		if err := rows.Scan(&r.SourceID, &r.MatchID, &acc, &r.Score); err != nil {
			return Run{}, nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Accuracy = types.Accuracy(acc)
		results = append(results, r)
	}
	return run, results, rows.Err()
}

// DeleteRun removes a run and its matches.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
