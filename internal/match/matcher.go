// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match finds probable duplicate records by scoring every candidate
// pair and labelling the score.
package match

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/match-score/internal/score"
	"github.com/pdiddy/match-score/pkg/types"
)

// Scorer computes the aggregate similarity of two records.
// *score.Aggregator satisfies it.
type Scorer interface {
	Score(a, b types.Record) (float64, error)
}

// Matcher drives pair enumeration, scoring, and categorization.
type Matcher struct {
	scorer      Scorer
	categorizer score.Categorizer
	enumerator  Enumerator
	workers     int
	logger      *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithWorkers scores pairs on n goroutines. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(m *Matcher) { m.workers = n }
}

// WithEnumerator replaces the default AllPairs enumeration.
func WithEnumerator(e Enumerator) Option {
	return func(m *Matcher) { m.enumerator = e }
}

// WithLogger sets the logger for per-pair diagnostics and the run summary.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a Matcher using scorer and categorizer.
func New(scorer Scorer, categorizer score.Categorizer, opts ...Option) *Matcher {
	m := &Matcher{
		scorer:      scorer,
		categorizer: categorizer,
		enumerator:  AllPairs{},
		workers:     1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindDuplicates scores every candidate pair and returns one result per
// pair in enumeration order. The first scoring error aborts the run; no
// partial results are returned.
func (m *Matcher) FindDuplicates(ctx context.Context, records []types.Record) ([]types.MatchResult, error) {
	start := time.Now()

	pairs, err := m.enumerator.Pairs(records)
	if err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, len(pairs))
	if m.workers > 1 && len(pairs) > 1 {
		err = m.scoreParallel(ctx, records, pairs, results)
	} else {
		err = m.scoreRange(ctx, records, pairs, results, 0, 1)
	}
	if err != nil {
		return nil, err
	}

	m.logger.Info("matching complete",
		zap.Int("records", len(records)),
		zap.Int("pairs", len(pairs)),
		zap.Int("workers", max(m.workers, 1)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// scoreParallel splits pairs into strided slices, one per worker. Each worker
// writes only its own result slots, so order is kept without locking.
func (m *Matcher) scoreParallel(ctx context.Context, records []types.Record, pairs []Pair, results []types.MatchResult) error {
	workers := min(m.workers, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			return m.scoreRange(ctx, records, pairs, results, w, workers)
		})
	}
	return g.Wait()
}

func (m *Matcher) scoreRange(ctx context.Context, records []types.Record, pairs []Pair, results []types.MatchResult, offset, stride int) error {
	for k := offset; k < len(pairs); k += stride {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a, b := records[pairs[k].Source], records[pairs[k].Match]
		s, err := m.scorer.Score(a, b)
		if err != nil {
			return fmt.Errorf("scoring %s and %s: %w", a.ID, b.ID, err)
		}
		acc := m.categorizer.Categorize(s)

		m.logger.Debug("scored pair",
			zap.String("source", a.ID),
			zap.String("match", b.ID),
			zap.Float64("score", s),
			zap.String("accuracy", string(acc)),
		)

		results[k] = types.MatchResult{SourceID: a.ID, MatchID: b.ID, Accuracy: acc, Score: s}
	}
	return nil
}

// Summarize counts results per accuracy label.
func Summarize(results []types.MatchResult) types.MatchSummary {
	s := types.MatchSummary{Pairs: len(results)}
	for _, r := range results {
		switch r.Accuracy {
		case types.AccuracyHigh:
			s.High++
		case types.AccuracyMedium:
			s.Medium++
		case types.AccuracyLow:
			s.Low++
		}
	}
	return s
}

// Filter keeps results labelled at least floor, preserving order.
func Filter(results []types.MatchResult, floor types.Accuracy) []types.MatchResult {
	if floor.Rank() <= types.AccuracyLow.Rank() {
		return results
	}
	out := make([]types.MatchResult, 0, len(results))
	for _, r := range results {
		if r.Accuracy.Rank() >= floor.Rank() {
			out = append(out, r)
		}
	}
	return out
}
