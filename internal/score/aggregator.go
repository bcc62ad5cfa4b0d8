// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score turns per-field similarities into one weighted score per
// record pair and maps that score onto an accuracy label.
package score

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/match-score/internal/similarity"
	"github.com/pdiddy/match-score/pkg/types"
)

var (
	// ErrMissingField is returned when a weighted field is absent from a record.
	ErrMissingField = errors.New("record is missing weighted field")

	// ErrInvalidWeight is returned for negative, NaN, or infinite weights.
	ErrInvalidWeight = errors.New("invalid field weight")
)

// Lookup resolves the strategy for a field. *similarity.Registry satisfies it.
type Lookup interface {
	Get(field string) (similarity.Strategy, error)
}

type fieldWeight struct {
	field  string
	weight float64
}

// Aggregator computes the weighted similarity of two records.
type Aggregator struct {
	weights   []fieldWeight
	total     float64
	strategy  Lookup
	normalize bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithNormalizedWeights divides the weighted sum by the total weight, so the
// score stays on the [0, 1] scale whatever the weights add up to.
func WithNormalizedWeights() Option {
	return func(a *Aggregator) { a.normalize = true }
}

// NewAggregator returns an aggregator over the given weight table.
// Fields are visited in sorted order so repeated runs sum identically.
func NewAggregator(weights map[string]float64, strategies Lookup, opts ...Option) (*Aggregator, error) {
	a := &Aggregator{strategy: strategies}
	for field, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: %s = %v", ErrInvalidWeight, field, w)
		}
		a.weights = append(a.weights, fieldWeight{field: field, weight: w})
		a.total += w
	}
	sort.Slice(a.weights, func(i, j int) bool { return a.weights[i].field < a.weights[j].field })
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// TotalWeight returns the sum of all field weights.
func (a *Aggregator) TotalWeight() float64 {
	return a.total
}

// Fields returns the weighted field names in evaluation order.
func (a *Aggregator) Fields() []string {
	out := make([]string, len(a.weights))
	for i, fw := range a.weights {
		out[i] = fw.field
	}
	return out
}

// Score returns the sum of weight × similarity over all weighted fields.
// The sum is not divided by the total weight unless the aggregator was
// built with WithNormalizedWeights. A field without a strategy or missing
// from either record aborts the computation.
func (a *Aggregator) Score(r1, r2 types.Record) (float64, error) {
	var sum float64
	for _, fw := range a.weights {
		sim, err := a.similarity(fw.field, r1, r2)
		if err != nil {
			return 0, err
		}
		sum += fw.weight * sim
	}
	if a.normalize {
		if a.total == 0 {
			return 0, nil
		}
		sum /= a.total
	}
	return sum, nil
}

// FieldScores returns the unweighted similarity of each weighted field.
func (a *Aggregator) FieldScores(r1, r2 types.Record) (map[string]float64, error) {
	out := make(map[string]float64, len(a.weights))
	for _, fw := range a.weights {
		sim, err := a.similarity(fw.field, r1, r2)
		if err != nil {
			return nil, err
		}
		out[fw.field] = sim
	}
	return out, nil
}

func (a *Aggregator) similarity(field string, r1, r2 types.Record) (float64, error) {
	s, err := a.strategy.Get(field)
	if err != nil {
		return 0, err
	}
	v1, ok := r1.Get(field)
	if !ok {
		return 0, fmt.Errorf("%w %q (record %s)", ErrMissingField, field, r1.ID)
	}
	v2, ok := r2.Get(field)
	if !ok {
		return 0, fmt.Errorf("%w %q (record %s)", ErrMissingField, field, r2.ID)
	}
	return s.Calculate(v1, v2), nil
}
