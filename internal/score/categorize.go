// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/match-score/pkg/types"
)

// Default lower bounds of the High and Medium labels.
const (
	DefaultHighThreshold   = 0.8
	DefaultMediumThreshold = 0.6
)

// ErrInvalidThresholds is returned when the Medium bound exceeds the High
// bound or a bound is not a finite number.
var ErrInvalidThresholds = errors.New("invalid accuracy thresholds")

// Categorizer maps a score onto High, Medium, or Low. Each bound is
// inclusive, so every score gets exactly one label.
type Categorizer struct {
	high   float64
	medium float64
}

// DefaultCategorizer uses the 0.8 / 0.6 cut-offs.
func DefaultCategorizer() Categorizer {
	return Categorizer{high: DefaultHighThreshold, medium: DefaultMediumThreshold}
}

// NewCategorizer returns a categorizer with custom lower bounds.
func NewCategorizer(high, medium float64) (Categorizer, error) {
	if math.IsNaN(high) || math.IsNaN(medium) || math.IsInf(high, 0) || math.IsInf(medium, 0) {
		return Categorizer{}, fmt.Errorf("%w: high=%v medium=%v", ErrInvalidThresholds, high, medium)
	}
	if medium > high {
		return Categorizer{}, fmt.Errorf("%w: medium %v above high %v", ErrInvalidThresholds, medium, high)
	}
	return Categorizer{high: high, medium: medium}, nil
}

// Categorize labels score. NaN is Low.
func (c Categorizer) Categorize(score float64) types.Accuracy {
	switch {
	case score >= c.high:
		return types.AccuracyHigh
	case score >= c.medium:
		return types.AccuracyMedium
	default:
		return types.AccuracyLow
	}
}
