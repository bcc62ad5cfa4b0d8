// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Accuracy is the discrete verdict for a scored record pair.
type Accuracy string

const (
	AccuracyHigh   Accuracy = "High"
	AccuracyMedium Accuracy = "Medium"
	AccuracyLow    Accuracy = "Low"
)

// Rank orders accuracy labels: Low < Medium < High. Unknown labels rank 0.
func (a Accuracy) Rank() int {
	switch a {
	case AccuracyLow:
		return 1
	case AccuracyMedium:
		return 2
	case AccuracyHigh:
		return 3
	default:
		return 0
	}
}

// ParseAccuracy converts a case-insensitive label into an Accuracy.
func ParseAccuracy(s string) (Accuracy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return AccuracyHigh, nil
	case "medium":
		return AccuracyMedium, nil
	case "low":
		return AccuracyLow, nil
	default:
		return "", fmt.Errorf("unknown accuracy %q: use High, Medium, or Low", s)
	}
}

// MatchResult is the verdict for one candidate pair. SourceID always orders
// before MatchID.
type MatchResult struct {
	SourceID string   `json:"source_id" yaml:"source_id"`
	MatchID  string   `json:"match_id" yaml:"match_id"`
	Accuracy Accuracy `json:"accuracy" yaml:"accuracy"`

	// Score is the aggregate weighted similarity the label was derived from.
	Score float64 `json:"score" yaml:"score"`
}

// MatchSummary holds label counts from a matching run.
type MatchSummary struct {
	Pairs  int `json:"pairs" yaml:"pairs"`
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// String formats the summary as a single line.
func (s MatchSummary) String() string {
	return fmt.Sprintf("pairs: %d, high: %d, medium: %d, low: %d", s.Pairs, s.High, s.Medium, s.Low)
}
