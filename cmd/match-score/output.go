// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/match-score/internal/store"
	"github.com/pdiddy/match-score/pkg/types"
)

var (
	highLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	mediumLabel = color.New(color.FgYellow).SprintFunc()
	lowLabel    = color.New(color.Faint).SprintFunc()
)

// label pads the accuracy to a fixed width before colouring it so escape
// sequences do not break column alignment.
func label(a types.Accuracy) string {
	padded := fmt.Sprintf("%-6s", a)
	switch a {
	case types.AccuracyHigh:
		return highLabel(padded)
	case types.AccuracyMedium:
		return mediumLabel(padded)
	default:
		return lowLabel(padded)
	}
}

func printSummary(w io.Writer, s types.MatchSummary) {
	fmt.Fprintf(w, "\n%d pairs: %s %d  %s %d  %s %d\n", s.Pairs,
		highLabel("High"), s.High,
		mediumLabel("Medium"), s.Medium,
		lowLabel("Low"), s.Low)
}

func printResults(w io.Writer, results []types.MatchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-16s  %-6s  %s\n", "ContactID Source", "ContactID Match", "Label", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, r := range results {
		fmt.Fprintf(w, "%-16s  %-16s  %s  %.3f\n", truncate(r.SourceID, 16), truncate(r.MatchID, 16), label(r.Accuracy), r.Score)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
}

func printRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-24s  %6s  %6s  %6s  %6s\n",
		"Run", "Created", "Input", "Pairs", "High", "Medium", "Low")
	fmt.Fprintln(w, strings.Repeat("-", 118))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-24s  %6d  %6d  %6d  %6d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), truncate(r.Input, 24),
			r.Summary.Pairs, r.Summary.High, r.Summary.Medium, r.Summary.Low)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
