// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contacts

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/match-score/pkg/types"
)

// Format selects the encoding used by Write.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ResultHeader is the header row of a results CSV file.
var ResultHeader = []string{"ContactID Source", "ContactID Match", "Accuracy"}

// ParseFormat accepts csv, json, yaml, or yml in any case. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q: use csv, json, or yaml", s)
}

// Write encodes results in format and writes them to path.
func Write(path string, format Format, results []types.MatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	switch format {
	case FormatJSON:
		err = ExportJSON(f, results)
	case FormatYAML:
		err = ExportYAML(f, results)
	default:
		err = WriteResultsCSV(f, results)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

// WriteResultsCSV writes one row per result: source id, match id, label.
func WriteResultsCSV(w io.Writer, results []types.MatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.SourceID, r.MatchID, string(r.Accuracy)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes results, scores included, as an indented JSON array.
func ExportJSON(w io.Writer, results []types.MatchResult) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ExportYAML writes results, scores included, as a YAML sequence.
func ExportYAML(w io.Writer, results []types.MatchResult) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
