// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contacts reads contact records from delimited files and writes
// match results as CSV, JSON, or YAML.
package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/match-score/pkg/types"
)

var (
	// ErrFileNotFound reports a missing input file.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrInvalidCSV reports input that cannot be read as contact records.
	ErrInvalidCSV = errors.New("failed to read or process CSV file")
)

// LoadOptions controls how a file's columns become record fields.
type LoadOptions struct {
	// Columns renames input headers to field names (e.g. postalZip to
	// Zip Code). Headers are matched case-insensitively; unmapped headers
	// keep their own name.
	Columns map[string]string

	// Delimiter separates cells. Zero means comma.
	Delimiter rune

	// IDField names the (renamed) column holding the record identifier.
	IDField string
}

// LoadCSV reads the file at path into records.
func LoadCSV(path string, opts LoadOptions) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s', check the file path", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w '%s': %v", ErrInvalidCSV, path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadCSV parses delimited contact data with a header row. Empty cells are
// null values; the identifier column must be present and filled in every row.
func ReadCSV(r io.Reader, opts LoadOptions) ([]types.Record, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrInvalidCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	names, err := renameHeader(header, opts.Columns)
	if err != nil {
		return nil, err
	}
	idCol := findColumn(names, opts.IDField)
	if idCol < 0 {
		return nil, fmt.Errorf("%w: identifier column %q not found in header %v", ErrInvalidCSV, opts.IDField, names)
	}

	var records []types.Record
	for row := 2; ; row++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}

		id := strings.TrimSpace(cells[idCol])
		if id == "" {
			return nil, fmt.Errorf("%w: row %d has an empty %q", ErrInvalidCSV, row, names[idCol])
		}

		rec := types.Record{ID: id, Fields: make(map[string]types.Value, len(names))}
		for i, cell := range cells {
			if cell == "" {
				rec.Fields[names[i]] = types.Null()
				continue
			}
			rec.Fields[names[i]] = types.String(cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

func renameHeader(header []string, columns map[string]string) ([]string, error) {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = cleanCell(h)
		name := h
		if mapped, ok := lookupColumn(columns, h); ok {
			name = mapped
		}
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidCSV, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: column %q appears twice", ErrInvalidCSV, name)
		}
		seen[name] = true
		names[i] = name
	}
	return names, nil
}

// lookupColumn prefers an exact key and falls back to a case-insensitive one;
// config loaders may lowercase map keys.
func lookupColumn(columns map[string]string, header string) (string, bool) {
	if v, ok := columns[header]; ok {
		return v, true
	}
	for k, v := range columns {
		if strings.EqualFold(k, header) {
			return v, true
		}
	}
	return "", false
}

func findColumn(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	for i, n := range names {
		if strings.EqualFold(n, want) {
			return i
		}
	}
	return -1
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}
