// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/match-score/pkg/types"
)

var (
	// ErrDuplicateID is returned when two records share an identifier.
	ErrDuplicateID = errors.New("duplicate record identifier")

	// ErrEmptyID is returned for a record without an identifier.
	ErrEmptyID = errors.New("empty record identifier")
)

// Pair holds the indices of two records to compare. The record at Source
// orders before the record at Match.
type Pair struct {
	Source int
	Match  int
}

// Enumerator selects the candidate pairs for a record set. Replacing it
// changes which records get compared without touching scoring.
type Enumerator interface {
	Pairs(records []types.Record) ([]Pair, error)
}

// AllPairs compares every unordered pair of records once.
type AllPairs struct{}

// Pairs returns (i, j) for every i, j in input order with id(i) < id(j).
// Identifiers are validated first.
func (AllPairs) Pairs(records []types.Record) ([]Pair, error) {
	if err := ValidateIDs(records); err != nil {
		return nil, err
	}
	n := len(records)
	if n < 2 {
		return nil, nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := range records {
		for j := range records {
			if types.CompareIDs(records[i].ID, records[j].ID) < 0 {
				pairs = append(pairs, Pair{Source: i, Match: j})
			}
		}
	}
	return pairs, nil
}

// ValidateIDs checks that every record has a non-blank, unique identifier.
func ValidateIDs(records []types.Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("%w at row %d", ErrEmptyID, i+1)
		}
		if prev, ok := seen[r.ID]; ok {
			return fmt.Errorf("%w %q at rows %d and %d", ErrDuplicateID, r.ID, prev+1, i+1)
		}
		seen[r.ID] = i
	}
	return nil
}
