// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/match-score/pkg/types"
)

// ErrUnknownStrategy is returned for a strategy kind with no constructor.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Kind describes a built-in strategy for listings.
type Kind struct {
	Name        string
	Description string
	new         func() Strategy
}

var kinds = map[string]Kind{
	"name": {
		Name:        "name",
		Description: "Jaro-Winkler, case-sensitive; null as empty; two empties = 1",
		new:         func() Strategy { return NameSimilarity{} },
	},
	"email": {
		Name:        "email",
		Description: "normalized Levenshtein; null as empty; two empties = 1",
		new:         func() Strategy { return EmailSimilarity{} },
	},
	"zip": {
		Name:        "zip",
		Description: "exact match with numeric equality; null never matches",
		new:         func() Strategy { return ZipCodeSimilarity{} },
	},
	"address": {
		Name:        "address",
		Description: "token-set Jaccard; two empties = 0",
		new:         func() Strategy { return AddressSimilarity{} },
	},
	"exact": {
		Name:        "exact",
		Description: "identical non-null strings = 1",
		new:         func() Strategy { return ExactSimilarity{} },
	},
	"phonetic": {
		Name:        "phonetic",
		Description: "Soundex codes equal = 1; null or empty = 0",
		new:         func() Strategy { return PhoneticSimilarity{} },
	},
}

// New returns the built-in strategy for kind (case-insensitive).
func New(kind string) (Strategy, error) {
	k, ok := kinds[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return nil, fmt.Errorf("%w %q: use one of %s", ErrUnknownStrategy, kind, strings.Join(KindNames(), ", "))
	}
	return k.new(), nil
}

// Kinds returns the built-in strategy kinds sorted by name.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// KindNames returns the sorted built-in kind names.
func KindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromField builds the strategy for a field config, wrapping it in
// Normalized when the field asks for normalization or case folding.
func FromField(f types.FieldConfig) (Strategy, error) {
	s, err := New(f.Strategy)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, err)
	}
	if f.Normalize || f.IgnoreCase {
		s = Normalized(s, f.IgnoreCase)
	}
	return s, nil
}
