// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/match-score/pkg/types"
)

// normalized wraps a strategy and canonicalizes both values before
// delegating. Null values pass through so the inner null policy still holds.
type normalized struct {
	inner      Strategy
	ignoreCase bool
}

// Normalized returns a strategy that applies NFKC normalization and trims
// whitespace on both values, lower-casing them too when ignoreCase is set.
func Normalized(inner Strategy, ignoreCase bool) Strategy {
	return normalized{inner: inner, ignoreCase: ignoreCase}
}

func (n normalized) Calculate(a, b types.Value) float64 {
	return n.inner.Calculate(n.canonical(a), n.canonical(b))
}

func (n normalized) canonical(v types.Value) types.Value {
	if !v.Valid {
		return v
	}
	s := strings.TrimSpace(norm.NFKC.String(v.Str))
	if n.ignoreCase {
		// A Caser keeps state, so each call gets its own.
		s = cases.Fold().String(s)
	}
	return types.String(s)
}
