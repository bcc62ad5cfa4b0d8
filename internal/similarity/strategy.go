// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity holds the per-field similarity strategies and the
// registry that binds them to record fields.
//
// Every strategy returns a score in [0.0, 1.0] and has an explicit null
// policy; none of them panic on missing values.
package similarity

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/pdiddy/match-score/pkg/types"
)

// Strategy compares two field values. Implementations are stateless and
// safe to share across goroutines.
type Strategy interface {
	Calculate(a, b types.Value) float64
}

// Func adapts a plain function to the Strategy interface.
type Func func(a, b types.Value) float64

// Calculate calls f.
func (f Func) Calculate(a, b types.Value) float64 { return f(a, b) }

// NameSimilarity is case-sensitive Jaro-Winkler similarity. Null compares as
// the empty string, and two empty strings are identical.
type NameSimilarity struct{}

func (NameSimilarity) Calculate(a, b types.Value) float64 {
	s1, s2 := a.OrEmpty(), b.OrEmpty()
	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}
	return clamp(matchr.JaroWinkler(s1, s2, false))
}

// EmailSimilarity is normalized Levenshtein similarity over the whole
// address: 1 - distance/max(len). Null compares as the empty string.
type EmailSimilarity struct{}

func (EmailSimilarity) Calculate(a, b types.Value) float64 {
	return levenshteinRatio(a.OrEmpty(), b.OrEmpty())
}

// ZipCodeSimilarity matches exactly. Values are equal when their trimmed text
// is equal or when both parse as the same number ("2134" and "2134.0").
// A null on either side never matches.
type ZipCodeSimilarity struct{}

func (ZipCodeSimilarity) Calculate(a, b types.Value) float64 {
	if !a.Valid || !b.Valid {
		return 0.0
	}
	s1, s2 := strings.TrimSpace(a.Str), strings.TrimSpace(b.Str)
	if s1 == s2 {
		return 1.0
	}
	n1, err1 := strconv.ParseFloat(s1, 64)
	n2, err2 := strconv.ParseFloat(s2, 64)
	if err1 == nil && err2 == nil && n1 == n2 {
		return 1.0
	}
	return 0.0
}

// AddressSimilarity is the Jaccard index of the whitespace-separated token
// sets. Two empty addresses share nothing and score 0.
type AddressSimilarity struct{}

func (AddressSimilarity) Calculate(a, b types.Value) float64 {
	return jaccard(strings.Fields(a.OrEmpty()), strings.Fields(b.OrEmpty()))
}

// ExactSimilarity scores 1 for identical non-null strings.
type ExactSimilarity struct{}

func (ExactSimilarity) Calculate(a, b types.Value) float64 {
	if a.Valid && b.Valid && a.Str == b.Str {
		return 1.0
	}
	return 0.0
}

// PhoneticSimilarity scores 1 when both values share a Soundex code.
type PhoneticSimilarity struct{}

func (PhoneticSimilarity) Calculate(a, b types.Value) float64 {
	s1, s2 := strings.TrimSpace(a.OrEmpty()), strings.TrimSpace(b.OrEmpty())
	if s1 == "" || s2 == "" {
		return 0.0
	}
	c1, c2 := matchr.Soundex(s1), matchr.Soundex(s2)
	if c1 != "" && c1 == c2 {
		return 1.0
	}
	return 0.0
}

func levenshteinRatio(s1, s2 string) float64 {
	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	if maxLen == 0 {
		return 1.0
	}
	if s1 == s2 {
		return 1.0
	}
	return clamp(1.0 - float64(matchr.Levenshtein(s1, s2))/float64(maxLen))
}

func jaccard(tokens1, tokens2 []string) float64 {
	set := make(map[string]uint8, len(tokens1)+len(tokens2))
	for _, t := range tokens1 {
		set[t] |= 1
	}
	for _, t := range tokens2 {
		set[t] |= 2
	}
	if len(set) == 0 {
		return 0.0
	}
	shared := 0
	for _, bits := range set {
		if bits == 3 {
			shared++
		}
	}
	return float64(shared) / float64(len(set))
}

// clamp pins floating-point drift back into [0, 1].
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0.0
	case v > 1:
		return 1.0
	default:
		return v
	}
}
