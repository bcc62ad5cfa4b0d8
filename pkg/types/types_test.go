// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric less", "999", "1002", -1},
		{"numeric greater", "1003", "1002", 1},
		{"equal", "1001", "1001", 0},
		{"text", "abc", "abd", -1},
		{"numeric before text", "42", "a1", -1},
		{"text after numeric", "a1", "42", 1},
		{"leading zero breaks tie by text", "01", "1", -1},
		{"negative numbers", "-5", "3", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareIDs(tt.a, tt.b))
			assert.Equal(t, -tt.want, CompareIDs(tt.b, tt.a), "order must be antisymmetric")
		})
	}
}

func TestCompareIDsSortsMixedIdentifiers(t *testing.T) {
	ids := []string{"b", "10", "2", "a", "1"}
	sort.Slice(ids, func(i, j int) bool { return CompareIDs(ids[i], ids[j]) < 0 })
	assert.Equal(t, []string{"1", "2", "10", "a", "b"}, ids)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "", Null().OrEmpty())
	assert.False(t, Null().Valid)
	assert.Equal(t, "x", String("x").OrEmpty())
	assert.True(t, String("").Valid)
}

func TestNewRecord(t *testing.T) {
	r := NewRecord("7", map[string]string{"Email Address": "a@b.com"})
	v, ok := r.Get("Email Address")
	require.True(t, ok)
	assert.Equal(t, String("a@b.com"), v)

	_, ok = r.Get("Zip Code")
	assert.False(t, ok)
}

func TestParseAccuracy(t *testing.T) {
	for in, want := range map[string]Accuracy{
		"High": AccuracyHigh, "medium": AccuracyMedium, " LOW ": AccuracyLow,
	} {
		got, err := ParseAccuracy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseAccuracy("certain")
	assert.Error(t, err)
}

func TestAccuracyRank(t *testing.T) {
	assert.Less(t, AccuracyLow.Rank(), AccuracyMedium.Rank())
	assert.Less(t, AccuracyMedium.Rank(), AccuracyHigh.Rank())
	assert.Equal(t, 0, Accuracy("other").Rank())
}

func TestMatchConfigDataset(t *testing.T) {
	cfg := MatchConfig{Datasets: []DatasetConfig{{Name: "contacts1.csv"}}}

	d, ok := cfg.Dataset("Contacts1.CSV")
	require.True(t, ok)
	assert.Equal(t, "contacts1.csv", d.Name)

	_, ok = cfg.Dataset("other.csv")
	assert.False(t, ok)
}
