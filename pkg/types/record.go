// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math/big"
	"strings"
)

// Value is a single field value. A Value with Valid false is null, which is
// how a missing CSV cell reaches the strategies.
type Value struct {
	Str   string
	Valid bool
}

// String returns a non-null Value holding s.
func String(s string) Value {
	return Value{Str: s, Valid: true}
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// OrEmpty returns the string content, or "" for null.
func (v Value) OrEmpty() string {
	if !v.Valid {
		return ""
	}
	return v.Str
}

// Record is one contact: a unique identifier plus named field values.
// Records are read-only once loaded.
type Record struct {
	// ID is the unique identifier of the record (e.g. "1001").
	ID string `json:"id" yaml:"id"`

	// Fields maps a field name (e.g. "First Name") to its value.
	Fields map[string]Value `json:"fields" yaml:"fields"`
}

// NewRecord builds a Record from plain strings. Use Null() through Fields
// directly when a value is missing.
func NewRecord(id string, fields map[string]string) Record {
	r := Record{ID: id, Fields: make(map[string]Value, len(fields))}
	for k, v := range fields {
		r.Fields[k] = String(v)
	}
	return r
}

// Get returns the value of field and whether the record carries it.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// CompareIDs orders record identifiers. Identifiers that are both base-10
// integers compare numerically; other identifiers compare as text, with
// numeric identifiers first. Numerically equal identifiers with different
// text ("01", "1") fall back to text order, so the order is strict: the result
// is 0 only when a == b.
func CompareIDs(a, b string) int {
	na, aok := parseInteger(a)
	nb, bok := parseInteger(b)
	switch {
	case aok && bok:
		if c := na.Cmp(nb); c != 0 {
			return c
		}
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a, b)
}

func parseInteger(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
