// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// FieldConfig binds one record field to a similarity strategy and weight.
type FieldConfig struct {
	// Name is the standardized field name (e.g. "Email Address").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Strategy is the similarity kind: name, email, zip, address, exact, or phonetic.
	Strategy string `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// Weight is the contribution of this field to the aggregate score.
	Weight float64 `json:"weight" yaml:"weight" mapstructure:"weight"`

	// Normalize applies Unicode NFKC folding and trimming before comparison.
	Normalize bool `json:"normalize,omitempty" yaml:"normalize,omitempty" mapstructure:"normalize"`

	// IgnoreCase lower-cases values before comparison. Implies Normalize.
	IgnoreCase bool `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty" mapstructure:"ignore_case"`
}

// ThresholdConfig holds the lower bounds of the High and Medium labels.
type ThresholdConfig struct {
	High   float64 `json:"high" yaml:"high" mapstructure:"high"`
	Medium float64 `json:"medium" yaml:"medium" mapstructure:"medium"`
}

// DatasetConfig describes how to read one input file.
type DatasetConfig struct {
	// Name is the input file base name the mapping applies to (e.g. "contacts1.csv").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Columns maps input CSV column names to standardized field names.
	// Column names match case-insensitively.
	Columns map[string]string `json:"columns" yaml:"columns" mapstructure:"columns"`

	// Delimiter is the CSV separator (default ",").
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty" mapstructure:"delimiter"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// StoreConfig holds settings for the SQLite result store.
type StoreConfig struct {
	// Path is the database file. Empty disables the store for find runs.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default limit for result queries (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// MatchConfig groups everything a matching run needs.
type MatchConfig struct {
	// IDField is the standardized name of the identifier column.
	IDField string `json:"id_field" yaml:"id_field" mapstructure:"id_field"`

	// Fields lists the weighted fields and their strategies.
	Fields []FieldConfig `json:"fields" yaml:"fields" mapstructure:"fields"`

	// Thresholds sets the categorizer cut-offs.
	Thresholds ThresholdConfig `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`

	// NormalizeWeights divides the weighted sum by the total weight.
	NormalizeWeights bool `json:"normalize_weights" yaml:"normalize_weights" mapstructure:"normalize_weights"`

	// Workers is the number of goroutines scoring pairs (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Datasets lists the known input files and their column mappings.
	Datasets []DatasetConfig `json:"datasets" yaml:"datasets" mapstructure:"datasets"`

	Log   LogConfig   `json:"log" yaml:"log" mapstructure:"log"`
	Store StoreConfig `json:"store" yaml:"store" mapstructure:"store"`
}

// Weights returns the field weight table.
func (c MatchConfig) Weights() map[string]float64 {
	w := make(map[string]float64, len(c.Fields))
	for _, f := range c.Fields {
		w[f.Name] = f.Weight
	}
	return w
}

// Dataset returns the dataset config whose name matches name case-insensitively.
func (c MatchConfig) Dataset(name string) (DatasetConfig, bool) {
	for _, d := range c.Datasets {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return DatasetConfig{}, false
}
