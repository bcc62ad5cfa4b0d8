// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and validates the matching configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/match-score/internal/score"
	"github.com/pdiddy/match-score/internal/similarity"
	"github.com/pdiddy/match-score/pkg/types"
)

// EnvPrefix prefixes environment overrides (e.g. MATCH_SCORE_WORKERS).
const EnvPrefix = "MATCH_SCORE"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the reference configuration: five contact fields whose
// weights sum to 1.0, the 0.8 / 0.6 thresholds, and the column mappings of
// the two known contact exports.
func Default() types.MatchConfig {
	return types.MatchConfig{
		IDField:    "Contact ID",
		Fields:     DefaultFields(),
		Thresholds: types.ThresholdConfig{High: score.DefaultHighThreshold, Medium: score.DefaultMediumThreshold},
		Workers:    1,
		Datasets:   DefaultDatasets(),
		Log:        types.LogConfig{Level: "info", Format: "console"},
		Store:      types.StoreConfig{MaxResults: 100},
	}
}

// DefaultFields returns the reference field table.
func DefaultFields() []types.FieldConfig {
	return []types.FieldConfig{
		{Name: "First Name", Strategy: "name", Weight: 0.2},
		{Name: "Last Name", Strategy: "name", Weight: 0.2},
		{Name: "Email Address", Strategy: "email", Weight: 0.4},
		{Name: "Zip Code", Strategy: "zip", Weight: 0.1},
		{Name: "Address", Strategy: "address", Weight: 0.1},
	}
}

// DefaultDatasets returns the column mappings of the known contact exports.
func DefaultDatasets() []types.DatasetConfig {
	return []types.DatasetConfig{
		{
			Name: "contacts1.csv",
			Columns: map[string]string{
				"contactID": "Contact ID",
				"name":      "First Name",
				"name1":     "Last Name",
				"email":     "Email Address",
				"postalZip": "Zip Code",
				"address":   "Address",
			},
		},
		{
			Name: "contacts2.csv",
			Columns: map[string]string{
				"Contact ID":    "Contact ID",
				"First Name":    "First Name",
				"Last Name":     "Last Name",
				"Email Address": "Email Address",
				"Zip Code":      "Zip Code",
				"Address":       "Address",
			},
		},
	}
}

// SetDefaults registers scalar defaults on v so environment overrides and
// partial config files resolve against the reference values.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("id_field", d.IDField)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("normalize_weights", d.NormalizeWeights)
	v.SetDefault("thresholds.high", d.Thresholds.High)
	v.SetDefault("thresholds.medium", d.Thresholds.Medium)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.max_results", d.Store.MaxResults)
}

// Load decodes the configuration held by v, fills the field table and
// datasets from Default when the file leaves them out, and validates the
// result.
func Load(v *viper.Viper) (types.MatchConfig, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg types.MatchConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.MatchConfig{}, fmt.Errorf("%w: decoding: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = DefaultFields()
	}
	if len(cfg.Datasets) == 0 {
		cfg.Datasets = DefaultDatasets()
	}
	if err := Validate(cfg); err != nil {
		return types.MatchConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first problem in cfg, wrapped in ErrInvalidConfig.
func Validate(cfg types.MatchConfig) error {
	if strings.TrimSpace(cfg.IDField) == "" {
		return fmt.Errorf("%w: id_field is required", ErrInvalidConfig)
	}
	if len(cfg.Fields) == 0 {
		return fmt.Errorf("%w: at least one weighted field is required", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(cfg.Fields))
	for i, f := range cfg.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: fields[%d] has no name", ErrInvalidConfig, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: field %q listed twice", ErrInvalidConfig, f.Name)
		}
		seen[f.Name] = true
		if f.Weight < 0 || math.IsNaN(f.Weight) || math.IsInf(f.Weight, 0) {
			return fmt.Errorf("%w: field %q weight %v must be a non-negative number", ErrInvalidConfig, f.Name, f.Weight)
		}
		if _, err := similarity.New(f.Strategy); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidConfig, f.Name, err)
		}
	}

	if _, err := score.NewCategorizer(cfg.Thresholds.High, cfg.Thresholds.Medium); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	for i, d := range cfg.Datasets {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: datasets[%d] has no name", ErrInvalidConfig, i)
		}
		if len([]rune(d.Delimiter)) > 1 {
			return fmt.Errorf("%w: dataset %q delimiter must be a single character", ErrInvalidConfig, d.Name)
		}
	}
	return nil
}

// TotalWeight sums the field weights.
func TotalWeight(cfg types.MatchConfig) float64 {
	var total float64
	for _, f := range cfg.Fields {
		total += f.Weight
	}
	return total
}

// Calibrated reports whether the weights sum to 1.0 or are normalized, the
// two cases in which the fixed thresholds keep their meaning.
func Calibrated(cfg types.MatchConfig) bool {
	return cfg.NormalizeWeights || math.Abs(TotalWeight(cfg)-1.0) < 1e-9
}
