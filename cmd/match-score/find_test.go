// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/match-score/internal/config"
	"github.com/pdiddy/match-score/internal/contacts"
	"github.com/pdiddy/match-score/internal/store"
	"github.com/pdiddy/match-score/pkg/types"
)

const contacts1 = `contactID,name,name1,email,postalZip,address
1001,John,Doe,john.doe@example.com,12345,123 Main St
1002,Jon,Doe,jon.doe@example.com,12345,123 Main St
1003,Alice,Smith,alice.smith@example.com,67890,456 Elm St
`

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunPipeline(t *testing.T) {
	input := writeInput(t, "contacts1.csv", contacts1)
	output := filepath.Join(t.TempDir(), "output.csv")

	var stdout bytes.Buffer
	results, err := runPipeline(context.Background(), config.Default(),
		findOptions{Input: input, Output: output, Format: contacts.FormatCSV, MinAccuracy: types.AccuracyLow},
		zap.NewNop(), &stdout)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, types.AccuracyHigh, results[0].Accuracy)
	assert.InDelta(t, 0.9667, results[0].Score, 0.001)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"ContactID Source,ContactID Match,Accuracy\n1001,1002,High\n1001,1003,Low\n1002,1003,Low\n",
		string(data))
	assert.Contains(t, stdout.String(), "Results saved to "+output)
}

func TestRunPipelineMinAccuracyAndStore(t *testing.T) {
	input := writeInput(t, "contacts1.csv", contacts1)
	dir := t.TempDir()
	output := filepath.Join(dir, "output.json")

	cfg := config.Default()
	cfg.Workers = 3
	cfg.Store.Path = filepath.Join(dir, "results.db")

	var stdout bytes.Buffer
	results, err := runPipeline(context.Background(), cfg,
		findOptions{Input: input, Output: output, Format: contacts.FormatJSON, MinAccuracy: types.AccuracyHigh},
		zap.NewNop(), &stdout)
	require.NoError(t, err)
	assert.Len(t, results, 3, "all pairs are returned; only the file is filtered")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"match_id": "1002"`)
	assert.NotContains(t, string(data), `"match_id": "1003"`)

	st, err := store.NewStore(cfg.Store)
	require.NoError(t, err)
	defer st.Close()
	run, stored, err := st.Results(context.Background(), store.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, input, run.Input)
	assert.Equal(t, results, stored)
	assert.Contains(t, stdout.String(), run.ID)
}

func TestRunPipelineUnmappedFileWarns(t *testing.T) {
	input := writeInput(t, "crm.csv", `Contact ID,First Name,Last Name,Email Address,Zip Code,Address
1,Ann,Lee,ann@x.com,1,1 A St
2,Ann,Lee,ann@x.com,1,1 A St
`)
	core, logs := observer.New(zapcore.WarnLevel)

	results, err := runPipeline(context.Background(), config.Default(),
		findOptions{Input: input, Output: filepath.Join(t.TempDir(), "out.csv"), Format: contacts.FormatCSV},
		zap.New(core), &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.AccuracyHigh, results[0].Accuracy)
	assert.Equal(t, 1, logs.FilterMessageSnippet("no column mapping").Len())
}

func TestRunPipelineErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := runPipeline(context.Background(), config.Default(),
		findOptions{Input: filepath.Join(t.TempDir(), "missing.csv"), Output: out},
		zap.NewNop(), &bytes.Buffer{})
	assert.ErrorIs(t, err, contacts.ErrFileNotFound)

	input := writeInput(t, "contacts1.csv", contacts1)
	_, err = runPipeline(context.Background(), config.Default(),
		findOptions{Input: input, Dataset: "unknown", Output: out},
		zap.NewNop(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "no column mapping")

	_, err = runPipeline(context.Background(), config.Default(), findOptions{Output: out}, zap.NewNop(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestBuildMatcherWarnsOnUncalibratedWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Fields[2].Weight = 1.0
	core, logs := observer.New(zapcore.WarnLevel)

	_, err := buildMatcher(cfg, zap.New(core))
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.InDelta(t, 1.6, logs.All()[0].ContextMap()["total_weight"], 1e-9)

	cfg.NormalizeWeights = true
	logs.TakeAll()
	_, err = buildMatcher(cfg, zap.New(core))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestPrintHelpers(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printSummary(&buf, types.MatchSummary{Pairs: 3, High: 1, Low: 2})
	assert.Contains(t, buf.String(), "3 pairs: High 1  Medium 0  Low 2")

	buf.Reset()
	printResults(&buf, []types.MatchResult{{SourceID: "1001", MatchID: "1002", Accuracy: types.AccuracyHigh, Score: 0.96666}})
	assert.Contains(t, buf.String(), "High    0.967")
	assert.Contains(t, buf.String(), "1 results")

	buf.Reset()
	printResults(&buf, nil)
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	printStrategies(&buf)
	assert.Contains(t, buf.String(), "phonetic")
	assert.Contains(t, buf.String(), "zip")

	assert.Equal(t, "abcde...", truncate("abcdefghijk", 8))
	assert.Equal(t, "abc", truncate("abc", 8))
}
