// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contacts

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/match-score/pkg/types"
)

const sampleCSV = `contactID,name,name1,email,postalZip,address
1,Ciara,French,mollis.lectus.pede@outlook.net,39746,449-6990 Tellus. Rd.
2,Charles,Pacheco,nulla.eget@protonmail.couk,76837,Ap #312-8611 Lacus. Ave
`

var sampleColumns = map[string]string{
	"contactID": "Contact ID",
	"name":      "First Name",
	"name1":     "Last Name",
	"email":     "Email Address",
	"postalZip": "Zip Code",
	"address":   "Address",
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "sample.csv", sampleCSV)

	records, err := LoadCSV(path, LoadOptions{Columns: sampleColumns, IDField: "Contact ID"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "1", r.ID)
	assert.Len(t, r.Fields, 6)
	assert.Equal(t, types.String("Ciara"), r.Fields["First Name"])
	assert.Equal(t, types.String("39746"), r.Fields["Zip Code"])
	assert.Equal(t, types.String("449-6990 Tellus. Rd."), r.Fields["Address"])
	assert.Equal(t, "2", records[1].ID)
}

func TestLoadCSVFileNotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nonexistent.csv"), LoadOptions{IDField: "Contact ID"})
	require.ErrorIs(t, err, ErrFileNotFound)
	assert.Contains(t, err.Error(), "nonexistent.csv")
}

func TestLoadCSVInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no header", ""},
		{"text without identifier", "invalid data without headers"},
		{"ragged rows", "Contact ID,First Name\n1,Ann\n2,Bob,extra\n"},
		{"empty identifier", "Contact ID,First Name\n1,Ann\n,Bob\n"},
		{"duplicate column", "Contact ID,First Name,First Name\n1,Ann,Ann\n"},
		{"bad quoting", "Contact ID,First Name\n1,\"Ann\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "invalid.csv", tt.body)
			_, err := LoadCSV(path, LoadOptions{IDField: "Contact ID"})
			assert.ErrorIs(t, err, ErrInvalidCSV)
		})
	}
}

func TestReadCSVEmptyCellsAreNull(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("Contact ID,Email Address,Zip Code\n1001,,12345\n"), LoadOptions{IDField: "Contact ID"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	v, ok := records[0].Get("Email Address")
	require.True(t, ok, "empty cell still yields the field")
	assert.False(t, v.Valid)
	assert.Equal(t, types.String("12345"), records[0].Fields["Zip Code"])
}

func TestReadCSVColumnMatching(t *testing.T) {
	// Keys arrive lowercased from the config loader; the BOM comes from
	// spreadsheet exports.
	body := "\ufeffcontactID;postalZip;Notes\n 7 ;01234;vip\n"
	records, err := ReadCSV(strings.NewReader(body), LoadOptions{
		Columns:   map[string]string{"contactid": "Contact ID", "postalzip": "Zip Code"},
		Delimiter: ';',
		IDField:   "contact id",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "7", records[0].ID)
	assert.Equal(t, types.String("01234"), records[0].Fields["Zip Code"])
	assert.Equal(t, types.String("vip"), records[0].Fields["Notes"], "unmapped headers keep their name")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("Contact ID,First Name\n"), LoadOptions{IDField: "Contact ID"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func sampleResults() []types.MatchResult {
	return []types.MatchResult{
		{SourceID: "1001", MatchID: "1002", Accuracy: types.AccuracyHigh, Score: 0.966},
		{SourceID: "1001", MatchID: "1003", Accuracy: types.AccuracyLow, Score: 0.106},
	}
}

func TestWriteResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, sampleResults()))
	assert.Equal(t,
		"ContactID Source,ContactID Match,Accuracy\n1001,1002,High\n1001,1003,Low\n",
		buf.String())
}

func TestWriteResultsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, nil))
	assert.Equal(t, "ContactID Source,ContactID Match,Accuracy\n", buf.String())
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, sampleResults()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1001", got[0]["source_id"])
	assert.Equal(t, "1002", got[0]["match_id"])
	assert.Equal(t, "High", got[0]["accuracy"])
	assert.InDelta(t, 0.966, got[0]["score"], 1e-9)

	buf.Reset()
	require.NoError(t, ExportJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, sampleResults()))

	var got []types.MatchResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleResults(), got)
	assert.Contains(t, buf.String(), "source_id: \"1001\"")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []Format{FormatCSV, FormatJSON, FormatYAML} {
		path := filepath.Join(dir, "output."+string(format))
		require.NoError(t, Write(path, format, sampleResults()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "1003", "format %s", format)
	}

	err := Write(filepath.Join(dir, "missing", "output.csv"), FormatCSV, nil)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatCSV},
		{"CSV", FormatCSV},
		{"json", FormatJSON},
		{"yml", FormatYAML},
		{" yaml ", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}
