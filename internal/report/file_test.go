package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

func newTestWriter(t *testing.T, at time.Time) (*FileWriter, string) {
	dir := t.TempDir()
	w := NewFileWriter(dir, zerolog.Nop())
	w.now = func() time.Time { return at }
	return w, dir
}

func TestFileName(t *testing.T) {
	at := time.Date(2021, 12, 5, 14, 3, 22, 999, time.Local)
	assert.Equal(t, "github-results-2021-12-05T14:03:22.json", FileName(at))
}

func TestFileWriter_Save(t *testing.T) {
	testCases := []struct {
		name     string
		langs    []string
		expected string
	}{
		{
			name:  "pretty prints with four spaces in first-seen order",
			langs: []string{"Python", "Python", domain.NullLanguage, "Go"},
			expected: `{
    "Python": 2,
    "null": 1,
    "Go": 1
}`,
		},
		{
			name:     "empty tally writes an empty object",
			expected: `{}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			at := time.Date(2021, 12, 5, 14, 3, 22, 0, time.Local)
			w, dir := newTestWriter(t, at)
			results := domain.NewFrequencyMap()
			for _, l := range tc.langs {
				results.Increment(l)
			}

			path, err := w.Save(results)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "github-results-2021-12-05T14:03:22.json"), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(data))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, results.ToMap(), loaded.ToMap())
			assert.Equal(t, results.Languages(), loaded.Languages())
		})
	}
}

func TestFileWriter_SaveSameSecondOverwrites(t *testing.T) {
	w, dir := newTestWriter(t, time.Date(2021, 12, 1, 0, 0, 0, 0, time.Local))

	first := domain.NewFrequencyMap()
	first.Increment("Go")
	_, err := w.Save(first)
	require.NoError(t, err)

	second := domain.NewFrequencyMap()
	second.Increment("Rust")
	path, err := w.Save(second)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Rust": 1}, loaded.ToMap())
}

func TestFileWriter_SaveError(t *testing.T) {
	w := NewFileWriter(filepath.Join(t.TempDir(), "missing"), zerolog.Nop())
	_, err := w.Save(domain.NewFrequencyMap())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Go"]`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
