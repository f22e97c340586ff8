// Package report persists language tallies as JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

const (
	filePrefix = "github-results-"
	// timestampLayout is ISO-8601 local time at second precision, without an offset.
	timestampLayout = "2006-01-02T15:04:05"
	indent          = "    "
)

// FileWriter writes each tally to a new timestamped file in a directory.
type FileWriter struct {
	dir    string
	now    func() time.Time
	logger zerolog.Logger
}

// NewFileWriter creates a FileWriter for dir. An empty dir means the working directory.
func NewFileWriter(dir string, logger zerolog.Logger) *FileWriter {
	return &FileWriter{
		dir:    dir,
		now:    time.Now,
		logger: logger,
	}
}

// FileName returns the name used for a tally saved at t.
func FileName(t time.Time) string {
	return filePrefix + t.Local().Format(timestampLayout) + ".json"
}

// Save writes results and returns the path of the file.
// A file written within the same second as a previous one replaces it.
func (w *FileWriter) Save(results *domain.FrequencyMap) (string, error) {
	data, err := json.MarshalIndent(results, "", indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	path := filepath.Join(w.dir, FileName(w.now()))
	w.logger.Debug().Str("path", path).Int("languages", results.Len()).Msg("Writing results file...")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a tally previously written by Save.
func Load(path string) (*domain.FrequencyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	results := domain.NewFrequencyMap()
	if err := json.Unmarshal(data, results); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return results, nil
}
