package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

// Summary describes the shape of a language tally.
type Summary struct {
	Repositories int     `json:"repositories"`
	Languages    int     `json:"languages"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	TopLanguage  string  `json:"top_language"`
	TopShare     float64 `json:"top_share_percent"`
}

// Summarize computes descriptive statistics over the per-language counts.
// An empty tally yields a zero Summary.
func Summarize(results *domain.FrequencyMap) (Summary, error) {
	if results.Len() == 0 {
		return Summary{}, nil
	}
	ranked := RankLanguages(results)
	data := make(stats.Float64Data, 0, len(ranked))
	for _, lang := range ranked {
		data = append(data, float64(results.Count(lang)))
	}

	total, err := stats.Sum(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to sum counts: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	share, err := stats.Round(data[0]/total*100, 2)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to round share: %w", err)
	}

	return Summary{
		Repositories: int(total),
		Languages:    len(ranked),
		Mean:         mean,
		Median:       median,
		TopLanguage:  ranked[0],
		TopShare:     share,
	}, nil
}
