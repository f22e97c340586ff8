package usecase

import (
	"sort"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

// RankLanguages orders languages by count, most common first.
// Ties keep the order in which the languages were first counted.
func RankLanguages(results *domain.FrequencyMap) []string {
	ranked := results.Languages()
	sort.SliceStable(ranked, func(i, j int) bool {
		return results.Count(ranked[i]) > results.Count(ranked[j])
	})
	return ranked
}
