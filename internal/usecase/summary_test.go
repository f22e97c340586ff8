package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

func TestSummarize(t *testing.T) {
	summary, err := Summarize(tally("Python", "Python", domain.NullLanguage, "Go"))
	require.NoError(t, err)
	assert.Equal(t, Summary{
		Repositories: 4,
		Languages:    3,
		Mean:         4.0 / 3.0,
		Median:       1,
		TopLanguage:  "Python",
		TopShare:     50,
	}, summary)
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := Summarize(domain.NewFrequencyMap())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}
