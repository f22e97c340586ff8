package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

// Persister stores a language tally and reports where it went.
type Persister interface {
	Save(results *domain.FrequencyMap) (string, error)
}

// Options controls what a pipeline run does with its results.
type Options struct {
	// Out receives the ranked languages.
	Out io.Writer
	// Delimiter is written after every language. Empty concatenates them.
	Delimiter string
	// Persist saves the tally before ranking.
	Persist bool
}

// Pipeline runs search, aggregation, persistence and ranking once.
type Pipeline struct {
	aggregator *Aggregator
	persister  Persister
	logger     zerolog.Logger
}

// NewPipeline wires a Pipeline.
func NewPipeline(aggregator *Aggregator, persister Persister, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		persister:  persister,
		logger:     logger,
	}
}

// Run executes the pipeline for terms and returns the ranked languages it wrote.
func (p *Pipeline) Run(ctx context.Context, terms []string, opts Options) ([]string, error) {
	results, err := p.aggregator.CombineSearchTermResults(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate search results: %w", err)
	}

	summary, err := Summarize(results)
	if err != nil {
		return nil, err
	}
	p.logger.Info().
		Int("repositories", summary.Repositories).
		Int("languages", summary.Languages).
		Float64("median", summary.Median).
		Str("top_language", summary.TopLanguage).
		Float64("top_share_percent", summary.TopShare).
		Msg("Aggregated search results")

	if opts.Persist {
		path, err := p.persister.Save(results)
		if err != nil {
			return nil, fmt.Errorf("failed to save results: %w", err)
		}
		p.logger.Info().Str("path", path).Msg("Saved results")
	}

	ranked := RankLanguages(results)
	if opts.Out != nil {
		for _, lang := range ranked {
			if _, err := io.WriteString(opts.Out, lang+opts.Delimiter); err != nil {
				return nil, fmt.Errorf("failed to write ranking: %w", err)
			}
		}
	}
	return ranked, nil
}
