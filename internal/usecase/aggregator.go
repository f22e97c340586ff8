// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
	"github.com/naka-gawa/aoc-langstats/internal/gateway"
)

// RateLimitPause is how long the aggregator waits after a search term is rate limited.
const RateLimitPause = 60 * time.Second

// Sleeper pauses the pipeline.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Aggregator is the use case for tallying repository languages.
// It walks the search results of every term and counts primary languages.
type Aggregator struct {
	searcher gateway.Searcher
	sleeper  Sleeper
	logger   zerolog.Logger
	dedup    bool
}

// AggregatorOption customizes an Aggregator.
type AggregatorOption func(*Aggregator)

// WithSleeper replaces the timer used for the rate limit pause.
func WithSleeper(s Sleeper) AggregatorOption {
	return func(a *Aggregator) { a.sleeper = s }
}

// WithDedup counts each repository once even if several terms match it.
func WithDedup(enabled bool) AggregatorOption {
	return func(a *Aggregator) { a.dedup = enabled }
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(searcher gateway.Searcher, logger zerolog.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		searcher: searcher,
		sleeper:  TimerSleeper{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CombineSearchTermResults searches every term and returns the language tally.
//
// A rate limited term costs one RateLimitPause and the rest of its results;
// the remaining terms are still searched. Any other error aborts the run.
func (a *Aggregator) CombineSearchTermResults(ctx context.Context, terms []string) (*domain.FrequencyMap, error) {
	a.logger.Debug().Int("terms", len(terms)).Msg("Usecase: Starting language aggregation...")

	handles := make([]iter.Seq2[domain.RepoSummary, error], 0, len(terms))
	for _, term := range terms {
		handles = append(handles, a.searcher.Search(ctx, term))
	}

	results := domain.NewFrequencyMap()
	seen := make(map[string]struct{})
	for i, handle := range handles {
		a.logger.Info().Msgf("[%d/%d] Searching repositories for %q...", i+1, len(handles), terms[i])
		for summary, err := range handle {
			if errors.Is(err, domain.ErrRateLimited) {
				a.logger.Warn().Err(err).Dur("pause", RateLimitPause).Msg("Rate limited, skipping the rest of this term")
				if err := a.sleeper.Sleep(ctx, RateLimitPause); err != nil {
					return nil, fmt.Errorf("rate limit pause interrupted: %w", err)
				}
				break
			}
			if err != nil {
				return nil, err
			}
			if a.dedup && summary.FullName != "" {
				if _, ok := seen[summary.FullName]; ok {
					continue
				}
				seen[summary.FullName] = struct{}{}
			}
			results.Increment(summary.LanguageKey())
		}
	}

	a.logger.Debug().Int("languages", results.Len()).Int("repositories", results.Total()).Msg("Usecase: Aggregation complete.")
	return results, nil
}
