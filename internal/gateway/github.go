// Package gateway provides a gateway to the GitHub search API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

// perPage is the page size requested from both APIs.
const perPage = 100

// Searcher defines the behavior of a gateway for searching repositories on GitHub.
//
// Search does no I/O by itself. The returned sequence fetches pages on demand
// and yields at most one non-nil error, after which it stops.
type Searcher interface {
	Search(ctx context.Context, term string) iter.Seq2[domain.RepoSummary, error]
}

// NewHTTPClient builds the HTTP client shared by the REST and GraphQL searchers.
// Secondary rate limits shorter than secondaryWait are slept through by the
// transport; anything longer is handed back to the caller as an error.
func NewHTTPClient(token string, secondaryWait time.Duration, logger zerolog.Logger) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithLimitDetectedCallback(func(cbCtx *github_ratelimit.CallbackContext) {
			event := logger.Warn()
			if cbCtx.SleepUntil != nil {
				event = event.Time("sleep_until", *cbCtx.SleepUntil)
			}
			event.Msg("Secondary rate limit detected")
		}),
		github_ratelimit.WithSingleSleepLimit(secondaryWait, func(cbCtx *github_ratelimit.CallbackContext) {
			logger.Warn().Dur("limit", secondaryWait).Msg("Secondary rate limit wait exceeds limit, giving up")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	if token == "" {
		logger.Warn().Msg("No GitHub token configured, searching unauthenticated")
		return &http.Client{Transport: rateLimitWaiter}, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// RESTSearcher searches repositories through the REST API.
type RESTSearcher struct {
	client *github.Client
	logger zerolog.Logger
}

// NewRESTSearcher creates a RESTSearcher on top of httpClient.
func NewRESTSearcher(httpClient *http.Client, logger zerolog.Logger) *RESTSearcher {
	return &RESTSearcher{
		client: github.NewClient(httpClient),
		logger: logger,
	}
}

func (s *RESTSearcher) Search(ctx context.Context, term string) iter.Seq2[domain.RepoSummary, error] {
	return func(yield func(domain.RepoSummary, error) bool) {
		opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: perPage}}
		for {
			result, resp, err := s.client.Search.Repositories(ctx, term, opts)
			if err != nil {
				yield(domain.RepoSummary{}, wrapRESTError(term, err))
				return
			}
			for _, repo := range result.Repositories {
				summary := domain.RepoSummary{FullName: repo.GetFullName(), Language: repo.Language}
				if !yield(summary, nil) {
					return
				}
			}
			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
			s.logger.Debug().Str("term", term).Int("page", opts.Page).Msg("Fetching next page of repositories...")
		}
		s.logger.Debug().Str("term", term).Msg("Completed fetching repositories.")
	}
}

func wrapRESTError(term string, err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("search %q: %w: %w", term, domain.ErrRateLimited, err)
	}
	return fmt.Errorf("failed to search repositories with REST API for %q: %w", term, err)
}
