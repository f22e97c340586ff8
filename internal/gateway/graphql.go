package gateway

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/aoc-langstats/internal/domain"
)

// searchReposQuery fetches one page of repository search results.
type searchReposQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			Repository struct {
				NameWithOwner   string
				PrimaryLanguage *struct {
					Name string
				}
			} `graphql:"... on Repository"`
		}
	} `graphql:"search(query: $query, type: REPOSITORY, first: 100, after: $cursor)"`
}

// GraphQLSearcher searches repositories through the GraphQL API.
type GraphQLSearcher struct {
	client *githubv4.Client
	logger zerolog.Logger
}

// NewGraphQLSearcher creates a GraphQLSearcher on top of httpClient.
func NewGraphQLSearcher(httpClient *http.Client, logger zerolog.Logger) *GraphQLSearcher {
	return &GraphQLSearcher{
		client: githubv4.NewClient(httpClient),
		logger: logger,
	}
}

func (s *GraphQLSearcher) Search(ctx context.Context, term string) iter.Seq2[domain.RepoSummary, error] {
	return func(yield func(domain.RepoSummary, error) bool) {
		variables := map[string]interface{}{"query": githubv4.String(term), "cursor": (*githubv4.String)(nil)}
		for {
			var q searchReposQuery
			if err := s.client.Query(ctx, &q, variables); err != nil {
				yield(domain.RepoSummary{}, wrapGraphQLError(term, err))
				return
			}
			for _, node := range q.Search.Nodes {
				repo := node.Repository
				summary := domain.RepoSummary{FullName: repo.NameWithOwner}
				if repo.PrimaryLanguage != nil {
					name := repo.PrimaryLanguage.Name
					summary.Language = &name
				}
				if !yield(summary, nil) {
					return
				}
			}
			if !q.Search.PageInfo.HasNextPage {
				break
			}
			variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
			s.logger.Debug().Str("term", term).Msg("Fetching next page of repositories...")
		}
		s.logger.Debug().Str("term", term).Msg("Completed fetching repositories.")
	}
}

// wrapGraphQLError maps GitHub's RATE_LIMITED errors and 403 rate limit bodies
// to domain.ErrRateLimited. The GraphQL client only exposes them as text.
func wrapGraphQLError(term string, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limited") {
		return fmt.Errorf("search %q: %w: %w", term, domain.ErrRateLimited, err)
	}
	return fmt.Errorf("failed to execute GraphQL search for %q: %w", term, err)
}
