package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/aoc-langstats/internal/config"
	"github.com/naka-gawa/aoc-langstats/internal/domain"
	"github.com/naka-gawa/aoc-langstats/internal/gateway"
	"github.com/naka-gawa/aoc-langstats/internal/report"
	"github.com/naka-gawa/aoc-langstats/internal/usecase"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Ranks the languages of Advent of Code 2021 repositories on GitHub",
	Long: `Searches GitHub for every spelling of "Advent of Code 2021", counts the primary
language of each matching repository, saves the counts to
github-results-<timestamp>.json and prints the languages, most used first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(verbose, os.Stderr)

		api, _ := cmd.Flags().GetString("api")
		save, _ := cmd.Flags().GetBool("save")
		compact, _ := cmd.Flags().GetBool("compact")
		dedup, _ := cmd.Flags().GetBool("dedup")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		httpClient, err := gateway.NewHTTPClient(cfg.GitHub.Token, cfg.GitHub.SecondaryLimitWait, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub client: %v\n", err)
			os.Exit(1)
		}
		searcher, err := newSearcher(api, httpClient, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pipeline := usecase.NewPipeline(
			usecase.NewAggregator(searcher, logger, usecase.WithDedup(dedup)),
			report.NewFileWriter("", logger),
			logger,
		)

		if _, err := pipeline.Run(ctx, domain.SearchTerms(), rankOptions(cmd.OutOrStdout(), save, compact)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rank languages: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().String("api", "rest", "GitHub API to search with (rest or graphql)")
	rankCmd.Flags().Bool("save", true, "Save the language counts to github-results-<timestamp>.json")
	rankCmd.Flags().Bool("compact", false, "Print languages without a separator")
	rankCmd.Flags().Bool("dedup", false, "Count a repository once even if several search terms match it")
}

// newSearcher selects the gateway implementation for api.
func newSearcher(api string, httpClient *http.Client, logger zerolog.Logger) (gateway.Searcher, error) {
	switch api {
	case "rest":
		return gateway.NewRESTSearcher(httpClient, logger), nil
	case "graphql":
		return gateway.NewGraphQLSearcher(httpClient, logger), nil
	default:
		return nil, fmt.Errorf("unknown api %q, want rest or graphql", api)
	}
}

func rankOptions(out io.Writer, save, compact bool) usecase.Options {
	opts := usecase.Options{Out: out, Delimiter: "\n", Persist: save}
	if compact {
		opts.Delimiter = ""
	}
	return opts
}
