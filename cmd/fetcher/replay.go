package main

import (
	"fmt"
	"os"
	"time"

	"go-linkedin-fetcher/internal/htmlsession"
	"go-linkedin-fetcher/internal/reporter"
	"go-linkedin-fetcher/internal/scraper"
	"go-linkedin-fetcher/internal/scraper/linkedin"

	"github.com/spf13/cobra"
)

var replayCMD = &cobra.Command{
	Use:   "replay <saved-results.html>",
	Short: "Extract job cards from a saved results page",
	Long: `replay runs the card extractor over a results page saved from the
browser, without logging in. Useful for checking selectors after LinkedIn
changes its markup.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCMD.Flags().IntP("max", "n", 50, "maximum number of jobs to extract")
	rootCMD.AddCommand(replayCMD)
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("max")
	if limit <= 0 {
		return fmt.Errorf("--max must be positive: %w", scraper.ErrInvalidCriteria)
	}

	session, err := htmlsession.New(string(data))
	if err != nil {
		return err
	}

	//a saved page does not change, so settle quickly
	timing := linkedin.DefaultTiming()
	timing.StableFor = 50 * time.Millisecond
	timing.PollInterval = 10 * time.Millisecond
	records := linkedin.NewCardExtractor(session, linkedin.DefaultCardQuery, timing, nil).
		ExtractAll(cmd.Context(), limit)

	run := reporter.Run{
		Criteria: scraper.SearchCriteria{MaxResults: limit},
		Result:   linkedin.Result{Records: records, State: linkedin.StateDone},
	}
	return reporter.Console{W: cmd.OutOrStdout()}.Report(cmd.Context(), run)
}
