package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/report"
)

var (
	matchesCompetition int
	matchesSeason      int
)

// matchesCmd lists what the source offers for a season, without storing anything.
var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches of a competition season available at the source",
	Args:  cobra.NoArgs,
	RunE:  runMatches,
}

func init() {
	matchesCmd.Flags().IntVar(&matchesCompetition, "competition", 0, "competition id (default from config)")
	matchesCmd.Flags().IntVar(&matchesSeason, "season", 0, "season id (default from config)")
}

func runMatches(cmd *cobra.Command, args []string) error {
	competition, season := cfg.CompetitionID, cfg.SeasonID
	if matchesCompetition > 0 {
		competition = matchesCompetition
	}
	if matchesSeason > 0 {
		season = matchesSeason
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	matches, err := newSource().Matches(ctx, competition, season)
	if err != nil {
		return fmt.Errorf("list source matches: %w", err)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Date < matches[j].Date })

	report.PrintMatchList(os.Stdout, matches)
	fmt.Fprintf(os.Stdout, "\n(%d matches)\n", len(matches))
	return nil
}
