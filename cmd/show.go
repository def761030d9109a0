package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show both teams' pass networks and shots for a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	matchID, err := parseMatchID(args[0])
	if err != nil {
		return err
	}
	data, err := loadMatchData(matchID)
	if err != nil {
		return err
	}

	report.PrintMatchSummary(os.Stdout, data.Match)
	for _, team := range []string{data.Match.HomeTeam, data.Match.AwayTeam} {
		net, err := aggregator.BuildNetwork(data.Passes, aggregator.NetworkOptions{
			MatchID:       matchID,
			Team:          team,
			RosterSize:    cfg.RosterSize,
			MinLinkCount:  cfg.MinLinkPasses,
			JerseyNumbers: data.JerseyNumbers(team),
		})
		if err != nil {
			return fmt.Errorf("build %s network: %w", team, err)
		}
		printNetwork(os.Stdout, net, cfg.MinLinkPasses)
		fmt.Fprintln(os.Stdout)
		report.PrintShotTable(os.Stdout, aggregator.BuildShotMap(data, team))
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
