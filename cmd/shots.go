package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/render"
	"github.com/pable/go-sb-charts/internal/report"
)

var (
	shotsTeam string
	shotsOut  string
)

var shotsCmd = &cobra.Command{
	Use:   "shots <match-id>",
	Short: "Draw a team's shot map for a stored match",
	Long: `Plots every shot of one team on the attacked half, sized by expected
goals, with goals highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: runShots,
}

func init() {
	shotsCmd.Flags().StringVar(&shotsTeam, "team", "home", "home, away or a team name")
	shotsCmd.Flags().StringVar(&shotsOut, "out", "", "SVG output path (default shots_<match>_<team>.svg)")
}

func runShots(cmd *cobra.Command, args []string) error {
	matchID, err := parseMatchID(args[0])
	if err != nil {
		return err
	}
	data, err := loadMatchData(matchID)
	if err != nil {
		return err
	}
	team, err := resolveTeam(data.Match, shotsTeam)
	if err != nil {
		return err
	}

	m := aggregator.BuildShotMap(data, team)
	report.PrintMatchSummary(os.Stdout, data.Match)
	report.PrintShotTable(os.Stdout, m)

	out := shotsOut
	if out == "" {
		out = fmt.Sprintf("shots_%d_%s.svg", matchID, slug(team))
	}
	if err := render.WriteFile(out, func(w io.Writer) error {
		return render.ShotMap(w, m)
	}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nWrote %s\n", out)
	return nil
}
