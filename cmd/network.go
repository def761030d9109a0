package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/logging"
	"github.com/pable/go-sb-charts/internal/model"
	"github.com/pable/go-sb-charts/internal/render"
	"github.com/pable/go-sb-charts/internal/report"
	"github.com/pable/go-sb-charts/internal/storage"
)

var (
	networkTeam       string
	networkMinPasses  int
	networkRosterSize int
	networkOut        string
)

var networkCmd = &cobra.Command{
	Use:   "network <match-id>",
	Short: "Draw a team's pass network for a stored match",
	Long: `Builds the pass network of the starting eleven: each player's average
position and every pair that exchanged more than --min-passes passes.
Prints both tables and writes an SVG diagram.

Examples:
  sbcharts network 3895302
  sbcharts network 3895302 --team away --min-passes 3 --out bremen.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runNetwork,
}

func init() {
	networkCmd.Flags().StringVar(&networkTeam, "team", "home", "home, away or a team name")
	networkCmd.Flags().IntVar(&networkMinPasses, "min-passes", 0, "keep links with more than this many passes (default from config)")
	networkCmd.Flags().IntVar(&networkRosterSize, "roster-size", 0, "players in the derived starting roster (default from config)")
	networkCmd.Flags().StringVar(&networkOut, "out", "", "SVG output path (default network_<match>_<team>.svg)")
}

func runNetwork(cmd *cobra.Command, args []string) error {
	matchID, err := parseMatchID(args[0])
	if err != nil {
		return err
	}

	data, err := loadMatchData(matchID)
	if err != nil {
		return err
	}
	team, err := resolveTeam(data.Match, networkTeam)
	if err != nil {
		return err
	}

	minPasses := linkThreshold(cmd)
	rosterSize := cfg.RosterSize
	if networkRosterSize > 0 {
		rosterSize = networkRosterSize
	}

	net, err := aggregator.BuildNetwork(data.Passes, aggregator.NetworkOptions{
		MatchID:       matchID,
		Team:          team,
		RosterSize:    rosterSize,
		MinLinkCount:  minPasses,
		JerseyNumbers: data.JerseyNumbers(team),
	})
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}
	logging.Default().Debug("built pass network", "match_id", matchID, "team", team,
		"roster", len(net.Roster), "links", len(net.Links), "min_passes", minPasses)

	report.PrintMatchSummary(os.Stdout, data.Match)
	printNetwork(os.Stdout, net, minPasses)

	out := networkOut
	if out == "" {
		out = fmt.Sprintf("network_%d_%s.svg", matchID, slug(team))
	}
	title := fmt.Sprintf("%s passing network vs %s", team, data.Match.Opponent(team))
	if err := render.WriteFile(out, func(w io.Writer) error {
		return render.PassNetwork(w, net, title)
	}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nWrote %s\n", out)
	return nil
}

// linkThreshold is --min-passes when given on the command line, else the config value.
func linkThreshold(cmd *cobra.Command) int {
	if cmd.Flags().Changed("min-passes") {
		return networkMinPasses
	}
	return cfg.MinLinkPasses
}

func printNetwork(w io.Writer, net *model.Network, minPasses int) {
	fmt.Fprintf(w, "=== %s: average positions ===\n", net.Team)
	report.PrintPositionTable(w, net)
	fmt.Fprintf(w, "\n=== %s: pass links (> %d) ===\n", net.Team, minPasses)
	report.PrintLinkTable(w, net, minPasses)
}

// loadMatchData reads a stored match, pointing at fetch when it is missing.
func loadMatchData(matchID int64) (*model.MatchData, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	data, err := db.GetMatchData(matchID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("match %d is not stored; run 'sbcharts fetch %d' first", matchID, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}
	return data, nil
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
