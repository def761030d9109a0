package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all stored matches: match count,
date range, pass and shot totals, and a per-team breakdown.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetDBOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalMatches == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'sbcharts fetch <match-id>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored : %d\n", ov.TotalMatches)
	fmt.Fprintf(os.Stdout, "  Date range     : %s → %s\n", ov.EarliestMatch, ov.LatestMatch)
	fmt.Fprintf(os.Stdout, "  Players seen   : %d\n", ov.UniquePlayers)
	fmt.Fprintf(os.Stdout, "  Passes         : %d\n", ov.TotalPasses)
	fmt.Fprintf(os.Stdout, "  Shots / goals  : %d / %d\n", ov.TotalShots, ov.TotalGoals)

	teams, err := db.GetTeamSummaries()
	if err != nil {
		return fmt.Errorf("get team summaries: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Teams ---\n\n")
	tt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	tt.Header("TEAM", "MATCHES", "PASSES/M", "PASS%", "SHOTS/M", "GOALS", "XG")
	for _, t := range teams {
		passPct := 0.0
		if t.Passes > 0 {
			passPct = 100.0 * float64(t.Completed) / float64(t.Passes)
		}
		tt.Append(
			t.Team,
			fmt.Sprintf("%d", t.Matches),
			fmt.Sprintf("%.1f", float64(t.Passes)/float64(t.Matches)),
			fmt.Sprintf("%.0f%%", passPct),
			fmt.Sprintf("%.1f", float64(t.Shots)/float64(t.Matches)),
			fmt.Sprintf("%d", t.Goals),
			fmt.Sprintf("%.2f", t.XG),
		)
	}
	tt.Render()
	return nil
}
