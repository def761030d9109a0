package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(match_id, competition_id, season_id, home_team, away_team, match_date,
    home_score, away_score)
  passes(match_id, idx, team, passer, recipient, x, y, end_x, end_y, minute)
  shots(match_id, shot_id, idx, team, player, minute, x, y, end_x, end_y, xg, outcome)
  freeze_frames(match_id, shot_id, player, position, x, y, teammate)
  lineups(match_id, team, player, jersey_number)

Note: recipient is '' for passes that did not reach a teammate.
Example: sbcharts sql "SELECT passer, COUNT(*) FROM passes WHERE match_id = 3895302 GROUP BY passer"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
