package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/logging"
	"github.com/pable/go-sb-charts/internal/model"
	"github.com/pable/go-sb-charts/internal/render"
	"github.com/pable/go-sb-charts/internal/report"
)

var freezeOutDir string

var freezeCmd = &cobra.Command{
	Use:   "freeze <match-id>",
	Short: "Draw the freeze frame of every goal in a stored match",
	Long: `Writes one SVG per goal, home goals first, named match_goal_<n>.svg.
Each diagram shows the shooter, teammates, opponents and goalkeepers at the
moment of the shot, labelled with shirt numbers from the lineup.`,
	Args: cobra.ExactArgs(1),
	RunE: runFreeze,
}

func init() {
	freezeCmd.Flags().StringVar(&freezeOutDir, "out-dir", ".", "directory for the SVG files")
}

func runFreeze(cmd *cobra.Command, args []string) error {
	matchID, err := parseMatchID(args[0])
	if err != nil {
		return err
	}
	data, err := loadMatchData(matchID)
	if err != nil {
		return err
	}

	report.PrintMatchSummary(os.Stdout, data.Match)
	goals := aggregator.GoalFrames(data)
	if len(goals) == 0 {
		fmt.Fprintln(os.Stdout, "No goals in this match.")
		return nil
	}
	if err := os.MkdirAll(freezeOutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, g := range goals {
		if len(g.Players) == 0 {
			logging.Default().Warn("goal has no freeze frame", "match_id", matchID, "player", g.Shot.Player, "minute", g.Shot.Minute)
		}
		out := filepath.Join(freezeOutDir, fmt.Sprintf("match_goal_%d.svg", i+1))
		title := fmt.Sprintf("%s %d' (%s)", model.ShortName(g.Shot.Player), g.Shot.Minute, g.Shot.Team)
		if err := render.WriteFile(out, func(w io.Writer) error {
			return render.FreezeFrame(w, g, title)
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	}
	return nil
}
