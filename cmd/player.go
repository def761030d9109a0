package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/report"
	"github.com/pable/go-sb-charts/internal/storage"
)

// playerCmd summarises one player's passing across every stored match.
var playerCmd = &cobra.Command{
	Use:   "player <full name>",
	Short: "Cross-match passing summary for one player",
	Long: `Lists every stored match in which the player passed, with volume,
completion, receptions and average pass origin.

Example:
  sbcharts player Florian Wirtz`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return printPlayer(db, os.Stdout, strings.Join(args, " "))
}

func printPlayer(db *storage.DB, out io.Writer, name string) error {
	rows, err := db.GetPlayerPasses(name)
	if err != nil {
		return fmt.Errorf("query passes for %s: %w", name, err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No passes stored for %q. Names must match the lineup exactly.\n", name)
		return nil
	}
	report.PrintPlayerPasses(out, name, rows)
	return nil
}
