package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/storage"
)

var dropForce bool

// dropCmd deletes one stored match, or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop [match-id]",
	Short: "Delete a stored match or the whole database",
	Long: `With a match id, removes that match and all its events. Without one,
permanently deletes the SQLite database; re-fetch matches afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropMatch(args[0])
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DBPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL mode leaves side files next to the database.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(cfg.DBPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove database%s: %w", suffix, err)
		}
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DBPath)
	return nil
}

func dropMatch(arg string) error {
	matchID, err := parseMatchID(arg)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := db.GetMatch(matchID)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stdout, "Match %d is not stored, nothing to drop.\n", matchID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete match %d (%s vs %s).\n", m.ID, m.HomeTeam, m.AwayTeam)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := db.DeleteMatch(matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted match %d.\n", matchID)
	return nil
}
