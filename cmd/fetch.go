package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/logging"
	"github.com/pable/go-sb-charts/internal/report"
	"github.com/pable/go-sb-charts/internal/statsbomb"
)

var (
	fetchCompetition int
	fetchSeason      int
	fetchForce       bool
	fetchAll         bool
	fetchWorkers     int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [match-id...]",
	Short: "Download matches from StatsBomb open data and store them",
	Long: `Loads the events and lineups of each match from the configured source
(the open-data GitHub mirror, or data_dir when set) and stores them.
Matches are downloaded concurrently and stored one at a time.

Examples:
  sbcharts fetch 3895302
  sbcharts fetch 3895302 3895340 --competition 9 --season 281
  sbcharts fetch --all --workers 8`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchCompetition, "competition", 0, "competition id (default from config)")
	fetchCmd.Flags().IntVar(&fetchSeason, "season", 0, "season id (default from config)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "re-download matches already stored")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every match of the season")
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 4, "concurrent downloads")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !fetchAll {
		return fmt.Errorf("give at least one match id, or --all")
	}
	competition, season := cfg.CompetitionID, cfg.SeasonID
	if fetchCompetition > 0 {
		competition = fetchCompetition
	}
	if fetchSeason > 0 {
		season = fetchSeason
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	src := newSource()
	log := logging.Default().With("source", src.Source(), "competition", competition, "season", season)

	ids, err := fetchTargets(ctx, src, competition, season, args)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var pending []int64
	for _, id := range ids {
		exists, err := db.MatchExists(id)
		if err != nil {
			return fmt.Errorf("check match: %w", err)
		}
		if exists && !fetchForce {
			fmt.Fprintf(os.Stdout, "Match %d already stored, skipping (use --force to refresh).\n", id)
			continue
		}
		pending = append(pending, id)
	}
	if len(pending) == 0 {
		return nil
	}

	log.Debug("fetching matches", "count", len(pending), "workers", fetchWorkers)
	results, err := src.LoadMatches(ctx, competition, season, pending, fetchWorkers)
	if err != nil {
		return fmt.Errorf("fetch matches: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Error("fetch failed", "match_id", r.MatchID, "err", r.Err)
			continue
		}
		if err := db.InsertMatchData(r.Data); err != nil {
			return fmt.Errorf("store match %d: %w", r.MatchID, err)
		}
		log.Info("stored match", "match_id", r.MatchID,
			"passes", len(r.Data.Passes), "shots", len(r.Data.Shots), "lineup", len(r.Data.Lineup))
		report.PrintMatchSummary(os.Stdout, r.Data.Match)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d matches failed to fetch", failed, len(results))
	}
	return nil
}

// fetchTargets resolves the match ids to fetch from args or, with --all, the season listing.
func fetchTargets(ctx context.Context, src *statsbomb.Client, competition, season int, args []string) ([]int64, error) {
	if fetchAll {
		matches, err := src.Matches(ctx, competition, season)
		if err != nil {
			return nil, fmt.Errorf("list source matches: %w", err)
		}
		ids := make([]int64, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return ids, nil
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseMatchID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
