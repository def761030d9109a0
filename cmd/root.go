package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/config"
	"github.com/pable/go-sb-charts/internal/logging"
	"github.com/pable/go-sb-charts/internal/model"
	"github.com/pable/go-sb-charts/internal/statsbomb"
	"github.com/pable/go-sb-charts/internal/storage"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	// cfg is resolved in PersistentPreRunE before any command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sbcharts",
	Short: "StatsBomb match charts",
	Long: `Fetch StatsBomb open-data matches into a local SQLite database and draw
pass networks, shot maps and goal freeze frames from them.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = logging.Default().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default ~/.sbcharts/matches.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (env: SBCHARTS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(shotsCmd)
	rootCmd.AddCommand(freezeCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(sqlCmd)
}

// loadConfig layers flags over the file/env config and installs the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.NewStderr(c.LogLevel, c.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logging.SetDefault(logger.With("cmd", cmd.Name()))
	cfg = c
	return nil
}

// openDB opens the configured database, creating its directory if needed.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newSource picks a local checkout when data_dir is set, else the HTTP mirror.
func newSource() *statsbomb.Client {
	if cfg.DataDir != "" {
		return statsbomb.NewDirClient(cfg.DataDir)
	}
	return statsbomb.NewHTTPClient(cfg.SourceURL, cfg.HTTPTimeout())
}

func parseMatchID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid match id %q", arg)
	}
	return id, nil
}

// resolveTeam accepts "home", "away" or a team name (case-insensitive).
func resolveTeam(m model.Match, team string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(team)) {
	case "", "home":
		return m.HomeTeam, nil
	case "away":
		return m.AwayTeam, nil
	}
	for _, name := range []string{m.HomeTeam, m.AwayTeam} {
		if strings.EqualFold(name, strings.TrimSpace(team)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("team %q did not play in match %d (%s vs %s)", team, m.ID, m.HomeTeam, m.AwayTeam)
}
