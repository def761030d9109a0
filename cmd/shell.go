package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/report"
	"github.com/pable/go-sb-charts/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return shellLoop(db, cmd.InOrStdin(), cmd.OutOrStdout())
}

// shellLoop reads commands from in until EOF or exit. Command errors are
// printed and the session continues.
func shellLoop(db *storage.DB, in io.Reader, out io.Writer) error {
	cGreeting.Fprintln(out, "sbcharts shell")
	cMuted.Fprintln(out, "type 'help' or 'exit'")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(out, "sbcharts")
		cMuted.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		var err error
		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp(out)
		case "list":
			err = shellList(db, out)
		case "network":
			if len(args) == 0 {
				cError.Fprintln(out, "usage: network <match-id> [home|away|team name]")
				continue
			}
			err = shellNetwork(db, out, args[0], strings.Join(args[1:], " "))
		case "player":
			if len(args) == 0 {
				cError.Fprintln(out, "usage: player <full name>")
				continue
			}
			err = printPlayer(db, out, strings.Join(args, " "))
		case "sql":
			err = shellSQL(db, out, strings.TrimSpace(strings.TrimPrefix(line, name)))
		default:
			cWarn.Fprintf(out, "unknown command %q, type 'help'\n", name)
		}
		if err != nil {
			cError.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func shellHelp(out io.Writer) {
	fmt.Fprintln(out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"network <match-id> [home|away|team]", "pass network tables for one team"},
		{"player <full name>", "cross-match passing summary"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(out, "  ")
		cCmd.Fprintf(out, "%-38s", r.cmd)
		fmt.Fprintln(out, r.desc)
	}
	fmt.Fprintln(out)
}

func shellList(db *storage.DB, out io.Writer) error {
	matches, err := db.ListMatches()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		cMuted.Fprintln(out, "No matches stored yet.")
		return nil
	}
	report.PrintMatchList(out, matches)
	return nil
}

func shellNetwork(db *storage.DB, out io.Writer, idArg, team string) error {
	matchID, err := parseMatchID(idArg)
	if err != nil {
		return err
	}
	data, err := db.GetMatchData(matchID)
	if err != nil {
		return err
	}
	team, err = resolveTeam(data.Match, team)
	if err != nil {
		return err
	}
	net, err := aggregator.BuildNetwork(data.Passes, aggregator.NetworkOptions{
		MatchID:       matchID,
		Team:          team,
		RosterSize:    cfg.RosterSize,
		MinLinkCount:  cfg.MinLinkPasses,
		JerseyNumbers: data.JerseyNumbers(team),
	})
	if err != nil {
		return err
	}
	report.PrintMatchSummary(out, data.Match)
	printNetwork(out, net, cfg.MinLinkPasses)
	return nil
}

func shellSQL(db *storage.DB, out io.Writer, query string) error {
	if query == "" {
		return fmt.Errorf("usage: sql <query>")
	}
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "(no rows)")
		return nil
	}
	report.PrintRows(out, cols, rows)
	return nil
}
