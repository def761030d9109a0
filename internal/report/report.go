package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, m model.Match) {
	fmt.Fprintf(w, "\n%s %d – %d %s  |  Date: %s  |  Competition %d / Season %d  |  Match: %d\n\n",
		m.HomeTeam, m.HomeScore, m.AwayScore, m.AwayTeam, m.Date, m.CompetitionID, m.SeasonID, m.ID)
}

// PrintMatchList prints one row per stored match.
func PrintMatchList(w io.Writer, matches []model.Match) {
	table := newTable(w)
	table.Header("MATCH", "DATE", "HOME", "SCORE", "AWAY", "COMP", "SEASON")
	for _, m := range matches {
		table.Append(
			strconv.FormatInt(m.ID, 10),
			m.Date,
			m.HomeTeam,
			fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore),
			m.AwayTeam,
			strconv.Itoa(m.CompetitionID),
			strconv.Itoa(m.SeasonID),
		)
	}
	table.Render()
}

// PrintPositionTable prints average positions, busiest passer first.
func PrintPositionTable(w io.Writer, n *model.Network) {
	positions := append([]model.PlayerPosition(nil), n.Positions...)
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Volume > positions[j].Volume
	})

	table := newTable(w)
	table.Header("#", "PLAYER", "AVG_X", "AVG_Y", "PASSES", "RECEIVED")
	for _, p := range positions {
		num := "-"
		if p.JerseyNumber > 0 {
			num = strconv.Itoa(p.JerseyNumber)
		}
		table.Append(
			num,
			model.ShortName(p.Player),
			fmt.Sprintf("%.1f", p.Average.X),
			fmt.Sprintf("%.1f", p.Average.Y),
			strconv.Itoa(p.Volume),
			strconv.Itoa(p.Receptions),
		)
	}
	table.Render()
}

// PrintLinkTable prints the retained pass links. An empty network prints a note
// instead of an empty table.
func PrintLinkTable(w io.Writer, n *model.Network, minCount int) {
	if len(n.Links) == 0 {
		fmt.Fprintf(w, "No player pairs with more than %d passes.\n", minCount)
		return
	}
	table := newTable(w)
	table.Header("PLAYER_A", "PLAYER_B", "PASSES")
	for _, l := range n.Links {
		table.Append(
			model.ShortName(l.PlayerA),
			model.ShortName(l.PlayerB),
			strconv.Itoa(l.Count),
		)
	}
	table.Render()
}

// PrintShotTable prints every shot of a shot map, goals first.
func PrintShotTable(w io.Writer, m *aggregator.ShotMap) {
	fmt.Fprintf(w, "%s shots versus %s: %d goals from %d shots, %.2f xG\n",
		m.Team, m.Opponent, len(m.Goals), len(m.Goals)+len(m.NonGoals), m.TotalXG())

	table := newTable(w)
	table.Header("MIN", "PLAYER", "X", "Y", "XG", "OUTCOME")
	for _, shots := range [][]model.Shot{m.Goals, m.NonGoals} {
		for _, s := range shots {
			table.Append(
				strconv.Itoa(s.Minute),
				model.ShortName(s.Player),
				fmt.Sprintf("%.1f", s.Start.X),
				fmt.Sprintf("%.1f", s.Start.Y),
				fmt.Sprintf("%.2f", s.XG),
				s.Outcome,
			)
		}
	}
	table.Render()
}

// PrintRows prints the result of a raw query.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintPlayerPasses prints one row per match for a single player.
func PrintPlayerPasses(w io.Writer, player string, rows []model.PlayerMatchPasses) {
	var passes, completed int
	for _, r := range rows {
		passes += r.Passes
		completed += r.Completed
	}
	pct := 0.0
	if passes > 0 {
		pct = float64(completed) / float64(passes) * 100
	}
	fmt.Fprintf(w, "%s: %d passes in %d matches, %.1f%% completed\n", player, passes, len(rows), pct)

	table := newTable(w)
	table.Header("MATCH", "DATE", "TEAM", "OPPONENT", "PASSES", "COMPLETED", "RECEIVED", "AVG_X", "AVG_Y")
	for _, r := range rows {
		table.Append(
			strconv.FormatInt(r.MatchID, 10),
			r.Date,
			r.Team,
			r.Opponent,
			strconv.Itoa(r.Passes),
			strconv.Itoa(r.Completed),
			strconv.Itoa(r.Received),
			fmt.Sprintf("%.1f", r.Average.X),
			fmt.Sprintf("%.1f", r.Average.Y),
		)
	}
	table.Render()
}
