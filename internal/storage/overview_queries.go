package storage

import (
	"fmt"

	"github.com/pable/go-sb-charts/internal/model"
)

// GetDBOverview returns aggregate counts across all stored matches.
func (db *DB) GetDBOverview() (model.DBOverview, error) {
	var ov model.DBOverview
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
			COALESCE(MIN(match_date), ''),
			COALESCE(MAX(match_date), ''),
			(SELECT COUNT(*) FROM passes),
			(SELECT COUNT(*) FROM shots),
			(SELECT COUNT(*) FROM shots WHERE outcome = ?),
			(SELECT COUNT(DISTINCT player) FROM lineups)
		FROM matches`, model.OutcomeGoal).Scan(
		&ov.TotalMatches, &ov.EarliestMatch, &ov.LatestMatch,
		&ov.TotalPasses, &ov.TotalShots, &ov.TotalGoals, &ov.UniquePlayers)
	if err != nil {
		return ov, fmt.Errorf("query overview: %w", err)
	}
	return ov, nil
}

// GetTeamSummaries returns per-team totals, most matches first.
func (db *DB) GetTeamSummaries() ([]model.TeamSummary, error) {
	rows, err := db.conn.Query(`
		WITH sides AS (
			SELECT match_id, home_team AS team FROM matches
			UNION ALL
			SELECT match_id, away_team AS team FROM matches
		),
		pass_counts AS (
			SELECT team, COUNT(*) AS passes, SUM(recipient != '') AS completed
			FROM passes GROUP BY team
		),
		shot_counts AS (
			SELECT team, COUNT(*) AS shots, SUM(outcome = ?) AS goals, SUM(xg) AS xg
			FROM shots GROUP BY team
		)
		SELECT s.team, COUNT(*),
			COALESCE(MAX(pc.passes), 0), COALESCE(MAX(pc.completed), 0),
			COALESCE(MAX(sc.shots), 0), COALESCE(MAX(sc.goals), 0), COALESCE(MAX(sc.xg), 0.0)
		FROM sides s
		LEFT JOIN pass_counts pc ON pc.team = s.team
		LEFT JOIN shot_counts sc ON sc.team = s.team
		GROUP BY s.team
		ORDER BY COUNT(*) DESC, s.team`, model.OutcomeGoal)
	if err != nil {
		return nil, fmt.Errorf("query team summaries: %w", err)
	}
	defer rows.Close()

	var out []model.TeamSummary
	for rows.Next() {
		var t model.TeamSummary
		if err := rows.Scan(&t.Team, &t.Matches, &t.Passes, &t.Completed, &t.Shots, &t.Goals, &t.XG); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
