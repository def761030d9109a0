package storage

import (
	"database/sql"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/pable/go-sb-charts/internal/model"
)

const matchColumns = `match_id, competition_id, season_id, home_team, away_team, match_date, home_score, away_score`

// MatchExists returns true if a match with the given id is already stored.
func (db *DB) MatchExists(matchID int64) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatchData stores a match and all of its events in one transaction.
// Previously stored rows for the match are replaced.
func (db *DB) InsertMatchData(data *model.MatchData) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := data.Match.ID
	if err := deleteMatchRows(tx, id); err != nil {
		return err
	}

	m := data.Match
	if _, err := tx.Exec(`
		INSERT INTO matches(`+matchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.CompetitionID, m.SeasonID, m.HomeTeam, m.AwayTeam, m.Date, m.HomeScore, m.AwayScore,
	); err != nil {
		return fmt.Errorf("insert match %d: %w", id, err)
	}

	passStmt, err := tx.Prepare(`
		INSERT INTO passes(match_id, idx, team, passer, recipient, x, y, end_x, end_y, minute)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer passStmt.Close()
	for _, p := range data.Passes {
		if _, err := passStmt.Exec(id, p.Index, p.Team, p.Passer, p.Recipient,
			p.Start.X, p.Start.Y, p.End.X, p.End.Y, p.Minute); err != nil {
			return fmt.Errorf("insert pass %d: %w", p.Index, err)
		}
	}

	shotStmt, err := tx.Prepare(`
		INSERT INTO shots(match_id, shot_id, idx, team, player, minute, x, y, end_x, end_y, xg, outcome)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer shotStmt.Close()
	for _, s := range data.Shots {
		if _, err := shotStmt.Exec(id, s.ID.String(), s.Index, s.Team, s.Player, s.Minute,
			s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.XG, s.Outcome); err != nil {
			return fmt.Errorf("insert shot %s: %w", s.ID, err)
		}
	}

	frameStmt, err := tx.Prepare(`
		INSERT INTO freeze_frames(match_id, shot_id, player, position, x, y, teammate)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer frameStmt.Close()
	for _, f := range data.FreezeFrames {
		if _, err := frameStmt.Exec(id, f.ShotID.String(), f.Player, f.Position,
			f.Location.X, f.Location.Y, boolInt(f.Teammate)); err != nil {
			return fmt.Errorf("insert freeze frame for shot %s: %w", f.ShotID, err)
		}
	}

	lineupStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO lineups(match_id, team, player, jersey_number) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer lineupStmt.Close()
	for _, e := range data.Lineup {
		if _, err := lineupStmt.Exec(id, e.Team, e.Player, e.JerseyNumber); err != nil {
			return fmt.Errorf("insert lineup %s: %w", e.Player, err)
		}
	}

	return tx.Commit()
}

// ListMatches returns all stored matches ordered by match date desc.
func (db *DB) ListMatches() ([]model.Match, error) {
	rows, err := db.conn.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY match_date DESC, match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatch returns the stored match record, or ErrNotFound.
func (db *DB) GetMatch(matchID int64) (*model.Match, error) {
	row := db.conn.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "match %d", matchID)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchData loads a stored match with its passes, shots, freeze frames and lineup.
func (db *DB) GetMatchData(matchID int64) (*model.MatchData, error) {
	m, err := db.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	data := &model.MatchData{Match: *m}
	if data.Passes, err = db.getPasses(matchID); err != nil {
		return nil, fmt.Errorf("get passes: %w", err)
	}
	if data.Shots, err = db.getShots(matchID); err != nil {
		return nil, fmt.Errorf("get shots: %w", err)
	}
	if data.FreezeFrames, err = db.getFreezeFrames(matchID); err != nil {
		return nil, fmt.Errorf("get freeze frames: %w", err)
	}
	if data.Lineup, err = db.getLineup(matchID); err != nil {
		return nil, fmt.Errorf("get lineup: %w", err)
	}
	return data, nil
}

// DeleteMatch removes a match and everything stored for it.
func (db *DB) DeleteMatch(matchID int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := deleteMatchRows(tx, matchID); err != nil {
		return err
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(t)
			default:
				row[i] = fmt.Sprint(t)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// GetPlayerPasses returns one row per stored match in which player made a pass,
// newest first.
func (db *DB) GetPlayerPasses(player string) ([]model.PlayerMatchPasses, error) {
	rows, err := db.conn.Query(`
		SELECT m.match_id, m.match_date, p.team,
			CASE WHEN p.team = m.home_team THEN m.away_team ELSE m.home_team END,
			COUNT(*),
			SUM(CASE WHEN p.recipient != '' THEN 1 ELSE 0 END),
			(SELECT COUNT(*) FROM passes r
				WHERE r.match_id = m.match_id AND r.team = p.team AND r.recipient = ?),
			AVG(p.x), AVG(p.y)
		FROM passes p JOIN matches m ON m.match_id = p.match_id
		WHERE p.passer = ?
		GROUP BY m.match_id, p.team
		ORDER BY m.match_date DESC, m.match_id DESC`, player, player)
	if err != nil {
		return nil, fmt.Errorf("query player passes: %w", err)
	}
	defer rows.Close()

	var out []model.PlayerMatchPasses
	for rows.Next() {
		var r model.PlayerMatchPasses
		if err := rows.Scan(&r.MatchID, &r.Date, &r.Team, &r.Opponent,
			&r.Passes, &r.Completed, &r.Received, &r.Average.X, &r.Average.Y); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) getPasses(matchID int64) ([]model.PassEvent, error) {
	rows, err := db.conn.Query(`
		SELECT idx, team, passer, recipient, x, y, end_x, end_y, minute
		FROM passes WHERE match_id = ? ORDER BY idx`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PassEvent
	for rows.Next() {
		var p model.PassEvent
		if err := rows.Scan(&p.Index, &p.Team, &p.Passer, &p.Recipient,
			&p.Start.X, &p.Start.Y, &p.End.X, &p.End.Y, &p.Minute); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (db *DB) getShots(matchID int64) ([]model.Shot, error) {
	rows, err := db.conn.Query(`
		SELECT shot_id, idx, team, player, minute, x, y, end_x, end_y, xg, outcome
		FROM shots WHERE match_id = ? ORDER BY idx`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Shot
	for rows.Next() {
		var s model.Shot
		var id string
		if err := rows.Scan(&id, &s.Index, &s.Team, &s.Player, &s.Minute,
			&s.Start.X, &s.Start.Y, &s.End.X, &s.End.Y, &s.XG, &s.Outcome); err != nil {
			return nil, err
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("shot id %q: %w", id, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (db *DB) getFreezeFrames(matchID int64) ([]model.FreezeFramePlayer, error) {
	rows, err := db.conn.Query(`
		SELECT shot_id, player, position, x, y, teammate
		FROM freeze_frames WHERE match_id = ? ORDER BY rowid`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FreezeFramePlayer
	for rows.Next() {
		var f model.FreezeFramePlayer
		var id string
		var teammate int
		if err := rows.Scan(&id, &f.Player, &f.Position, &f.Location.X, &f.Location.Y, &teammate); err != nil {
			return nil, err
		}
		if f.ShotID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("shot id %q: %w", id, err)
		}
		f.Teammate = teammate != 0
		out = append(out, f)
	}
	return out, rows.Err()
}

func (db *DB) getLineup(matchID int64) ([]model.LineupEntry, error) {
	rows, err := db.conn.Query(`
		SELECT team, player, jersey_number FROM lineups
		WHERE match_id = ? ORDER BY team, jersey_number`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LineupEntry
	for rows.Next() {
		var e model.LineupEntry
		if err := rows.Scan(&e.Team, &e.Player, &e.JerseyNumber); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(s scanner) (model.Match, error) {
	var m model.Match
	err := s.Scan(&m.ID, &m.CompetitionID, &m.SeasonID, &m.HomeTeam, &m.AwayTeam,
		&m.Date, &m.HomeScore, &m.AwayScore)
	return m, err
}

func deleteMatchRows(tx *sql.Tx, matchID int64) error {
	for _, table := range []string{"freeze_frames", "shots", "passes", "lineups", "matches"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_id = ?", matchID); err != nil {
			return fmt.Errorf("clear %s for match %d: %w", table, matchID, err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
