package statsbomb

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/pable/go-sb-charts/internal/model"
)

// Event type names used by the loader.
const (
	typePass = "Pass"
	typeShot = "Shot"
)

type named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchDoc struct {
	MatchID   int64  `json:"match_id"`
	MatchDate string `json:"match_date"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	HomeTeam  struct {
		Name string `json:"home_team_name"`
	} `json:"home_team"`
	AwayTeam struct {
		Name string `json:"away_team_name"`
	} `json:"away_team"`
	Competition struct {
		ID int `json:"competition_id"`
	} `json:"competition"`
	Season struct {
		ID int `json:"season_id"`
	} `json:"season"`
}

type freezeFrameDoc struct {
	Location []float64 `json:"location"`
	Player   named     `json:"player"`
	Position named     `json:"position"`
	Teammate bool      `json:"teammate"`
}

type eventDoc struct {
	ID       string    `json:"id"`
	Index    int       `json:"index"`
	Minute   int       `json:"minute"`
	Type     named     `json:"type"`
	Team     named     `json:"team"`
	Player   *named    `json:"player"`
	Location []float64 `json:"location"`
	Pass     *struct {
		Recipient   *named    `json:"recipient"`
		EndLocation []float64 `json:"end_location"`
		Outcome     *named    `json:"outcome"`
	} `json:"pass"`
	Shot *struct {
		XG          float64          `json:"statsbomb_xg"`
		EndLocation []float64        `json:"end_location"`
		Outcome     named            `json:"outcome"`
		FreezeFrame []freezeFrameDoc `json:"freeze_frame"`
	} `json:"shot"`
}

type lineupDoc struct {
	TeamName string `json:"team_name"`
	Lineup   []struct {
		PlayerName   string `json:"player_name"`
		JerseyNumber int    `json:"jersey_number"`
	} `json:"lineup"`
}

// Matches lists the matches of one competition season.
func (c *Client) Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error) {
	var docs []matchDoc
	if err := c.get(ctx, fmt.Sprintf("matches/%d/%d.json", competitionID, seasonID), &docs); err != nil {
		return nil, err
	}
	out := make([]model.Match, 0, len(docs))
	for _, d := range docs {
		m := model.Match{
			ID:            d.MatchID,
			CompetitionID: d.Competition.ID,
			SeasonID:      d.Season.ID,
			HomeTeam:      d.HomeTeam.Name,
			AwayTeam:      d.AwayTeam.Name,
			Date:          d.MatchDate,
			HomeScore:     d.HomeScore,
			AwayScore:     d.AwayScore,
		}
		if m.CompetitionID == 0 {
			m.CompetitionID = competitionID
		}
		if m.SeasonID == 0 {
			m.SeasonID = seasonID
		}
		out = append(out, m)
	}
	return out, nil
}

// Events returns the passes, shots and shot freeze frames of a match.
func (c *Client) Events(ctx context.Context, matchID int64) ([]model.PassEvent, []model.Shot, []model.FreezeFramePlayer, error) {
	var docs []eventDoc
	if err := c.get(ctx, fmt.Sprintf("events/%d.json", matchID), &docs); err != nil {
		return nil, nil, nil, err
	}
	return convertEvents(docs)
}

// Lineups returns the shirt numbers of every listed player.
func (c *Client) Lineups(ctx context.Context, matchID int64) ([]model.LineupEntry, error) {
	var docs []lineupDoc
	if err := c.get(ctx, fmt.Sprintf("lineups/%d.json", matchID), &docs); err != nil {
		return nil, err
	}
	var out []model.LineupEntry
	for _, team := range docs {
		for _, p := range team.Lineup {
			out = append(out, model.LineupEntry{
				Team:         team.TeamName,
				Player:       p.PlayerName,
				JerseyNumber: p.JerseyNumber,
			})
		}
	}
	return out, nil
}

// LoadMatch assembles everything stored for one match of a competition season.
func (c *Client) LoadMatch(ctx context.Context, competitionID, seasonID int, matchID int64) (*model.MatchData, error) {
	matches, err := c.Matches(ctx, competitionID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	for _, m := range matches {
		if m.ID == matchID {
			return c.loadMatch(ctx, m)
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "match %d in competition %d season %d", matchID, competitionID, seasonID)
}

// loadMatch fetches events and lineups for a match already listed.
func (c *Client) loadMatch(ctx context.Context, m model.Match) (*model.MatchData, error) {
	data := &model.MatchData{Match: m}
	var err error
	data.Passes, data.Shots, data.FreezeFrames, err = c.Events(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	data.Lineup, err = c.Lineups(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("lineups: %w", err)
	}
	return data, nil
}

func convertEvents(docs []eventDoc) ([]model.PassEvent, []model.Shot, []model.FreezeFramePlayer, error) {
	var (
		passes []model.PassEvent
		shots  []model.Shot
		frames []model.FreezeFramePlayer
	)
	for _, d := range docs {
		switch d.Type.Name {
		case typePass:
			p, err := convertPass(d)
			if err != nil {
				return nil, nil, nil, err
			}
			passes = append(passes, p)
		case typeShot:
			s, ff, err := convertShot(d)
			if err != nil {
				return nil, nil, nil, err
			}
			shots = append(shots, s)
			frames = append(frames, ff...)
		}
	}
	return passes, shots, frames, nil
}

func convertPass(d eventDoc) (model.PassEvent, error) {
	if d.Player == nil || d.Pass == nil {
		return model.PassEvent{}, malformed(d, "pass without player or pass details")
	}
	start, ok := point(d.Location)
	if !ok {
		return model.PassEvent{}, malformed(d, "pass without location")
	}
	end, ok := point(d.Pass.EndLocation)
	if !ok {
		return model.PassEvent{}, malformed(d, "pass without end location")
	}
	p := model.PassEvent{
		Index:  d.Index,
		Passer: d.Player.Name,
		Team:   d.Team.Name,
		Start:  start,
		End:    end,
		Minute: d.Minute,
	}
	// An outcome is only recorded for passes that did not reach a teammate.
	if d.Pass.Recipient != nil && d.Pass.Outcome == nil {
		p.Recipient = d.Pass.Recipient.Name
	}
	return p, nil
}

func convertShot(d eventDoc) (model.Shot, []model.FreezeFramePlayer, error) {
	if d.Player == nil || d.Shot == nil {
		return model.Shot{}, nil, malformed(d, "shot without player or shot details")
	}
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.Shot{}, nil, malformed(d, "shot id is not a uuid")
	}
	start, ok := point(d.Location)
	if !ok {
		return model.Shot{}, nil, malformed(d, "shot without location")
	}
	end, ok := point(d.Shot.EndLocation)
	if !ok {
		return model.Shot{}, nil, malformed(d, "shot without end location")
	}
	s := model.Shot{
		ID:      id,
		Index:   d.Index,
		Team:    d.Team.Name,
		Player:  d.Player.Name,
		Minute:  d.Minute,
		Start:   start,
		End:     end,
		XG:      d.Shot.XG,
		Outcome: d.Shot.Outcome.Name,
	}

	frames := make([]model.FreezeFramePlayer, 0, len(d.Shot.FreezeFrame))
	for _, f := range d.Shot.FreezeFrame {
		loc, ok := point(f.Location)
		if !ok {
			return model.Shot{}, nil, malformed(d, "freeze frame player without location")
		}
		frames = append(frames, model.FreezeFramePlayer{
			ShotID:   id,
			Player:   f.Player.Name,
			Position: f.Position.Name,
			Location: loc,
			Teammate: f.Teammate,
		})
	}
	return s, frames, nil
}

func point(loc []float64) (model.Point, bool) {
	if len(loc) < 2 {
		return model.Point{}, false
	}
	return model.Point{X: loc[0], Y: loc[1]}, true
}

// ErrMalformedDocument marks events that lack required fields.
var ErrMalformedDocument = errors.New("malformed statsbomb event")

func malformed(d eventDoc, reason string) error {
	return errors.Mark(
		errors.Newf("event %d (%s): %s", d.Index, d.ID, reason),
		ErrMalformedDocument,
	)
}
