package model

import (
	"strings"

	"github.com/google/uuid"
)

// StatsBomb pitch extents.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0
)

// OutcomeGoal is the shot outcome name that marks a goal.
const OutcomeGoal = "Goal"

// Point is a location on the StatsBomb pitch.
type Point struct {
	X float64 `validate:"gte=0,lte=120"`
	Y float64 `validate:"gte=0,lte=80"`
}

// ---- Raw events loaded from the match-data provider ----

// PassEvent is one recorded pass. Recipient is empty when the pass did not
// reach a teammate.
type PassEvent struct {
	Index     int
	Passer    string `validate:"required"`
	Recipient string
	Team      string `validate:"required"`
	Start     Point
	End       Point
	Minute    int `validate:"gte=0"`
}

// Completed reports whether the pass has a recipient.
func (p PassEvent) Completed() bool { return p.Recipient != "" }

type Shot struct {
	ID      uuid.UUID
	Index   int
	Team    string
	Player  string
	Minute  int
	Start   Point
	End     Point
	XG      float64
	Outcome string
}

func (s Shot) IsGoal() bool { return s.Outcome == OutcomeGoal }

// FreezeFramePlayer is one player's position at the moment of a shot.
type FreezeFramePlayer struct {
	ShotID       uuid.UUID
	Player       string
	Position     string
	Location     Point
	Teammate     bool
	JerseyNumber int // 0 when the lineup has no entry
}

func (f FreezeFramePlayer) IsGoalkeeper() bool { return f.Position == "Goalkeeper" }

type LineupEntry struct {
	Team         string
	Player       string
	JerseyNumber int
}

// Match is a lightweight record for list/show commands.
type Match struct {
	ID            int64
	CompetitionID int
	SeasonID      int
	HomeTeam      string
	AwayTeam      string
	Date          string
	HomeScore     int
	AwayScore     int
}

// Opponent returns the other side of team in this match, or "" if team did not play.
func (m Match) Opponent(team string) string {
	switch team {
	case m.HomeTeam:
		return m.AwayTeam
	case m.AwayTeam:
		return m.HomeTeam
	}
	return ""
}

// MatchData bundles everything loaded for a single match.
type MatchData struct {
	Match        Match
	Passes       []PassEvent
	Shots        []Shot
	FreezeFrames []FreezeFramePlayer
	Lineup       []LineupEntry
}

// JerseyNumbers maps player -> shirt number for one team ("" = all teams).
func (d *MatchData) JerseyNumbers(team string) map[string]int {
	out := make(map[string]int, len(d.Lineup))
	for _, e := range d.Lineup {
		if team != "" && e.Team != team {
			continue
		}
		out[e.Player] = e.JerseyNumber
	}
	return out
}

// ---- Derived pass network ----

type PlayerPosition struct {
	Player       string
	JerseyNumber int
	Average      Point
	Volume       int // passes sent
	Receptions   int
}

// PassLink is an unordered pair of players, stored with PlayerA < PlayerB.
type PassLink struct {
	PlayerA string
	PlayerB string
	Count   int
}

// Network is the pass network of one team in one match.
type Network struct {
	MatchID   int64
	Team      string
	Roster    []string
	Positions []PlayerPosition
	Links     []PassLink
}

// Position returns the position row for player, if present.
func (n *Network) Position(player string) (PlayerPosition, bool) {
	for _, p := range n.Positions {
		if p.Player == player {
			return p, true
		}
	}
	return PlayerPosition{}, false
}

// PlayerMatchPasses summarises one player's passing in one stored match.
type PlayerMatchPasses struct {
	MatchID   int64
	Date      string
	Team      string
	Opponent  string
	Passes    int
	Completed int
	Received  int
	Average   Point // mean pass origin
}

// DBOverview holds database-wide counts for the summary command.
type DBOverview struct {
	TotalMatches  int
	EarliestMatch string
	LatestMatch   string
	TotalPasses   int
	TotalShots    int
	TotalGoals    int
	UniquePlayers int
}

// TeamSummary aggregates one team over every stored match it played.
type TeamSummary struct {
	Team      string
	Matches   int
	Passes    int
	Completed int
	Shots     int
	Goals     int
	XG        float64
}

// ShortName keeps only the last token of a player name ("Florian Wirtz" -> "Wirtz").
func ShortName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}
