package aggregator

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pable/go-sb-charts/internal/model"
)

// ShotMarkerArea maps expected goals to a scatter marker area.
func ShotMarkerArea(xg float64) float64 {
	return xg*1900 + 100
}

// ShotMap is one team's shots split by outcome.
type ShotMap struct {
	Team     string
	Opponent string
	Goals    []model.Shot
	NonGoals []model.Shot
}

// TotalXG sums expected goals over every shot in the map.
func (m *ShotMap) TotalXG() float64 {
	var sum float64
	for _, s := range m.Goals {
		sum += s.XG
	}
	for _, s := range m.NonGoals {
		sum += s.XG
	}
	return sum
}

// BuildShotMap collects the shots taken by team in match order.
func BuildShotMap(data *model.MatchData, team string) *ShotMap {
	m := &ShotMap{Team: team, Opponent: data.Match.Opponent(team)}
	for _, s := range data.Shots {
		if s.Team != team {
			continue
		}
		if s.IsGoal() {
			m.Goals = append(m.Goals, s)
		} else {
			m.NonGoals = append(m.NonGoals, s)
		}
	}
	return m
}

// GoalFrame is a goal together with the freeze frame recorded at the shot.
type GoalFrame struct {
	Shot    model.Shot
	Players []model.FreezeFramePlayer
}

// Teammates returns the shooter's outfield teammates.
func (g *GoalFrame) Teammates() []model.FreezeFramePlayer {
	return g.filter(func(p model.FreezeFramePlayer) bool { return p.Teammate && !p.IsGoalkeeper() })
}

// Opponents returns opposing outfield players.
func (g *GoalFrame) Opponents() []model.FreezeFramePlayer {
	return g.filter(func(p model.FreezeFramePlayer) bool { return !p.Teammate && !p.IsGoalkeeper() })
}

// Goalkeepers returns every goalkeeper in the frame, on either side.
func (g *GoalFrame) Goalkeepers() []model.FreezeFramePlayer {
	return g.filter(model.FreezeFramePlayer.IsGoalkeeper)
}

func (g *GoalFrame) filter(keep func(model.FreezeFramePlayer) bool) []model.FreezeFramePlayer {
	var out []model.FreezeFramePlayer
	for _, p := range g.Players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// GoalFrames returns every goal of the match, home goals first, each with its
// freeze frame joined to lineup jersey numbers.
func GoalFrames(data *model.MatchData) []GoalFrame {
	jerseys := data.JerseyNumbers("")

	framesByShot := make(map[uuid.UUID][]model.FreezeFramePlayer)
	for _, f := range data.FreezeFrames {
		if n, ok := jerseys[f.Player]; ok && f.JerseyNumber == 0 {
			f.JerseyNumber = n
		}
		framesByShot[f.ShotID] = append(framesByShot[f.ShotID], f)
	}

	var goals []model.Shot
	for _, s := range data.Shots {
		if s.IsGoal() {
			goals = append(goals, s)
		}
	}
	home := data.Match.HomeTeam
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Team == home && goals[j].Team != home
	})

	out := make([]GoalFrame, 0, len(goals))
	for _, s := range goals {
		out = append(out, GoalFrame{Shot: s, Players: framesByShot[s.ID]})
	}
	return out
}
