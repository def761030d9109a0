package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/model"
)

func sampleNetwork() *model.Network {
	return &model.Network{
		Team: "Bayer Leverkusen",
		Positions: []model.PlayerPosition{
			{Player: "Florian Wirtz", JerseyNumber: 10, Average: model.Point{X: 70, Y: 30}, Volume: 40, Receptions: 50},
			{Player: "Granit Xhaka", JerseyNumber: 34, Average: model.Point{X: 50, Y: 40}, Volume: 90, Receptions: 60},
		},
		Links: []model.PassLink{{PlayerA: "Florian Wirtz", PlayerB: "Granit Xhaka", Count: 14}},
	}
}

func TestPrintPositionTable(t *testing.T) {
	var buf bytes.Buffer
	PrintPositionTable(&buf, sampleNetwork())
	out := buf.String()

	assert.Contains(t, out, "Xhaka")
	assert.NotContains(t, out, "Granit")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Xhaka")), bytes.Index(buf.Bytes(), []byte("Wirtz")),
		"busiest passer should come first")
}

func TestPrintLinkTable(t *testing.T) {
	var buf bytes.Buffer
	PrintLinkTable(&buf, sampleNetwork(), 5)
	assert.Contains(t, buf.String(), "14")

	buf.Reset()
	PrintLinkTable(&buf, &model.Network{}, 5)
	assert.Contains(t, buf.String(), "No player pairs with more than 5 passes")
}

func TestPrintShotTable(t *testing.T) {
	var buf bytes.Buffer
	PrintShotTable(&buf, &aggregator.ShotMap{
		Team:     "Bayer Leverkusen",
		Opponent: "Werder Bremen",
		Goals:    []model.Shot{{Player: "Victor Boniface", Minute: 25, XG: 0.76, Outcome: model.OutcomeGoal}},
		NonGoals: []model.Shot{{Player: "Florian Wirtz", Minute: 60, XG: 0.04, Outcome: "Saved"}},
	})
	out := buf.String()
	assert.Contains(t, out, "1 goals from 2 shots, 0.80 xG")
	assert.Contains(t, out, "Boniface")
	assert.Contains(t, out, "Saved")
}

func TestPrintMatchSummaryAndList(t *testing.T) {
	m := model.Match{ID: 3895302, HomeTeam: "Bayer Leverkusen", AwayTeam: "Werder Bremen", HomeScore: 5, Date: "2024-04-14"}

	var buf bytes.Buffer
	PrintMatchSummary(&buf, m)
	assert.Contains(t, buf.String(), "Bayer Leverkusen 5 – 0 Werder Bremen")

	buf.Reset()
	PrintMatchList(&buf, []model.Match{m})
	assert.Contains(t, buf.String(), "3895302")
	assert.Contains(t, buf.String(), "5-0")
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"team", "n"}, [][]string{{"Werder Bremen", "412"}})
	assert.Contains(t, buf.String(), "Werder Bremen")
	assert.Contains(t, buf.String(), "412")
}

func TestPrintPlayerPasses(t *testing.T) {
	var buf bytes.Buffer
	PrintPlayerPasses(&buf, "Florian Wirtz", []model.PlayerMatchPasses{
		{MatchID: 3895302, Team: "Bayer Leverkusen", Opponent: "Werder Bremen", Passes: 40, Completed: 36, Received: 45},
		{MatchID: 3895340, Team: "Bayer Leverkusen", Opponent: "FC Augsburg", Passes: 60, Completed: 48, Received: 50},
	})
	out := buf.String()
	assert.Contains(t, out, "100 passes in 2 matches, 84.0% completed")
	assert.Contains(t, out, "FC Augsburg")
}
