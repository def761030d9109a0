package statsbomb

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchesJSON = `[
 {"match_id": 3895302, "match_date": "2024-04-14", "home_score": 5, "away_score": 0,
  "home_team": {"home_team_id": 904, "home_team_name": "Bayer Leverkusen"},
  "away_team": {"away_team_id": 176, "away_team_name": "Werder Bremen"},
  "competition": {"competition_id": 9}, "season": {"season_id": 281}}
]`

const eventsJSON = `[
 {"id": "0a1b2c3d-0000-4000-8000-000000000001", "index": 1, "minute": 0,
  "type": {"id": 35, "name": "Starting XI"}, "team": {"id": 904, "name": "Bayer Leverkusen"}},
 {"id": "0a1b2c3d-0000-4000-8000-000000000002", "index": 2, "minute": 1,
  "type": {"id": 30, "name": "Pass"}, "team": {"id": 904, "name": "Bayer Leverkusen"},
  "player": {"id": 1, "name": "Granit Xhaka"}, "location": [60.0, 40.0],
  "pass": {"recipient": {"id": 2, "name": "Florian Wirtz"}, "end_location": [75.5, 30.0]}},
 {"id": "0a1b2c3d-0000-4000-8000-000000000003", "index": 3, "minute": 2,
  "type": {"id": 30, "name": "Pass"}, "team": {"id": 904, "name": "Bayer Leverkusen"},
  "player": {"id": 2, "name": "Florian Wirtz"}, "location": [80.0, 30.0],
  "pass": {"recipient": {"id": 3, "name": "Victor Boniface"}, "end_location": [110.0, 35.0],
           "outcome": {"id": 9, "name": "Incomplete"}}},
 {"id": "0a1b2c3d-0000-4000-8000-000000000004", "index": 4, "minute": 9,
  "type": {"id": 16, "name": "Shot"}, "team": {"id": 904, "name": "Bayer Leverkusen"},
  "player": {"id": 3, "name": "Victor Boniface"}, "location": [108.0, 38.0],
  "shot": {"statsbomb_xg": 0.42, "end_location": [120.0, 39.0, 1.2],
           "outcome": {"id": 97, "name": "Goal"},
           "freeze_frame": [
             {"location": [118.0, 40.0], "player": {"id": 9, "name": "Michael Zetterer"},
              "position": {"id": 1, "name": "Goalkeeper"}, "teammate": false},
             {"location": [100.0, 30.0], "player": {"id": 2, "name": "Florian Wirtz"},
              "position": {"id": 19, "name": "Center Attacking Midfield"}, "teammate": true}]}}
]`

const lineupsJSON = `[
 {"team_id": 904, "team_name": "Bayer Leverkusen", "lineup": [
   {"player_id": 1, "player_name": "Granit Xhaka", "jersey_number": 34},
   {"player_id": 2, "player_name": "Florian Wirtz", "jersey_number": 10}]},
 {"team_id": 176, "team_name": "Werder Bremen", "lineup": [
   {"player_id": 9, "player_name": "Michael Zetterer", "jersey_number": 30}]}
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	docs := map[string]string{
		"/matches/9/281.json":   matchesJSON,
		"/events/3895302.json":  eventsJSON,
		"/lineups/3895302.json": lineupsJSON,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_LoadMatch(t *testing.T) {
	srv := newTestServer(t)
	c := NewHTTPClient(srv.URL, 5*time.Second)

	data, err := c.LoadMatch(context.Background(), 9, 281, 3895302)
	require.NoError(t, err)

	assert.Equal(t, "Bayer Leverkusen", data.Match.HomeTeam)
	assert.Equal(t, "Werder Bremen", data.Match.AwayTeam)
	assert.Equal(t, 5, data.Match.HomeScore)

	require.Len(t, data.Passes, 2)
	assert.Equal(t, "Granit Xhaka", data.Passes[0].Passer)
	assert.Equal(t, "Florian Wirtz", data.Passes[0].Recipient)
	assert.InDelta(t, 75.5, data.Passes[0].End.X, 1e-9)
	assert.Empty(t, data.Passes[1].Recipient, "incomplete pass must not keep its intended recipient")

	require.Len(t, data.Shots, 1)
	assert.True(t, data.Shots[0].IsGoal())
	assert.InDelta(t, 0.42, data.Shots[0].XG, 1e-9)
	require.Len(t, data.FreezeFrames, 2)
	assert.Equal(t, data.Shots[0].ID, data.FreezeFrames[0].ShotID)
	assert.True(t, data.FreezeFrames[0].IsGoalkeeper())

	assert.Len(t, data.Lineup, 3)
	assert.Equal(t, 10, data.JerseyNumbers("Bayer Leverkusen")["Florian Wirtz"])
}

func TestHTTPClient_UnknownMatch(t *testing.T) {
	srv := newTestServer(t)
	c := NewHTTPClient(srv.URL, 5*time.Second)

	_, err := c.LoadMatch(context.Background(), 9, 281, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Matches(context.Background(), 2, 27)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestDirClient_CompressedDocuments(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "matches", "9", "281.json"), []byte(matchesJSON))

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(eventsJSON))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	writeFile(t, filepath.Join(dir, "events", "3895302.json.gz"), gz.Bytes())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "lineups", "3895302.json.zst"), enc.EncodeAll([]byte(lineupsJSON), nil))
	require.NoError(t, enc.Close())

	c := NewDirClient(dir)
	assert.Equal(t, dir, c.Source())

	data, err := c.LoadMatch(context.Background(), 9, 281, 3895302)
	require.NoError(t, err)
	assert.Len(t, data.Passes, 2)
	assert.Len(t, data.Shots, 1)
	assert.Len(t, data.Lineup, 3)
}

func TestDirClient_MissingDocument(t *testing.T) {
	c := NewDirClient(t.TempDir())
	_, err := c.Lineups(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConvertEvents_Malformed(t *testing.T) {
	docs := []eventDoc{{
		ID:     "0a1b2c3d-0000-4000-8000-000000000009",
		Index:  9,
		Type:   named{Name: typePass},
		Team:   named{Name: "Bayer Leverkusen"},
		Player: &named{Name: "Granit Xhaka"},
		Pass: &struct {
			Recipient   *named    `json:"recipient"`
			EndLocation []float64 `json:"end_location"`
			Outcome     *named    `json:"outcome"`
		}{EndLocation: []float64{10, 10}},
	}}
	_, _, _, err := convertEvents(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
	assert.Contains(t, err.Error(), "event 9")
}
