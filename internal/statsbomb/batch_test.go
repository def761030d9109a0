package statsbomb

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMatches(t *testing.T) {
	srv := newTestServer(t)
	c := NewHTTPClient(srv.URL, 5*time.Second)

	results, err := c.LoadMatches(context.Background(), 9, 281, []int64{3895302, 77, 3895302}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.EqualValues(t, 3895302, results[0].MatchID)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Data.Passes, 2)

	assert.EqualValues(t, 77, results[1].MatchID)
	assert.Nil(t, results[1].Data)
	assert.True(t, errors.Is(results[1].Err, ErrNotFound))

	require.NoError(t, results[2].Err)
	assert.Equal(t, "Werder Bremen", results[2].Data.Match.AwayTeam)
}

func TestLoadMatches_SeasonMissing(t *testing.T) {
	srv := newTestServer(t)
	c := NewHTTPClient(srv.URL, 5*time.Second)

	_, err := c.LoadMatches(context.Background(), 2, 27, []int64{1}, 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}
