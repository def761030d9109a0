package statsbomb

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/pable/go-sb-charts/internal/model"
)

// MatchResult is the outcome of loading one match of a batch.
type MatchResult struct {
	MatchID int64
	Data    *model.MatchData
	Err     error
}

// LoadMatches loads several matches of one season, at most workers at a time.
// The season listing is fetched once. Results keep the order of ids; a match
// that fails carries its own error and does not stop the others.
func (c *Client) LoadMatches(ctx context.Context, competitionID, seasonID int, ids []int64, workers int) ([]MatchResult, error) {
	matches, err := c.Matches(ctx, competitionID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	byID := make(map[int64]model.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]MatchResult, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		results[i].MatchID = id
		m, ok := byID[id]
		if !ok {
			results[i].Err = errors.Wrapf(ErrNotFound, "match %d in competition %d season %d", id, competitionID, seasonID)
			continue
		}

		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i].Data, results[i].Err = c.loadMatch(ctx, m)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit match %d to worker pool: %w", id, err)
		}
	}
	wg.Wait()
	return results, nil
}
