package aggregator

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/pable/go-sb-charts/internal/model"
)

// Defaults for pass network construction.
const (
	DefaultMinLinkCount = 5
	DefaultRosterSize   = 11
)

// ErrMalformedEvent marks input records that fail validation.
var ErrMalformedEvent = errors.New("malformed event")

var validate = validator.New()

// NetworkOptions controls BuildNetwork.
type NetworkOptions struct {
	MatchID int64
	Team    string
	// Roster restricts the network to these players. When empty the roster is
	// derived with StartingEleven.
	Roster       []string
	RosterSize   int
	MinLinkCount int
	// JerseyNumbers is optional; missing players get 0.
	JerseyNumbers map[string]int
}

// BuildNetwork validates events and computes the pass network for one team.
func BuildNetwork(events []model.PassEvent, opts NetworkOptions) (*model.Network, error) {
	if opts.Team == "" {
		return nil, errors.New("team is required")
	}
	if opts.RosterSize <= 0 {
		opts.RosterSize = DefaultRosterSize
	}
	if opts.MinLinkCount < 0 {
		return nil, errors.Newf("negative min link count %d", opts.MinLinkCount)
	}
	if err := ValidatePasses(events); err != nil {
		return nil, err
	}

	teamEvents := make([]model.PassEvent, 0, len(events))
	for _, e := range events {
		if e.Team == opts.Team {
			teamEvents = append(teamEvents, e)
		}
	}

	roster := opts.Roster
	if len(roster) == 0 {
		roster = StartingEleven(teamEvents, opts.RosterSize)
	}

	positions := ComputePositions(teamEvents, roster)
	for i := range positions {
		positions[i].JerseyNumber = opts.JerseyNumbers[positions[i].Player]
	}
	links, err := ComputeLinks(FilterRoster(teamEvents, roster), opts.MinLinkCount)
	if err != nil {
		return nil, err
	}

	return &model.Network{
		MatchID:   opts.MatchID,
		Team:      opts.Team,
		Roster:    roster,
		Positions: positions,
		Links:     links,
	}, nil
}

// ValidatePasses checks every record and reports the first malformed one.
func ValidatePasses(events []model.PassEvent) error {
	for i, e := range events {
		if err := validate.Struct(e); err != nil {
			return errors.Mark(
				errors.Wrapf(err, "pass %d (index %d)", i, e.Index),
				ErrMalformedEvent,
			)
		}
		if e.Recipient == e.Passer {
			return errors.Mark(
				errors.Newf("pass %d (index %d): %q passes to themself", i, e.Index, e.Passer),
				ErrMalformedEvent,
			)
		}
	}
	return nil
}

// StartingEleven ranks passers by the span between their first and last pass
// minute and returns the top size players. Equal spans keep first-appearance order.
func StartingEleven(events []model.PassEvent, size int) []string {
	type span struct {
		player   string
		min, max int
	}
	var order []*span
	byPlayer := make(map[string]*span)
	for _, e := range events {
		s, ok := byPlayer[e.Passer]
		if !ok {
			s = &span{player: e.Passer, min: e.Minute, max: e.Minute}
			byPlayer[e.Passer] = s
			order = append(order, s)
			continue
		}
		if e.Minute < s.min {
			s.min = e.Minute
		}
		if e.Minute > s.max {
			s.max = e.Minute
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].max-order[i].min > order[j].max-order[j].min
	})

	size = max(0, min(size, len(order)))
	out := make([]string, 0, size)
	for _, s := range order[:size] {
		out = append(out, s.player)
	}
	return out
}

// FilterRoster keeps passes whose passer, and recipient when present, are in roster.
func FilterRoster(events []model.PassEvent, roster []string) []model.PassEvent {
	in := toSet(roster)
	out := make([]model.PassEvent, 0, len(events))
	for _, e := range events {
		if _, ok := in[e.Passer]; !ok {
			continue
		}
		if e.Completed() {
			if _, ok := in[e.Recipient]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// ComputePositions averages, per roster player, the start coordinates of passes
// sent and the end coordinates of passes received. Passes to or from players
// outside the roster are dropped first. Players with no coordinates are left
// out. Rows come back in first-appearance order.
func ComputePositions(events []model.PassEvent, roster []string) []model.PlayerPosition {
	events = FilterRoster(events, roster)

	type accum struct {
		sumX, sumY float64
		n          int
		sent, recv int
	}
	var order []string
	accums := make(map[string]*accum)
	get := func(player string) *accum {
		a, ok := accums[player]
		if !ok {
			a = &accum{}
			accums[player] = a
			order = append(order, player)
		}
		return a
	}

	for _, e := range events {
		a := get(e.Passer)
		a.sumX += e.Start.X
		a.sumY += e.Start.Y
		a.n++
		a.sent++
		if !e.Completed() {
			continue
		}
		r := get(e.Recipient)
		r.sumX += e.End.X
		r.sumY += e.End.Y
		r.n++
		r.recv++
	}

	out := make([]model.PlayerPosition, 0, len(order))
	for _, player := range order {
		a := accums[player]
		if a.n == 0 {
			continue
		}
		out = append(out, model.PlayerPosition{
			Player:     player,
			Average:    model.Point{X: a.sumX / float64(a.n), Y: a.sumY / float64(a.n)},
			Volume:     a.sent,
			Receptions: a.recv,
		})
	}
	return out
}

type pairKey struct{ a, b string }

func newPairKey(x, y string) pairKey {
	if y < x {
		x, y = y, x
	}
	return pairKey{x, y}
}

// ComputeLinks counts completed passes per unordered pair and keeps pairs with
// strictly more than minCount passes. Links are sorted by count descending.
func ComputeLinks(events []model.PassEvent, minCount int) ([]model.PassLink, error) {
	counts := make(map[pairKey]int)
	for i, e := range events {
		if !e.Completed() {
			continue
		}
		if e.Passer == e.Recipient {
			return nil, errors.Mark(
				errors.Newf("pass %d (index %d): self pair %q", i, e.Index, e.Passer),
				ErrMalformedEvent,
			)
		}
		counts[newPairKey(e.Passer, e.Recipient)]++
	}

	links := make([]model.PassLink, 0, len(counts))
	for k, c := range counts {
		if c <= minCount {
			continue
		}
		links = append(links, model.PassLink{PlayerA: k.a, PlayerB: k.b, Count: c})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Count != links[j].Count {
			return links[i].Count > links[j].Count
		}
		if links[i].PlayerA != links[j].PlayerA {
			return links[i].PlayerA < links[j].PlayerA
		}
		return links[i].PlayerB < links[j].PlayerB
	})
	return links, nil
}

func toSet(players []string) map[string]struct{} {
	set := make(map[string]struct{}, len(players))
	for _, p := range players {
		set[p] = struct{}{}
	}
	return set
}
