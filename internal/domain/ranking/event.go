// Package ranking turns normalized results into per-event points and ranked
// category leaderboards.
package ranking

import (
	"sort"

	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/types"
)

// AbsentDisplay is shown for teams with no recorded attempt.
const AbsentDisplay = "--"

type participant struct {
	team  string
	score float64
}

// RankEvent ranks every team of a category in one event.
//
// Scored results are ranked with the minimum rank on ties (1,2,2,4):
// ascending scores for time events, descending for count events. Absent and
// unscorable teams receive participants+1 points, or 0 when nobody scored.
// The returned map has an entry for every team in teams.
func RankEvent(event string, teams []string, results map[string]model.Result, kind model.MetricKind) map[string]types.EventScore {
	participants := make([]participant, 0, len(teams))
	for _, team := range teams {
		if r, ok := results[team]; ok && r.State == model.Scored {
			participants = append(participants, participant{team: team, score: r.Score})
		}
	}

	better := func(a, b float64) bool {
		if kind == model.Time {
			return a < b
		}
		return a > b
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return better(participants[i].score, participants[j].score)
	})

	points := make(map[string]int, len(participants))
	rank := 0
	for i, p := range participants {
		if i == 0 || participants[i-1].score != p.score {
			rank = i + 1
		}
		points[p.team] = rank
	}

	penalty := 0
	if len(participants) > 0 {
		penalty = len(participants) + 1
	}

	out := make(map[string]types.EventScore, len(teams))
	for _, team := range teams {
		r, ok := results[team]
		if !ok {
			r = model.AbsentResult
		}
		switch r.State {
		case model.Scored:
			out[team] = types.EventScore{Event: event, Display: r.Raw, Points: points[team]}
		case model.Unscorable:
			out[team] = types.EventScore{Event: event, Display: r.Raw, Points: penalty}
		default:
			out[team] = types.EventScore{Event: event, Display: AbsentDisplay, Points: penalty}
		}
	}
	return out
}

// RankCategoryEvent ranks one event for all teams of a category.
func RankCategoryEvent(c *model.Category, ev model.EventDefinition) map[string]types.EventScore {
	results := make(map[string]model.Result, len(c.Teams))
	for i := range c.Teams {
		results[c.Teams[i].Name] = c.Teams[i].Result(ev.Name)
	}
	return RankEvent(ev.Name, c.TeamNames(), results, ev.Kind)
}
