package ranking

import (
	"cmp"
	"slices"

	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/types"
)

// Aggregate ranks a category across all events.
//
// Rows are ordered by total points ascending, then by placement counts
// (most 1st places, then most 2nd places, ...) descending, then by team name.
// Teams share a rank only when total and every placement count are equal;
// the next distinct key takes its 1-based position.
func Aggregate(c model.Category, events []model.EventDefinition) []types.LeaderboardRow {
	n := len(c.Teams)
	rows := make([]types.LeaderboardRow, n)
	for i := range c.Teams {
		rows[i] = types.LeaderboardRow{
			Team:       c.Teams[i].Name,
			Attributes: attributes(c.Teams[i].Attributes),
			Results:    make([]types.EventScore, 0, len(events)),
			Placements: make([]int, n),
		}
	}

	for _, ev := range events {
		scores := RankCategoryEvent(&c, ev)
		for i := range rows {
			s := scores[rows[i].Team]
			rows[i].Results = append(rows[i].Results, s)
			rows[i].TotalPoints += s.Points
			if s.Points >= 1 && s.Points <= n {
				rows[i].Placements[s.Points-1]++
			}
		}
	}

	slices.SortFunc(rows, func(a, b types.LeaderboardRow) int {
		if byKey := compareTieKey(&a, &b); byKey != 0 {
			return byKey
		}
		return cmp.Compare(a.Team, b.Team)
	})
	AssignRanks(rows)
	return rows
}

// AssignRanks sets competition ranks on rows already sorted by tie key.
func AssignRanks(rows []types.LeaderboardRow) {
	for i := range rows {
		if i == 0 || compareTieKey(&rows[i-1], &rows[i]) != 0 {
			rows[i].Rank = i + 1
			continue
		}
		rows[i].Rank = rows[i-1].Rank
	}
}

// compareTieKey orders by total ascending, then placements descending.
func compareTieKey(a, b *types.LeaderboardRow) int {
	if c := cmp.Compare(a.TotalPoints, b.TotalPoints); c != 0 {
		return c
	}
	for i := 0; i < len(a.Placements) && i < len(b.Placements); i++ {
		if c := cmp.Compare(b.Placements[i], a.Placements[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(b.Placements), len(a.Placements))
}

func attributes(attrs []model.Attribute) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[a.Name] = a.Value
	}
	return out
}
