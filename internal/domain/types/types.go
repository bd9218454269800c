// Package types contains the leaderboard payload handed to renderers and the API.
package types

import "time"

// EventScore is one team's outcome in one event.
type EventScore struct {
	Event   string `json:"event"`
	Display string `json:"display"`
	Points  int    `json:"points"`
}

// LeaderboardRow is a team's aggregated record within its category.
type LeaderboardRow struct {
	Rank        int               `json:"rank"`
	Team        string            `json:"team"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Results     []EventScore      `json:"results"`
	TotalPoints int               `json:"total_points"`
	// Placements[i] counts events where the team scored exactly i+1 points.
	Placements []int `json:"placements"`
}

// Result returns the team's score for event.
func (r *LeaderboardRow) Result(event string) (EventScore, bool) {
	for _, s := range r.Results {
		if s.Event == event {
			return s, true
		}
	}
	return EventScore{}, false
}

// Event describes a column of the board.
type Event struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Category is one ranked division.
type Category struct {
	Name string           `json:"name"`
	Rows []LeaderboardRow `json:"rows"`
}

// Board is the full result of one computation.
type Board struct {
	RunID       string     `json:"run_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Events      []Event    `json:"events"`
	Attributes  []string   `json:"attributes,omitempty"`
	Categories  []Category `json:"categories"`
}

// Category returns the named category.
func (b *Board) Category(name string) (Category, bool) {
	for _, c := range b.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// TeamCount returns the number of rows across all categories.
func (b *Board) TeamCount() int {
	n := 0
	for _, c := range b.Categories {
		n += len(c.Rows)
	}
	return n
}
