package repository

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/okian/wodboard/internal/domain/types"
)

const defaultMaxLimit = 500

// snapshot is an immutable view of one board plus its lookup index.
type snapshot struct {
	board      *types.Board
	categories []string
	byCategory map[string]int            // category -> index in board.Categories
	byTeam     map[string]map[string]int // category -> team -> row index
}

// SnapshotStore is a lock-free Store. Readers load the current snapshot with
// one atomic read; Publish builds the next one off to the side and swaps it in.
type SnapshotStore struct {
	current  atomic.Pointer[snapshot]
	maxLimit int
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish implements Store.
func (s *SnapshotStore) Publish(ctx context.Context, b *types.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("publish nil board: %w", ErrEmpty)
	}
	snap := &snapshot{
		board:      b,
		categories: make([]string, len(b.Categories)),
		byCategory: make(map[string]int, len(b.Categories)),
		byTeam:     make(map[string]map[string]int, len(b.Categories)),
	}
	for i, c := range b.Categories {
		snap.categories[i] = c.Name
		snap.byCategory[c.Name] = i
		teams := make(map[string]int, len(c.Rows))
		for j, r := range c.Rows {
			teams[r.Team] = j
		}
		snap.byTeam[c.Name] = teams
	}
	s.current.Store(snap)
	return nil
}

// Board implements Store.
func (s *SnapshotStore) Board(_ context.Context) (*types.Board, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrEmpty
	}
	return snap.board, nil
}

// Leaderboard implements Store.
func (s *SnapshotStore) Leaderboard(_ context.Context, category string, limit int) ([]types.LeaderboardRow, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	limit = min(limit, s.maxLimit)
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrEmpty
	}
	idx, ok := snap.byCategory[category]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, ErrNotFound)
	}
	rows := snap.board.Categories[idx].Rows
	limit = min(limit, len(rows))
	out := make([]types.LeaderboardRow, limit)
	copy(out, rows[:limit])
	return out, nil
}

// Rank implements Store.
func (s *SnapshotStore) Rank(_ context.Context, category, team string) (types.LeaderboardRow, error) {
	snap := s.current.Load()
	if snap == nil {
		return types.LeaderboardRow{}, ErrEmpty
	}
	teams, ok := snap.byTeam[category]
	if !ok {
		return types.LeaderboardRow{}, fmt.Errorf("category %q: %w", category, ErrNotFound)
	}
	j, ok := teams[team]
	if !ok {
		return types.LeaderboardRow{}, fmt.Errorf("team %q in %q: %w", team, category, ErrNotFound)
	}
	return snap.board.Categories[snap.byCategory[category]].Rows[j], nil
}

// Categories implements Store.
func (s *SnapshotStore) Categories(_ context.Context) []string {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return slices.Clone(snap.categories)
}

// Count implements Store.
func (s *SnapshotStore) Count(_ context.Context) int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return snap.board.TeamCount()
}
