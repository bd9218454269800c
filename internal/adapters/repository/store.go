// Package repository holds the latest computed board for concurrent readers.
package repository

import (
	"context"

	"github.com/okian/wodboard/internal/domain/types"
)

// Store provides read/write access to the published leaderboard.
type Store interface {
	// Publish atomically replaces the current board.
	Publish(ctx context.Context, b *types.Board) error

	// Board returns the current board. Returns ErrEmpty before the first publish.
	Board(ctx context.Context) (*types.Board, error)

	// Leaderboard returns the first limit rows of category in rank order.
	// Returns ErrNotFound for an unknown category and ErrInvalidLimit for limit <= 0.
	Leaderboard(ctx context.Context, category string, limit int) ([]types.LeaderboardRow, error)

	// Rank returns the row of team within category.
	// Returns ErrNotFound if either is unknown.
	Rank(ctx context.Context, category, team string) (types.LeaderboardRow, error)

	// Categories lists category names in board order.
	Categories(ctx context.Context) []string

	// Count returns the number of teams on the board.
	Count(ctx context.Context) int
}
