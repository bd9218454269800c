package repository

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrEmpty        = errors.New("no leaderboard published yet")
	ErrNotFound     = errors.New("not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
