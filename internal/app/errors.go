package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNilCompetition = errors.New("nil competition")
	ErrNoSource       = errors.New("no source configured")
	ErrEmit           = errors.New("emit board")
)
