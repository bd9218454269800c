package table

import "errors"

// Sentinel kinds for table ingestion errors.
var (
	ErrNoData        = errors.New("no data")
	ErrMissingColumn = errors.New("missing column")
	ErrDuplicateTeam = errors.New("duplicate team in category")
)
