package source

import "errors"

// Sentinel kinds for source errors. Every acquisition failure wraps ErrNoData
// so callers can tell "nothing to compute" apart from bad cells.
var (
	ErrNoData            = errors.New("no data")
	ErrUnsupportedFormat = errors.New("unsupported source format")
)
