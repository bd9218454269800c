// Package source reads the competition table from files or remote
// spreadsheets in CSV, XLSX or HTML form.
package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/wodboard/internal/domain/table"
)

// Formats understood by Decode.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
)

// Source yields the raw table for one computation.
type Source interface {
	// Name identifies the source kind in logs and metrics.
	Name() string
	// Fetch reads the whole table. Failures wrap ErrNoData.
	Fetch(ctx context.Context) (*table.Table, error)
}

// Spec describes where and how to read the table.
type Spec struct {
	URL        string
	Path       string
	Format     string
	Sheet      string        // xlsx worksheet; empty means the first
	HeaderHint string        // a column name identifying the header row of html tables
	CacheBust  bool          // add cache_bust=<unix> to URL
	Timeout    time.Duration // remote fetch timeout
}

// New returns a remote source when URL is set, otherwise a file source.
func New(spec Spec) (Source, error) {
	format := strings.ToLower(strings.TrimSpace(spec.Format))
	switch format {
	case FormatCSV, FormatXLSX, FormatHTML:
	default:
		return nil, fmt.Errorf("%q: %w", spec.Format, ErrUnsupportedFormat)
	}
	spec.Format = format
	if strings.TrimSpace(spec.URL) != "" {
		return NewRemote(spec), nil
	}
	if strings.TrimSpace(spec.Path) != "" {
		return NewFile(spec), nil
	}
	return nil, fmt.Errorf("neither url nor path configured: %w", ErrNoData)
}

// Decode parses r according to spec.Format.
func Decode(r io.Reader, spec Spec) (*table.Table, error) {
	var (
		t   *table.Table
		err error
	)
	switch spec.Format {
	case FormatCSV:
		t, err = DecodeCSV(r)
	case FormatXLSX:
		t, err = DecodeXLSX(r, spec.Sheet)
	case FormatHTML:
		t, err = DecodeHTML(r, spec.HeaderHint)
	default:
		return nil, fmt.Errorf("%q: %w", spec.Format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", spec.Format, ErrNoData, err)
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("decode %s: empty header: %w", spec.Format, ErrNoData)
	}
	return t, nil
}
