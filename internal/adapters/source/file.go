package source

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/wodboard/internal/domain/table"
)

// File reads the table from a local path.
type File struct {
	spec Spec
}

// NewFile builds a File for spec.Path.
func NewFile(spec Spec) *File { return &File{spec: spec} }

// Name implements Source.
func (f *File) Name() string { return "file" }

// Fetch implements Source.
func (f *File) Fetch(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.spec.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", f.spec.Path, ErrNoData, err)
	}
	defer func() { _ = fh.Close() }()
	return Decode(fh, f.spec)
}
