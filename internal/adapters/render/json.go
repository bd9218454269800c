package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/okian/wodboard/internal/domain/types"
)

// JSON writes the board document.
type JSON struct {
	path string
}

// NewJSON writes to path on Emit.
func NewJSON(path string) *JSON { return &JSON{path: path} }

// Name implements Sink.
func (j *JSON) Name() string { return "json" }

// Emit implements Sink.
func (j *JSON) Emit(ctx context.Context, b *types.Board) error {
	if err := check(ctx, b); err != nil {
		return err
	}
	return writeFile(j.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	})
}
