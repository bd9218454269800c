// Package render emits a computed board as an HTML report, an XLSX workbook,
// a JSON document or a terminal summary.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/wodboard/internal/domain/types"
)

// ErrNilBoard is returned when a sink is asked to emit nothing.
var ErrNilBoard = errors.New("nil board")

// Sink publishes a board somewhere.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	Emit(ctx context.Context, b *types.Board) error
}

// writeFile replaces path with whatever write produces. The content lands in
// a temporary sibling first so readers never observe a partial file.
func writeFile(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

func check(ctx context.Context, b *types.Board) error {
	if b == nil {
		return ErrNilBoard
	}
	return ctx.Err()
}
