package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/okian/wodboard/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// XLSX exports one worksheet per category.
type XLSX struct {
	path string
}

// NewXLSX writes the workbook to path on Emit.
func NewXLSX(path string) *XLSX { return &XLSX{path: path} }

// Name implements Sink.
func (x *XLSX) Name() string { return "xlsx" }

// Emit implements Sink.
func (x *XLSX) Emit(ctx context.Context, b *types.Board) error {
	if err := check(ctx, b); err != nil {
		return err
	}
	return writeFile(x.path, func(w io.Writer) error { return WriteXLSX(w, b) })
}

// WriteXLSX encodes b as a workbook. Each event gets a display column and a
// points column.
func WriteXLSX(w io.Writer, b *types.Board) error {
	if b == nil {
		return ErrNilBoard
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(0)
	used := make(map[string]bool, len(b.Categories))
	for i, c := range b.Categories {
		name := sheetName(c.Name, used)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
		if err := writeCategory(f, name, b, c); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeCategory(f *excelize.File, sheet string, b *types.Board, c types.Category) error {
	header := []any{"Rank", "Time"}
	for _, a := range b.Attributes {
		header = append(header, a)
	}
	for _, ev := range b.Events {
		header = append(header, ev.Name, ev.Name+" pts")
	}
	header = append(header, "Total")
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, r := range c.Rows {
		row := []any{r.Rank, r.Team}
		for _, a := range b.Attributes {
			row = append(row, r.Attributes[a])
		}
		for _, ev := range b.Events {
			s, _ := r.Result(ev.Name)
			row = append(row, s.Display, s.Points)
		}
		row = append(row, r.TotalPoints)
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
	return nil
}

// sheetName maps a category to a unique valid worksheet name.
func sheetName(category string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(category))
	// Excel refuses names that start or end with an apostrophe.
	name = strings.Trim(name, "' ")
	if r := []rune(name); len(r) > maxSheetName {
		name = strings.TrimRight(string(r[:maxSheetName]), "' ")
	}
	if name == "" {
		name = "Category"
	}
	base := name
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
