package source

import (
	"fmt"
	"io"

	"github.com/okian/wodboard/internal/domain/table"
	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the named worksheet, or the first one when sheet is empty.
// The first row is the header.
func DecodeXLSX(r io.Reader, sheet string) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &table.Table{}, nil
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		return nil, fmt.Errorf("xlsx: missing sheet %q", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &table.Table{}, nil
	}
	return &table.Table{Columns: rows[0], Rows: rows[1:]}, nil
}
