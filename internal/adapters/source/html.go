package source

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okian/wodboard/internal/domain/table"
)

// DecodeHTML reads the first table that has a header row. When headerHint is
// set, the header is the first row containing a cell equal to it; this skips
// the column-letter banner of published spreadsheets. Data rows use td cells
// only, so row-number th cells are ignored.
func DecodeHTML(r io.Reader, headerHint string) (*table.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := &table.Table{}
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		t := readTable(tbl, strings.TrimSpace(headerHint))
		if len(t.Columns) == 0 {
			return true
		}
		out = t
		return false
	})
	return out, nil
}

func readTable(tbl *goquery.Selection, hint string) *table.Table {
	t := &table.Table{}
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if t.Columns == nil {
			cells := cellTexts(tr.Find("td"))
			if len(cells) == 0 {
				cells = cellTexts(tr.Find("th"))
			}
			if isHeader(cells, hint) {
				t.Columns = cells
			}
			return
		}
		cells := cellTexts(tr.Find("td"))
		if len(cells) > 0 {
			t.Rows = append(t.Rows, cells)
		}
	})
	return t
}

func isHeader(cells []string, hint string) bool {
	if hint == "" {
		for _, c := range cells {
			if c != "" {
				return true
			}
		}
		return false
	}
	for _, c := range cells {
		if c == hint {
			return true
		}
	}
	return false
}

func cellTexts(sel *goquery.Selection) []string {
	cells := make([]string, 0, sel.Length())
	sel.Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}
