// Package table validates a raw tabular dataset and normalizes it into a
// competition: event definitions, categories and tri-state results.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/scoring"
)

// Table is a header plus string rows, as read from any tabular source.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == column {
			return i
		}
	}
	return -1
}

// Cell returns row[col], empty when the row is short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Schema names the columns the ingestion relies on.
type Schema struct {
	CategoryColumn     string
	TeamColumn         string
	PassthroughColumns []string
	ResultSuffix       string
	TimeToken          string
}

// DefaultSchema matches the competition sheet layout.
func DefaultSchema() Schema {
	return Schema{
		CategoryColumn:     "Categoria",
		TeamColumn:         "Time",
		PassthroughColumns: []string{"Integrantes"},
		ResultSuffix:       model.DefaultResultSuffix,
		TimeToken:          model.DefaultTimeToken,
	}
}

// Normalizer classifies one cell for a metric kind.
type Normalizer interface {
	Normalize(raw string, kind model.MetricKind) model.Result
}

// Stats summarizes what ingestion saw.
type Stats struct {
	Rows        int   // team rows kept
	BlankRows   int   // fully blank rows skipped
	KeylessRows []int // sheet lines with data but no category or team, skipped
	Scored      int
	Absent      int
	Unscorable  int
	MissingCols []string // passthrough columns not present in the header
}

// Build validates t against schema and returns the competition.
// A nil normalizer uses the default score parser.
func Build(t *Table, schema Schema, n Normalizer) (*model.Competition, Stats, error) {
	var stats Stats
	if t == nil || len(t.Columns) == 0 {
		return nil, stats, fmt.Errorf("empty table: %w", ErrNoData)
	}
	if n == nil {
		n = scoring.NewParser()
	}

	catCol := t.Index(schema.CategoryColumn)
	if catCol < 0 {
		return nil, stats, fmt.Errorf("%q: %w", schema.CategoryColumn, ErrMissingColumn)
	}
	teamCol := t.Index(schema.TeamColumn)
	if teamCol < 0 {
		return nil, stats, fmt.Errorf("%q: %w", schema.TeamColumn, ErrMissingColumn)
	}

	type passthrough struct {
		name string
		col  int
	}
	passCols := make([]passthrough, 0, len(schema.PassthroughColumns))
	attrNames := make([]string, 0, len(schema.PassthroughColumns))
	for _, name := range schema.PassthroughColumns {
		col := t.Index(name)
		if col < 0 {
			stats.MissingCols = append(stats.MissingCols, name)
			continue
		}
		passCols = append(passCols, passthrough{name: name, col: col})
		attrNames = append(attrNames, name)
	}

	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = strings.TrimSpace(c)
	}
	events := model.DefineEvents(columns, schema.ResultSuffix, schema.TimeToken)
	eventCols := make([]int, len(events))
	for i, ev := range events {
		eventCols[i] = t.Index(ev.Column)
	}

	byName := make(map[string]*model.Category)
	seen := make(map[[2]string]int)
	for rowIdx, row := range t.Rows {
		if blankRow(row) {
			stats.BlankRows++
			continue
		}
		// Header is line 1 in the sheet.
		line := rowIdx + 2
		catName := strings.TrimSpace(Cell(row, catCol))
		teamName := strings.TrimSpace(Cell(row, teamCol))
		if scoring.IsBlank(catName) || scoring.IsBlank(teamName) {
			stats.KeylessRows = append(stats.KeylessRows, line)
			continue
		}

		cat, ok := byName[catName]
		if !ok {
			cat = &model.Category{Name: catName}
			byName[catName] = cat
		}
		key := [2]string{catName, teamName}
		if first, dup := seen[key]; dup {
			return nil, stats, fmt.Errorf("row %d: %q in %q already on row %d: %w", line, teamName, catName, first, ErrDuplicateTeam)
		}
		seen[key] = line

		team := model.Team{
			Name:    teamName,
			Results: make(map[string]model.Result, len(events)),
		}
		for _, p := range passCols {
			team.Attributes = append(team.Attributes, model.Attribute{
				Name:  p.name,
				Value: strings.TrimSpace(Cell(row, p.col)),
			})
		}
		for i, ev := range events {
			r := n.Normalize(Cell(row, eventCols[i]), ev.Kind)
			switch r.State {
			case model.Scored:
				stats.Scored++
			case model.Unscorable:
				stats.Unscorable++
			default:
				stats.Absent++
			}
			team.Results[ev.Name] = r
		}
		cat.Teams = append(cat.Teams, team)
		stats.Rows++
	}

	if stats.Rows == 0 {
		return nil, stats, fmt.Errorf("no team rows: %w", ErrNoData)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	comp := &model.Competition{
		Events:     events,
		Attributes: attrNames,
		Categories: make([]model.Category, 0, len(names)),
	}
	for _, name := range names {
		comp.Categories = append(comp.Categories, *byName[name])
	}
	return comp, stats, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
