// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"strings"
)

// MetricKind tells how raw results of an event are compared.
type MetricKind int

const (
	// Count events rank higher raw values first (reps, load).
	Count MetricKind = iota
	// Time events rank lower raw values first (clock times, capped notations).
	Time
)

// String implements fmt.Stringer.
func (k MetricKind) String() string {
	if k == Time {
		return "time"
	}
	return "count"
}

// Default naming convention of the input sheet.
const (
	DefaultResultSuffix = "_Resultado"
	DefaultTimeToken    = "tempo"
)

// EventDefinition describes one scored workout, derived once from the table header.
type EventDefinition struct {
	Name   string     // base name, e.g. "WOD1_Tempo"
	Column string     // source column, e.g. "WOD1_Tempo_Resultado"
	Kind   MetricKind // how results compare
}

// KindOf infers the metric kind from the last "_" token of an event base name.
// Only timeToken (case-insensitive) selects Time.
func KindOf(baseName, timeToken string) MetricKind {
	token := baseName
	if i := strings.LastIndex(baseName, "_"); i >= 0 {
		token = baseName[i+1:]
	}
	if strings.EqualFold(strings.TrimSpace(token), timeToken) {
		return Time
	}
	return Count
}

// DefineEvents builds the event list from header columns ending in suffix.
// Events are sorted by base name and deduplicated.
func DefineEvents(columns []string, suffix, timeToken string) []EventDefinition {
	seen := make(map[string]struct{}, len(columns))
	events := make([]EventDefinition, 0, len(columns))
	for _, col := range columns {
		if !strings.HasSuffix(col, suffix) {
			continue
		}
		base := strings.TrimSuffix(col, suffix)
		if base == "" {
			continue
		}
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		events = append(events, EventDefinition{
			Name:   base,
			Column: col,
			Kind:   KindOf(base, timeToken),
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })
	return events
}
