// Package scoring converts raw result cells into comparable scores.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/wodboard/internal/domain/model"
)

// Penalty tiers for time events. They sit far above any genuine time and
// order capped-with-reps < capped-without-reps < unparseable.
const (
	CappedBase    = 1_000_000
	CappedNoReps  = 2_000_000
	WorstTime     = 9_999_999
	defaultMarker = "CAP"
	secondsPerMin = 60
)

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithCapMarker sets the prefix that marks a time-capped result.
func WithCapMarker(marker string) Option {
	return func(p *Parser) {
		if m := strings.TrimSpace(marker); m != "" {
			p.capMarker = strings.ToUpper(m)
		}
	}
}

// WithDecimalComma toggles accepting "62,5" as 62.5 in count events. Off by
// default: a comma makes the cell unscorable.
func WithDecimalComma(enabled bool) Option {
	return func(p *Parser) {
		p.decimalComma = enabled
	}
}

// Parser scores and classifies result cells.
type Parser struct {
	capMarker    string
	decimalComma bool
}

// NewParser creates a parser with configuration options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		capMarker: defaultMarker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseScore scores raw with the default parser.
func ParseScore(raw string, kind model.MetricKind) (float64, bool) {
	return defaultParser.Score(raw, kind)
}

// Score turns raw into a comparable score for kind. It returns false when
// the value cannot take part in ranking.
func (p *Parser) Score(raw string, kind model.MetricKind) (float64, bool) {
	if kind == model.Time {
		return p.timeScore(raw), true
	}
	return p.countScore(raw)
}

// Normalize classifies a cell for an event. Blank cells are Absent; every
// time cell is Scored (garbage degrades to WorstTime); count cells that are
// not numbers are Unscorable.
func (p *Parser) Normalize(raw string, kind model.MetricKind) model.Result {
	raw = strings.TrimSpace(raw)
	if IsBlank(raw) {
		return model.AbsentResult
	}
	score, ok := p.Score(raw, kind)
	if !ok {
		return model.Result{Raw: raw, State: model.Unscorable}
	}
	return model.Result{Raw: raw, State: model.Scored, Score: score}
}

// IsBlank reports whether a cell holds no attempt: empty, whitespace, or a
// textual "nan" left behind by spreadsheet exports.
func IsBlank(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || strings.EqualFold(s, "nan")
}

func (p *Parser) timeScore(raw string) float64 {
	s := strings.ToUpper(strings.TrimSpace(raw))

	if strings.HasPrefix(s, p.capMarker) {
		parts := strings.Split(s, "+")
		if len(parts) < 2 {
			return CappedNoReps
		}
		reps, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
		if err != nil {
			return CappedNoReps
		}
		return float64(CappedBase + reps)
	}

	if strings.Count(s, ":") == 1 {
		mm, ss, _ := strings.Cut(s, ":")
		minutes, errM := strconv.Atoi(strings.TrimSpace(mm))
		seconds, errS := strconv.Atoi(strings.TrimSpace(ss))
		if errM != nil || errS != nil {
			return WorstTime
		}
		return float64(minutes*secondsPerMin + seconds)
	}

	if v, ok := parseFinite(s); ok {
		return v
	}
	return WorstTime
}

func (p *Parser) countScore(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if p.decimalComma && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return parseFinite(s)
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
