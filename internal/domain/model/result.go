package model

// ResultState classifies a (team, event) cell once at ingestion.
type ResultState int

const (
	// Absent means no attempt was recorded.
	Absent ResultState = iota
	// Scored means the cell produced a comparable score.
	Scored
	// Unscorable means the cell has text that cannot be ranked for its metric.
	Unscorable
)

// String implements fmt.Stringer.
func (s ResultState) String() string {
	switch s {
	case Scored:
		return "scored"
	case Unscorable:
		return "unscorable"
	default:
		return "absent"
	}
}

// Result is a normalized raw result with its comparable score.
type Result struct {
	Raw   string // trimmed cell text, empty when Absent
	State ResultState
	Score float64 // valid only when State == Scored
}

// AbsentResult is the zero value, spelled out for readability at call sites.
var AbsentResult = Result{State: Absent}
