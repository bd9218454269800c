package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/okian/wodboard/internal/domain/types"
)

// StampLayout formats the "updated at" line of the report.
const StampLayout = "02/01/2006 15:04:05"

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.New("report.html").ParseFS(templateFS, "templates/report.html"))

// HTML renders the static report page.
type HTML struct {
	path  string
	title string
	loc   *time.Location
}

// HTMLOption configures an HTML sink.
type HTMLOption func(*HTML)

// WithTitle sets the page heading.
func WithTitle(title string) HTMLOption {
	return func(h *HTML) {
		if title != "" {
			h.title = title
		}
	}
}

// WithLocation sets the zone of the "updated at" stamp.
func WithLocation(loc *time.Location) HTMLOption {
	return func(h *HTML) {
		if loc != nil {
			h.loc = loc
		}
	}
}

// NewHTML writes the report to path on Emit. An empty path is fine for
// callers that only use Render.
func NewHTML(path string, opts ...HTMLOption) *HTML {
	h := &HTML{path: path, title: "Leaderboard", loc: time.UTC}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements Sink.
func (h *HTML) Name() string { return "html" }

// Emit implements Sink.
func (h *HTML) Emit(ctx context.Context, b *types.Board) error {
	if err := check(ctx, b); err != nil {
		return err
	}
	return writeFile(h.path, func(w io.Writer) error { return h.Render(w, b) })
}

type reportView struct {
	Title      string
	UpdatedAt  string
	RunID      string
	Events     []types.Event
	Attributes []string
	Categories []categoryView
}

type categoryView struct {
	types.Category
	// ID is the section anchor: a lower-case slug, unique on the page.
	ID string
}

// Render writes the report for b to w.
func (h *HTML) Render(w io.Writer, b *types.Board) error {
	if b == nil {
		return ErrNilBoard
	}
	view := reportView{
		Title:      h.title,
		UpdatedAt:  b.GeneratedAt.In(h.loc).Format(StampLayout),
		RunID:      b.RunID,
		Events:     b.Events,
		Attributes: b.Attributes,
		Categories: make([]categoryView, 0, len(b.Categories)),
	}
	used := make(map[string]bool, len(b.Categories))
	for _, c := range b.Categories {
		view.Categories = append(view.Categories, categoryView{Category: c, ID: anchorID(c.Name, used)})
	}
	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// anchorID slugs name into an HTML id: letters and digits lower-cased, every
// other run of runes collapsed to one '-'. Collisions get -2, -3, ...
func anchorID(name string, used map[string]bool) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	base := sb.String()
	if base == "" {
		base = "category"
	}
	id := base
	for i := 2; used[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	used[id] = true
	return id
}
