package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/okian/wodboard/internal/domain/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	columnStyle  = lipgloss.NewStyle().Bold(true)
	podiumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Text prints a compact per-category table to a terminal.
type Text struct {
	w   io.Writer
	top int
}

// NewText prints at most top rows per category; top <= 0 prints all.
func NewText(w io.Writer, top int) *Text { return &Text{w: w, top: top} }

// Name implements Sink.
func (t *Text) Name() string { return "text" }

// Emit implements Sink.
func (t *Text) Emit(ctx context.Context, b *types.Board) error {
	if err := check(ctx, b); err != nil {
		return err
	}
	var sb strings.Builder
	for i, c := range b.Categories {
		if i > 0 {
			sb.WriteString("\n")
		}
		t.category(&sb, b.Events, c)
	}
	if len(b.Categories) == 0 {
		sb.WriteString(mutedStyle.Render("no teams") + "\n")
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *Text) category(sb *strings.Builder, events []types.Event, c types.Category) {
	header := []string{"#", "Team"}
	for _, ev := range events {
		header = append(header, ev.Name)
	}
	header = append(header, "Total")

	rows := c.Rows
	if t.top > 0 && len(rows) > t.top {
		rows = rows[:t.top]
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{strconv.Itoa(r.Rank), r.Team}
		for _, ev := range events {
			s, _ := r.Result(ev.Name)
			line = append(line, fmt.Sprintf("%s (%d)", s.Display, s.Points))
		}
		line = append(line, strconv.Itoa(r.TotalPoints))
		cells = append(cells, line)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, line := range cells {
		for i, v := range line {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}

	sb.WriteString(headingStyle.Render(c.Name) + "\n")
	sb.WriteString(columnStyle.Render(join(header, widths)) + "\n")
	for i, line := range cells {
		text := join(line, widths)
		if rows[i].Rank <= 3 {
			text = podiumStyle.Render(text)
		}
		sb.WriteString(text + "\n")
	}
	if hidden := len(c.Rows) - len(rows); hidden > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("... %d more", hidden)) + "\n")
	}
}

func join(values []string, widths []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = padRight(v, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func padRight(s string, width int) string {
	vw := lipgloss.Width(s)
	if vw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vw)
}
