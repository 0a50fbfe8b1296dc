// Package ui renders the per-file status table printed after a rewrite.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status of one file.
type Status string

const (
	StatusRewritten Status = "rewritten"
	StatusPending   Status = "would change"
	StatusUnchanged Status = "unchanged"
	StatusCached    Status = "cached"
	StatusError     Status = "error"
)

// Item is one row of the report.
type Item struct {
	Path   string
	Status Status
	Traits int
}

// Report is a titled list of file statuses.
type Report struct {
	Title string
	Items []Item
	Width int  // terminal width; 0 = 80
	Color bool // when false lipgloss styles are dropped
}

// Render writes the table and a one-line summary.
func (r *Report) Render(w io.Writer) error {
	if len(r.Items) == 0 {
		return nil
	}
	width := r.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(r.style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))).Render(r.Title))
	b.WriteString("\n")

	statusWidth := 12
	nameWidth := max(width-statusWidth-12, 20)
	counts := make(map[Status]int)
	for _, item := range r.Items {
		counts[item.Status]++
		status := r.style(styleStatus(item.Status)).Render(fmt.Sprintf("%12s", item.Status))
		fmt.Fprintf(&b, "  %s %s", status, truncate(item.Path, nameWidth))
		if item.Traits > 0 {
			fmt.Fprintf(&b, " (%d trait(s))", item.Traits)
		}
		b.WriteString("\n")
	}
	b.WriteString(r.summary(counts))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) summary(counts map[Status]int) string {
	var parts []string
	for _, s := range []Status{StatusRewritten, StatusPending, StatusCached, StatusUnchanged, StatusError} {
		if n := counts[s]; n > 0 {
			parts = append(parts, r.style(styleStatus(s)).Render(fmt.Sprintf("%d %s", n, s)))
		}
	}
	return fmt.Sprintf("%d file(s): %s", len(r.Items), strings.Join(parts, ", "))
}

func (r *Report) style(s lipgloss.Style) lipgloss.Style {
	if r.Color {
		return s
	}
	return lipgloss.NewStyle()
}

func styleStatus(status Status) lipgloss.Style {
	switch status {
	case StatusRewritten:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case StatusPending:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
