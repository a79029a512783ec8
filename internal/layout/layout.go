// Package layout implements the single-column text composition primitives
// shared by every view renderer: the bordered-box frame and greedy word wrap.
package layout

import (
	"strings"

	"github.com/studiowebux/toolform/internal/term"
)

// Frame describes one full-screen layout pass.
type Frame struct {
	Breadcrumb string
	Content    []string
	Footer     string
}

// Render produces exactly `rows` output lines: one header row with the
// breadcrumb, one top border, rows-4 content rows (each
// "│ <fit_width(line, inner)> │"), one bottom border, and one footer row.
// Content rows beyond the supplied content are blank-padded; rows above the
// budget are truncated.
func Render(f Frame, cols, rows int) []string {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	lines := make([]string, 0, rows)
	lines = append(lines, term.FitWidth(f.Breadcrumb, cols))

	if rows == 1 {
		return lines[:1]
	}

	inner := cols - 5
	if inner < 0 {
		inner = 0
	}
	fill := cols - 3
	if fill < 0 {
		fill = 0
	}

	lines = append(lines, "╭"+strings.Repeat("─", fill)+"╮")

	contentRows := rows - 4
	if contentRows < 0 {
		contentRows = 0
	}
	for i := 0; i < contentRows; i++ {
		var content string
		if i < len(f.Content) {
			content = f.Content[i]
		}
		lines = append(lines, "│ "+term.FitWidth(content, inner)+" │")
	}

	lines = append(lines, "╰"+strings.Repeat("─", fill)+"╯")
	lines = append(lines, term.FitWidth(f.Footer, cols))

	return term.JoinLines(lines, rows)
}

// WrapText performs greedy word wrap at width columns, collapsing runs of
// whitespace. It never returns zero lines (an empty input yields one empty
// line).
func WrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range fields {
		wWidth := term.VisibleWidth(word)
		if curWidth == 0 {
			cur.WriteString(word)
			curWidth = wWidth
			continue
		}
		if curWidth+1+wWidth > width {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			curWidth = wWidth
			continue
		}
		cur.WriteByte(' ')
		cur.WriteString(word)
		curWidth += 1 + wWidth
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
