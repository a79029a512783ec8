package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/toolform/internal/layout"
	"github.com/studiowebux/toolform/internal/schema"
	"github.com/studiowebux/toolform/internal/term"
)

const appVersion = "0.1.0"

var (
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleGroupHdr = lipgloss.NewStyle().Faint(true)
	styleDescr    = lipgloss.NewStyle().Faint(true)
	styleFooter   = lipgloss.NewStyle().Faint(true)
)

// RenderCommands renders the Commands view into a Frame's content lines.
func RenderCommands(s AppState, cols, rows int) layout.Frame {
	var content []string
	content = append(content, centered(fmt.Sprintf("toolform v%s", appVersion), cols-5))
	content = append(content, "")

	cursorGlyph := "█"
	query := s.CmdQuery
	before, after := query[:s.CmdQueryCursor], query[s.CmdQueryCursor:]
	content = append(content, "> "+before+cursorGlyph+after)
	content = append(content, "")

	filtered := filterTools(s.Tools, s.CmdQuery)
	rowsList := buildGroupedRows(filtered, s.RecentFirst, s.RecentTools)
	selIdx := selectableIndices(rowsList)

	maxRows := rows - 4 - len(content)
	if maxRows < 1 {
		maxRows = 1
	}

	start, end := scrollWindow(rowsList, selIdx, s.CmdCursor, s.CmdScrollTop, maxRows)
	for i := start; i < end; i++ {
		r := rowsList[i]
		if r.IsGroup {
			content = append(content, styleGroupHdr.Render("── "+r.Group+" ──"))
			continue
		}
		marker := "  "
		line := fmt.Sprintf("%s%-28s %s", marker, r.Tool.Name, styleDescr.Render(r.Tool.Description))
		if isSelectedRow(i, selIdx, s.CmdCursor) {
			line = styleSelected.Render("❯ " + fmt.Sprintf("%-28s", r.Tool.Name) + " " + styleDescr.Render(r.Tool.Description))
		}
		content = append(content, line)
	}
	if end < len(rowsList) {
		hidden := countSelectableAfter(rowsList, end)
		if hidden > 0 {
			content = append(content, styleFooter.Render(fmt.Sprintf("(%d more)", hidden)))
		}
	}

	footer := "↑/↓ navigate · enter select · ctrl+r recent · esc quit"
	if s.RecentFirst {
		footer = "↑/↓ navigate · enter select · ctrl+r grouped · esc quit"
	}
	if s.QuitConfirm {
		footer = "Press again to quit"
	}
	return layout.Frame{Breadcrumb: "Commands", Content: content, Footer: footer}
}

func centered(s string, width int) string {
	w := term.VisibleWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s
}

func isSelectedRow(rowIdx int, selIdx []int, cursor int) bool {
	if cursor < 0 || cursor >= len(selIdx) {
		return false
	}
	return selIdx[cursor] == rowIdx
}

func scrollWindow(rows []groupedRow, selIdx []int, cursor, scrollTop, maxRows int) (start, end int) {
	start = scrollTop
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		start = len(rows)
	}
	end = start + maxRows
	if end > len(rows) {
		end = len(rows)
	}
	return start, end
}

func countSelectableAfter(rows []groupedRow, from int) int {
	n := 0
	for i := from; i < len(rows); i++ {
		if !rows[i].IsGroup {
			n++
		}
	}
	return n
}

// HandleCommands interprets one key event in the Commands view.
func HandleCommands(s AppState, key term.KeyEvent) (AppState, string) {
	filtered := filterTools(s.Tools, s.CmdQuery)
	rows := buildGroupedRows(filtered, s.RecentFirst, s.RecentTools)
	selIdx := selectableIndices(rows)

	if key.Name == "r" && key.Ctrl {
		s.RecentFirst = !s.RecentFirst
		s.CmdCursor = 0
		s.CmdScrollTop = 0
		return s, ""
	}

	if key.Name == "c" && key.Ctrl {
		if s.CmdQuery != "" {
			s.CmdQuery = ""
			s.CmdQueryCursor = 0
			s.QuitConfirm = false
			return s, ""
		}
		if s.QuitConfirm {
			return s, "exit"
		}
		s.QuitConfirm = true
		return s, ""
	}

	switch key.Name {
	case "escape":
		if s.CmdQuery != "" {
			s.CmdQuery = ""
			s.CmdQueryCursor = 0
			s.QuitConfirm = false
			return s, ""
		}
		if s.QuitConfirm {
			return s, "exit"
		}
		s.QuitConfirm = true
		return s, ""
	case "q":
		if s.CmdQuery == "" {
			if s.QuitConfirm {
				return s, "exit"
			}
			s.QuitConfirm = true
			return s, ""
		}
	case "left":
		if s.CmdQueryCursor > 0 {
			s.CmdQueryCursor--
		}
		return s, ""
	case "right":
		if s.CmdQueryCursor < len(s.CmdQuery) {
			s.CmdQueryCursor++
		}
		return s, ""
	case "up":
		if len(selIdx) > 0 && s.CmdCursor > 0 {
			s.CmdCursor--
		}
		return s, ""
	case "down":
		if len(selIdx) > 0 && s.CmdCursor < len(selIdx)-1 {
			s.CmdCursor++
		}
		return s, ""
	case "backspace":
		if s.CmdQueryCursor > 0 {
			s.CmdQuery = s.CmdQuery[:s.CmdQueryCursor-1] + s.CmdQuery[s.CmdQueryCursor:]
			s.CmdQueryCursor--
			s.CmdCursor = 0
		}
		return s, ""
	case "return", "enter":
		if len(selIdx) == 0 || s.CmdCursor >= len(selIdx) {
			return s, ""
		}
		tool := rows[selIdx[s.CmdCursor]].Tool
		out := enterForm(s, tool)
		if out.View == ViewLoading {
			return out, "submit"
		}
		return out, ""
	}

	if len(key.Raw) == 1 && key.Raw[0] >= 0x20 && key.Raw[0] < 0x7f && !key.Ctrl {
		s.CmdQuery = s.CmdQuery[:s.CmdQueryCursor] + key.Raw + s.CmdQuery[s.CmdQueryCursor:]
		s.CmdQueryCursor += len(key.Raw)
		s.CmdCursor = 0
		s.QuitConfirm = false
	}
	return s, ""
}

// enterForm builds the initial Form-view state for tool, auto-opening the
// first unfilled required field, or transitioning straight to Loading when
// the tool has no properties.
func enterForm(s AppState, tool *schema.ToolDef) AppState {
	fields := schema.BuildFields(tool)
	values := schema.NewValues(fields)

	out := s.Clone()
	out.SelectedTool = tool
	out.Fields = fields
	out.Values = values
	out.FormStack = nil
	out.FormQuery = ""
	out.FormQueryCursor = 0
	out.ShowRequired = false
	out.ShowOptional = false
	out.FormCursor = 0
	out.FormScrollTop = 0
	out.Editing = false
	out.LastEditedIdx = -1
	out.FilteredIdx = buildFilteredIdx(fields, "")

	if len(fields) == 0 {
		out.View = ViewLoading
		out.SpinnerFrame = 0
		return out
	}

	out.View = ViewForm
	if idx := schema.UnfilledRequired(fields, values); idx >= 0 {
		return openEditor(out, idx)
	}
	return out
}
