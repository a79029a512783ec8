package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/toolform/internal/dateparts"
	"github.com/studiowebux/toolform/internal/layout"
	"github.com/studiowebux/toolform/internal/schema"
	"github.com/studiowebux/toolform/internal/term"
)

const optionalThreshold = 6

var (
	styleRequiredUnset = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleRequiredSet   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleBadge         = lipgloss.NewStyle().Faint(true)
	styleExecuteReady  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// buildFilteredIdx computes FilteredIdx for the current query: matching
// field indices, ranked by fuzzy subsequence match against the field name,
// plus the -1 Execute sentinel appended.
func buildFilteredIdx(fields []schema.FormField, query string) []int {
	if strings.TrimSpace(query) == "" {
		out := make([]int, len(fields)+1)
		for i := range fields {
			out[i] = i
		}
		out[len(fields)] = -1
		return out
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	matches := fuzzy.Find(query, names)
	out := make([]int, 0, len(matches)+1)
	for _, m := range matches {
		out = append(out, m.Index)
	}
	out = append(out, -1)
	return out
}

// actionLabel returns the label for the trailing Execute/Add/Save row,
// depending on whether this form is a top-level invocation or a sub-form.
func actionLabel(s AppState) string {
	if len(s.FormStack) == 0 {
		return "Execute"
	}
	top := s.FormStack[len(s.FormStack)-1]
	if top.EditIndex < 0 {
		return "Add"
	}
	return "Save"
}

// RenderForm renders either the palette or the field editor, depending on
// s.Editing.
func RenderForm(s AppState, cols, rows int) layout.Frame {
	if s.Editing {
		return renderEditor(s, cols, rows)
	}
	return renderPalette(s, cols, rows)
}

func renderPalette(s AppState, cols, rows int) layout.Frame {
	var content []string
	title := s.SelectedTool.Name
	if len(s.FormStack) > 0 {
		title = "  ↳ " + title
	}
	content = append(content, title)
	if s.SelectedTool.Description != "" {
		content = append(content, styleBadge.Render(s.SelectedTool.Description))
	}

	filled, total := schema.CountRequired(s.Fields, s.Values)
	progress := fmt.Sprintf("%d of %d required", filled, total)
	if total > 0 && filled == total {
		progress = "✓ " + progress
	}
	content = append(content, progress)
	content = append(content, "")

	if len(s.Fields) > optionalThreshold || s.FormQuery != "" {
		cursorGlyph := "█"
		before, after := s.FormQuery[:s.FormQueryCursor], s.FormQuery[s.FormQueryCursor:]
		content = append(content, "search: "+before+cursorGlyph+after)
		content = append(content, "")
	}

	requiredRows, optionalRows := splitRequiredOptional(s)

	for _, idx := range requiredRows {
		content = append(content, renderFieldRow(s, idx))
	}

	if len(optionalRows) > 0 {
		if !s.ShowOptional {
			setCount := 0
			for _, idx := range optionalRows {
				if idx >= 0 && !s.Values.IsUnset(s.Fields[idx]) {
					setCount++
				}
			}
			content = append(content, styleBadge.Render(fmt.Sprintf("── %d optional (%d set) · 'o' to show ──", len(optionalRows), setCount)))
		} else {
			for _, idx := range optionalRows {
				content = append(content, renderFieldRow(s, idx))
			}
		}
	}

	// Execute/Add/Save row is always last in FilteredIdx (-1 sentinel).
	execRow := "  " + actionLabel(s)
	if isCursorOnExecute(s) {
		execRow = styleSelected.Render("❯ " + actionLabel(s))
	}
	if allRequiredFilled(s) {
		execRow = styleExecuteReady.Render(execRow)
	}
	content = append(content, execRow)

	if desc, example := currentFieldHint(s); desc != "" || example != "" {
		content = append(content, "")
		if desc != "" {
			content = append(content, styleBadge.Render(desc))
		}
		if example != "" {
			content = append(content, styleBadge.Render("e.g. "+example))
		}
	}

	footer := "↑/↓ navigate · tab next required · enter edit · o toggle optional · esc back"
	if s.ShowRequired {
		footer = "fill all required fields before executing"
	}
	return layout.Frame{Breadcrumb: breadcrumb(s), Content: content, Footer: footer}
}

func breadcrumb(s AppState) string {
	parts := []string{"Commands", s.SelectedTool.Name}
	for range s.FormStack {
		parts = append(parts, "…")
	}
	return strings.Join(parts, " › ")
}

func splitRequiredOptional(s AppState) (required, optional []int) {
	for _, idx := range s.FilteredIdx {
		if idx < 0 {
			continue
		}
		if s.Fields[idx].Required {
			required = append(required, idx)
		} else {
			optional = append(optional, idx)
		}
	}
	return required, optional
}

func isCursorOnExecute(s AppState) bool {
	if s.FormCursor < 0 || s.FormCursor >= len(s.FilteredIdx) {
		return false
	}
	return s.FilteredIdx[s.FormCursor] == -1
}

func allRequiredFilled(s AppState) bool {
	return schema.UnfilledRequired(s.Fields, s.Values) < 0
}

func currentFieldHint(s AppState) (desc, example string) {
	if s.FormCursor < 0 || s.FormCursor >= len(s.FilteredIdx) {
		return "", ""
	}
	idx := s.FilteredIdx[s.FormCursor]
	if idx < 0 {
		return "", ""
	}
	f := s.Fields[idx]
	ex := ""
	if len(f.Prop.Examples) > 0 {
		ex = fmt.Sprintf("%v", f.Prop.Examples[0])
	}
	return f.Prop.Description, ex
}

func renderFieldRow(s AppState, idx int) string {
	f := s.Fields[idx]
	marker := "  "
	selected := false
	if s.FormCursor >= 0 && s.FormCursor < len(s.FilteredIdx) && s.FilteredIdx[s.FormCursor] == idx {
		selected = true
		marker = "❯ "
	}

	nameCell := fmt.Sprintf("%-24s", f.Name)
	if f.Required {
		if s.Values.IsUnset(f) {
			nameCell = styleRequiredUnset.Render(fmt.Sprintf("%-24s", "*"+f.Name))
		} else {
			nameCell = styleRequiredSet.Render(fmt.Sprintf("%-24s", f.Name))
		}
	}

	preview := valuePreview(f, s.Values[f.Name])
	badge := styleBadge.Render(f.Prop.Kind.String())
	line := fmt.Sprintf("%s%s %-30s %s", marker, nameCell, preview, badge)
	if selected {
		return styleSelected.Render(line)
	}
	return line
}

// valuePreview renders the draft for a field row per §4.6.
func valuePreview(f schema.FormField, draft string) string {
	if strings.TrimSpace(draft) == "" {
		return "–"
	}
	if f.Prop.Kind == schema.KindArrayObj || f.Prop.Kind == schema.KindArrayEnum {
		var arr []any
		if err := json.Unmarshal([]byte(draft), &arr); err == nil {
			return fmt.Sprintf("[%d item(s)]", len(arr))
		}
	}
	lines := strings.Split(draft, "\n")
	if len(lines) > 1 {
		return term.FitWidth(lines[0], 20) + fmt.Sprintf(" [+%d lines]", len(lines)-1)
	}
	return term.FitWidth(draft, 24)
}

// openEditor transitions into editor mode for Fields[idx], seeding the
// kind-specific transient state from the current draft.
func openEditor(s AppState, idx int) AppState {
	out := s.Clone()
	out.Editing = true
	out.EditFieldIdx = idx
	out.ShowRequired = false
	f := s.Fields[idx]
	draft := s.Values[f.Name]

	switch f.Prop.Kind {
	case schema.KindText, schema.KindNumber:
		out.InputBuf = draft
		out.InputCursor = len(draft)
	case schema.KindBool:
		out.Enum = &EnumEditorState{Choices: []string{"true", "false"}, Cursor: boolCursor(draft)}
	case schema.KindEnum:
		out.Enum = &EnumEditorState{Choices: f.Prop.Enum, Cursor: indexOf(f.Prop.Enum, draft)}
	case schema.KindArrayEnum:
		sel := map[int]bool{}
		for _, v := range splitTrimmed(draft) {
			if i := indexOf(f.Prop.Enum, v); i >= 0 {
				sel[i] = true
			}
		}
		out.Enum = &EnumEditorState{Choices: f.Prop.Enum, Multi: true, Selected: sel}
	case schema.KindDate:
		var parts dateparts.Parts
		if p, ok := dateparts.Parse(draft, f.Prop.DateFormat); ok {
			parts = p
		} else {
			parts = dateparts.Today(f.Prop.DateFormat)
		}
		out.Date = &DateEditorState{Values: parts.Values, Format: f.Prop.DateFormat}
	case schema.KindArrayText:
		out.ArrayText = &ArrayTextEditorState{Items: splitTrimmed(draft)}
		out.ArrayText.Cursor = len(out.ArrayText.Items)
	case schema.KindArrayObj:
		items := decodeArrayObjItems(draft)
		out.ArrayObj = &ArrayObjEditorState{Items: items}
	}
	return out
}

func boolCursor(draft string) int {
	if draft == "false" {
		return 1
	}
	return 0
}

func indexOf(choices []string, v string) int {
	for i, c := range choices {
		if c == v {
			return i
		}
	}
	return 0
}

func splitTrimmed(draft string) []string {
	if strings.TrimSpace(draft) == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(draft), &arr); err == nil {
		return arr
	}
	parts := strings.Split(draft, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func decodeArrayObjItems(draft string) []map[string]any {
	if strings.TrimSpace(draft) == "" {
		return nil
	}
	var items []map[string]any
	json.Unmarshal([]byte(draft), &items) //nolint:errcheck
	return items
}
