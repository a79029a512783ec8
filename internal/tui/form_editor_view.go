package tui

import (
	"fmt"
	"strings"

	"github.com/studiowebux/toolform/internal/layout"
	"github.com/studiowebux/toolform/internal/schema"
)

func renderEditor(s AppState, cols, rows int) layout.Frame {
	f := s.Fields[s.EditFieldIdx]
	var content []string
	content = append(content, f.Name)
	if f.Prop.Description != "" {
		content = append(content, styleBadge.Render(f.Prop.Description))
	}
	content = append(content, "")

	switch f.Prop.Kind {
	case schema.KindText, schema.KindNumber:
		content = append(content, renderTextEditor(s, f)...)
	case schema.KindBool, schema.KindEnum:
		content = append(content, renderChoiceEditor(s.Enum)...)
	case schema.KindArrayEnum:
		content = append(content, renderMultiChoiceEditor(s.Enum)...)
	case schema.KindArrayText:
		content = append(content, renderArrayTextEditor(s.ArrayText)...)
	case schema.KindDate:
		content = append(content, renderDateEditor(s.Date)...)
	case schema.KindArrayObj:
		content = append(content, renderArrayObjEditor(s.ArrayObj)...)
	}

	footer := "enter confirm · esc cancel"
	switch f.Prop.Kind {
	case schema.KindArrayEnum, schema.KindArrayText:
		footer = "enter confirm · esc confirm"
	case schema.KindArrayObj:
		footer = "enter open · backspace delete · esc cancel"
	}
	return layout.Frame{Breadcrumb: breadcrumb(s) + " › " + f.Name, Content: content, Footer: footer}
}

func renderTextEditor(s AppState, f schema.FormField) []string {
	placeholder := placeholderFor(f)
	cursorGlyph := "█"
	before, after := s.InputBuf[:s.InputCursor], s.InputBuf[s.InputCursor:]
	line := before + cursorGlyph + after
	if s.InputBuf == "" && placeholder != "" {
		line = styleBadge.Render(placeholder)
	}
	return []string{line}
}

func placeholderFor(f schema.FormField) string {
	if len(f.Prop.Examples) > 0 {
		return fmt.Sprintf("%v", f.Prop.Examples[0])
	}
	if f.Prop.Kind == schema.KindNumber {
		return "0"
	}
	return ""
}

func renderChoiceEditor(e *EnumEditorState) []string {
	if e == nil {
		return nil
	}
	var lines []string
	for i, c := range e.Choices {
		marker := "  "
		if i == e.Cursor {
			marker = "❯ "
			c = styleSelected.Render(c)
		}
		lines = append(lines, marker+c)
	}
	return lines
}

func renderMultiChoiceEditor(e *EnumEditorState) []string {
	if e == nil {
		return nil
	}
	var lines []string
	for i, c := range e.Choices {
		box := "[ ]"
		if e.Selected[i] {
			box = "[x]"
		}
		marker := "  "
		line := fmt.Sprintf("%s%s %s", marker, box, c)
		if i == e.Cursor {
			line = styleSelected.Render("❯ " + box + " " + c)
		}
		lines = append(lines, line)
	}
	return lines
}

func renderArrayTextEditor(e *ArrayTextEditorState) []string {
	if e == nil {
		return nil
	}
	var lines []string
	for i, item := range e.Items {
		marker := "  "
		if i == e.Cursor {
			marker = styleSelected.Render("❯ ")
		}
		lines = append(lines, marker+item)
	}
	cursorGlyph := "█"
	before, after := e.Input[:e.InputCursor], e.Input[e.InputCursor:]
	inputLine := "+ " + before + cursorGlyph + after
	if e.Cursor == len(e.Items) {
		inputLine = styleSelected.Render("❯ ") + before + cursorGlyph + after
	}
	lines = append(lines, inputLine)
	return lines
}

func renderDateEditor(d *DateEditorState) []string {
	if d == nil {
		return nil
	}
	labels := []string{"YYYY", "MM", "DD", "hh", "mm"}
	var parts []string
	for i, v := range d.Values {
		text := fmt.Sprintf("%02d", v)
		if i == 0 {
			text = fmt.Sprintf("%04d", v)
		}
		if i == d.Cursor {
			text = styleSelected.Render(text)
		}
		parts = append(parts, text)
	}
	joiner := "-"
	line := parts[0] + joiner + parts[1] + joiner + parts[2]
	if len(parts) > 3 {
		line += " " + parts[3] + ":" + parts[4]
	}
	hint := strings.Join(labels[:len(d.Values)], "  ")
	return []string{line, styleBadge.Render(hint), "", styleBadge.Render("← → select part · ↑ ↓ adjust · t today · backspace clear")}
}

func renderArrayObjEditor(a *ArrayObjEditorState) []string {
	if a == nil {
		return nil
	}
	var lines []string
	for i, item := range a.Items {
		marker := "  "
		if i == a.Cursor {
			marker = "❯ "
		}
		lines = append(lines, marker+summarizeItem(item))
	}
	addLine := "  + Add new item"
	if a.Cursor == len(a.Items) {
		addLine = styleSelected.Render("❯ + Add new item")
	}
	lines = append(lines, addLine)
	return lines
}

func summarizeItem(item map[string]any) string {
	var parts []string
	for k, v := range item {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}
