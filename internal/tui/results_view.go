package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/toolform/internal/jsonpp"
	"github.com/studiowebux/toolform/internal/layout"
	"github.com/studiowebux/toolform/internal/term"
)

const horizontalScrollStep = 4

var (
	styleOKGlyph    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleGhostGlyph = lipgloss.NewStyle().Faint(true)
	styleErrorText  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleRangeHdr   = lipgloss.NewStyle().Faint(true)
)

// RenderResults renders the Results view in one of three modes: success,
// empty-list, or pretty-printed/error body with scroll.
func RenderResults(s AppState, cols, rows int) layout.Frame {
	title := "Results"
	if s.SelectedTool != nil {
		title = "Commands › " + s.SelectedTool.Name
	}
	footer := "esc/enter back · ↑/↓/pgup/pgdn scroll · ←/→ scroll"
	if s.Result != nil && s.Result.Value != nil {
		footer = "esc/enter back · ↑/↓/pgup/pgdn scroll · ←/→ scroll · / filter"
	}
	if s.ActiveFilter != "" {
		footer = fmt.Sprintf("filter: %s · / edit · esc clear", s.ActiveFilter)
	}
	if s.FilterErr != "" {
		footer = styleErrorText.Render("filter: " + s.FilterErr)
	}
	if s.FilterEditing {
		cursorGlyph := "█"
		before, after := s.FilterQuery[:s.FilterQueryCursor], s.FilterQuery[s.FilterQueryCursor:]
		footer = "/" + before + cursorGlyph + after
	}
	if s.QuitConfirm {
		footer = "Press again to quit"
	}

	if s.Result == nil {
		return layout.Frame{Breadcrumb: title, Content: nil, Footer: footer}
	}

	if s.Result.Empty {
		content := []string{
			"", "",
			centered(styleGhostGlyph.Render("👻"), cols-5),
			"",
			centered("No results found", cols-5),
			centered("try a different query or adjust the form fields", cols-5),
		}
		return layout.Frame{Breadcrumb: title, Content: content, Footer: footer}
	}

	if !s.Result.IsError && s.Result.Text == "" {
		content := []string{"", "", centered(styleOKGlyph.Render("✓"), cols-5), "", centered("Success", cols-5)}
		return layout.Frame{Breadcrumb: title, Content: content, Footer: footer}
	}

	text := s.Result.Text
	if s.Result.Value != nil && s.ActiveFilter != "" {
		if filtered, err := jsonpp.Filter(s.Result.Value, s.ActiveFilter); err == nil {
			text = joinLines(jsonpp.Print(filtered))
		}
	}
	lines := splitLines(text)
	contentRows := rows - 5
	if contentRows < 1 {
		contentRows = 1
	}

	top := s.ResultScroll
	if top > len(lines) {
		top = len(lines)
	}
	bottom := top + contentRows
	if bottom > len(lines) {
		bottom = len(lines)
	}

	var content []string
	rangeHdr := fmt.Sprintf("(%d–%d of %d)", min1(top+1, len(lines)), bottom, len(lines))
	content = append(content, styleRangeHdr.Render(rangeHdr))
	for i := top; i < bottom; i++ {
		line := term.ANSISlice(lines[i], s.ResultScrollX)
		if s.Result.IsError {
			line = styleErrorText.Render(line)
		}
		content = append(content, line)
	}

	return layout.Frame{Breadcrumb: title, Content: content, Footer: footer}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func min1(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// HandleResults interprets one key event in the Results view.
func HandleResults(s AppState, key term.KeyEvent, pageSize int) (AppState, string) {
	if s.FilterEditing {
		return handleFilterPrompt(s, key), ""
	}

	if key.Name == "q" || (key.Name == "c" && key.Ctrl) {
		if s.QuitConfirm {
			return s, "exit"
		}
		out := s.Clone()
		out.QuitConfirm = true
		return out, ""
	}

	switch key.Name {
	case "/":
		if s.Result != nil && s.Result.Value != nil {
			out := s.Clone()
			out.FilterEditing = true
			out.FilterQuery = s.ActiveFilter
			out.FilterQueryCursor = len(s.ActiveFilter)
			out.FilterErr = ""
			return out, ""
		}
		return s, ""
	case "escape", "return", "enter":
		out := s.Clone()
		out.ResultScroll = 0
		out.ResultScrollX = 0
		out.QuitConfirm = false
		if key.Name == "escape" && s.ActiveFilter != "" {
			out.View = ViewResults
			out.ActiveFilter = ""
			out.FilterErr = ""
			return out, ""
		}
		if s.SelectedTool != nil && len(s.Fields) > 0 && s.Result != nil && !s.Result.Empty {
			out.View = ViewForm
			out.ActiveFilter = ""
			out.FilterErr = ""
			return out, ""
		}
		out.View = ViewCommands
		out.ActiveFilter = ""
		out.FilterErr = ""
		return out, ""
	case "up":
		out := s.Clone()
		if out.ResultScroll > 0 {
			out.ResultScroll--
		}
		return out, ""
	case "down":
		out := s.Clone()
		out.ResultScroll++
		return out, ""
	case "pageup":
		out := s.Clone()
		out.ResultScroll -= pageSize
		if out.ResultScroll < 0 {
			out.ResultScroll = 0
		}
		return out, ""
	case "pagedown":
		out := s.Clone()
		out.ResultScroll += pageSize
		return out, ""
	case "left":
		out := s.Clone()
		out.ResultScrollX -= horizontalScrollStep
		if out.ResultScrollX < 0 {
			out.ResultScrollX = 0
		}
		return out, ""
	case "right":
		out := s.Clone()
		out.ResultScrollX += horizontalScrollStep
		return out, ""
	}
	return s, ""
}

// handleFilterPrompt interprets one key event while the '/' JMESPath filter
// prompt is open. Enter on a blank query clears ActiveFilter; enter on an
// expression that fails to compile sets FilterErr and keeps the prompt open
// instead of replacing the Results view, per the filter's error contract.
func handleFilterPrompt(s AppState, key term.KeyEvent) AppState {
	switch key.Name {
	case "escape":
		s.FilterEditing = false
		s.FilterErr = ""
		return s
	case "return", "enter":
		if strings.TrimSpace(s.FilterQuery) == "" {
			s.ActiveFilter = ""
			s.FilterEditing = false
			s.FilterErr = ""
			return s
		}
		if _, err := jsonpp.Filter(s.Result.Value, s.FilterQuery); err != nil {
			s.FilterErr = err.Error()
			return s
		}
		s.ActiveFilter = s.FilterQuery
		s.FilterEditing = false
		s.FilterErr = ""
		s.ResultScroll = 0
		s.ResultScrollX = 0
		return s
	case "left":
		if s.FilterQueryCursor > 0 {
			s.FilterQueryCursor--
		}
		return s
	case "right":
		if s.FilterQueryCursor < len(s.FilterQuery) {
			s.FilterQueryCursor++
		}
		return s
	case "backspace":
		if s.FilterQueryCursor > 0 {
			s.FilterQuery = s.FilterQuery[:s.FilterQueryCursor-1] + s.FilterQuery[s.FilterQueryCursor:]
			s.FilterQueryCursor--
			s.FilterErr = ""
		}
		return s
	}
	if len(key.Raw) == 1 && key.Raw[0] >= 0x20 && key.Raw[0] < 0x7f && !key.Ctrl {
		s.FilterQuery = s.FilterQuery[:s.FilterQueryCursor] + key.Raw + s.FilterQuery[s.FilterQueryCursor:]
		s.FilterQueryCursor += len(key.Raw)
		s.FilterErr = ""
	}
	return s
}
