package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/toolform/internal/layout"
	"github.com/studiowebux/toolform/internal/term"
)

// spinnerFrames is the 10-frame Braille spinner, advanced every 80ms.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// loadingMessages is shuffled once per process in NewAppState's caller and
// then advanced roughly once per second while the Loading view is active.
var loadingMessages = []string{
	"Warming up the tubes",
	"Consulting the catalog",
	"Negotiating with the remote",
	"Untangling the schema",
	"Asking nicely",
	"Counting electrons",
	"Polishing the payload",
	"Waiting on the wire",
	"Summoning a response",
	"Spinning up gears",
	"Reticulating splines",
	"Dusting off the endpoint",
	"Checking twice",
	"Herding bytes",
	"Almost there",
	"Still working on it",
}

var styleSpinner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// RenderLoading renders the spinner and rotating message, centered.
func RenderLoading(s AppState, cols, rows int) layout.Frame {
	frame := spinnerFrames[s.SpinnerFrame%len(spinnerFrames)]
	msg := loadingMessages[s.LoadingMsgIdx%len(loadingMessages)]

	var content []string
	content = append(content, "")
	content = append(content, "")
	content = append(content, centered(styleSpinner.Render(frame)+"  "+msg, cols-5))

	title := "toolform"
	if s.SelectedTool != nil {
		title = s.SelectedTool.Name
	}
	return layout.Frame{Breadcrumb: "Commands › " + title, Content: content, Footer: ""}
}

// HandleLoading is a no-op: keystrokes are dropped silently while a tool
// invocation is in flight, so the user cannot navigate away mid-request.
func HandleLoading(s AppState, key term.KeyEvent) (AppState, string) {
	return s, ""
}

// TickSpinner advances the spinner frame; called by the core loop on its
// 80ms timer while view == Loading.
func TickSpinner(s AppState) AppState {
	out := s.Clone()
	out.SpinnerFrame++
	return out
}

// TickLoadingMessage advances the rotating message; called roughly every
// second while view == Loading.
func TickLoadingMessage(s AppState) AppState {
	out := s.Clone()
	out.LoadingMsgIdx++
	return out
}
