package tui

import (
	"math/rand"
	"time"

	"github.com/studiowebux/toolform/internal/catalog"
	"github.com/studiowebux/toolform/internal/jsonpp"
	"github.com/studiowebux/toolform/internal/layout"
	"github.com/studiowebux/toolform/internal/schema"
	"github.com/studiowebux/toolform/internal/term"
)

const (
	spinnerInterval    = 80 * time.Millisecond
	messageInterval    = time.Second
	quitConfirmWindow  = 2 * time.Second
)

// Runner owns the full-screen session and drives the single-threaded
// cooperative event loop: reading keys, firing the spinner/message/quit-
// confirm timers, and invoking tools through client.
type Runner struct {
	client    *catalog.Client
	loadToken func() (token string, authType string, err error)
}

// NewRunner builds a Runner against an already-constructed catalog client.
// loadToken reloads the bearer token immediately before each tool
// invocation, per the external-interface contract: a transport failure here
// surfaces in the Results view exactly like a failed CallTool. It may be
// nil, in which case the client's existing token (if any) is reused for
// every call without refresh.
func NewRunner(client *catalog.Client, loadToken func() (string, string, error)) *Runner {
	return &Runner{client: client, loadToken: loadToken}
}

// Run executes the event loop until the user quits or an unrecoverable
// terminal error occurs. tools is the already-fetched catalog; recent seeds
// the most-recently-used tool name list, which lives only for this process.
func (r *Runner) Run(tools []*schema.ToolDef, recent []string) error {
	shuffleLoadingMessages()

	screen, err := term.EnterFullScreen()
	if err != nil {
		return err
	}
	defer screen.ExitFullScreen()

	state := NewAppState(tools, recent)

	events := make(chan term.KeyEvent, 16)
	stop := make(chan struct{})
	screen.WatchResize(func(cols, rows int) {})
	go screen.ReadLoop(events, stop)
	defer close(stop)
	defer screen.StopResize()

	spinnerTicker := time.NewTicker(spinnerInterval)
	defer spinnerTicker.Stop()
	messageTicker := time.NewTicker(messageInterval)
	defer messageTicker.Stop()

	var quitConfirmTimer <-chan time.Time
	invoked := make(chan AppState, 1)

	paint := func() {
		cols, rows := screen.ScreenSize()
		screen.Paint(renderFrameLines(state, cols, rows), rows)
	}
	paint()

	for {
		select {
		case key, ok := <-events:
			if !ok {
				return nil
			}
			_, screenRows := screen.ScreenSize()
			next, signal := r.dispatch(state, key, screenRows)
			state = next
			if !state.QuitConfirm {
				quitConfirmTimer = nil
			} else if quitConfirmTimer == nil {
				quitConfirmTimer = time.After(quitConfirmWindow)
			}
			switch signal {
			case "exit":
				return nil
			case "submit":
				go func(s AppState) { invoked <- r.invoke(s) }(state)
			}
			paint()

		case next := <-invoked:
			state = next
			paint()

		case <-spinnerTicker.C:
			if state.View == ViewLoading {
				state = TickSpinner(state)
				paint()
			}

		case <-messageTicker.C:
			if state.View == ViewLoading {
				state = TickLoadingMessage(state)
				paint()
			}

		case <-quitConfirmTimer:
			state.QuitConfirm = false
			quitConfirmTimer = nil
			paint()
		}
	}
}

// dispatch routes one key event to the handler for the current view.
func (r *Runner) dispatch(s AppState, key term.KeyEvent, screenRows int) (AppState, string) {
	switch s.View {
	case ViewCommands:
		return HandleCommands(s, key)
	case ViewForm:
		return HandleForm(s, key)
	case ViewLoading:
		return HandleLoading(s, key)
	case ViewResults:
		pageSize := screenRows - 6
		if pageSize < 1 {
			pageSize = 1
		}
		return HandleResults(s, key, pageSize)
	}
	return s, ""
}

// invoke performs the tool call: reload the token, call the tool, and
// transition to Results with either a success/error payload. Run fires this
// on its own goroutine so the spinner/message tickers and key reads keep
// going while the call is in flight; the returned AppState is delivered
// back over Run's invoked channel.
func (r *Runner) invoke(s AppState) AppState {
	if r.loadToken != nil {
		token, _, err := r.loadToken()
		if err != nil {
			return toResultsError(s, err.Error())
		}
		r.client.SetToken(token)
	}

	res, err := r.client.CallTool(s.SelectedTool.Name, schema.ValuesToArgs(s.Fields, s.Values))
	if err != nil {
		return toResultsError(s, err.Error())
	}

	out := s.Clone()
	out.View = ViewResults
	out.ResultScroll = 0
	out.ResultScrollX = 0
	out.RecentTools = pushRecent(out.RecentTools, s.SelectedTool.Name)
	clearResultFilter(&out)

	if res.IsError {
		out.Result = &Result{IsError: true, Text: joinContentText(res.Content)}
		return out
	}

	value, decodeErr := decodeResultValue(res)
	if decodeErr != nil {
		out.Result = &Result{IsError: true, Text: decodeErr.Error()}
		return out
	}
	if value == nil {
		out.Result = &Result{IsError: false, Text: ""}
		return out
	}
	if jsonpp.IsEmptyListResult(value) {
		out.Result = &Result{Empty: true}
		return out
	}
	lines := jsonpp.Print(value)
	out.Result = &Result{Text: joinLines(lines), Value: value}
	return out
}

func toResultsError(s AppState, msg string) AppState {
	out := s.Clone()
	out.View = ViewResults
	out.ResultScroll = 0
	out.ResultScrollX = 0
	clearResultFilter(&out)
	out.Result = &Result{IsError: true, Text: msg}
	return out
}

// clearResultFilter resets the Results-view JMESPath filter state; called
// whenever a new Result is about to replace the previous one, so a stale
// filter/error from an earlier invocation never leaks into the next.
func clearResultFilter(s *AppState) {
	s.FilterEditing = false
	s.FilterQuery = ""
	s.FilterQueryCursor = 0
	s.ActiveFilter = ""
	s.FilterErr = ""
}

func joinContentText(content []catalog.Content) string {
	var out string
	for i, c := range content {
		if i > 0 {
			out += "\n"
		}
		out += c.Text
	}
	return out
}

func decodeResultValue(res *catalog.Result) (any, error) {
	if len(res.Content) > 0 {
		return joinContentText(res.Content), nil
	}
	if len(res.StructuredContent) > 0 {
		return jsonpp.Decode(res.StructuredContent)
	}
	return nil, nil
}

func joinLines(lines []string) string {
	var out string
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func pushRecent(recent []string, name string) []string {
	out := []string{name}
	for _, r := range recent {
		if r != name {
			out = append(out, r)
		}
	}
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

func renderFrameLines(s AppState, cols, rows int) []string {
	switch s.View {
	case ViewCommands:
		return layout.Render(RenderCommands(s, cols, rows), cols, rows)
	case ViewForm:
		return layout.Render(RenderForm(s, cols, rows), cols, rows)
	case ViewLoading:
		return layout.Render(RenderLoading(s, cols, rows), cols, rows)
	case ViewResults:
		return layout.Render(RenderResults(s, cols, rows), cols, rows)
	}
	return layout.Render(layout.Frame{}, cols, rows)
}

func shuffleLoadingMessages() {
	rand.Shuffle(len(loadingMessages), func(i, j int) {
		loadingMessages[i], loadingMessages[j] = loadingMessages[j], loadingMessages[i]
	})
}
