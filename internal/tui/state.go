// Package tui implements the palette-driven full-screen interface: a
// single AppState replaced on every keystroke, rendered by the
// flicker-free painter in internal/term and laid out with internal/layout.
package tui

import (
	"github.com/studiowebux/toolform/internal/schema"
)

// ViewKind is the top-level view the core loop is currently in.
type ViewKind int

const (
	ViewCommands ViewKind = iota
	ViewForm
	ViewLoading
	ViewResults
)

// FormStackEntry freezes a parent form while the user descends into an
// arrayObj sub-form. FieldName names the array field being edited;
// EditIndex is -1 when appending, otherwise the index of the item being
// replaced.
type FormStackEntry struct {
	Fields    []schema.FormField
	Values    schema.Values
	FieldName string
	EditIndex int
}

// DateEditorState is the transient per-part editing state for a date/
// date-time field, live only while formEditing and the active field is
// KindDate.
type DateEditorState struct {
	Values []int
	Cursor int
	Format string
}

// ArrayTextEditorState is the transient state for arrayText editing: an
// ordered list of confirmed tags plus the bottom input line.
type ArrayTextEditorState struct {
	Items        []string
	Cursor       int // index into Items, or len(Items) for the input line
	Input        string
	InputCursor  int
}

// EnumEditorState is the transient state for bool/enum/arrayEnum editing.
type EnumEditorState struct {
	Choices  []string
	Cursor   int
	Selected map[int]bool // meaningful only for arrayEnum
	Multi    bool
}

// ArrayObjEditorState is the transient state for arrayObj list navigation.
type ArrayObjEditorState struct {
	Items  []map[string]any
	Cursor int // index into Items, or len(Items) for "Add new item"
}

// Result is the outcome of a completed tool invocation, as surfaced to the
// Results view.
type Result struct {
	IsError bool
	Text    string // pretty-printed success text, or the error message
	Empty   bool   // true when the empty-list sentinel applies
	Value   any    // decoded payload, filterable with jsonpp.Filter; nil when not applicable
}

// AppState is the single record driving the whole interface. Every
// transition returns a new AppState value, but copies are shallow: the
// Values map, the slices and the editor-state pointers are shared with the
// previous value, and handlers update them in place.
type AppState struct {
	View  ViewKind
	Tools []*schema.ToolDef

	// Commands view.
	CmdQuery       string
	CmdQueryCursor int
	CmdCursor      int
	CmdScrollTop   int
	QuitConfirm    bool
	RecentFirst    bool // Ctrl+R toggle: sort the filtered catalog by RecentTools recency

	// Form state.
	SelectedTool   *schema.ToolDef
	Fields         []schema.FormField
	Values         schema.Values
	FormStack      []FormStackEntry
	FormQuery      string
	FormQueryCursor int
	FilteredIdx    []int // indices into Fields; -1 sentinel = Execute/Add/Save row
	FormCursor     int
	FormScrollTop  int
	ShowRequired   bool
	ShowOptional   bool
	LastEditedIdx  int

	// Editor sub-state.
	Editing      bool
	EditFieldIdx int
	InputBuf     string
	InputCursor  int
	Enum         *EnumEditorState
	Date         *DateEditorState
	ArrayText    *ArrayTextEditorState
	ArrayObj     *ArrayObjEditorState

	// Results state.
	Result        *Result
	ResultScroll  int
	ResultScrollX int

	// Results JMESPath filter (opened with '/'). ActiveFilter is re-applied to
	// Result.Value on every render; FilterEditing is true while the prompt is
	// open; FilterErr holds the last compile error, shown in the footer.
	FilterEditing     bool
	FilterQuery       string
	FilterQueryCursor int
	ActiveFilter      string
	FilterErr         string

	// Loading state.
	SpinnerFrame int
	LoadingMsgIdx int

	// Recent-tools MRU, most-recent first, capped at 10.
	RecentTools []string
}

// Clone performs a shallow copy suitable as the basis for a transition; call
// sites overwrite only the fields that change.
func (s AppState) Clone() AppState {
	return s
}

// NewAppState builds the initial state for the Commands view.
func NewAppState(tools []*schema.ToolDef, recent []string) AppState {
	return AppState{
		View:        ViewCommands,
		Tools:       tools,
		RecentTools: recent,
	}
}
