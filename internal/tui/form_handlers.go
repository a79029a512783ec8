package tui

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/studiowebux/toolform/internal/dateparts"
	"github.com/studiowebux/toolform/internal/schema"
	"github.com/studiowebux/toolform/internal/term"
)

// HandleForm dispatches to the palette or editor handler.
func HandleForm(s AppState, key term.KeyEvent) (AppState, string) {
	if s.Editing {
		return handleFormEditor(s, key)
	}
	return handleFormPalette(s, key)
}

func handleFormPalette(s AppState, key term.KeyEvent) (AppState, string) {
	switch key.Name {
	case "escape":
		if s.FormQuery != "" {
			s.FormQuery = ""
			s.FormQueryCursor = 0
			s.FilteredIdx = buildFilteredIdx(s.Fields, "")
			s.FormCursor = 0
			return s, ""
		}
		if len(s.FormStack) > 0 {
			return popSubForm(s), ""
		}
		return AppState{View: ViewCommands, Tools: s.Tools, RecentTools: s.RecentTools}, ""
	case "tab":
		return advanceToNextRequired(s), ""
	case "o":
		if s.FormQuery == "" {
			s.ShowOptional = !s.ShowOptional
		}
		return s, ""
	case "up":
		if s.FormCursor > 0 {
			s.FormCursor--
		} else {
			s.FormCursor = len(s.FilteredIdx) - 1
		}
		return s, ""
	case "down":
		if s.FormCursor < len(s.FilteredIdx)-1 {
			s.FormCursor++
		} else {
			s.FormCursor = 0
		}
		return s, ""
	case "left":
		if s.FormQueryCursor > 0 {
			s.FormQueryCursor--
		}
		return s, ""
	case "right":
		if s.FormQueryCursor < len(s.FormQuery) {
			s.FormQueryCursor++
		}
		return s, ""
	case "backspace":
		if s.FormQuery == "" {
			if s.LastEditedIdx >= 0 && s.LastEditedIdx < len(s.Fields) {
				return openEditor(s, s.LastEditedIdx), ""
			}
			return s, ""
		}
		if s.FormQueryCursor > 0 {
			s.FormQuery = s.FormQuery[:s.FormQueryCursor-1] + s.FormQuery[s.FormQueryCursor:]
			s.FormQueryCursor--
			s.FilteredIdx = buildFilteredIdx(s.Fields, s.FormQuery)
			s.FormCursor = 0
		}
		return s, ""
	case "return", "enter":
		return onFormEnter(s)
	}

	if len(key.Raw) == 1 && key.Raw[0] >= 0x20 && key.Raw[0] < 0x7f && !key.Ctrl {
		s.FormQuery = s.FormQuery[:s.FormQueryCursor] + key.Raw + s.FormQuery[s.FormQueryCursor:]
		s.FormQueryCursor += len(key.Raw)
		s.FilteredIdx = buildFilteredIdx(s.Fields, s.FormQuery)
		s.FormCursor = 0
	}
	return s, ""
}

func advanceToNextRequired(s AppState) AppState {
	for step := 1; step <= len(s.FilteredIdx); step++ {
		pos := (s.FormCursor + step) % len(s.FilteredIdx)
		idx := s.FilteredIdx[pos]
		if idx >= 0 && s.Fields[idx].Required && s.Values.IsUnset(s.Fields[idx]) {
			s.FormCursor = pos
			return s
		}
	}
	// none remain unfilled: jump to Execute row (always last).
	s.FormCursor = len(s.FilteredIdx) - 1
	return s
}

func onFormEnter(s AppState) (AppState, string) {
	if s.FormCursor < 0 || s.FormCursor >= len(s.FilteredIdx) {
		return s, ""
	}
	idx := s.FilteredIdx[s.FormCursor]
	if idx == -1 {
		if !allRequiredFilled(s) {
			s.ShowRequired = true
			return s, ""
		}
		if len(s.FormStack) > 0 {
			return commitSubForm(s), ""
		}
		s.View = ViewLoading
		s.SpinnerFrame = 0
		return s, "submit"
	}
	return openEditor(s, idx), ""
}

func handleFormEditor(s AppState, key term.KeyEvent) (AppState, string) {
	f := s.Fields[s.EditFieldIdx]
	switch f.Prop.Kind {
	case schema.KindText, schema.KindNumber:
		return handleTextEditor(s, key), ""
	case schema.KindBool, schema.KindEnum:
		return handleChoiceEditor(s, key), ""
	case schema.KindArrayEnum:
		return handleMultiChoiceEditor(s, key), ""
	case schema.KindArrayText:
		return handleArrayTextEditor(s, key), ""
	case schema.KindDate:
		return handleDateEditor(s, key), ""
	case schema.KindArrayObj:
		return handleArrayObjEditor(s, key)
	}
	return s, ""
}

// confirmField writes draft into Values for the field being edited, exits
// editor mode, clears the palette filter and advances the cursor to the
// next unfilled required field.
func confirmField(s AppState, draft string) AppState {
	f := s.Fields[s.EditFieldIdx]
	s.Values[f.Name] = draft
	s.LastEditedIdx = s.EditFieldIdx
	s.Editing = false
	s.FormQuery = ""
	s.FormQueryCursor = 0
	s.FilteredIdx = buildFilteredIdx(s.Fields, "")
	s = advanceToNextRequired(s)
	return s
}

func cancelField(s AppState) AppState {
	s.Editing = false
	return s
}

func handleTextEditor(s AppState, key term.KeyEvent) AppState {
	switch key.Name {
	case "escape":
		return cancelField(s)
	case "return", "enter":
		return confirmField(s, s.InputBuf)
	case "left":
		if s.InputCursor > 0 {
			s.InputCursor--
		}
		return s
	case "right":
		if s.InputCursor < len(s.InputBuf) {
			s.InputCursor++
		}
		return s
	case "backspace":
		if s.InputCursor > 0 {
			s.InputBuf = s.InputBuf[:s.InputCursor-1] + s.InputBuf[s.InputCursor:]
			s.InputCursor--
		}
		return s
	}
	if len(key.Raw) >= 1 && key.Raw[0] >= 0x20 && !key.Ctrl {
		s.InputBuf = s.InputBuf[:s.InputCursor] + key.Raw + s.InputBuf[s.InputCursor:]
		s.InputCursor += len(key.Raw)
	}
	return s
}

func handleChoiceEditor(s AppState, key term.KeyEvent) AppState {
	e := s.Enum
	switch key.Name {
	case "escape":
		return cancelField(s)
	case "up":
		if e.Cursor > 0 {
			e.Cursor--
		}
		return s
	case "down":
		if e.Cursor < len(e.Choices)-1 {
			e.Cursor++
		}
		return s
	case "return", "enter":
		return confirmField(s, e.Choices[e.Cursor])
	}
	return s
}

func handleMultiChoiceEditor(s AppState, key term.KeyEvent) AppState {
	e := s.Enum
	switch key.Name {
	case "up":
		if e.Cursor > 0 {
			e.Cursor--
		}
		return s
	case "down":
		if e.Cursor < len(e.Choices)-1 {
			e.Cursor++
		}
		return s
	case " ", "space":
		if e.Selected == nil {
			e.Selected = map[int]bool{}
		}
		e.Selected[e.Cursor] = !e.Selected[e.Cursor]
		return s
	case "escape", "return", "enter":
		sel := map[int]bool{}
		for k, v := range e.Selected {
			sel[k] = v
		}
		sel[e.Cursor] = true
		var chosen []string
		for i, c := range e.Choices {
			if sel[i] {
				chosen = append(chosen, c)
			}
		}
		return confirmField(s, strings.Join(chosen, ", "))
	}
	return s
}

func handleArrayTextEditor(s AppState, key term.KeyEvent) AppState {
	a := s.ArrayText
	onInput := a.Cursor == len(a.Items)

	switch key.Name {
	case "escape":
		return confirmField(s, strings.Join(a.Items, ", "))
	case "up":
		if a.Cursor > 0 {
			a.Cursor--
		}
		return s
	case "down":
		if a.Cursor < len(a.Items) {
			a.Cursor++
		}
		return s
	case "backspace":
		if onInput {
			if a.InputCursor > 0 {
				a.Input = a.Input[:a.InputCursor-1] + a.Input[a.InputCursor:]
				a.InputCursor--
			}
			return s
		}
		a.Items = append(a.Items[:a.Cursor], a.Items[a.Cursor+1:]...)
		if a.Cursor > len(a.Items) {
			a.Cursor = len(a.Items)
		}
		return s
	case "left":
		if onInput && a.InputCursor > 0 {
			a.InputCursor--
		}
		return s
	case "right":
		if onInput && a.InputCursor < len(a.Input) {
			a.InputCursor++
		}
		return s
	case "return", "enter":
		if onInput {
			if strings.TrimSpace(a.Input) == "" {
				return confirmField(s, strings.Join(a.Items, ", "))
			}
			a.Items = append(a.Items, a.Input)
			a.Input = ""
			a.InputCursor = 0
			return s
		}
		a.Input = a.Items[a.Cursor]
		a.InputCursor = len(a.Input)
		a.Items = append(a.Items[:a.Cursor], a.Items[a.Cursor+1:]...)
		a.Cursor = len(a.Items)
		return s
	}
	if onInput && len(key.Raw) >= 1 && key.Raw[0] >= 0x20 && !key.Ctrl {
		a.Input = a.Input[:a.InputCursor] + key.Raw + a.Input[a.InputCursor:]
		a.InputCursor += len(key.Raw)
	}
	return s
}

func handleDateEditor(s AppState, key term.KeyEvent) AppState {
	d := s.Date
	switch key.Name {
	case "escape":
		return cancelField(s)
	case "left":
		if d.Cursor > 0 {
			d.Cursor--
		}
		return s
	case "right":
		if d.Cursor < len(d.Values)-1 {
			d.Cursor++
		}
		return s
	case "up":
		p := dateparts.Adjust(dateparts.Parts{Values: d.Values, Cursor: d.Cursor, Format: d.Format}, d.Cursor, 1)
		d.Values = p.Values
		return s
	case "down":
		p := dateparts.Adjust(dateparts.Parts{Values: d.Values, Cursor: d.Cursor, Format: d.Format}, d.Cursor, -1)
		d.Values = p.Values
		return s
	case "t":
		d.Values = dateparts.Today(d.Format).Values
		return s
	case "backspace":
		return confirmField(s, "")
	case "return", "enter":
		return confirmField(s, dateparts.ToString(dateparts.Parts{Values: d.Values, Format: d.Format}))
	}
	return s
}

func handleArrayObjEditor(s AppState, key term.KeyEvent) (AppState, string) {
	a := s.ArrayObj
	switch key.Name {
	case "escape":
		return cancelField(s), ""
	case "up":
		if a.Cursor > 0 {
			a.Cursor--
		}
		return s, ""
	case "down":
		if a.Cursor < len(a.Items) {
			a.Cursor++
		}
		return s, ""
	case "backspace":
		if a.Cursor < len(a.Items) {
			a.Items = append(a.Items[:a.Cursor], a.Items[a.Cursor+1:]...)
			if a.Cursor > len(a.Items) {
				a.Cursor = len(a.Items)
			}
		}
		return s, ""
	case "return", "enter":
		f := s.Fields[s.EditFieldIdx]
		itemFields := schema.ItemFields(f.Prop.Item, s.SelectedTool.InputSchema.Defs)
		editIndex := -1
		values := schema.NewValues(itemFields)
		if a.Cursor < len(a.Items) {
			editIndex = a.Cursor
			prepopulate(itemFields, values, a.Items[a.Cursor])
		}
		return descendSubForm(s, itemFields, values, f.Name, editIndex), ""
	}
	return s, ""
}

// prepopulate fills draft values from a decoded item object for resuming
// edit of an existing arrayObj element.
func prepopulate(fields []schema.FormField, values schema.Values, item map[string]any) {
	for _, f := range fields {
		v, ok := item[f.Name]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			values[f.Name] = t
		case bool:
			if t {
				values[f.Name] = "true"
			} else {
				values[f.Name] = "false"
			}
		case float64:
			values[f.Name] = strconv.FormatFloat(t, 'g', -1, 64)
		default:
			if data, err := json.Marshal(t); err == nil {
				values[f.Name] = string(data)
			}
		}
	}
}

// descendSubForm pushes the current form onto the stack and swaps in the
// sub-form for one arrayObj item.
func descendSubForm(s AppState, itemFields []schema.FormField, itemValues schema.Values, fieldName string, editIndex int) AppState {
	out := s.Clone()
	out.FormStack = append(append([]FormStackEntry{}, s.FormStack...), FormStackEntry{
		Fields:    s.Fields,
		Values:    s.Values,
		FieldName: fieldName,
		EditIndex: editIndex,
	})
	out.Fields = itemFields
	out.Values = itemValues
	out.Editing = false
	out.FormQuery = ""
	out.FormQueryCursor = 0
	out.FormCursor = 0
	out.LastEditedIdx = -1
	out.FilteredIdx = buildFilteredIdx(itemFields, "")
	return out
}

// popSubForm discards the child's in-progress edits and restores the
// parent form unchanged (Escape from a sub-form's palette).
func popSubForm(s AppState) AppState {
	top := s.FormStack[len(s.FormStack)-1]
	out := s.Clone()
	out.FormStack = s.FormStack[:len(s.FormStack)-1]
	out.Fields = top.Fields
	out.Values = top.Values
	out.FormQuery = ""
	out.FormQueryCursor = 0
	out.FormCursor = 0
	out.FilteredIdx = buildFilteredIdx(top.Fields, "")
	return out
}

// commitSubForm serializes the child form's values into a JSON object and
// appends/replaces it in the parent's array-valued field, then restores the
// parent.
func commitSubForm(s AppState) AppState {
	top := s.FormStack[len(s.FormStack)-1]
	args := schema.ValuesToArgs(s.Fields, s.Values)

	items := decodeArrayObjItems(top.Values[top.FieldName])
	if top.EditIndex >= 0 && top.EditIndex < len(items) {
		items[top.EditIndex] = args
	} else {
		items = append(items, args)
	}
	data, _ := json.Marshal(items)

	out := s.Clone()
	out.FormStack = s.FormStack[:len(s.FormStack)-1]
	out.Fields = top.Fields
	out.Values = top.Values
	out.Values[top.FieldName] = string(data)
	out.FormQuery = ""
	out.FormQueryCursor = 0
	out.FormCursor = 0
	out.FilteredIdx = buildFilteredIdx(top.Fields, "")
	return out
}
