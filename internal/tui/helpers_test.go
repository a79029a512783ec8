package tui

import (
	"testing"

	"github.com/studiowebux/toolform/internal/schema"
	"github.com/studiowebux/toolform/internal/term"
)

func keyEvent(name string) term.KeyEvent {
	return term.KeyEvent{Name: name}
}

func mustToolDef(t *testing.T, name string) *schema.ToolDef {
	t.Helper()
	return &schema.ToolDef{Name: name, Description: "desc", InputSchema: schema.InputSchema{
		Properties: map[string]*schema.RawProperty{},
	}}
}
