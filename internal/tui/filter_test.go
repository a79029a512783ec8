package tui

import (
	"testing"

	"github.com/studiowebux/toolform/internal/schema"
)

func namedTools(names ...string) []*schema.ToolDef {
	out := make([]*schema.ToolDef, len(names))
	for i, n := range names {
		out[i] = &schema.ToolDef{Name: n}
	}
	return out
}

func TestFilterToolsBlankQueryReturnsAll(t *testing.T) {
	tools := namedTools("reader_add_url", "readwise_list_books")
	got := filterTools(tools, "  ")
	if len(got) != 2 {
		t.Fatalf("got %d tools, want 2", len(got))
	}
}

func TestFilterToolsFuzzyMatch(t *testing.T) {
	tools := namedTools("reader_add_url", "readwise_list_books", "other_tool")
	got := filterTools(tools, "addurl")
	if len(got) != 1 || got[0].Name != "reader_add_url" {
		t.Fatalf("got %#v", got)
	}
}

func TestBuildGroupedRowsOrdersAndSkipsEmptyGroups(t *testing.T) {
	tools := namedTools("other_tool", "reader_add_url", "readwise_list_books")
	rows := buildGroupedRows(tools, false, nil)

	var groups []string
	for _, r := range rows {
		if r.IsGroup {
			groups = append(groups, r.Group)
		}
	}
	if len(groups) != 3 || groups[0] != "Reader" || groups[1] != "Readwise" || groups[2] != "Other" {
		t.Fatalf("got group order %#v", groups)
	}
}

func TestBuildGroupedRowsRecentFirstPartitionsRecentAndAll(t *testing.T) {
	tools := namedTools("other_tool", "reader_add_url", "readwise_list_books")
	rows := buildGroupedRows(tools, true, []string{"readwise_list_books", "other_tool", "ghost_tool"})

	var groups []string
	var toolNames []string
	for _, r := range rows {
		if r.IsGroup {
			groups = append(groups, r.Group)
			toolNames = append(toolNames, "|")
			continue
		}
		toolNames = append(toolNames, r.Tool.Name)
	}
	if len(groups) != 2 || groups[0] != "Recent" || groups[1] != "All" {
		t.Fatalf("got group order %#v", groups)
	}
	want := []string{"|", "readwise_list_books", "other_tool", "|", "reader_add_url"}
	if len(toolNames) != len(want) {
		t.Fatalf("got rows %#v, want %#v", toolNames, want)
	}
	for i := range want {
		if toolNames[i] != want[i] {
			t.Fatalf("got rows %#v, want %#v", toolNames, want)
		}
	}
}

func TestBuildGroupedRowsRecentFirstWithNoRecentFallsBackToAllOnly(t *testing.T) {
	tools := namedTools("reader_add_url")
	rows := buildGroupedRows(tools, true, nil)

	if len(rows) != 2 || !rows[0].IsGroup || rows[0].Group != "All" || rows[1].Tool.Name != "reader_add_url" {
		t.Fatalf("got %#v", rows)
	}
}

func TestSelectableIndicesSkipsGroupRows(t *testing.T) {
	rows := []groupedRow{
		{IsGroup: true, Group: "Reader"},
		{Tool: &schema.ToolDef{Name: "reader_add_url"}},
		{IsGroup: true, Group: "Other"},
		{Tool: &schema.ToolDef{Name: "other_tool"}},
	}
	idx := selectableIndices(rows)
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 3 {
		t.Fatalf("got %#v", idx)
	}
}
