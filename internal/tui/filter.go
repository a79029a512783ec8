package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/toolform/internal/schema"
)

// toolGroup classifies a tool name into one of the three display groups by
// its underscore-delimited prefix.
func toolGroup(name string) string {
	switch {
	case strings.HasPrefix(name, "reader_"):
		return "Reader"
	case strings.HasPrefix(name, "readwise_"):
		return "Readwise"
	default:
		return "Other"
	}
}

// groupOrder is the fixed display order for the three groups.
var groupOrder = []string{"Reader", "Readwise", "Other"}

// filterTools ranks tools against query using fuzzy subsequence matching,
// falling back to the unfiltered, catalog-ordered list when query is empty.
func filterTools(tools []*schema.ToolDef, query string) []*schema.ToolDef {
	if strings.TrimSpace(query) == "" {
		return tools
	}
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	matches := fuzzy.Find(query, names)
	out := make([]*schema.ToolDef, 0, len(matches))
	for _, m := range matches {
		out = append(out, tools[m.Index])
	}
	return out
}

// groupedRow is one renderable row in the Commands view: either a
// non-selectable group separator or a selectable tool.
type groupedRow struct {
	IsGroup bool
	Group   string
	Tool    *schema.ToolDef
}

// buildGroupedRows arranges filtered tools into the fixed group order with
// separator rows, skipping empty groups; within a group tools keep their
// filtered order. When recentFirst is true, recency replaces the group order
// entirely: tools appearing in recent (most-
// recently-invoked first) are listed under a leading "Recent" row, followed
// by the remaining filtered tools under "All" in catalog order.
func buildGroupedRows(tools []*schema.ToolDef, recentFirst bool, recent []string) []groupedRow {
	if recentFirst {
		return buildRecentRows(tools, recent)
	}

	byGroup := map[string][]*schema.ToolDef{}
	for _, t := range tools {
		g := toolGroup(t.Name)
		byGroup[g] = append(byGroup[g], t)
	}
	var rows []groupedRow
	for _, g := range groupOrder {
		ts := byGroup[g]
		if len(ts) == 0 {
			continue
		}
		rows = append(rows, groupedRow{IsGroup: true, Group: g})
		for _, t := range ts {
			rows = append(rows, groupedRow{Tool: t})
		}
	}
	return rows
}

func buildRecentRows(tools []*schema.ToolDef, recent []string) []groupedRow {
	byName := map[string]*schema.ToolDef{}
	for _, t := range tools {
		byName[t.Name] = t
	}

	seen := map[string]bool{}
	var rows []groupedRow
	var recentRows []groupedRow
	for _, name := range recent {
		if t, ok := byName[name]; ok && !seen[name] {
			recentRows = append(recentRows, groupedRow{Tool: t})
			seen[name] = true
		}
	}
	if len(recentRows) > 0 {
		rows = append(rows, groupedRow{IsGroup: true, Group: "Recent"})
		rows = append(rows, recentRows...)
	}

	var rest []groupedRow
	for _, t := range tools {
		if !seen[t.Name] {
			rest = append(rest, groupedRow{Tool: t})
		}
	}
	if len(rest) > 0 {
		rows = append(rows, groupedRow{IsGroup: true, Group: "All"})
		rows = append(rows, rest...)
	}
	return rows
}

// selectableIndices returns, for a grouped-row slice, the subset of indices
// that are selectable tool rows (never group separators).
func selectableIndices(rows []groupedRow) []int {
	var out []int
	for i, r := range rows {
		if !r.IsGroup {
			out = append(out, i)
		}
	}
	return out
}
