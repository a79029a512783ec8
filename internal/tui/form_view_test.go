package tui

import (
	"testing"

	"github.com/studiowebux/toolform/internal/schema"
)

func namedFields(names ...string) []schema.FormField {
	out := make([]schema.FormField, len(names))
	for i, n := range names {
		out[i] = schema.FormField{Name: n}
	}
	return out
}

func TestBuildFilteredIdxEmptyQueryReturnsAllInOrderPlusSentinel(t *testing.T) {
	fields := namedFields("title", "url", "author")
	idx := buildFilteredIdx(fields, "  ")
	want := []int{0, 1, 2, -1}
	if len(idx) != len(want) {
		t.Fatalf("got %#v, want %#v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("got %#v, want %#v", idx, want)
		}
	}
}

func TestBuildFilteredIdxFuzzyMatchesAndAppendsSentinel(t *testing.T) {
	fields := namedFields("title", "url", "author_name")
	idx := buildFilteredIdx(fields, "athrnm")
	if len(idx) != 2 || idx[0] != 2 || idx[1] != -1 {
		t.Fatalf("got %#v", idx)
	}
}

func TestBuildFilteredIdxNoMatchLeavesOnlySentinel(t *testing.T) {
	fields := namedFields("title", "url")
	idx := buildFilteredIdx(fields, "zzzzz")
	if len(idx) != 1 || idx[0] != -1 {
		t.Fatalf("got %#v", idx)
	}
}
