package layout

import "testing"

func TestRenderExactRowCount(t *testing.T) {
	for _, rows := range []int{1, 2, 4, 24} {
		out := Render(Frame{Breadcrumb: "bc", Content: []string{"a", "b"}, Footer: "ft"}, 40, rows)
		if len(out) != rows {
			t.Fatalf("rows=%d: got %d lines, want %d", rows, len(out), rows)
		}
	}
}

func TestRenderNarrowTerminal(t *testing.T) {
	out := Render(Frame{Breadcrumb: "x", Content: []string{"y"}, Footer: "z"}, 1, 1)
	if len(out) != 1 {
		t.Fatalf("expected 1 line, got %d", len(out))
	}
}

func TestWrapTextNeverEmpty(t *testing.T) {
	if lines := WrapText("", 10); len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
	if lines := WrapText("   ", 10); len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
}

func TestWrapTextRespectsWidth(t *testing.T) {
	lines := WrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width 10", l)
		}
	}
}
