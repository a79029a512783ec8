package jsonpp

import (
	"strings"
	"testing"
)

func TestPrintScalarObject(t *testing.T) {
	v := map[string]any{"name": "Alice", "age": float64(30)}
	lines := Print(v)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "age") || !strings.Contains(joined, "name") {
		t.Fatalf("expected both keys rendered, got %q", joined)
	}
}

func TestPrintEmptyStringShowsDash(t *testing.T) {
	v := map[string]any{"note": ""}
	lines := Print(v)
	if !strings.Contains(lines[0], "–") {
		t.Errorf("expected en-dash for empty string, got %q", lines[0])
	}
}

func TestPrintNullShowsNull(t *testing.T) {
	v := map[string]any{"x": nil}
	lines := Print(v)
	if !strings.Contains(lines[0], "null") {
		t.Errorf("expected null rendered, got %q", lines[0])
	}
}

func TestPrintArrayOfScalarsUsesMarker(t *testing.T) {
	v := []any{"a", "b"}
	lines := Print(v)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if !strings.Contains(l, "─") {
			t.Errorf("expected marker in %q", l)
		}
	}
}

func TestPrintArrayOfObjectsSeparatedByBlankLine(t *testing.T) {
	v := []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}
	lines := Print(v)
	blank := 0
	for _, l := range lines {
		if l == "" {
			blank++
		}
	}
	if blank != 1 {
		t.Errorf("expected 1 blank separator line, got %d", blank)
	}
}

func TestIsEmptyListResultOnEmptyArray(t *testing.T) {
	if !IsEmptyListResult([]any{}) {
		t.Error("expected true for empty array")
	}
}

func TestIsEmptyListResultOnNonEmptyArray(t *testing.T) {
	if IsEmptyListResult([]any{"x"}) {
		t.Error("expected false for non-empty array")
	}
}

func TestIsEmptyListResultOnObjectWithEmptyArrayField(t *testing.T) {
	v := map[string]any{"items": []any{}, "total": float64(0)}
	if !IsEmptyListResult(v) {
		t.Error("expected true for object whose only array field is empty")
	}
}

func TestIsEmptyListResultOnObjectWithNonEmptyArrayField(t *testing.T) {
	v := map[string]any{"items": []any{"x"}}
	if IsEmptyListResult(v) {
		t.Error("expected false when array field is non-empty")
	}
}

func TestFilterAppliesJMESPathExpression(t *testing.T) {
	v := map[string]any{"items": []any{
		map[string]any{"name": "a", "active": true},
		map[string]any{"name": "b", "active": false},
	}}
	out, err := Filter(v, "items[?active].name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := out.([]any)
	if !ok || len(list) != 1 || list[0] != "a" {
		t.Fatalf("got %v", out)
	}
}

func TestFilterInvalidExpressionReturnsError(t *testing.T) {
	_, err := Filter(map[string]any{}, "[[[not valid")
	if err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestFilterEmptyExpressionPassesThrough(t *testing.T) {
	v := map[string]any{"a": 1}
	out, err := Filter(v, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok || len(m) != 1 {
		t.Fatalf("expected passthrough, got %v", out)
	}
}

func TestDecodeRawMessage(t *testing.T) {
	v, err := Decode([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m["a"] != float64(1) {
		t.Fatalf("got %v", v)
	}
}
