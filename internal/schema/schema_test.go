package schema

import (
	"encoding/json"
	"testing"
)

func mustTool(t *testing.T, raw string) *ToolDef {
	t.Helper()
	var td ToolDef
	if err := json.Unmarshal([]byte(raw), &td); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &td
}

func TestResolveNullableAnyOf(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {
			"properties": {
				"note": {"anyOf": [{"type": "null"}, {"type": "string"}], "description": "d"}
			}
		}
	}`)
	fields := BuildFields(tool)
	if len(fields) != 1 || fields[0].Prop.Kind != KindText {
		t.Fatalf("expected single text field, got %+v", fields)
	}
	if fields[0].Prop.Description != "d" {
		t.Errorf("expected outer description preserved, got %q", fields[0].Prop.Description)
	}
}

func TestResolveRefDefs(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {
			"properties": {"category": {"$ref": "#/$defs/Category"}},
			"$defs": {"Category": {"type": "string", "enum": ["a", "b"]}}
		}
	}`)
	fields := BuildFields(tool)
	if fields[0].Prop.Kind != KindEnum {
		t.Fatalf("expected enum kind, got %v", fields[0].Prop.Kind)
	}
}

func TestResolveMissingRefDegradesToText(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {"properties": {"x": {"$ref": "#/$defs/Missing"}}}
	}`)
	fields := BuildFields(tool)
	if fields[0].Prop.Kind != KindText {
		t.Fatalf("expected text fallback, got %v", fields[0].Prop.Kind)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {
			"properties": {
				"items": {"type": "array", "items": {"type": "object", "properties": {"x": {"type": "string"}}}},
				"picks": {"type": "array", "items": {"type": "string", "enum": ["a", "b"]}},
				"tags": {"type": "array", "items": {"type": "string"}},
				"when": {"type": "string", "format": "date"},
				"n": {"type": "integer"},
				"flag": {"type": "boolean"}
			}
		}
	}`)
	fields := BuildFields(tool)
	want := map[string]FieldKind{
		"items": KindArrayObj,
		"picks": KindArrayEnum,
		"tags":  KindArrayText,
		"when":  KindDate,
		"n":     KindNumber,
		"flag":  KindBool,
	}
	for _, f := range fields {
		if got := f.Prop.Kind; got != want[f.Name] {
			t.Errorf("%s: got kind %v, want %v", f.Name, got, want[f.Name])
		}
	}
}

func TestPropertyOrderPreserved(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {
			"properties": {"z": {"type": "string"}, "a": {"type": "string"}, "m": {"type": "string"}}
		}
	}`)
	fields := BuildFields(tool)
	got := []string{fields[0].Name, fields[1].Name, fields[2].Name}
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: got %v, want %v", got, want)
		}
	}
}

func TestValuesInvariantKeysMatchFields(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {"properties": {"a": {"type": "string"}, "b": {"type": "integer"}}}
	}`)
	fields := BuildFields(tool)
	v := NewValues(fields)
	for _, f := range fields {
		if _, ok := v[f.Name]; !ok {
			t.Errorf("missing key %s in values", f.Name)
		}
	}
	if len(v) != len(fields) {
		t.Errorf("values has %d keys, fields has %d", len(v), len(fields))
	}
}

func TestUnfilledRequired(t *testing.T) {
	tool := mustTool(t, `{
		"name": "t",
		"inputSchema": {
			"properties": {"a": {"type": "string"}, "b": {"type": "string"}},
			"required": ["a", "b"]
		}
	}`)
	fields := BuildFields(tool)
	v := NewValues(fields)
	if idx := UnfilledRequired(fields, v); idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	v["a"] = "x"
	if idx := UnfilledRequired(fields, v); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	v["b"] = "y"
	if idx := UnfilledRequired(fields, v); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}
