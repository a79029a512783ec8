package schema

import "testing"

func TestValuesToArgsOmitsEmpty(t *testing.T) {
	fields := []FormField{{Name: "a", Prop: SchemaProperty{Kind: KindText}}}
	args := ValuesToArgs(fields, Values{"a": ""})
	if _, ok := args["a"]; ok {
		t.Error("expected empty draft to be omitted")
	}
}

func TestValuesToArgsNumber(t *testing.T) {
	fields := []FormField{{Name: "n", Prop: SchemaProperty{Kind: KindNumber}}}
	args := ValuesToArgs(fields, Values{"n": "3.5"})
	if args["n"] != 3.5 {
		t.Errorf("got %v, want 3.5", args["n"])
	}
}

func TestValuesToArgsInvalidNumberOmitted(t *testing.T) {
	fields := []FormField{{Name: "n", Prop: SchemaProperty{Kind: KindNumber}}}
	args := ValuesToArgs(fields, Values{"n": "not-a-number"})
	if _, ok := args["n"]; ok {
		t.Error("expected invalid number to be silently omitted")
	}
}

func TestValuesToArgsBool(t *testing.T) {
	fields := []FormField{{Name: "b", Prop: SchemaProperty{Kind: KindBool}}}
	args := ValuesToArgs(fields, Values{"b": "true"})
	if args["b"] != true {
		t.Errorf("got %v, want true", args["b"])
	}
	args = ValuesToArgs(fields, Values{"b": "false"})
	if args["b"] != false {
		t.Errorf("got %v, want false", args["b"])
	}
}

func TestValuesToArgsArrayTextFallsBackToCommaSplit(t *testing.T) {
	fields := []FormField{{Name: "tags", Prop: SchemaProperty{Kind: KindArrayText}}}
	args := ValuesToArgs(fields, Values{"tags": "a, b ,c"})
	got := args["tags"].([]string)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValuesToArgsArrayEnumJSONDecode(t *testing.T) {
	fields := []FormField{{Name: "cat", Prop: SchemaProperty{Kind: KindArrayEnum}}}
	args := ValuesToArgs(fields, Values{"cat": `["article","email"]`})
	got := args["cat"].([]string)
	if len(got) != 2 || got[0] != "article" || got[1] != "email" {
		t.Fatalf("got %v", got)
	}
}

func TestValuesToArgsArrayObj(t *testing.T) {
	fields := []FormField{{Name: "highlights", Prop: SchemaProperty{Kind: KindArrayObj}}}
	args := ValuesToArgs(fields, Values{"highlights": `[{"text":"Note"}]`})
	got := args["highlights"].([]map[string]any)
	if len(got) != 1 || got[0]["text"] != "Note" {
		t.Fatalf("got %v", got)
	}
}

func TestValuesToArgsDatePassthrough(t *testing.T) {
	fields := []FormField{{Name: "d", Prop: SchemaProperty{Kind: KindDate}}}
	args := ValuesToArgs(fields, Values{"d": "2026-01-02"})
	if args["d"] != "2026-01-02" {
		t.Errorf("got %v", args["d"])
	}
}
