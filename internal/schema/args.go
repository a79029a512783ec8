package schema

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValuesToArgs serializes a completed Values draft into typed JSON arguments
// for the tool call (§4.9). Empty drafts are omitted entirely. This is the
// single choke point where all string parsing happens; interactive editing
// and the non-interactive flag dispatcher (C10) both funnel through it.
func ValuesToArgs(fields []FormField, v Values) map[string]any {
	args := make(map[string]any, len(fields))
	for _, f := range fields {
		draft := v[f.Name]
		if strings.TrimSpace(draft) == "" {
			continue
		}
		switch f.Prop.Kind {
		case KindNumber:
			if n, err := strconv.ParseFloat(draft, 64); err == nil {
				args[f.Name] = n
			}
		case KindBool:
			args[f.Name] = draft == "true"
		case KindArrayText, KindArrayEnum:
			args[f.Name] = decodeArray(draft)
		case KindArrayObj:
			var arr []map[string]any
			if err := json.Unmarshal([]byte(draft), &arr); err == nil {
				args[f.Name] = arr
			} else {
				args[f.Name] = []map[string]any{}
			}
		case KindDate:
			args[f.Name] = draft
		default:
			args[f.Name] = draft
		}
	}
	return args
}

// decodeArray implements the arrayText/arrayEnum draft→args rule: try
// JSON-decoding first; if the result is an array, use it; otherwise split on
// comma, trim, and drop empties.
func decodeArray(draft string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(draft), &arr); err == nil {
		return arr
	}
	parts := strings.Split(draft, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
