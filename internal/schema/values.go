package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Values is the string-draft mapping described in §3: every kind's
// in-progress value is kept as a string, with parsing deferred to
// ValuesToArgs (C9).
type Values map[string]string

// NewValues initializes a draft for every field: the schema default
// stringified, or "" if there is no default ("[]" for an arrayObj field, so
// its draft is always a JSON array). This upholds the invariant
// that Values never lacks a key present in fields and vice versa.
func NewValues(fields []FormField) Values {
	v := make(Values, len(fields))
	for _, f := range fields {
		v[f.Name] = defaultDraft(f.Prop)
	}
	return v
}

func defaultDraft(p SchemaProperty) string {
	if p.Default == nil {
		if p.Kind == KindArrayObj {
			return "[]"
		}
		return ""
	}
	switch p.Kind {
	case KindArrayObj, KindArrayText, KindArrayEnum:
		b, err := json.Marshal(p.Default)
		if err != nil {
			return "[]"
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", p.Default)
	}
}

// IsUnset reports whether a field's draft counts as empty per §3: trimmed to
// empty, with arrayObj additionally considered unset when its parsed array
// is empty.
func (v Values) IsUnset(f FormField) bool {
	draft := strings.TrimSpace(v[f.Name])
	if draft == "" {
		return true
	}
	if f.Prop.Kind == KindArrayObj {
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(v[f.Name]), &arr); err == nil && len(arr) == 0 {
			return true
		}
	}
	return false
}

// UnfilledRequired returns the index (into fields) of the first required
// field whose draft is unset, or -1 if all required fields are filled.
func UnfilledRequired(fields []FormField, v Values) int {
	for i, f := range fields {
		if f.Required && v.IsUnset(f) {
			return i
		}
	}
	return -1
}

// CountRequired returns (filled, total) required-field counts.
func CountRequired(fields []FormField, v Values) (filled, total int) {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		total++
		if !v.IsUnset(f) {
			filled++
		}
	}
	return
}
