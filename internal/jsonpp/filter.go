package jsonpp

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Filter narrows a decoded JSON result value with a JMESPath expression, the
// same language used by the teacher's request filter. Only expression
// evaluation is supported here — there is no shell-command escape hatch.
func Filter(v any, expr string) (any, error) {
	if expr == "" {
		return v, nil
	}
	result, err := jmespath.Search(expr, v)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return result, nil
}

// Decode parses a raw JSON-RPC result payload into a generic value suitable
// for Print/Filter.
func Decode(raw json.RawMessage) (any, error) {
	var v any
	if len(raw) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return v, nil
}
