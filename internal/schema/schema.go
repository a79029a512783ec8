// Package schema implements the dynamic-schema form engine's data model and
// pure transforms: JSON-Schema property resolution into editor kinds (C3),
// and serializing completed form drafts back into typed JSON arguments (C9).
package schema

import (
	"bytes"
	"encoding/json"
)

// ToolDef is one named operation published by the remote catalog.
type ToolDef struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema is the object-typed JSON schema describing a tool's parameters.
// PropertyOrder preserves the user-visible ordering from the catalog, since
// encoding/json maps do not retain key order.
type InputSchema struct {
	PropertyOrder []string                `json:"-"`
	Properties    map[string]*RawProperty `json:"properties"`
	Required      []string                `json:"required,omitempty"`
	Defs          map[string]*RawProperty `json:"$defs,omitempty"`
}

func (s *InputSchema) UnmarshalJSON(data []byte) error {
	type alias InputSchema
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = InputSchema(a)

	var probe struct {
		Properties json.RawMessage `json:"properties"`
	}
	json.Unmarshal(data, &probe) //nolint:errcheck
	s.PropertyOrder = orderedObjectKeys(probe.Properties)
	return nil
}

// RawProperty is the as-decoded JSON Schema fragment for one property,
// before $ref/anyOf resolution.
type RawProperty struct {
	PropertyOrder []string                `json:"-"`
	Ref           string                  `json:"$ref,omitempty"`
	Type          string                  `json:"type,omitempty"`
	Format        string                  `json:"format,omitempty"`
	Enum          []string                `json:"enum,omitempty"`
	Description   string                  `json:"description,omitempty"`
	Examples      []any                   `json:"examples,omitempty"`
	Default       any                     `json:"default,omitempty"`
	Items         *RawProperty            `json:"items,omitempty"`
	Properties    map[string]*RawProperty `json:"properties,omitempty"`
	Required      []string                `json:"required,omitempty"`
	AnyOf         []*RawProperty          `json:"anyOf,omitempty"`
}

func (p *RawProperty) UnmarshalJSON(data []byte) error {
	type alias RawProperty
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = RawProperty(a)

	var probe struct {
		Properties json.RawMessage `json:"properties"`
	}
	json.Unmarshal(data, &probe) //nolint:errcheck
	p.PropertyOrder = orderedObjectKeys(probe.Properties)
	return nil
}

// orderedObjectKeys walks a JSON object's top-level keys in source order.
func orderedObjectKeys(data json.RawMessage) []string {
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := keyTok.(string)
		order = append(order, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			break
		}
	}
	return order
}

// FieldKind is the tagged variant §9 recommends in place of the source's
// stringly-typed type/format/items dispatch.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindBool
	KindEnum
	KindDate
	KindArrayText
	KindArrayEnum
	KindArrayObj
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "yes/no"
	case KindEnum:
		return "select"
	case KindDate:
		return "date"
	case KindArrayText:
		return "list"
	case KindArrayEnum:
		return "multi"
	case KindArrayObj:
		return "form"
	default:
		return "text"
	}
}

// SchemaProperty is the fully-resolved property: $ref and nullable-anyOf
// collapsed, classified into one FieldKind.
type SchemaProperty struct {
	Kind        FieldKind
	Description string
	Examples    []any
	Default     any
	Enum        []string     // KindEnum, KindArrayEnum
	DateFormat  string       // "date" or "date-time", for KindDate
	Item        *RawProperty // resolved item schema, for KindArrayObj sub-forms
}

// Resolve collapses $ref/anyOf and classifies a RawProperty into a
// SchemaProperty, per §4.3. It is a pure function; callers cache the result
// per field at tool-selection time.
func Resolve(prop *RawProperty, defs map[string]*RawProperty) SchemaProperty {
	resolved, desc := dereference(prop, defs, prop.Description)
	resolved = collapseNullableAnyOf(resolved)

	sp := SchemaProperty{
		Description: desc,
		Examples:    resolved.Examples,
		Default:     resolved.Default,
	}

	switch classify(resolved) {
	case KindArrayObj:
		sp.Kind = KindArrayObj
		sp.Item = resolved.Items
	case KindDate:
		sp.Kind = KindDate
		sp.DateFormat = resolved.Format
	case KindArrayEnum:
		sp.Kind = KindArrayEnum
		sp.Enum = resolved.Items.Enum
	case KindArrayText:
		sp.Kind = KindArrayText
	case KindBool:
		sp.Kind = KindBool
	case KindEnum:
		sp.Kind = KindEnum
		sp.Enum = resolved.Enum
	case KindNumber:
		sp.Kind = KindNumber
	default:
		sp.Kind = KindText
	}
	return sp
}

// dereference resolves a $ref against defs. A $ref that cannot be found is a
// schema-resolution ambiguity (§7): the property degrades to plain text
// rather than failing hard.
func dereference(prop *RawProperty, defs map[string]*RawProperty, outerDesc string) (*RawProperty, string) {
	if prop.Ref == "" {
		return prop, outerDesc
	}
	name := refName(prop.Ref)
	target, ok := defs[name]
	if !ok || target == nil {
		return &RawProperty{Type: "string"}, outerDesc
	}
	desc := outerDesc
	if desc == "" {
		desc = target.Description
	}
	return target, desc
}

func refName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}

// collapseNullableAnyOf replaces an anyOf of length 2 whose members are
// {type: null} and something else with that something-else.
func collapseNullableAnyOf(prop *RawProperty) *RawProperty {
	if len(prop.AnyOf) != 2 {
		return prop
	}
	var nonNull *RawProperty
	nullCount := 0
	for _, m := range prop.AnyOf {
		if m.Type == "null" {
			nullCount++
		} else {
			nonNull = m
		}
	}
	if nullCount == 1 && nonNull != nil {
		merged := *nonNull
		if prop.Description != "" {
			merged.Description = prop.Description
		}
		return &merged
	}
	return prop
}

// classify implements the precedence order: arrayObj > date > arrayEnum >
// arrayText > bool > enum > number > text.
func classify(p *RawProperty) FieldKind {
	if p.Type == "array" && p.Items != nil && len(p.Items.Properties) > 0 {
		return KindArrayObj
	}
	if p.Type == "string" && (p.Format == "date" || p.Format == "date-time") {
		return KindDate
	}
	if p.Type == "array" && p.Items != nil && len(p.Items.Enum) > 0 {
		return KindArrayEnum
	}
	if p.Type == "array" {
		return KindArrayText
	}
	if p.Type == "boolean" {
		return KindBool
	}
	if len(p.Enum) > 0 {
		return KindEnum
	}
	if p.Type == "integer" || p.Type == "number" {
		return KindNumber
	}
	return KindText
}
