package schema

// FormField is (name, resolved SchemaProperty, required), derived from a
// ToolDef in catalog order.
type FormField struct {
	Name     string
	Prop     SchemaProperty
	Required bool
}

// BuildFields derives the ordered FormField list for a tool, resolving every
// property against the tool's own $defs table.
func BuildFields(tool *ToolDef) []FormField {
	required := map[string]bool{}
	for _, r := range tool.InputSchema.Required {
		required[r] = true
	}
	order := tool.InputSchema.PropertyOrder
	if len(order) == 0 {
		for name := range tool.InputSchema.Properties {
			order = append(order, name)
		}
	}
	fields := make([]FormField, 0, len(order))
	for _, name := range order {
		raw, ok := tool.InputSchema.Properties[name]
		if !ok || raw == nil {
			continue
		}
		fields = append(fields, FormField{
			Name:     name,
			Prop:     Resolve(raw, tool.InputSchema.Defs),
			Required: required[name],
		})
	}
	return fields
}

// ItemFields derives the FormField list for one KindArrayObj field's item
// schema, used to build the recursive sub-form. The item schema shares the
// parent tool's $defs table for $ref resolution.
func ItemFields(item *RawProperty, defs map[string]*RawProperty) []FormField {
	if item == nil {
		return nil
	}
	required := map[string]bool{}
	for _, r := range item.Required {
		required[r] = true
	}
	order := item.PropertyOrder
	if len(order) == 0 {
		for name := range item.Properties {
			order = append(order, name)
		}
	}
	fields := make([]FormField, 0, len(order))
	for _, name := range order {
		raw, ok := item.Properties[name]
		if !ok || raw == nil {
			continue
		}
		fields = append(fields, FormField{
			Name:     name,
			Prop:     Resolve(raw, defs),
			Required: required[name],
		})
	}
	return fields
}
