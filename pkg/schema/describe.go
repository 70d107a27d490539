package schema

// Description is a structural dump of a compiled schema: every field's kind,
// wire name, requiredness, default, strictness and constraints, plus rule
// names and computed-field declarations. It is plain serializable data, so a
// caller can render a form or documentation without touching the engine.
type Description struct {
	Name     string                `json:"name"`
	Fields   []FieldDescription    `json:"fields"`
	Rules    []string              `json:"rules,omitempty"`
	Computed []ComputedDescription `json:"computed,omitempty"`
	Extra    ExtraPolicy           `json:"extra_fields"`
}

// FieldDescription describes one declared field.
type FieldDescription struct {
	Name        string       `json:"name"`
	Wire        string       `json:"wire"`
	Kind        Kind         `json:"kind"`
	Required    bool         `json:"required"`
	HasDefault  bool         `json:"has_default,omitempty"`
	Default     any          `json:"default,omitempty"` // nil with HasDefault set means an explicit null
	Strict      bool         `json:"strict,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
	Enum        []string     `json:"enum,omitempty"`
	Object      *Description `json:"object,omitempty"`
	Description string       `json:"description,omitempty"`
}

// ComputedDescription describes one derived field.
type ComputedDescription struct {
	Name string   `json:"name"`
	Kind Kind     `json:"kind"`
	Uses []string `json:"uses,omitempty"`
}

// Describe returns the schema's description. The result is a fresh value on
// every call; callers may modify it freely.
func (s *Schema) Describe() Description {
	d := Description{Name: s.name, Extra: s.extra}
	for _, cf := range s.fields {
		fd := FieldDescription{
			Name:        cf.Name,
			Wire:        cf.wireName,
			Kind:        cf.Kind,
			Required:    cf.Required,
			Strict:      cf.Strict,
			Description: cf.Field.Description,
		}
		if cf.Default != nil {
			fd.HasDefault = true
			if cf.Default != Null {
				fd.Default = cf.Default
			}
		}
		fd.Constraints = append(fd.Constraints, cf.Constraints...)
		fd.Enum = append(fd.Enum, cf.Enum...)
		if cf.object != nil {
			sub := cf.object.Describe()
			fd.Object = &sub
		}
		d.Fields = append(d.Fields, fd)
	}
	for _, r := range s.rules {
		d.Rules = append(d.Rules, r.Name)
	}
	for _, c := range s.computed {
		d.Computed = append(d.Computed, ComputedDescription{
			Name: c.Name,
			Kind: c.Kind,
			Uses: append([]string(nil), c.Uses...),
		})
	}
	return d
}
