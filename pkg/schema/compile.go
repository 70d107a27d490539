package schema

import "regexp"

// Schema is a compiled Spec. It is immutable and safe for concurrent use;
// one Schema can serve any number of Validate calls at once.
type Schema struct {
	name     string
	extra    ExtraPolicy
	fields   []*compiledField
	byWire   map[string]*compiledField
	rules    []Rule
	computed []Computed
}

// compiledField is a Field with its lookup and constraint machinery resolved.
type compiledField struct {
	Field
	wireName string
	object   *Schema
	checks   []check
	enumSet  map[string]bool
	enumMsg  string
}

// check is a constraint with its argument resolved to a concrete type.
type check struct {
	Constraint
	re     *regexp.Regexp
	bound  float64
	length int
	oneOf  map[string]bool
}

// Name returns the schema's declared name.
func (s *Schema) Name() string { return s.name }

// Compile validates a Spec and turns it into an immutable Schema. Every
// definition problem surfaces here as a *DefinitionError; validation itself
// never reports them.
func Compile(spec Spec) (*Schema, error) {
	if spec.Name == "" {
		return nil, definitionErr("", "schema name required")
	}
	extra := spec.Extra
	if extra == "" {
		extra = ExtraIgnore
	}
	if extra != ExtraIgnore && extra != ExtraForbid {
		return nil, definitionErr(spec.Name, "unknown extra-fields policy %q", extra)
	}

	s := &Schema{
		name:   spec.Name,
		extra:  extra,
		byWire: make(map[string]*compiledField, len(spec.Fields)),
	}

	byName := make(map[string]bool, len(spec.Fields))
	for i := range spec.Fields {
		cf, err := compileField(spec.Name, spec.Fields[i])
		if err != nil {
			return nil, err
		}
		if byName[cf.Name] {
			return nil, definitionErr(spec.Name, "duplicate field name %q", cf.Name)
		}
		byName[cf.Name] = true
		if _, dup := s.byWire[cf.wireName]; dup {
			return nil, definitionErr(spec.Name, "duplicate wire name %q", cf.wireName)
		}
		s.byWire[cf.wireName] = cf
		s.fields = append(s.fields, cf)
	}

	for i, r := range spec.Rules {
		if r.Name == "" {
			return nil, definitionErr(spec.Name, "rule %d: name required", i)
		}
		if r.Check == nil {
			return nil, definitionErr(spec.Name, "rule %q: missing check function", r.Name)
		}
	}
	s.rules = append(s.rules, spec.Rules...)

	// Computed fields may only read declared fields or computed fields that
	// appear earlier, so cycles cannot be defined.
	seen := make(map[string]bool, len(spec.Computed))
	for i, c := range spec.Computed {
		if c.Name == "" {
			return nil, definitionErr(spec.Name, "computed field %d: name required", i)
		}
		if byName[c.Name] || seen[c.Name] {
			return nil, definitionErr(spec.Name, "computed field %q: name collides with an existing field", c.Name)
		}
		if !c.Kind.Valid() {
			return nil, definitionErr(spec.Name, "computed field %q: unsupported kind %q", c.Name, c.Kind)
		}
		if c.Fn == nil {
			return nil, definitionErr(spec.Name, "computed field %q: missing function", c.Name)
		}
		for _, use := range c.Uses {
			if !byName[use] && !seen[use] {
				return nil, definitionErr(spec.Name,
					"computed field %q: uses %q, which is not a field or earlier computed field", c.Name, use)
			}
		}
		seen[c.Name] = true
	}
	s.computed = append(s.computed, spec.Computed...)

	return s, nil
}

// MustCompile is Compile but panics on a malformed Spec. Intended for
// schemas defined as program literals, where a definition error is a bug.
func MustCompile(spec Spec) *Schema {
	s, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return s
}

func compileField(schemaName string, f Field) (*compiledField, error) {
	if f.Name == "" {
		return nil, definitionErr(schemaName, "field with empty name")
	}
	if !f.Kind.Valid() {
		return nil, definitionErr(schemaName, "field %q: unsupported kind %q", f.Name, f.Kind)
	}
	if f.Required && f.Default != nil {
		return nil, definitionErr(schemaName, "field %q: required fields cannot have a default", f.Name)
	}

	cf := &compiledField{Field: f, wireName: f.wire()}

	switch {
	case f.Kind == KindEnum && len(f.Enum) == 0:
		return nil, definitionErr(schemaName, "field %q: enum kind requires enum values", f.Name)
	case f.Kind != KindEnum && len(f.Enum) > 0:
		return nil, definitionErr(schemaName, "field %q: enum values require enum kind", f.Name)
	case f.Kind == KindEnum:
		cf.enumSet = make(map[string]bool, len(f.Enum))
		for _, v := range f.Enum {
			cf.enumSet[v] = true
		}
		cf.enumMsg = OneOf(f.Enum...).Message
	}

	switch {
	case f.Kind == KindObject && f.Object == nil:
		return nil, definitionErr(schemaName, "field %q: object kind requires a nested spec", f.Name)
	case f.Kind != KindObject && f.Object != nil:
		return nil, definitionErr(schemaName, "field %q: nested spec requires object kind", f.Name)
	case f.Kind == KindObject:
		sub, err := Compile(*f.Object)
		if err != nil {
			return nil, definitionErr(schemaName, "field %q: %v", f.Name, err)
		}
		cf.object = sub
	}

	for _, c := range f.Constraints {
		ch, err := compileConstraint(schemaName, f, c)
		if err != nil {
			return nil, err
		}
		cf.checks = append(cf.checks, ch)
	}
	return cf, nil
}

func compileConstraint(schemaName string, f Field, c Constraint) (check, error) {
	if !c.appliesTo(f.Kind) {
		return check{}, definitionErr(schemaName, "field %q: constraint %s not applicable to kind %s", f.Name, c.Op, f.Kind)
	}
	ch := check{Constraint: c}
	switch c.Op {
	case OpGT, OpGE, OpLT, OpLE:
		n, ok := asFloat(c.Arg)
		if !ok {
			return check{}, definitionErr(schemaName, "field %q: constraint %s requires a numeric argument", f.Name, c.Op)
		}
		ch.bound = n
	case OpMinLen, OpMaxLen:
		n, ok := asInt(c.Arg)
		if !ok {
			return check{}, definitionErr(schemaName, "field %q: constraint %s requires an integer argument", f.Name, c.Op)
		}
		ch.length = int(n)
	case OpPattern:
		expr, ok := c.Arg.(string)
		if !ok {
			return check{}, definitionErr(schemaName, "field %q: pattern constraint requires a string argument", f.Name)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return check{}, definitionErr(schemaName, "field %q: invalid pattern %q: %v", f.Name, expr, err)
		}
		ch.re = re
	case OpOneOf:
		values, ok := c.Arg.([]string)
		if !ok || len(values) == 0 {
			return check{}, definitionErr(schemaName, "field %q: one_of constraint requires string values", f.Name)
		}
		ch.oneOf = make(map[string]bool, len(values))
		for _, v := range values {
			ch.oneOf[v] = true
		}
	}
	return ch, nil
}
