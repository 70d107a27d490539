package schema

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Validate checks a raw record against the schema and either normalizes it
// or reports every problem found in one pass.
//
// Keys in raw are wire names. The input is never mutated. On failure the
// returned error is an Issues holding one *FieldError per problem, ordered:
// forbidden extra keys first (sorted, and nothing else runs), then field
// errors in declaration order, then a single cross-field rule error.
// Cross-field rules and computed fields run only when every field passed.
func (s *Schema) Validate(raw map[string]any) (*Result, error) {
	values, computed, errs := s.eval(raw, "")
	if len(errs) > 0 {
		return nil, Issues(errs)
	}
	return &Result{Values: values, Computed: computed, schema: s}, nil
}

// eval runs the full validation pipeline for one nesting level. prefix is
// the dotted path of the enclosing field, empty at the top level.
func (s *Schema) eval(raw map[string]any, prefix string) (Record, Record, []*FieldError) {
	var errs []*FieldError

	if s.extra == ExtraForbid {
		var unknown []string
		for key := range raw {
			if _, declared := s.byWire[key]; !declared {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			for _, key := range unknown {
				errs = append(errs, &FieldError{
					Path:    joinPath(prefix, key),
					Code:    CodeExtra,
					Message: "unexpected field",
					Value:   raw[key],
				})
			}
			// Undeclared keys abort the attempt; field checks never run.
			return nil, nil, errs
		}
	}

	values := make(Record, len(s.fields))
	for _, cf := range s.fields {
		path := joinPath(prefix, cf.Name)
		rawVal, present := raw[cf.wireName]
		if !present {
			if cf.Default != nil {
				// Defaults are trusted verbatim: no coercion, no constraints.
				if cf.Default == Null {
					values[cf.Name] = nil
				} else {
					values[cf.Name] = cf.Default
				}
			} else if cf.Required {
				errs = append(errs, &FieldError{Path: path, Code: CodeRequired, Message: "field required"})
			}
			continue
		}

		if rawVal == nil && cf.Default == Null {
			// A null default makes the field nullable: an explicit null input
			// is valid, and a wire dump of the null round-trips.
			values[cf.Name] = nil
			continue
		}

		value, ok, ferrs := s.evalField(cf, rawVal, path)
		errs = append(errs, ferrs...)
		if ok {
			values[cf.Name] = value
		}
	}

	if len(errs) == 0 {
		for _, r := range s.rules {
			if err := r.Check(values); err != nil {
				errs = append(errs, &FieldError{
					Path:    joinPath(prefix, RootPath),
					Code:    CodeRule,
					Message: err.Error(),
				})
				break
			}
		}
	}

	computed := Record{}
	if len(errs) == 0 && len(s.computed) > 0 {
		view := make(Record, len(values)+len(s.computed))
		for k, v := range values {
			view[k] = v
		}
		for _, c := range s.computed {
			v := c.Fn(view)
			computed[c.Name] = v
			view[c.Name] = v
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return values, computed, nil
}

// evalField resolves one present field: coercion, format check, nested
// recursion, then every declared constraint. ok reports whether a coerced
// value was produced; a value with failing constraints is still produced.
func (s *Schema) evalField(cf *compiledField, raw any, path string) (any, bool, []*FieldError) {
	if cf.Kind == KindObject {
		sub, isMap := asRawMap(raw)
		if !isMap {
			return nil, false, []*FieldError{{
				Path: path, Code: CodeType,
				Message: fmt.Sprintf("expected object, got %T", raw),
				Value:   raw,
			}}
		}
		vals, comp, errs := cf.object.eval(sub, path)
		if len(errs) > 0 {
			return nil, false, errs
		}
		for k, v := range comp {
			vals[k] = v
		}
		return vals, true, nil
	}

	value, err := coerce(cf.Kind, raw, cf.Strict)
	if err != nil {
		return nil, false, []*FieldError{{Path: path, Code: CodeType, Message: err.Error(), Value: raw}}
	}

	switch cf.Kind {
	case KindEmail:
		if err := checkEmail(value.(string)); err != nil {
			return value, true, []*FieldError{{Path: path, Code: CodeFormat, Message: err.Error(), Value: raw}}
		}
	case KindURL:
		if err := checkURL(value.(string)); err != nil {
			return value, true, []*FieldError{{Path: path, Code: CodeFormat, Message: err.Error(), Value: raw}}
		}
	case KindEnum:
		if !cf.enumSet[value.(string)] {
			return value, true, []*FieldError{{Path: path, Code: CodeConstraint, Message: cf.enumMsg, Value: raw}}
		}
	}

	var errs []*FieldError
	for _, ch := range cf.checks {
		if !ch.eval(value) {
			errs = append(errs, &FieldError{Path: path, Code: ch.code(), Message: ch.Message, Value: raw})
		}
	}
	return value, true, errs
}

// eval applies the compiled predicate to a coerced value.
func (ch check) eval(value any) bool {
	switch ch.Op {
	case OpGT, OpGE, OpLT, OpLE:
		n, ok := asFloat(value)
		if !ok {
			return false
		}
		switch ch.Op {
		case OpGT:
			return n > ch.bound
		case OpGE:
			return n >= ch.bound
		case OpLT:
			return n < ch.bound
		default:
			return n <= ch.bound
		}
	case OpMinLen:
		return valueLen(value) >= ch.length
	case OpMaxLen:
		return valueLen(value) <= ch.length
	case OpPattern:
		str, ok := value.(string)
		return ok && ch.re.MatchString(str)
	case OpOneOf:
		str, ok := value.(string)
		return ok && ch.oneOf[str]
	}
	return true
}

func valueLen(value any) int {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v)
	case []string:
		return len(v)
	}
	return 0
}

func asRawMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case Record:
		return v, true
	}
	return nil, false
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
