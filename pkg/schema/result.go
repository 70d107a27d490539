package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Result is a successful validation outcome: the normalized record plus any
// computed values, with serialization into canonical or wire-name form.
type Result struct {
	// Values holds the normalized fields, keyed by canonical name.
	Values Record
	// Computed holds the derived fields, keyed by computed-field name.
	Computed Record

	schema *Schema
}

// Dump serializes the outcome under canonical field names. Computed fields
// are always included.
func (r *Result) Dump() map[string]any {
	out := make(map[string]any, len(r.Values)+len(r.Computed))
	for k, v := range r.Values {
		out[k] = v
	}
	for k, v := range r.Computed {
		out[k] = v
	}
	return out
}

// DumpWire serializes the outcome under declared wire names, recursively for
// nested objects. Computed fields have no wire alias and keep their
// canonical names. Feeding the result back through Validate reproduces the
// same normalized values.
func (r *Result) DumpWire() map[string]any {
	if r.schema == nil {
		return r.Dump()
	}
	out := r.schema.wireRecord(r.Values)
	for k, v := range r.Computed {
		out[k] = v
	}
	return out
}

// Decode binds the normalized record, computed fields included, onto a
// struct. Field matching follows json tags; Date values decode into
// schema.Date, time.Time, or string targets.
func (r *Result) Decode(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     v,
		TagName:    "json",
		DecodeHook: dateDecodeHook,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(r.Dump()); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// wireRecord renames declared fields to their wire names. Keys with no
// declaration, such as nested computed values, pass through unchanged.
func (s *Schema) wireRecord(values Record) map[string]any {
	out := make(map[string]any, len(values))
	named := make(map[string]bool, len(s.fields))
	for _, cf := range s.fields {
		named[cf.Name] = true
		v, ok := values[cf.Name]
		if !ok {
			continue
		}
		if cf.object != nil {
			if sub, isRecord := v.(Record); isRecord {
				v = cf.object.wireRecord(sub)
			}
		}
		out[cf.wireName] = v
	}
	for k, v := range values {
		if !named[k] {
			out[k] = v
		}
	}
	return out
}

var (
	dateType   = reflect.TypeOf(Date{})
	timeType   = reflect.TypeOf(time.Time{})
	stringType = reflect.TypeOf("")
)

func dateDecodeHook(from, to reflect.Type, data any) (any, error) {
	if from != dateType {
		return data, nil
	}
	d := data.(Date)
	switch to {
	case timeType:
		return d.Time(), nil
	case stringType:
		return d.String(), nil
	}
	return data, nil
}
