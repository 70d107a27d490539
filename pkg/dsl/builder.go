package dsl

import (
	"fmt"

	"github.com/aretw0/sift/pkg/schema"
)

// Builder manages the schema construction.
type Builder struct {
	name     string
	fields   []*FieldBuilder
	byName   map[string]*FieldBuilder
	rules    []schema.Rule
	computed []schema.Computed
	extra    schema.ExtraPolicy
}

// New creates a new schema builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		byName: make(map[string]*FieldBuilder),
	}
}

// Field adds a new field of the given kind to the schema.
// If the field already exists, it returns the existing builder.
func (b *Builder) Field(name string, kind schema.Kind) *FieldBuilder {
	if fb, ok := b.byName[name]; ok {
		return fb
	}
	fb := &FieldBuilder{
		field:   schema.Field{Name: name, Kind: kind},
		builder: b,
	}
	b.byName[name] = fb
	b.fields = append(b.fields, fb)
	return fb
}

// String adds a string field.
func (b *Builder) String(name string) *FieldBuilder { return b.Field(name, schema.KindString) }

// Int adds an integer field.
func (b *Builder) Int(name string) *FieldBuilder { return b.Field(name, schema.KindInt) }

// Float adds a float field.
func (b *Builder) Float(name string) *FieldBuilder { return b.Field(name, schema.KindFloat) }

// Bool adds a boolean field.
func (b *Builder) Bool(name string) *FieldBuilder { return b.Field(name, schema.KindBool) }

// Date adds a calendar-date field.
func (b *Builder) Date(name string) *FieldBuilder { return b.Field(name, schema.KindDate) }

// Email adds an email-string field.
func (b *Builder) Email(name string) *FieldBuilder { return b.Field(name, schema.KindEmail) }

// URL adds a url-string field.
func (b *Builder) URL(name string) *FieldBuilder { return b.Field(name, schema.KindURL) }

// StringList adds a list-of-string field.
func (b *Builder) StringList(name string) *FieldBuilder {
	return b.Field(name, schema.KindStringList)
}

// Enum adds an enum field restricted to the given values.
func (b *Builder) Enum(name string, values ...string) *FieldBuilder {
	fb := b.Field(name, schema.KindEnum)
	fb.field.Enum = values
	return fb
}

// Object adds a nested-object field whose value is validated against sub.
func (b *Builder) Object(name string, sub *Builder) *FieldBuilder {
	fb := b.Field(name, schema.KindObject)
	spec := sub.Spec()
	fb.field.Object = &spec
	return fb
}

// Rule attaches a cross-field rule, evaluated in declaration order once
// every field has passed individually.
func (b *Builder) Rule(name string, check func(schema.Record) error) *Builder {
	b.rules = append(b.rules, schema.Rule{Name: name, Check: check})
	return b
}

// Computed declares a derived output field. uses names the fields fn reads;
// only declared fields and earlier computed fields are allowed.
func (b *Builder) Computed(name string, kind schema.Kind, fn func(schema.Record) any, uses ...string) *Builder {
	b.computed = append(b.computed, schema.Computed{Name: name, Kind: kind, Uses: uses, Fn: fn})
	return b
}

// Forbid rejects input containing keys no field declares.
func (b *Builder) Forbid() *Builder {
	b.extra = schema.ExtraForbid
	return b
}

// Spec returns the assembled declarative spec.
func (b *Builder) Spec() schema.Spec {
	fields := make([]schema.Field, 0, len(b.fields))
	for _, fb := range b.fields {
		fields = append(fields, fb.field)
	}
	return schema.Spec{
		Name:     b.name,
		Fields:   fields,
		Rules:    b.rules,
		Computed: b.computed,
		Extra:    b.extra,
	}
}

// Build compiles the assembled spec into a Schema.
func (b *Builder) Build() (*schema.Schema, error) {
	s, err := schema.Compile(b.Spec())
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}
	return s, nil
}
