package dsl

import "github.com/aretw0/sift/pkg/schema"

// FieldBuilder provides a fluent API for configuring a field.
type FieldBuilder struct {
	field   schema.Field
	builder *Builder
}

// Wire sets the external name used for input and serialized output.
func (f *FieldBuilder) Wire(name string) *FieldBuilder {
	f.field.Wire = name
	return f
}

// Required marks the field as mandatory in the input.
func (f *FieldBuilder) Required() *FieldBuilder {
	f.field.Required = true
	return f
}

// Default sets the value used verbatim when the field is absent from input.
// Pass schema.Null for an explicit null default.
func (f *FieldBuilder) Default(v any) *FieldBuilder {
	f.field.Default = v
	return f
}

// Strict disables coercion: only values already of the native type pass.
func (f *FieldBuilder) Strict() *FieldBuilder {
	f.field.Strict = true
	return f
}

// Check appends constraints, evaluated in the declared order.
func (f *FieldBuilder) Check(constraints ...schema.Constraint) *FieldBuilder {
	f.field.Constraints = append(f.field.Constraints, constraints...)
	return f
}

// Doc attaches documentation text surfaced by Describe.
func (f *FieldBuilder) Doc(text string) *FieldBuilder {
	f.field.Description = text
	return f
}

// Build returns the underlying schema.Field.
// This is primarily used by the Builder, but exposed for advanced usage.
func (f *FieldBuilder) Build() schema.Field {
	return f.field
}
