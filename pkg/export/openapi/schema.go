// Package openapi exports compiled schemas as OpenAPI 3 documents.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/sift/pkg/schema"
)

// FromDescription converts a schema description into an OpenAPI object schema.
// Properties are keyed by wire name, matching what clients actually send.
// Computed fields appear as readOnly properties under their canonical names.
func FromDescription(d schema.Description) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Title = d.Name

	for _, f := range d.Fields {
		obj.WithProperty(f.Wire, propertyFor(f))
		if f.Required {
			obj.Required = append(obj.Required, f.Wire)
		}
	}

	for _, c := range d.Computed {
		prop := propertyFor(schema.FieldDescription{Kind: c.Kind})
		prop.ReadOnly = true
		obj.WithProperty(c.Name, prop)
	}

	if d.Extra == schema.ExtraForbid {
		obj.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	}

	return obj
}

func propertyFor(f schema.FieldDescription) *openapi3.Schema {
	var prop *openapi3.Schema

	switch f.Kind {
	case schema.KindString:
		prop = openapi3.NewStringSchema()
	case schema.KindInt:
		prop = openapi3.NewInt64Schema()
	case schema.KindFloat:
		prop = openapi3.NewFloat64Schema()
	case schema.KindBool:
		prop = openapi3.NewBoolSchema()
	case schema.KindDate:
		prop = openapi3.NewStringSchema().WithFormat("date")
	case schema.KindEnum:
		prop = openapi3.NewStringSchema().WithEnum(anySlice(f.Enum)...)
	case schema.KindEmail:
		prop = openapi3.NewStringSchema().WithFormat("email")
	case schema.KindURL:
		prop = openapi3.NewStringSchema().WithFormat("uri")
	case schema.KindObject:
		if f.Object != nil {
			prop = FromDescription(*f.Object)
		} else {
			prop = openapi3.NewObjectSchema()
		}
	case schema.KindStringList:
		prop = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	default:
		prop = openapi3.NewSchema()
	}

	if f.Description != "" {
		prop.Description = f.Description
	}
	if f.HasDefault {
		if f.Default == nil {
			prop.WithNullable()
		} else {
			prop.Default = f.Default
		}
	}

	for _, c := range f.Constraints {
		applyConstraint(prop, f.Kind, c)
	}

	return prop
}

func applyConstraint(prop *openapi3.Schema, kind schema.Kind, c schema.Constraint) {
	switch c.Op {
	case schema.OpGT:
		prop.WithMin(bound(c.Arg))
		prop.ExclusiveMin = true
	case schema.OpGE:
		prop.WithMin(bound(c.Arg))
	case schema.OpLT:
		prop.WithMax(bound(c.Arg))
		prop.ExclusiveMax = true
	case schema.OpLE:
		prop.WithMax(bound(c.Arg))
	case schema.OpMinLen:
		if kind == schema.KindStringList {
			prop.MinItems = uint64(length(c.Arg))
		} else {
			prop.WithMinLength(length(c.Arg))
		}
	case schema.OpMaxLen:
		if kind == schema.KindStringList {
			prop.MaxItems = openapi3.Uint64Ptr(uint64(length(c.Arg)))
		} else {
			prop.WithMaxLength(length(c.Arg))
		}
	case schema.OpPattern:
		if pattern, ok := c.Arg.(string); ok {
			prop.WithPattern(pattern)
		}
	case schema.OpOneOf:
		if values, ok := c.Arg.([]string); ok {
			prop.WithEnum(anySlice(values)...)
		}
	}
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func bound(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func length(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
