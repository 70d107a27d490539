package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/sift/pkg/schema"
)

// Parser converts raw schema definition documents into specs.
// A document declares a "schemas" list; rules and computed fields are Go code
// and cannot be expressed in a definition file.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

type catalogDef struct {
	Schemas []schemaDef `yaml:"schemas"`
}

type schemaDef struct {
	Name   string     `yaml:"name"`
	Extra  string     `yaml:"extra"`
	Fields []fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Name        string     `yaml:"name"`
	Wire        string     `yaml:"wire"`
	Kind        string     `yaml:"kind"`
	Required    bool       `yaml:"required"`
	Strict      bool       `yaml:"strict"`
	Default     *yaml.Node `yaml:"default"`
	Enum        []string   `yaml:"enum"`
	Description string     `yaml:"description"`

	// Constraint shortcuts
	GT      *float64 `yaml:"gt"`
	GE      *float64 `yaml:"ge"`
	LT      *float64 `yaml:"lt"`
	LE      *float64 `yaml:"le"`
	MinLen  *int     `yaml:"min_len"`
	MaxLen  *int     `yaml:"max_len"`
	Pattern string   `yaml:"pattern"`

	// Object kind
	Fields []fieldDef `yaml:"fields"`
}

// Parse takes a raw definition document and decodes it into specs.
// YAML and JSON documents are both accepted.
func (p *Parser) Parse(data []byte) ([]schema.Spec, error) {
	var catalog catalogDef
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if len(catalog.Schemas) == 0 {
		return nil, fmt.Errorf("no schemas defined")
	}

	specs := make([]schema.Spec, 0, len(catalog.Schemas))
	for _, def := range catalog.Schemas {
		spec, err := buildSpec(def)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseFile reads and parses a single definition file.
func (p *Parser) ParseFile(path string) ([]schema.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	specs, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// ParseDir parses every .yaml, .yml and .json file in dir, in name order.
func (p *Parser) ParseDir(dir string) ([]schema.Spec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition dir: %w", err)
	}

	var specs []schema.Spec
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		fileSpecs, err := p.ParseFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		specs = append(specs, fileSpecs...)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("no schema definitions in %s", dir)
	}
	return specs, nil
}

func buildSpec(def schemaDef) (schema.Spec, error) {
	if def.Name == "" {
		return schema.Spec{}, fmt.Errorf("schema missing name")
	}

	spec := schema.Spec{
		Name:  def.Name,
		Extra: schema.ExtraPolicy(def.Extra),
	}
	for _, fd := range def.Fields {
		field, err := buildField(def.Name, fd)
		if err != nil {
			return schema.Spec{}, err
		}
		spec.Fields = append(spec.Fields, field)
	}
	return spec, nil
}

func buildField(schemaName string, fd fieldDef) (schema.Field, error) {
	if fd.Name == "" {
		return schema.Field{}, fmt.Errorf("schema %s: field missing name", schemaName)
	}

	kind, err := schema.ParseKind(fd.Kind)
	if err != nil {
		return schema.Field{}, fmt.Errorf("schema %s: field %q: %w", schemaName, fd.Name, err)
	}

	field := schema.Field{
		Name:        fd.Name,
		Wire:        fd.Wire,
		Kind:        kind,
		Required:    fd.Required,
		Strict:      fd.Strict,
		Enum:        fd.Enum,
		Description: fd.Description,
	}

	if fd.Default != nil {
		value, err := decodeDefault(fd.Default, kind)
		if err != nil {
			return schema.Field{}, fmt.Errorf("schema %s: field %q: %w", schemaName, fd.Name, err)
		}
		field.Default = value
	}

	if kind == schema.KindObject {
		sub := schema.Spec{Name: fd.Name}
		for _, nested := range fd.Fields {
			nestedField, err := buildField(schemaName+"."+fd.Name, nested)
			if err != nil {
				return schema.Field{}, err
			}
			sub.Fields = append(sub.Fields, nestedField)
		}
		field.Object = &sub
	}

	field.Constraints = buildConstraints(fd)
	return field, nil
}

func buildConstraints(fd fieldDef) []schema.Constraint {
	var constraints []schema.Constraint
	if fd.GT != nil {
		constraints = append(constraints, schema.GT(*fd.GT))
	}
	if fd.GE != nil {
		constraints = append(constraints, schema.GE(*fd.GE))
	}
	if fd.LT != nil {
		constraints = append(constraints, schema.LT(*fd.LT))
	}
	if fd.LE != nil {
		constraints = append(constraints, schema.LE(*fd.LE))
	}
	if fd.MinLen != nil {
		constraints = append(constraints, schema.MinLen(*fd.MinLen))
	}
	if fd.MaxLen != nil {
		constraints = append(constraints, schema.MaxLen(*fd.MaxLen))
	}
	if fd.Pattern != "" {
		constraints = append(constraints, schema.Pattern(fd.Pattern))
	}
	return constraints
}

// decodeDefault decodes a default value, keeping the canonical Go type for the
// field's kind so file-defined schemas normalize exactly like Go-defined ones.
func decodeDefault(node *yaml.Node, kind schema.Kind) (any, error) {
	if node.Tag == "!!null" {
		return schema.Null, nil
	}

	var value any
	if err := node.Decode(&value); err != nil {
		return nil, fmt.Errorf("bad default: %w", err)
	}

	switch kind {
	case schema.KindInt:
		if n, ok := value.(int); ok {
			return int64(n), nil
		}
	case schema.KindFloat:
		if n, ok := value.(int); ok {
			return float64(n), nil
		}
	case schema.KindStringList:
		if list, ok := value.([]any); ok {
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("bad default: list item %v is not a string", item)
				}
				out = append(out, s)
			}
			return out, nil
		}
	}
	return value, nil
}
