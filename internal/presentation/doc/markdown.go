// Package doc renders schema descriptions as Markdown.
package doc

import (
	"fmt"
	"strings"

	"github.com/aretw0/sift/pkg/schema"
)

// Markdown produces a Markdown document from a schema description: one field
// table per object level, then rule and computed sections. Nested objects
// render as subsections below their parent.
func Markdown(d schema.Description) string {
	var sb strings.Builder
	writeSchema(&sb, d, 1)
	return sb.String()
}

func writeSchema(sb *strings.Builder, d schema.Description, depth int) {
	heading := strings.Repeat("#", depth)
	sb.WriteString(fmt.Sprintf("%s %s\n\n", heading, d.Name))

	if d.Extra == schema.ExtraForbid {
		sb.WriteString("Undeclared input fields are rejected.\n\n")
	}

	sb.WriteString("| Field | Wire | Kind | Required | Details |\n")
	sb.WriteString("|-------|------|------|----------|---------|\n")
	for _, f := range d.Fields {
		required := "no"
		if f.Required {
			required = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escapeCell(f.Name), escapeCell(f.Wire), f.Kind, required, escapeCell(fieldDetails(f))))
	}
	sb.WriteString("\n")

	if len(d.Rules) > 0 {
		sb.WriteString(fmt.Sprintf("%s# Rules\n\n", heading))
		for _, r := range d.Rules {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
		sb.WriteString("\n")
	}

	if len(d.Computed) > 0 {
		sb.WriteString(fmt.Sprintf("%s# Computed\n\n", heading))
		for _, c := range d.Computed {
			if len(c.Uses) > 0 {
				sb.WriteString(fmt.Sprintf("- `%s` (%s) from %s\n", c.Name, c.Kind, strings.Join(c.Uses, ", ")))
			} else {
				sb.WriteString(fmt.Sprintf("- `%s` (%s)\n", c.Name, c.Kind))
			}
		}
		sb.WriteString("\n")
	}

	for _, f := range d.Fields {
		if f.Object != nil {
			writeSchema(sb, *f.Object, depth+1)
		}
	}
}

// fieldDetails collapses everything beyond the fixed columns into one cell.
func fieldDetails(f schema.FieldDescription) string {
	var parts []string
	if f.Strict {
		parts = append(parts, "strict")
	}
	if f.HasDefault {
		if f.Default == nil {
			parts = append(parts, "default: null")
		} else {
			parts = append(parts, fmt.Sprintf("default: %v", f.Default))
		}
	}
	if len(f.Enum) > 0 {
		parts = append(parts, "one of: "+strings.Join(f.Enum, ", "))
	}
	for _, c := range f.Constraints {
		parts = append(parts, constraintText(c))
	}
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	return strings.Join(parts, "; ")
}

func constraintText(c schema.Constraint) string {
	switch c.Op {
	case schema.OpGT:
		return fmt.Sprintf("> %v", c.Arg)
	case schema.OpGE:
		return fmt.Sprintf(">= %v", c.Arg)
	case schema.OpLT:
		return fmt.Sprintf("< %v", c.Arg)
	case schema.OpLE:
		return fmt.Sprintf("<= %v", c.Arg)
	case schema.OpMinLen:
		return fmt.Sprintf("min length %v", c.Arg)
	case schema.OpMaxLen:
		return fmt.Sprintf("max length %v", c.Arg)
	case schema.OpPattern:
		return fmt.Sprintf("pattern `%v`", c.Arg)
	case schema.OpOneOf:
		if vals, ok := c.Arg.([]string); ok {
			return "one of: " + strings.Join(vals, ", ")
		}
	}
	return string(c.Op)
}

// escapeCell keeps field content from breaking the table markup.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
