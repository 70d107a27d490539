package schema

import (
	"fmt"
	"strings"
)

// Field declares one schema field. Fields are defined once and never
// mutated after the owning Spec is compiled.
type Field struct {
	// Name is the canonical field name, unique within a schema.
	Name string
	// Wire is the external name used for input and serialized output.
	// Empty means Name.
	Wire string
	// Kind is the canonical type the value normalizes to.
	Kind Kind
	// Required rejects absent input. A required field cannot carry a default.
	Required bool
	// Default is used verbatim when the field is absent from the input; it is
	// neither coerced nor checked against constraints. nil means no default;
	// use Null for an explicit null default.
	Default any
	// Strict disables coercion: only values already of the native Go type
	// are accepted.
	Strict bool
	// Constraints are checked in order against the coerced value. All of
	// them run; each failure is reported separately.
	Constraints []Constraint
	// Enum lists the allowed values of a KindEnum field.
	Enum []string
	// Object is the nested schema of a KindObject field.
	Object *Spec
	// Description is optional documentation surfaced by Describe.
	Description string
}

// wire returns the resolved external name.
func (f *Field) wire() string {
	if f.Wire != "" {
		return f.Wire
	}
	return f.Name
}

// ConstraintOp identifies a constraint predicate.
type ConstraintOp string

const (
	OpGT      ConstraintOp = "gt"
	OpGE      ConstraintOp = "ge"
	OpLT      ConstraintOp = "lt"
	OpLE      ConstraintOp = "le"
	OpMinLen  ConstraintOp = "min_len"
	OpMaxLen  ConstraintOp = "max_len"
	OpPattern ConstraintOp = "pattern"
	OpOneOf   ConstraintOp = "one_of"
)

// Constraint is one declarative predicate-plus-message attached to a field.
// Constraints are data so they can be introspected and serialized; the
// predicate itself lives in the engine, keyed by Op.
type Constraint struct {
	Op      ConstraintOp `json:"op"`
	Arg     any          `json:"arg,omitempty"`
	Message string       `json:"message"`
}

// WithMessage overrides the constraint's default message.
func (c Constraint) WithMessage(msg string) Constraint {
	c.Message = msg
	return c
}

// GT requires a numeric value strictly greater than n.
func GT(n float64) Constraint {
	return Constraint{Op: OpGT, Arg: n, Message: fmt.Sprintf("must be greater than %v", n)}
}

// GE requires a numeric value greater than or equal to n.
func GE(n float64) Constraint {
	return Constraint{Op: OpGE, Arg: n, Message: fmt.Sprintf("must be at least %v", n)}
}

// LT requires a numeric value strictly less than n.
func LT(n float64) Constraint {
	return Constraint{Op: OpLT, Arg: n, Message: fmt.Sprintf("must be less than %v", n)}
}

// LE requires a numeric value less than or equal to n.
func LE(n float64) Constraint {
	return Constraint{Op: OpLE, Arg: n, Message: fmt.Sprintf("must be at most %v", n)}
}

// MinLen requires a string or list length of at least n.
func MinLen(n int) Constraint {
	return Constraint{Op: OpMinLen, Arg: n, Message: fmt.Sprintf("length must be at least %d", n)}
}

// MaxLen requires a string or list length of at most n.
func MaxLen(n int) Constraint {
	return Constraint{Op: OpMaxLen, Arg: n, Message: fmt.Sprintf("length must be at most %d", n)}
}

// Pattern requires a string to match the regular expression expr.
// Failures are reported as format errors.
func Pattern(expr string) Constraint {
	return Constraint{Op: OpPattern, Arg: expr, Message: fmt.Sprintf("must match pattern %s", expr)}
}

// OneOf requires a string to be one of the given values.
func OneOf(values ...string) Constraint {
	return Constraint{Op: OpOneOf, Arg: values, Message: "must be one of: " + strings.Join(values, ", ")}
}

// code returns the error code a failing constraint reports.
func (c Constraint) code() Code {
	if c.Op == OpPattern {
		return CodeFormat
	}
	return CodeConstraint
}

// appliesTo reports whether the constraint op is meaningful for the kind.
// Violations are definition errors, caught by Compile.
func (c Constraint) appliesTo(k Kind) bool {
	switch c.Op {
	case OpGT, OpGE, OpLT, OpLE:
		return k == KindInt || k == KindFloat
	case OpMinLen, OpMaxLen:
		return k == KindString || k == KindEmail || k == KindURL || k == KindStringList
	case OpPattern:
		return k == KindString || k == KindEmail || k == KindURL
	case OpOneOf:
		return k == KindString
	}
	return false
}
