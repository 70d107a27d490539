package schema

// Record is a validated, normalized record keyed by canonical field names.
// Values hold the canonical Go type of each kind: string, int64, float64,
// bool, Date, []string, or a nested Record for object fields.
type Record map[string]any

// ExtraPolicy decides what happens to input keys no field declares.
type ExtraPolicy string

const (
	// ExtraIgnore silently drops undeclared keys. The default.
	ExtraIgnore ExtraPolicy = "ignore"
	// ExtraForbid rejects any undeclared key before field validation runs.
	ExtraForbid ExtraPolicy = "forbid"
)

// Null marks a field default as an explicit null. A field defaulted to Null
// appears in the normalized record with a nil value when absent from input.
var Null any = nullValue{}

type nullValue struct{}

func (nullValue) String() string { return "null" }

// Rule is a whole-record check evaluated only after every field has passed
// individually. Check receives the normalized record and returns nil or an
// error whose message is reported at path "__root__".
type Rule struct {
	Name  string
	Check func(Record) error
}

// Computed declares an output-only field derived from validated values.
// Fn receives the normalized record, including previously computed fields,
// and its result is included in every serialized output. Computed fields are
// never accepted as input.
type Computed struct {
	Name string
	Kind Kind
	// Uses names the fields Fn reads: declared fields or previously declared
	// computed fields. Forward and self references are definition errors.
	Uses []string
	Fn   func(Record) any
}

// Spec is a declarative schema definition: an ordered set of fields plus
// whole-record rules and derived fields. A Spec is plain data; Compile turns
// it into a validating Schema. The engine never mutates a Spec.
type Spec struct {
	Name     string
	Fields   []Field
	Rules    []Rule
	Computed []Computed
	Extra    ExtraPolicy // defaults to ExtraIgnore
}
