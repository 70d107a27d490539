package schema

import "fmt"

// Kind identifies the canonical type a field normalizes to.
type Kind string

const (
	KindString     Kind = "string"
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindBool       Kind = "bool"
	KindDate       Kind = "date"
	KindEnum       Kind = "enum"
	KindEmail      Kind = "email"
	KindURL        Kind = "url"
	KindObject     Kind = "object"
	KindStringList Kind = "[string]"
)

// kinds is the closed set of supported kinds.
var kinds = map[Kind]bool{
	KindString:     true,
	KindInt:        true,
	KindFloat:      true,
	KindBool:       true,
	KindDate:       true,
	KindEnum:       true,
	KindEmail:      true,
	KindURL:        true,
	KindObject:     true,
	KindStringList: true,
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool { return kinds[k] }

// ParseKind converts a kind name to a Kind.
// Supports: "string", "int", "float", "bool", "date", "enum", "email",
// "url", "object" and "[string]".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unsupported kind: %s", s)
	}
	return k, nil
}

// stringy reports whether values of this kind normalize to a Go string.
func (k Kind) stringy() bool {
	switch k {
	case KindString, KindEnum, KindEmail, KindURL:
		return true
	}
	return false
}
