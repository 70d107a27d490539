package ports

import (
	"errors"

	"github.com/aretw0/sift/pkg/schema"
)

// ErrSchemaNotFound is returned when a catalog holds no schema under the requested name.
var ErrSchemaNotFound = errors.New("schema not found")

// Catalog defines read access to a set of compiled schemas.
// Hosts depend on this interface instead of a concrete registry, so the schema
// set can come from code, definition files, or a remote source.
type Catalog interface {
	// Get returns the schema registered under name.
	// Returns ErrSchemaNotFound if the name is unknown.
	Get(name string) (*schema.Schema, error)

	// Names returns the sorted names of all schemas in the catalog.
	// This is used for introspection and listing endpoints.
	Names() []string
}
