package tests

import (
	"errors"
	"sort"
	"testing"

	"github.com/aretw0/sift/pkg/ports"
)

// CatalogContractTest is a reusable test suite that verifies if an implementation complies with ports.Catalog.
func CatalogContractTest(t *testing.T, catalog ports.Catalog, want []string) {
	t.Helper()

	// 1. Test Get (Success)
	t.Run("Get_Success", func(t *testing.T) {
		for _, name := range want {
			s, err := catalog.Get(name)
			if err != nil {
				t.Fatalf("unexpected error getting schema %s: %v", name, err)
			}
			if s.Name() != name {
				t.Errorf("name mismatch. got %q, want %q", s.Name(), name)
			}
		}
	})

	// 2. Test Get (NotFound)
	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := catalog.Get("non-existent-schema")
		if !errors.Is(err, ports.ErrSchemaNotFound) {
			t.Errorf("expected ErrSchemaNotFound, got %v", err)
		}
	})

	// 3. Test Names
	t.Run("Names", func(t *testing.T) {
		names := catalog.Names()
		if len(names) != len(want) {
			t.Errorf("expected %d schemas, got %d", len(want), len(names))
		}
		if !sort.StringsAreSorted(names) {
			t.Error("expected sorted names")
		}

		// Verify all expected names are present
		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for _, name := range want {
			if !lookup[name] {
				t.Errorf("schema %s missing from list", name)
			}
		}
	})
}
