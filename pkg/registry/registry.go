package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/sift/pkg/ports"
	"github.com/aretw0/sift/pkg/schema"
)

// Registry implements ports.Catalog with an in-memory map.
// Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		schemas: make(map[string]*schema.Schema),
	}
}

// NewFromSpecs creates a registry from raw specs.
// This handles compilation automatically, improving DX for hosts and tests.
func NewFromSpecs(specs ...schema.Spec) (*Registry, error) {
	r := New()
	for _, spec := range specs {
		s, err := schema.Compile(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", spec.Name, err)
		}
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a compiled schema under its name.
// Returns an error if the name is already taken.
func (r *Registry) Register(s *schema.Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, ok := r.schemas[name]; ok {
		return fmt.Errorf("schema already registered: %s", name)
	}
	r.schemas[name] = s
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(s *schema.Schema) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get returns the schema registered under name.
// Returns ports.ErrSchemaNotFound if the name is unknown.
func (r *Registry) Get(name string) (*schema.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrSchemaNotFound, name)
	}
	return s, nil
}

// Names returns all registered schema names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names
}
