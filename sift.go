package sift

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sift/internal/compiler"
	"github.com/aretw0/sift/pkg/adapters/memory"
	"github.com/aretw0/sift/pkg/observability"
	"github.com/aretw0/sift/pkg/ports"
	"github.com/aretw0/sift/pkg/registry"
	"github.com/aretw0/sift/pkg/schema"
)

// Engine is the high-level entry point for the sift library.
// It bundles a schema catalog with an attempt history and provides a
// simplified API for hosts and embedders.
type Engine struct {
	catalog ports.Catalog
	history ports.HistoryStore
	metrics *observability.Collector
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog injects a pre-built schema catalog, bypassing the default
// definition-file compilation.
func WithCatalog(c ports.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithHistory sets the store that records validation attempts per session.
func WithHistory(h ports.HistoryStore) Option {
	return func(e *Engine) {
		e.history = h
	}
}

// WithMetrics registers a Prometheus collector observed on every Validate call.
func WithMetrics(m *observability.Collector) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new sift Engine.
// By default, it compiles the YAML/JSON schema definitions at the given path
// (a file or a directory of files).
// If the WithCatalog option is provided, defsPath can be empty and no files
// are read.
func New(defsPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check if a catalog is provided
	for _, opt := range opts {
		opt(eng)
	}

	// If no catalog was injected, compile the definitions at defsPath
	if eng.catalog == nil {
		if defsPath == "" {
			return nil, fmt.Errorf("defsPath is required when no custom catalog is provided")
		}

		absPath, err := filepath.Abs(defsPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)

		reg, err := compileDefinitions(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load definitions: %w", err)
		}
		eng.catalog = reg
	} else if defsPath != "" {
		// With a custom catalog the path only serves as a descriptive label.
		eng.Name = filepath.Base(defsPath)
	}

	if eng.history == nil {
		eng.history = memory.NewStore()
	}

	// Ensure logger is initialized (so hosts can rely on it being non-nil)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}

	return eng, nil
}

// compileDefinitions parses the definition file or directory into a registry.
func compileDefinitions(path string) (*registry.Registry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	p := compiler.NewParser()
	var specs []schema.Spec
	if info.IsDir() {
		specs, err = p.ParseDir(path)
	} else {
		specs, err = p.ParseFile(path)
	}
	if err != nil {
		return nil, err
	}

	return registry.NewFromSpecs(specs...)
}

// Schemas returns the sorted names of every schema in the catalog.
func (e *Engine) Schemas() []string {
	return e.catalog.Names()
}

// Describe returns the introspectable description of the named schema.
func (e *Engine) Describe(name string) (schema.Description, error) {
	s, err := e.catalog.Get(name)
	if err != nil {
		return schema.Description{}, err
	}
	return s.Describe(), nil
}

// Validate checks a raw record against the named schema.
// When sessionID is not empty, the attempt is recorded in the history store
// whatever the outcome. A rejected record returns the validation error;
// schema.AsIssues extracts the field issues from it.
func (e *Engine) Validate(ctx context.Context, sessionID, name string, raw map[string]any) (*schema.Result, error) {
	s, err := e.catalog.Get(name)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	res, verr := s.Validate(raw)
	issues := schema.AsIssues(verr)

	if e.metrics != nil {
		e.metrics.ObserveValidation(name, issues, time.Since(started))
	}

	if sessionID != "" {
		if herr := e.history.Append(ctx, sessionID, ports.NewAttempt(name, raw, issues)); herr != nil {
			// Recording failures are logged, never surfaced.
			e.logger.Error("Failed to record attempt", "session_id", sessionID, "error", herr)
		}
	}

	e.logger.Debug("Validation complete", "schema", name, "ok", verr == nil, "issues", len(issues))

	if verr != nil {
		return nil, verr
	}
	return res, nil
}

// Attempts returns the validation attempts recorded for a session, oldest first.
func (e *Engine) Attempts(ctx context.Context, sessionID string) ([]*ports.Attempt, error) {
	return e.history.List(ctx, sessionID)
}

// Catalog returns the underlying schema catalog used by the engine.
func (e *Engine) Catalog() ports.Catalog {
	return e.catalog
}

// History returns the underlying attempt store used by the engine.
func (e *Engine) History() ports.HistoryStore {
	return e.history
}
