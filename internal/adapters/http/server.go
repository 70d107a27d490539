// Package http hosts the playground REST API over a schema catalog.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/sift/pkg/export/openapi"
	"github.com/aretw0/sift/pkg/observability"
	"github.com/aretw0/sift/pkg/ports"
	"github.com/aretw0/sift/pkg/schema"
)

// apiVersion tracks the playground API surface, independent of the build.
const apiVersion = "1.0.0"

// Server serves the catalog endpoints. History and Metrics are optional;
// nil disables attempt recording and instrumentation respectively.
type Server struct {
	Catalog ports.Catalog
	History ports.HistoryStore
	Metrics *observability.Collector
	Version string

	doc *openapi3.T // served at /openapi.json
}

// NewHandler creates the HTTP handler for the playground API.
func NewHandler(catalog ports.Catalog, history ports.HistoryStore, metrics *observability.Collector, version string) http.Handler {
	server := &Server{
		Catalog: catalog,
		History: history,
		Metrics: metrics,
		Version: version,
		doc:     openapi.Document(catalog, apiVersion),
	}

	r := chi.NewRouter()
	if metrics != nil {
		r.Use(server.instrument)
	}

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/schemas", server.ListSchemas)
	r.Get("/schemas/{name}", server.DescribeSchema)
	r.Post("/schemas/{name}/validate", server.ValidateRecord)
	r.Get("/sessions", server.ListSessions)
	r.Get("/sessions/{id}/attempts", server.ListAttempts)
	r.Delete("/sessions/{id}/attempts", server.ClearAttempts)

	// Swagger UI
	r.Get("/openapi.json", server.GetOpenAPI)
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Sift API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "sift-http",
		"version":     strings.TrimSpace(s.Version),
		"api_version": apiVersion,
	})
}

// ListSchemas handles the GET /schemas request.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"schemas": s.Catalog.Names()})
}

// DescribeSchema handles the GET /schemas/{name} request.
func (s *Server) DescribeSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sc, err := s.Catalog.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown schema %q", name))
		return
	}
	writeJSON(w, http.StatusOK, sc.Describe())
}

// ValidateRecord handles the POST /schemas/{name}/validate request.
func (s *Server) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sc, err := s.Catalog.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown schema %q", name))
		return
	}

	dec := json.NewDecoder(r.Body)
	// Numbers stay json.Number so integer input survives strict fields.
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		slog.Warn("ValidateRecord: Invalid request body", "error", err)
		return
	}

	started := time.Now()
	res, err := sc.Validate(raw)
	issues := schema.AsIssues(err)
	if s.Metrics != nil {
		s.Metrics.ObserveValidation(name, issues, time.Since(started))
	}
	s.recordAttempt(r, name, raw, issues)

	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"ok":     false,
			"errors": issues,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"record":   res.Values,
		"wire":     res.DumpWire(),
		"computed": res.Computed,
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if s.History != nil {
		var err error
		ids, err = s.History.Sessions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list sessions")
			slog.Error("ListSessions failed", "error", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

// ListAttempts handles the GET /sessions/{id}/attempts request.
func (s *Server) ListAttempts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.History == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown session %q", id))
		return
	}

	attempts, err := s.History.List(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown session %q", id))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load attempts")
		slog.Error("ListAttempts failed", "error", err, "session_id", id)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

// ClearAttempts handles the DELETE /sessions/{id}/attempts request.
func (s *Server) ClearAttempts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.History != nil {
		if err := s.History.Clear(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to clear session")
			slog.Error("ClearAttempts failed", "error", err, "session_id", id)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetOpenAPI handles the GET /openapi.json request.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(s.doc)
	if err != nil {
		http.Error(w, "Failed to render spec", http.StatusInternalServerError)
		slog.Error("Failed to render OpenAPI spec", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// recordAttempt appends the attempt to the session history when the request
// names a session. Recording failures are logged, never surfaced.
func (s *Server) recordAttempt(r *http.Request, name string, raw map[string]any, issues schema.Issues) {
	if s.History == nil {
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		return
	}
	att := ports.NewAttempt(name, raw, issues)
	if err := s.History.Append(r.Context(), sessionID, att); err != nil {
		slog.Error("ValidateRecord: Failed to record attempt", "error", err, "session_id", sessionID)
	}
}

// instrument tracks request counts, latency, and the in-flight gauge.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.RequestsInFlight.Inc()
		defer s.Metrics.RequestsInFlight.Dec()

		started := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		// The route pattern is only known after routing ran.
		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}
		s.Metrics.RequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.status)).Inc()
		s.Metrics.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(started).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
