// Package mcp exposes the schema catalog as an MCP server, over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/sift/pkg/ports"
	"github.com/aretw0/sift/pkg/schema"
)

// ValidateResponse is the structured result of the validate_record tool,
// aligned with the HTTP adapter's response shape.
type ValidateResponse struct {
	OK       bool           `json:"ok" jsonschema_description:"Whether the record passed validation"`
	Record   map[string]any `json:"record,omitempty" jsonschema_description:"Normalized record keyed by canonical names"`
	Wire     map[string]any `json:"wire,omitempty" jsonschema_description:"Normalized record keyed by wire names"`
	Computed map[string]any `json:"computed,omitempty" jsonschema_description:"Derived fields"`
	Errors   schema.Issues  `json:"errors,omitempty" jsonschema_description:"Validation failures, all of them"`
}

// Server wraps a schema catalog and exposes it as an MCP Server.
type Server struct {
	catalog   ports.Catalog
	history   ports.HistoryStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. history may be nil, which
// disables attempt recording.
func NewServer(catalog ports.Catalog, history ports.HistoryStore, version string) *Server {
	s := &Server{
		catalog:   catalog,
		history:   history,
		mcpServer: server.NewMCPServer("sift-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_schemas
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of every schema in the catalog."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(map[string]any{"schemas": s.catalog.Names()})
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_schema
	describeTool := mcp.NewTool("describe_schema",
		mcp.WithDescription("Describe one schema: fields, kinds, wire names, constraints, rules, computed fields."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
		mcp.WithOutputSchema[schema.Description](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: validate_record
	validateTool := mcp.NewTool("validate_record",
		mcp.WithDescription("Validate a raw record against a schema. Returns the normalized record or the full error list."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
		mcp.WithString("record", mcp.Required(), mcp.Description("JSON object of the raw record, keyed by wire names")),
		mcp.WithString("session_id", mcp.Description("Records the attempt under this session (optional)")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

// Handler methods for structured tools

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (schema.Description, error) {
	name, _ := args["name"].(string)

	sc, err := s.catalog.Get(name)
	if err != nil {
		return schema.Description{}, fmt.Errorf("unknown schema %q", name)
	}
	return sc.Describe(), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	name, _ := args["name"].(string)

	sc, err := s.catalog.Get(name)
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("unknown schema %q", name)
	}

	raw, err := decodeRecord(args["record"])
	if err != nil {
		return ValidateResponse{}, err
	}

	res, verr := sc.Validate(raw)
	issues := schema.AsIssues(verr)
	s.recordAttempt(ctx, args, name, raw, issues)

	// A rejected record is a result, not a tool error.
	if verr != nil {
		return ValidateResponse{OK: false, Errors: issues}, nil
	}
	return ValidateResponse{
		OK:       true,
		Record:   res.Values,
		Wire:     res.DumpWire(),
		Computed: res.Computed,
	}, nil
}

// decodeRecord accepts the record argument as a JSON string or, from clients
// that send objects directly, as an already-decoded map.
func decodeRecord(arg any) (map[string]any, error) {
	switch v := arg.(type) {
	case string:
		dec := json.NewDecoder(strings.NewReader(v))
		// Numbers stay json.Number so integer input survives strict fields.
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("record is not a JSON object: %w", err)
		}
		return raw, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("record is not a JSON object (got %T)", arg)
	}
}

func (s *Server) recordAttempt(ctx context.Context, args map[string]interface{}, name string, raw map[string]any, issues schema.Issues) {
	if s.history == nil {
		return
	}
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return
	}
	att := ports.NewAttempt(name, raw, issues)
	if err := s.history.Append(ctx, sessionID, att); err != nil {
		slog.Error("MCP Validate: Failed to record attempt", "error", err, "session_id", sessionID)
	}
}

func (s *Server) registerResources() {
	// EXPOSE: sift://schemas
	s.mcpServer.AddResource(mcp.NewResource("sift://schemas", "Schema Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		descriptions := make([]schema.Description, 0, len(s.catalog.Names()))
		for _, name := range s.catalog.Names() {
			sc, err := s.catalog.Get(name)
			if err != nil {
				continue
			}
			descriptions = append(descriptions, sc.Describe())
		}
		jsonBytes, err := json.Marshal(descriptions)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "sift://schemas",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
