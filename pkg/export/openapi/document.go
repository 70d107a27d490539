package openapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/sift/pkg/ports"
)

// Document builds the OpenAPI 3 document for the playground API, with one
// component schema per catalog entry.
func Document(catalog ports.Catalog, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "sift playground",
			Description: "Validate records against the schema catalog.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, name := range catalog.Names() {
		s, err := catalog.Get(name)
		if err != nil {
			continue
		}
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", FromDescription(s.Describe()))
	}

	health := openapi3.NewOperation()
	health.OperationID = "getHealth"
	health.Summary = "Liveness probe"
	health.AddResponse(http.StatusOK, jsonResponse("Service is up",
		openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema())))
	doc.AddOperation("/health", http.MethodGet, health)

	info := openapi3.NewOperation()
	info.OperationID = "getInfo"
	info.Summary = "Build and API metadata"
	info.AddResponse(http.StatusOK, jsonResponse("Service metadata",
		openapi3.NewObjectSchema().
			WithProperty("app", openapi3.NewStringSchema()).
			WithProperty("version", openapi3.NewStringSchema()).
			WithProperty("api_version", openapi3.NewStringSchema())))
	doc.AddOperation("/info", http.MethodGet, info)

	list := openapi3.NewOperation()
	list.OperationID = "listSchemas"
	list.Summary = "List catalog schema names"
	list.AddResponse(http.StatusOK, jsonResponse("Available schemas",
		openapi3.NewObjectSchema().
			WithProperty("schemas", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))))
	doc.AddOperation("/schemas", http.MethodGet, list)

	describe := openapi3.NewOperation()
	describe.OperationID = "describeSchema"
	describe.Summary = "Describe one schema"
	describe.AddParameter(openapi3.NewPathParameter("name").WithSchema(openapi3.NewStringSchema()))
	describe.AddResponse(http.StatusOK, jsonResponse("Schema description", openapi3.NewObjectSchema()))
	describe.AddResponse(http.StatusNotFound, jsonResponse("Unknown schema", errorSchema()))
	doc.AddOperation("/schemas/{name}", http.MethodGet, describe)

	validate := openapi3.NewOperation()
	validate.OperationID = "validateRecord"
	validate.Summary = "Validate a record against a schema"
	validate.AddParameter(openapi3.NewPathParameter("name").WithSchema(openapi3.NewStringSchema()))
	session := openapi3.NewQueryParameter("session_id").WithSchema(openapi3.NewStringSchema())
	session.Description = "Records the attempt under this session when present."
	validate.AddParameter(session)
	validate.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithDescription("Raw record, keyed by wire names").
			WithRequired(true).
			WithJSONSchema(openapi3.NewObjectSchema()),
	}
	validate.AddResponse(http.StatusOK, jsonResponse("Record accepted",
		openapi3.NewObjectSchema().
			WithProperty("ok", openapi3.NewBoolSchema()).
			WithProperty("record", openapi3.NewObjectSchema()).
			WithProperty("wire", openapi3.NewObjectSchema()).
			WithProperty("computed", openapi3.NewObjectSchema())))
	validate.AddResponse(http.StatusUnprocessableEntity, jsonResponse("Record rejected",
		openapi3.NewObjectSchema().
			WithProperty("ok", openapi3.NewBoolSchema()).
			WithProperty("errors", openapi3.NewArraySchema().WithItems(issueSchema()))))
	validate.AddResponse(http.StatusBadRequest, jsonResponse("Malformed request body", errorSchema()))
	validate.AddResponse(http.StatusNotFound, jsonResponse("Unknown schema", errorSchema()))
	doc.AddOperation("/schemas/{name}/validate", http.MethodPost, validate)

	sessions := openapi3.NewOperation()
	sessions.OperationID = "listSessions"
	sessions.Summary = "List sessions with recorded attempts"
	sessions.AddResponse(http.StatusOK, jsonResponse("Session IDs",
		openapi3.NewObjectSchema().
			WithProperty("sessions", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))))
	doc.AddOperation("/sessions", http.MethodGet, sessions)

	attempts := openapi3.NewOperation()
	attempts.OperationID = "listAttempts"
	attempts.Summary = "Replay the attempts of a session"
	attempts.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()))
	attempts.AddResponse(http.StatusOK, jsonResponse("Recorded attempts, oldest first",
		openapi3.NewArraySchema().WithItems(attemptSchema())))
	attempts.AddResponse(http.StatusNotFound, jsonResponse("Unknown session", errorSchema()))
	doc.AddOperation("/sessions/{id}/attempts", http.MethodGet, attempts)

	clearHistory := openapi3.NewOperation()
	clearHistory.OperationID = "clearAttempts"
	clearHistory.Summary = "Clear the attempts of a session"
	clearHistory.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()))
	clearHistory.AddResponse(http.StatusNoContent, openapi3.NewResponse().WithDescription("History cleared"))
	doc.AddOperation("/sessions/{id}/attempts", http.MethodDelete, clearHistory)

	return doc
}

func jsonResponse(desc string, s *openapi3.Schema) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(desc).WithJSONSchema(s)
}

func errorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().WithProperty("error", openapi3.NewStringSchema())
}

func issueSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("path", openapi3.NewStringSchema()).
		WithProperty("code", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewSchema())
	s.Required = []string{"path", "code", "message"}
	return s
}

func attemptSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema().WithFormat("uuid")).
		WithProperty("schema", openapi3.NewStringSchema()).
		WithProperty("raw", openapi3.NewObjectSchema()).
		WithProperty("ok", openapi3.NewBoolSchema()).
		WithProperty("issues", openapi3.NewArraySchema().WithItems(issueSchema())).
		WithProperty("created_at", openapi3.NewStringSchema().WithFormat("date-time"))
}
