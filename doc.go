/*
Package sift is a schema validation engine for loosely-typed records: form
submissions, decoded JSON, CLI answers, LLM tool arguments.

It implements a "declare once, host anywhere" architecture, separating the
schema definitions (Specs) from the validation engine (pkg/schema) and the
hosting surfaces (HTTP, MCP, CLI).

# Concept

Sift treats a record as a map of raw wire values. A compiled schema coerces
each value to its declared kind, fills defaults, enforces constraints and
cross-field rules, derives computed fields, and reports every problem as a
structured issue with a path and a machine-readable code. The engine never
panics on input; definition mistakes fail at compile time instead. This
Hexagonal Architecture allows sift to be embedded in any interface: CLI,
HTTP server, or AI agent infrastructure.

# Key Features

  - Deterministic Validation: Given the same schema and record, the outcome
    and the issue order are always reproducible.
  - Hexagonal Architecture: Core logic is decoupled from adapters (HTTP, MCP,
    history storage, docs rendering).
  - Wire Aliases: Fields validate under their wire names and dump under
    either naming, so external payloads round-trip unchanged.
  - Strict Contracts: Schema definitions are compiled and rejected up front,
    preventing runtime surprises.

# Usage

Initialize the engine with a definition file (or build a catalog in code via
pkg/dsl and inject it with WithCatalog).

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/sift"
		"github.com/aretw0/sift/pkg/schema"
	)

	func main() {
		// Compile every schema in ./schemas.yaml
		eng, err := sift.New("./schemas.yaml")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		res, err := eng.Validate(ctx, "", "Product", map[string]any{
			"productId": "101",
			"itemName":  "Wireless Mouse",
		})
		if err != nil {
			for _, issue := range schema.AsIssues(err) {
				fmt.Printf("%s: %s\n", issue.Path, issue.Message)
			}
			return
		}

		// Coerced, defaulted, canonical names
		fmt.Println(res.Dump())
	}
*/
package sift
