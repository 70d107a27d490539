/*
Package ports defines the driven ports (interfaces) for the sift engine.

These interfaces decouple the hosts (HTTP, MCP, CLI) from concrete
implementations, allowing schema catalogs and attempt history to be backed by
memory, Redis, or anything else honoring the contracts.

# Key Interfaces

  - Catalog: Read access to a set of compiled schemas by name.
  - HistoryStore: Responsible for persisting validation Attempts per session.
*/
package ports
