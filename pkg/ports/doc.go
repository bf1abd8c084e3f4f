/*
Package ports defines the driven ports (interfaces) of docrender.

These interfaces decouple rendering from the places documents are kept, allowing
the CLI, the HTTP API and the MCP server to work with various storage backends.

# Key Interfaces

  - DocumentStore: persists and loads document Records (Memory, Redis, Loam).
  - DistributedLocker: serializes writes to one document across processes (Redis).

RunDocumentStoreContract is the shared test suite every DocumentStore adapter runs.
*/
package ports
