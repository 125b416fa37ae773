// Package driving declares what the HTTP API, the CLI, the chat TUI and the
// MCP server may ask of the core: ingest a document, retrieve chunks,
// answer within a session, read or export a conversation, and convert
// between speech and text. internal/core/services implements every port.
package driving
