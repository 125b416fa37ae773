// Package mcp provides an MCP (Model Context Protocol) server adapter for VoxRAG.
// It lets AI assistants ask questions against the ingested sales documents
// and read session history.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
