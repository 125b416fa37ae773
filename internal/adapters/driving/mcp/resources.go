package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	historyPrefix = "voxrag://sessions/"
	historySuffix = "/history"
	jsonMIME      = "application/json"
)

func (s *Server) registerResources() {
	if s.ports.Conversations == nil {
		return
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: historyPrefix + "{sessionId}" + historySuffix,
		Name:        "session-history",
		Description: "Logged turns of a conversation session, oldest first",
		MIMEType:    jsonMIME,
	}, s.handleHistoryResource)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	sessionID := extractSessionID(uri)
	if sessionID == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	turns, err := s.ports.Conversations.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	data, err := json.MarshalIndent(toTurnOutputs(turns), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: jsonMIME, Text: string(data)}},
	}, nil
}

// extractSessionID returns the unescaped session of a history URI, or ""
// when uri does not name exactly one session.
func extractSessionID(uri string) string {
	rest, ok := strings.CutPrefix(uri, historyPrefix)
	if !ok {
		return ""
	}
	raw, ok := strings.CutSuffix(rest, historySuffix)
	if !ok || raw == "" || strings.Contains(raw, "/") {
		return ""
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return id
}
