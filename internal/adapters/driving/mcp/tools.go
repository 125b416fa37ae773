package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	SessionID string `json:"session_id" jsonschema:"conversation session the turns are logged under"`
	Text      string `json:"text" jsonschema:"the question to answer from the ingested documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"text to find similar chunks for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of chunks to return (default 3)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []string `json:"chunks"`
	Count  int      `json:"count"`
}

// HistoryInput is the input schema for the history tool.
type HistoryInput struct {
	SessionID string `json:"session_id" jsonschema:"conversation session to read"`
}

// HistoryOutput is the output schema for the history tool.
type HistoryOutput struct {
	Turns []TurnOutput `json:"turns"`
}

// TurnOutput is a single logged utterance.
type TurnOutput struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the ingested sales documents",
	}, s.handleAsk)

	if s.ports.Retriever != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "retrieve",
			Description: "Return the document chunks most similar to a query",
		}, s.handleRetrieve)
	}

	if s.ports.Conversations != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "history",
			Description: "List the logged turns of a conversation session",
		}, s.handleHistory)
	}
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, AskOutput{}, domain.ErrNoInput
	}

	answer, err := s.ports.Answers.Ask(ctx, input.SessionID, input.Text)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	chunks, err := s.ports.Retriever.Retrieve(ctx, input.Query, topK)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}
	if chunks == nil {
		chunks = []string{}
	}
	return nil, RetrieveOutput{Chunks: chunks, Count: len(chunks)}, nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	turns, err := s.ports.Conversations.History(ctx, input.SessionID)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	return nil, HistoryOutput{Turns: toTurnOutputs(turns)}, nil
}

func toTurnOutputs(turns []domain.ConversationTurn) []TurnOutput {
	out := make([]TurnOutput, len(turns))
	for i, t := range turns {
		out[i] = TurnOutput{Role: t.Role.String(), Text: t.Text, Time: t.Timestamp}
	}
	return out
}
