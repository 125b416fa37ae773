package mcp

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer    string
	err       error
	sessionID string
	text      string
}

func (m *mockAnswerService) Answer(_ context.Context, text, _ string) (string, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) Ask(_ context.Context, sessionID, text string) (string, error) {
	m.sessionID = sessionID
	m.text = text
	return m.answer, m.err
}

// mockRetrieverService is a mock implementation of driving.RetrieverService.
type mockRetrieverService struct {
	chunks []string
	err    error
	topK   int
}

func (m *mockRetrieverService) Retrieve(_ context.Context, _ string, topK int) ([]string, error) {
	m.topK = topK
	return m.chunks, m.err
}

// mockConversationService is a mock implementation of driving.ConversationService.
type mockConversationService struct {
	turns []domain.ConversationTurn
	err   error
	asked string
}

func (m *mockConversationService) History(_ context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	m.asked = sessionID
	return m.turns, m.err
}

func (m *mockConversationService) Export(_ context.Context, _ []domain.TranscriptLine) (string, error) {
	return "", m.err
}
