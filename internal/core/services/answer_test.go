package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

func newTestAnswer(hits []domain.SearchHit, llm *mockLLMService, log *mockConversationStore) *AnswerService {
	retriever := NewRetrieverService(&mockEmbeddingService{embedding: []float32{1}}, &mockVectorStore{hits: hits})
	return NewAnswerService(retriever, NewResponder(llm, nil), log)
}

func TestAnswerService_Answer(t *testing.T) {
	llm := &mockLLMService{response: "Plan A costs $10."}
	svc := newTestAnswer([]domain.SearchHit{{Text: "Plan A is $10."}}, llm, &mockConversationStore{})

	answer, err := svc.Answer(context.Background(), "price?", "s1")

	require.NoError(t, err)
	assert.Equal(t, "Plan A costs $10.", answer)
	assert.Len(t, llm.prompts, 1)
}

func TestAnswerService_Answer_NoHitsSkipsLLM(t *testing.T) {
	llm := &mockLLMService{response: "unused"}
	svc := newTestAnswer(nil, llm, &mockConversationStore{})

	answer, err := svc.Answer(context.Background(), "price?", "s1")

	require.NoError(t, err)
	assert.Equal(t, NoRelevantInfoMessage, answer)
	assert.Empty(t, llm.prompts)
}

func TestAnswerService_Answer_LLMFailure(t *testing.T) {
	llm := &mockLLMService{generateErr: errors.New("timeout")}
	svc := newTestAnswer([]domain.SearchHit{{Text: "ctx"}}, llm, &mockConversationStore{})

	answer, err := svc.Answer(context.Background(), "q", "s1")

	require.NoError(t, err)
	assert.Equal(t, LLMErrorMessage, answer)
}

func TestAnswerService_Answer_RetrievalError(t *testing.T) {
	retriever := NewRetrieverService(&mockEmbeddingService{embedErr: errors.New("down")}, &mockVectorStore{})
	svc := NewAnswerService(retriever, NewResponder(&mockLLMService{}, nil), &mockConversationStore{})

	_, err := svc.Answer(context.Background(), "q", "s1")

	assert.Error(t, err)
}

func TestAnswerService_SetTopK(t *testing.T) {
	vs := &mockVectorStore{hits: []domain.SearchHit{{Text: "a"}, {Text: "b"}}}
	retriever := NewRetrieverService(&mockEmbeddingService{embedding: []float32{1}}, vs)
	svc := NewAnswerService(retriever, NewResponder(&mockLLMService{response: "ok"}, nil), &mockConversationStore{})

	svc.SetTopK(0)
	_, _ = svc.Answer(context.Background(), "q", "s")
	assert.Equal(t, domain.DefaultTopK, vs.lastK)

	svc.SetTopK(5)
	_, _ = svc.Answer(context.Background(), "q", "s")
	assert.Equal(t, 5, vs.lastK)
}

func TestAnswerService_Ask_LogsTurnsInOrder(t *testing.T) {
	log := &mockConversationStore{}
	svc := newTestAnswer([]domain.SearchHit{{Text: "ctx"}}, &mockLLMService{response: "the answer"}, log)

	answer, err := svc.Ask(context.Background(), "s1", "the question")

	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)

	turns, err := log.List(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "the question", turns[0].Text)
	assert.Equal(t, domain.RoleAgent, turns[1].Role)
	assert.Equal(t, "the answer", turns[1].Text)
}

func TestAnswerService_Ask_LogsFallbackAnswers(t *testing.T) {
	log := &mockConversationStore{}
	svc := newTestAnswer(nil, &mockLLMService{}, log)

	answer, err := svc.Ask(context.Background(), "s1", "q")

	require.NoError(t, err)
	assert.Equal(t, NoRelevantInfoMessage, answer)
	require.Len(t, log.turns, 2)
	assert.Equal(t, NoRelevantInfoMessage, log.turns[1].Text)
}

func TestAnswerService_Ask_AppendError(t *testing.T) {
	log := &mockConversationStore{appendErr: errors.New("disk full")}
	svc := newTestAnswer([]domain.SearchHit{{Text: "ctx"}}, &mockLLMService{response: "a"}, log)

	_, err := svc.Ask(context.Background(), "s1", "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "log user turn")
}
