package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// NoRelevantInfoMessage is returned when retrieval finds nothing.
const NoRelevantInfoMessage = "Sorry, I could not find relevant information."

// AnswerService is the RAG orchestrator: retrieve, then respond.
type AnswerService struct {
	retriever driving.RetrieverService
	responder *Responder
	log       driven.ConversationStore
	topK      int
}

// NewAnswerService creates a new answer service.
func NewAnswerService(
	retriever driving.RetrieverService,
	responder *Responder,
	log driven.ConversationStore,
) *AnswerService {
	return &AnswerService{
		retriever: retriever,
		responder: responder,
		log:       log,
		topK:      domain.DefaultTopK,
	}
}

// SetTopK overrides the number of chunks placed in the prompt.
func (s *AnswerService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// Answer retrieves context for text and asks the LLM.
// An empty retrieval short-circuits without calling the LLM.
func (s *AnswerService) Answer(ctx context.Context, text, sessionID string) (string, error) {
	logger.Debug("Answer session=%s", sessionID)

	docs, err := s.retriever.Retrieve(ctx, text, s.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}
	if len(docs) == 0 {
		return NoRelevantInfoMessage, nil
	}

	return s.responder.Respond(ctx, text, docs), nil
}

// Ask answers text and appends the user and agent turns to the log.
func (s *AnswerService) Ask(ctx context.Context, sessionID, text string) (string, error) {
	answer, err := s.Answer(ctx, text, sessionID)
	if err != nil {
		return "", err
	}

	if err := s.log.Append(ctx, sessionID, domain.RoleUser, text); err != nil {
		return "", fmt.Errorf("log user turn: %w", err)
	}
	if err := s.log.Append(ctx, sessionID, domain.RoleAgent, answer); err != nil {
		return "", fmt.Errorf("log agent turn: %w", err)
	}

	return answer, nil
}
