// Package memory provides an in-memory conversation log.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of driven.ConversationStore.
type ConversationStore struct {
	mu       sync.RWMutex
	nextID   int64
	sessions map[string][]domain.ConversationTurn
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		sessions: make(map[string][]domain.ConversationTurn),
	}
}

// Append stores one turn stamped with the current UTC time.
func (s *ConversationStore) Append(_ context.Context, sessionID string, role domain.Role, text string) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.sessions[sessionID] = append(s.sessions[sessionID], domain.ConversationTurn{
		ID:        s.nextID,
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// List returns a copy of the session's turns in insertion order.
func (s *ConversationStore) List(_ context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	result := make([]domain.ConversationTurn, len(turns))
	copy(result, turns)
	return result, nil
}

// Close is a no-op.
func (s *ConversationStore) Close() error {
	return nil
}
