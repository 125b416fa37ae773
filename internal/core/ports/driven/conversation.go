package driven

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// ConversationStore is the append-only conversation log.
type ConversationStore interface {
	// Append stores one turn with the current UTC time.
	Append(ctx context.Context, sessionID string, role domain.Role, text string) error

	// List returns every turn of a session in insertion order.
	// An unknown session yields an empty slice.
	List(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error)

	// Close releases resources.
	Close() error
}
