// Package storage selects the conversation log backend.
package storage

import (
	"context"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// NewConversationStore opens the conversation log selected by settings.
func NewConversationStore(ctx context.Context, settings domain.ConversationSettings) (driven.ConversationStore, error) {
	switch settings.Backend {
	case domain.StorageBackendSQLite, "":
		return sqlite.NewStore(settings.DSN)

	case domain.StorageBackendPostgres:
		return postgres.NewStore(ctx, settings.DSN)

	case domain.StorageBackendMemory:
		return memory.NewConversationStore(), nil

	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedProvider, settings.Backend)
	}
}
