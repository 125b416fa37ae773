// Package vector selects the chunk store backend.
package vector

import (
	"context"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/vector/pgvector"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/vector/qdrant"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// NewStore creates the vector store selected by settings.
func NewStore(ctx context.Context, settings domain.VectorSettings) (driven.VectorStore, error) {
	dims := settings.Dimensions
	if dims <= 0 {
		dims = domain.DefaultDimensions
	}

	switch settings.Backend {
	case domain.VectorBackendQdrant, "":
		cfg, err := qdrant.ParseURL(settings.URL)
		if err != nil {
			return nil, err
		}
		cfg.APIKey = settings.APIKey
		cfg.Collection = settings.Collection
		cfg.Dimensions = dims
		return qdrant.NewStore(cfg)

	case domain.VectorBackendPgvector:
		return pgvector.NewStore(ctx, pgvector.Config{
			DSN:        settings.URL,
			Collection: settings.Collection,
			Dimensions: dims,
		})

	case domain.VectorBackendMemory:
		return memory.NewStore(dims), nil

	default:
		return nil, fmt.Errorf("%w: vector backend %q", domain.ErrUnsupportedProvider, settings.Backend)
	}
}
