package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrieverService = (*RetrieverService)(nil)

// RetrieverService runs nearest-neighbour lookups for a query.
type RetrieverService struct {
	embedding driven.EmbeddingService
	vectors   driven.VectorStore
}

// NewRetrieverService creates a new retriever.
func NewRetrieverService(embedding driven.EmbeddingService, vectors driven.VectorStore) *RetrieverService {
	return &RetrieverService{embedding: embedding, vectors: vectors}
}

// Retrieve embeds query and returns the texts of the topK nearest chunks
// in the order the store ranked them.
func (s *RetrieverService) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectors.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Retrieved %d chunks (k=%d)", len(hits), topK)
	return domain.Texts(hits), nil
}
