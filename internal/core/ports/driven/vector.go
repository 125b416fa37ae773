package driven

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// VectorStore holds the single chunk collection and answers similarity queries.
// The collection name, dimension and cosine metric are fixed per store.
type VectorStore interface {
	// Recreate drops the collection if present and creates it empty.
	Recreate(ctx context.Context) error

	// Upsert writes chunks in one batch. Every vector must match Dimensions.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k hits ordered by the store's similarity ranking.
	Search(ctx context.Context, query []float32, k int) ([]domain.SearchHit, error)

	// Dimensions returns the collection vector size.
	Dimensions() int

	// Close releases resources.
	Close() error
}
