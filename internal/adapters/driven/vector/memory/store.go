// Package memory provides an in-process vector store for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store holds chunks in memory and ranks them by cosine similarity.
type Store struct {
	mu         sync.RWMutex
	dimensions int
	chunks     map[string]domain.Chunk
	order      []string
}

// NewStore creates an empty store. dimensions <= 0 selects 384.
func NewStore(dimensions int) *Store {
	if dimensions <= 0 {
		dimensions = domain.DefaultDimensions
	}
	return &Store{
		dimensions: dimensions,
		chunks:     make(map[string]domain.Chunk),
	}
}

// Recreate empties the store.
func (s *Store) Recreate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[string]domain.Chunk)
	s.order = nil
	return nil
}

// Upsert validates every vector before writing any of them.
func (s *Store) Upsert(_ context.Context, chunks []domain.Chunk) error {
	for _, c := range chunks {
		if len(c.Vector) != s.dimensions {
			return fmt.Errorf("%w: chunk %s has %d values, want %d",
				domain.ErrDimensionMismatch, c.ID, len(c.Vector), s.dimensions)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if _, ok := s.chunks[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		c.Vector = append([]float32(nil), c.Vector...)
		s.chunks[c.ID] = c
	}
	return nil
}

// Search ranks all chunks by cosine similarity. Ties keep insertion order.
func (s *Store) Search(_ context.Context, query []float32, k int) ([]domain.SearchHit, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("%w: query has %d values, want %d",
			domain.ErrDimensionMismatch, len(query), s.dimensions)
	}
	if k <= 0 {
		return []domain.SearchHit{}, nil
	}

	s.mu.RLock()
	hits := make([]domain.SearchHit, 0, len(s.order))
	for _, id := range s.order {
		c := s.chunks[id]
		hits = append(hits, domain.SearchHit{ID: c.ID, Text: c.Text, Score: cosine(query, c.Vector)})
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Dimensions returns the vector size.
func (s *Store) Dimensions() int {
	return s.dimensions
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// cosine returns 0 when either vector has zero magnitude.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
