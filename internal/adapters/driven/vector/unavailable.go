package vector

import (
	"context"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

var _ driven.VectorStore = (*Unavailable)(nil)

// Unavailable stands in for a store that could not be constructed.
// Every operation returns the construction error.
type Unavailable struct {
	err  error
	dims int
}

// NewUnavailable wraps cause with domain.ErrVectorStoreUnavailable.
func NewUnavailable(cause error, dims int) *Unavailable {
	return &Unavailable{err: fmt.Errorf("%w: %w", domain.ErrVectorStoreUnavailable, cause), dims: dims}
}

func (u *Unavailable) Recreate(context.Context) error { return u.err }

func (u *Unavailable) Upsert(context.Context, []domain.Chunk) error { return u.err }

func (u *Unavailable) Search(context.Context, []float32, int) ([]domain.SearchHit, error) {
	return nil, u.err
}

func (u *Unavailable) Dimensions() int { return u.dims }

func (u *Unavailable) Close() error { return nil }
