package driven

import "context"

// EmbeddingService maps text to fixed-size vectors. Dimensions must equal
// the vector collection size, 384 for the sales_docs collection.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	Dimensions() int
	ModelName() string
	Close() error
}
