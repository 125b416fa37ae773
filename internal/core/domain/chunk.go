package domain

// Collection defaults shared by every vector backend.
const (
	// DefaultCollection is the name of the single document collection.
	DefaultCollection = "sales_docs"

	// DefaultDimensions matches all-MiniLM-L6-v2.
	DefaultDimensions = 384

	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 3
)

// Chunk is an embedded text segment of an ingested document.
// Chunks are immutable once stored; a fresh ingest replaces all of them.
type Chunk struct {
	// ID is a random UUID assigned at ingestion.
	ID string

	// Vector is the embedding of Text.
	Vector []float32

	// Text is the paragraph or record text.
	Text string
}

// SearchHit is a chunk returned from similarity search.
type SearchHit struct {
	// ID is the matched chunk.
	ID string

	// Text is the stored payload text.
	Text string

	// Score is the cosine similarity reported by the store.
	Score float64
}

// Texts returns the payload text of each hit, preserving order.
func Texts(hits []SearchHit) []string {
	texts := make([]string, len(hits))
	for i := range hits {
		texts[i] = hits[i].Text
	}
	return texts
}
