package driving

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// IngestService indexes documents into the vector collection.
type IngestService interface {
	// Ingest replaces the collection with the chunks of the file at path.
	// ext is the declared extension and selects the parser; empty falls back
	// to the extension of path. Returns the chunk count.
	Ingest(ctx context.Context, path, ext string) (int, error)
}

// RetrieverService finds chunks relevant to a query.
type RetrieverService interface {
	// Retrieve returns the texts of the topK nearest chunks.
	// topK <= 0 selects the default of 3.
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

// AnswerService answers questions grounded in the collection.
type AnswerService interface {
	// Answer retrieves context and asks the LLM. The session is not used
	// for retrieval or prompting. LLM failures yield an apology string.
	Answer(ctx context.Context, text, sessionID string) (string, error)

	// Ask answers and then logs the user and agent turns in that order.
	Ask(ctx context.Context, sessionID, text string) (string, error)
}

// ConversationService exposes the conversation log.
type ConversationService interface {
	// History returns all turns of a session in insertion order.
	History(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error)

	// Export writes a plain-text transcript to a new server-local file
	// and returns its path.
	Export(ctx context.Context, lines []domain.TranscriptLine) (string, error)
}
