package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoInput indicates a question carried neither audio nor text.
	ErrNoInput = errors.New("no input")

	// ErrNoValidContent indicates a document produced zero qualifying chunks.
	ErrNoValidContent = errors.New("no valid content found")

	// ErrDimensionMismatch indicates a vector does not match the collection dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// Provider Errors.

	// ErrUnsupportedProvider indicates a provider name outside the supported set.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrMissingAPIKey indicates a provider was selected without its credential.
	ErrMissingAPIKey = errors.New("API key not set")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not reachable or configured.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrTranscriberUnavailable indicates speech-to-text is not configured.
	ErrTranscriberUnavailable = errors.New("speech-to-text unavailable")

	// ErrSynthesizerUnavailable indicates text-to-speech is not configured.
	ErrSynthesizerUnavailable = errors.New("text-to-speech unavailable")

	// Audio Errors.

	// ErrConversionFailed indicates audio could not be converted between containers.
	ErrConversionFailed = errors.New("audio conversion failed")

	// ErrEmptyTranscript indicates the speech-to-text provider returned no transcript.
	ErrEmptyTranscript = errors.New("empty transcript")
)
