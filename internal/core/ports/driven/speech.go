package driven

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// Transcriber converts recorded speech into text.
// Exactly one vendor backs it per process.
type Transcriber interface {
	// Transcribe returns the transcript of audio encoded as mimeType.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)

	// Name returns the vendor name for logging.
	Name() string
}

// Synthesizer converts text into speech.
type Synthesizer interface {
	// Synthesize returns the encoded audio for text.
	Synthesize(ctx context.Context, text string) (*domain.Audio, error)

	// Name returns the vendor name for logging.
	Name() string
}

// AudioConverter converts between audio containers.
type AudioConverter interface {
	// ToWAV converts audio of the given media type into 16-bit PCM WAV.
	ToWAV(ctx context.Context, audio []byte, mediaType string) ([]byte, error)
}
