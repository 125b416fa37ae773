package driving

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// SpeechService wraps the configured speech vendors.
type SpeechService interface {
	// Transcribe converts uploaded audio into text.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)

	// SynthesizeToFile renders text to speech in the output directory
	// and returns the file path and its media type.
	SynthesizeToFile(ctx context.Context, text string) (string, string, error)
}

// VoiceService runs the spoken question pipeline.
type VoiceService interface {
	// AskVoice converts, transcribes, answers, logs and synthesises.
	// Conversion failures wrap domain.ErrConversionFailed.
	AskVoice(ctx context.Context, sessionID string, audio []byte, mediaType string) (*domain.VoiceReply, error)
}
