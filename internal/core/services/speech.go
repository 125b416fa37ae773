package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// Ensure SpeechService implements the interface.
var _ driving.SpeechService = (*SpeechService)(nil)

// SpeechService fronts the configured transcriber and synthesizer.
type SpeechService struct {
	transcriber driven.Transcriber
	synthesizer driven.Synthesizer
	outputDir   string
}

// NewSpeechService creates a speech service writing audio into outputDir.
// An empty outputDir uses the system temp directory.
func NewSpeechService(transcriber driven.Transcriber, synthesizer driven.Synthesizer, outputDir string) *SpeechService {
	return &SpeechService{
		transcriber: transcriber,
		synthesizer: synthesizer,
		outputDir:   outputDir,
	}
}

// Transcribe converts audio into text.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = domain.MediaTypeWAV
	}
	text, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return "", fmt.Errorf("%s transcribe: %w", s.transcriber.Name(), err)
	}
	return text, nil
}

// Synthesize renders text with the configured voice.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (*domain.Audio, error) {
	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%s synthesize: %w", s.synthesizer.Name(), err)
	}
	return audio, nil
}

// SynthesizeToFile renders text into a new file in the output directory.
func (s *SpeechService) SynthesizeToFile(ctx context.Context, text string) (string, string, error) {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", "", err
	}

	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", "", fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.CreateTemp(s.outputDir, "tts-*"+audio.Extension())
	if err != nil {
		return "", "", fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(audio.Data); err != nil {
		return "", "", fmt.Errorf("write audio file: %w", err)
	}

	logger.Debug("Synthesized %d bytes to %s", len(audio.Data), f.Name())
	return f.Name(), audio.MediaType, nil
}

// Chunks yields r in blocks of size bytes. The last block may be shorter.
// size <= 0 selects domain.DefaultAudioChunkSize. A read error is yielded
// once and ends the sequence.
func Chunks(r io.Reader, size int) iter.Seq2[[]byte, error] {
	if size <= 0 {
		size = domain.DefaultAudioChunkSize
	}
	return func(yield func([]byte, error) bool) {
		buf := make([]byte, size)
		for {
			n, err := io.ReadFull(r, buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}
