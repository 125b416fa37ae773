package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// Ensure VoiceService implements the interface.
var _ driving.VoiceService = (*VoiceService)(nil)

// VoiceService chains conversion, transcription, answering and synthesis.
type VoiceService struct {
	converter driven.AudioConverter
	speech    *SpeechService
	answers   driving.AnswerService
}

// NewVoiceService creates a new voice pipeline.
func NewVoiceService(converter driven.AudioConverter, speech *SpeechService, answers driving.AnswerService) *VoiceService {
	return &VoiceService{converter: converter, speech: speech, answers: answers}
}

// AskVoice answers a spoken question and synthesises the reply to disk.
// Both turns are logged before synthesis starts.
func (s *VoiceService) AskVoice(
	ctx context.Context, sessionID string, audio []byte, mediaType string,
) (*domain.VoiceReply, error) {
	logger.Section("Ask Voice")

	if mediaType == "" {
		mediaType = domain.MediaTypeWebM
	}

	wav, err := s.converter.ToWAV(ctx, audio, mediaType)
	if err != nil {
		if errors.Is(err, domain.ErrConversionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrConversionFailed, err)
	}

	userText, err := s.speech.Transcribe(ctx, wav, domain.MediaTypeWAV)
	if err != nil {
		return nil, err
	}
	logger.Debug("Transcript: %q", userText)
	if strings.TrimSpace(userText) == "" {
		return nil, fmt.Errorf("%w: empty transcript", domain.ErrNoInput)
	}

	respText, err := s.answers.Ask(ctx, sessionID, userText)
	if err != nil {
		return nil, err
	}

	path, media, err := s.speech.SynthesizeToFile(ctx, respText)
	if err != nil {
		return nil, err
	}

	return &domain.VoiceReply{
		UserText:  userText,
		RespText:  respText,
		AudioPath: path,
		MediaType: media,
	}, nil
}
