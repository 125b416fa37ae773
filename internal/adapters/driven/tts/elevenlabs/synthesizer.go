// Package elevenlabs provides a text-to-speech adapter using the ElevenLabs API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Synthesizer implements the interface.
var _ driven.Synthesizer = (*Synthesizer)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	DefaultModel   = "eleven_multilingual_v2"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the ElevenLabs synthesizer.
type Config struct {
	// APIKey is the ElevenLabs API key (required).
	APIKey string

	// VoiceID selects the voice (default: Rachel).
	VoiceID string

	// Model is the synthesis model (default: eleven_multilingual_v2).
	Model string

	// BaseURL is the API base URL (default: https://api.elevenlabs.io).
	BaseURL string

	// Timeout is the request timeout (default: 60s). Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client
}

// Synthesizer renders MP3 speech through ElevenLabs.
type Synthesizer struct {
	client   *http.Client
	endpoint string
	apiKey   string
	model    string
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// NewSynthesizer creates a new ElevenLabs synthesizer.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("elevenlabs %w", domain.ErrMissingAPIKey)
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Synthesizer{
		client:   cfg.HTTPClient,
		endpoint: cfg.BaseURL + "/v1/text-to-speech/" + url.PathEscape(cfg.VoiceID),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
	}, nil
}

// Synthesize returns MPEG audio for text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*domain.Audio, error) {
	jsonBody, err := json.Marshal(synthesizeRequest{Text: text, ModelID: s.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", domain.MediaTypeMPEG)
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("elevenlabs: empty audio response")
	}

	return &domain.Audio{Data: body, MediaType: domain.MediaTypeMPEG}, nil
}

// Name returns the vendor name.
func (s *Synthesizer) Name() string {
	return "elevenlabs"
}
