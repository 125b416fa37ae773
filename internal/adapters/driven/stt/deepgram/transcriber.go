// Package deepgram provides a speech-to-text adapter using the Deepgram
// pre-recorded audio API.
package deepgram

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

// Ensure Transcriber implements the interface.
var _ driven.Transcriber = (*Transcriber)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.deepgram.com"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Deepgram transcriber.
type Config struct {
	// APIKey is the Deepgram API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.deepgram.com).
	BaseURL string

	// Model selects a Deepgram model. Empty uses the account default.
	Model string

	// Timeout is the request timeout (default: 60s). Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client
}

// Transcriber sends audio to Deepgram /v1/listen.
type Transcriber struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// listenResponse is the subset of the /v1/listen response we read.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// NewTranscriber creates a new Deepgram transcriber.
func NewTranscriber(cfg Config) (*Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepgram %w", domain.ErrMissingAPIKey)
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

	endpoint := cfg.BaseURL + "/v1/listen"
	if cfg.Model != "" {
		endpoint += "?" + url.Values{"model": {cfg.Model}}.Encode()
	}

	return &Transcriber{
		client:   cfg.HTTPClient,
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
	}, nil
}

// Transcribe posts the raw audio and returns the first alternative of the
// first channel.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = domain.MediaTypeWAV
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+t.apiKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram error (status %d): %s", resp.StatusCode, string(body))
	}

	var listen listenResponse
	if err := json.Unmarshal(body, &listen); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(listen.Results.Channels) == 0 || len(listen.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("deepgram: %w", domain.ErrEmptyTranscript)
	}

	return listen.Results.Channels[0].Alternatives[0].Transcript, nil
}

// Name returns the vendor name.
func (t *Transcriber) Name() string {
	return "deepgram"
}
