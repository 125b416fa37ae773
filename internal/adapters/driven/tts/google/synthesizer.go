// Package google provides a text-to-speech adapter using Google Cloud
// Text-to-Speech.
package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"
	htransport "google.golang.org/api/transport/http"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Synthesizer implements the interface.
var _ driven.Synthesizer = (*Synthesizer)(nil)

// Default voice configuration.
const (
	DefaultLanguageCode = "en-IN"
	DefaultVoiceName    = "en-IN-Wavenet-D"

	DefaultTimeout = 60 * time.Second

	// audioEncoding is 16-bit PCM with a WAV header.
	audioEncoding = "LINEAR16"
)

// Config holds configuration for the Google synthesizer.
type Config struct {
	// CredentialsFile is the service account JSON path.
	// Required unless Options supplies credentials.
	CredentialsFile string

	// LanguageCode selects the voice locale (default: en-IN).
	LanguageCode string

	// VoiceName selects the voice (default: en-IN-Wavenet-D).
	VoiceName string

	// Options are extra client options, appended after the credentials.
	Options []option.ClientOption

	// HTTPClient carries outbound requests. Credentials are layered over its
	// transport. Nil uses the library default client.
	HTTPClient *http.Client
}

// Synthesizer renders speech through texttospeech.v1.
type Synthesizer struct {
	svc          *texttospeech.Service
	languageCode string
	voiceName    string
}

// NewSynthesizer creates a Google Text-to-Speech client.
func NewSynthesizer(ctx context.Context, cfg Config) (*Synthesizer, error) {
	if cfg.CredentialsFile == "" && len(cfg.Options) == 0 {
		return nil, fmt.Errorf("google tts credentials: %w", domain.ErrMissingAPIKey)
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = DefaultLanguageCode
	}
	if cfg.VoiceName == "" {
		cfg.VoiceName = DefaultVoiceName
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, cfg.Options...)

	if cfg.HTTPClient != nil {
		client, err := authorizedClient(ctx, cfg.HTTPClient, opts)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(client))
	}

	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google tts client: %w", err)
	}

	return &Synthesizer{
		svc:          svc,
		languageCode: cfg.LanguageCode,
		voiceName:    cfg.VoiceName,
	}, nil
}

// Synthesize returns LINEAR16 audio, which Google wraps in a WAV header.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*domain.Audio, error) {
	resp, err := s.svc.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: s.languageCode,
			Name:         s.voiceName,
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: audioEncoding},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}

	return &domain.Audio{Data: data, MediaType: domain.MediaTypeWAV}, nil
}

// Name returns the vendor name.
func (s *Synthesizer) Name() string {
	return "google"
}

// authorizedClient wraps base's transport with the credentials in opts.
func authorizedClient(ctx context.Context, base *http.Client, opts []option.ClientOption) (*http.Client, error) {
	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	authed, err := htransport.NewTransport(ctx, rt, opts...)
	if err != nil {
		return nil, fmt.Errorf("google tts transport: %w", err)
	}
	return &http.Client{Transport: authed, Timeout: base.Timeout}, nil
}
