// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	ollamaembed "github.com/custodia-labs/voxrag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/voxrag/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/httpclient"
	anthropicllm "github.com/custodia-labs/voxrag/internal/adapters/driven/llm/anthropic"
	deepseekllm "github.com/custodia-labs/voxrag/internal/adapters/driven/llm/deepseek"
	geminillm "github.com/custodia-labs/voxrag/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/voxrag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/voxrag/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/stt/deepgram"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/stt/whisper"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/tts/elevenlabs"
	googletts "github.com/custodia-labs/voxrag/internal/adapters/driven/tts/google"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// InitResult contains the result of AI service initialisation.
// Services that failed to construct are replaced by stand-ins that
// return the construction error on every call.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Transcriber      driven.Transcriber
	Synthesizer      driven.Synthesizer
	Warnings         []string // Construction failures, one per stand-in.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Factory builds provider adapters that share one outbound rate limiter.
type Factory struct {
	limiter *rate.Limiter
}

// NewFactory creates a factory. A nil limiter disables rate limiting.
func NewFactory(limiter *rate.Limiter) *Factory {
	return &Factory{limiter: limiter}
}

// Init builds every AI service from settings. It never fails: each
// service that cannot be built is logged and replaced by a stand-in.
func (f *Factory) Init(ctx context.Context, settings domain.Settings) *InitResult {
	result := &InitResult{}

	warn := func(kind string, err error) {
		msg := fmt.Sprintf("%s unavailable: %v", kind, err)
		result.Warnings = append(result.Warnings, msg)
		logger.Warn("%s", msg)
	}

	dims := settings.Vector.Dimensions
	if dims <= 0 {
		dims = domain.DefaultDimensions
	}

	embedding, err := f.CreateEmbeddingService(settings.Embedding, dims)
	if err != nil {
		warn("embedding", err)
		embedding = &unavailableEmbedding{err: fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err), dims: dims}
	}
	result.EmbeddingService = embedding

	llm, err := f.CreateLLMService(settings.LLM)
	if err != nil {
		warn("llm", err)
		llm = &unavailableLLM{err: fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)}
	}
	result.LLMService = llm

	transcriber, err := f.CreateTranscriber(settings.STT)
	if err != nil {
		warn("stt", err)
		transcriber = &unavailableTranscriber{
			name: settings.STT.Provider.String(),
			err:  fmt.Errorf("%w: %w", domain.ErrTranscriberUnavailable, err),
		}
	}
	result.Transcriber = transcriber

	synthesizer, err := f.CreateSynthesizer(ctx, settings.TTS)
	if err != nil {
		warn("tts", err)
		synthesizer = &unavailableSynthesizer{
			name: settings.TTS.Provider.String(),
			err:  fmt.Errorf("%w: %w", domain.ErrSynthesizerUnavailable, err),
		}
	}
	result.Synthesizer = synthesizer

	return result
}

// CreateEmbeddingService creates the embedding service selected by settings.
func (f *Factory) CreateEmbeddingService(settings domain.EmbeddingSettings, dims int) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.EmbeddingProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dims,
			HTTPClient: f.client(ollamaembed.DefaultTimeout),
		})

	case domain.EmbeddingProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			Model:      settings.Model,
			BaseURL:    settings.BaseURL,
			Dimensions: dims,
			HTTPClient: f.client(openaiembed.DefaultTimeout),
		})

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateLLMService creates the LLM service selected by settings.
func (f *Factory) CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.LLMProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(openaillm.DefaultTimeout),
		})

	case domain.LLMProviderDeepSeek:
		return deepseekllm.NewLLMService(deepseekllm.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(openaillm.DefaultTimeout),
		})

	case domain.LLMProviderGemini:
		return geminillm.NewLLMService(geminillm.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(geminillm.DefaultTimeout),
		})

	case domain.LLMProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(anthropicllm.DefaultTimeout),
		})

	case domain.LLMProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(ollamallm.DefaultLLMTimeout),
		})

	default:
		return nil, fmt.Errorf("%w: llm provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateTranscriber creates the speech-to-text service selected by settings.
func (f *Factory) CreateTranscriber(settings domain.STTSettings) (driven.Transcriber, error) {
	switch settings.Provider {
	case domain.STTProviderDeepgram:
		return deepgram.NewTranscriber(deepgram.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(deepgram.DefaultTimeout),
		})

	case domain.STTProviderWhisper:
		return whisper.NewTranscriber(whisper.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			HTTPClient: f.client(whisper.DefaultTimeout),
		})

	default:
		return nil, fmt.Errorf("%w: stt provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateSynthesizer creates the text-to-speech service selected by settings.
func (f *Factory) CreateSynthesizer(ctx context.Context, settings domain.TTSSettings) (driven.Synthesizer, error) {
	switch settings.Provider {
	case domain.TTSProviderGoogle:
		var opts []option.ClientOption
		if settings.BaseURL != "" {
			opts = append(opts, option.WithEndpoint(settings.BaseURL))
		}
		return googletts.NewSynthesizer(ctx, googletts.Config{
			CredentialsFile: settings.CredentialsFile,
			LanguageCode:    settings.LanguageCode,
			VoiceName:       settings.VoiceName,
			Options:         opts,
			HTTPClient:      f.client(googletts.DefaultTimeout),
		})

	case domain.TTSProviderElevenLabs:
		return elevenlabs.NewSynthesizer(elevenlabs.Config{
			APIKey:     settings.APIKey,
			VoiceID:    settings.VoiceID,
			BaseURL:    settings.BaseURL,
			HTTPClient: f.client(elevenlabs.DefaultTimeout),
		})

	default:
		return nil, fmt.Errorf("%w: tts provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

func (f *Factory) client(timeout time.Duration) *http.Client {
	return httpclient.New(timeout, f.limiter)
}
