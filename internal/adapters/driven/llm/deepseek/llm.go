// Package deepseek configures the OpenAI-compatible adapter for DeepSeek.
package deepseek

import (
	"net/http"
	"time"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/llm/openai"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.deepseek.com"
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = 0.7
)

// Config holds configuration for the DeepSeek LLM service.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewLLMService creates a DeepSeek chat service.
func NewLLMService(cfg Config) (*openai.LLMService, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return openai.NewLLMService(openai.LLMConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: DefaultTemperature,
		Timeout:     cfg.Timeout,
		HTTPClient:  cfg.HTTPClient,
		Name:        "deepseek",
	})
}
