package driven

import "context"

// LLMService answers one prompt. Calls are independent; the caller embeds
// any context in the prompt itself.
type LLMService interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	ModelName() string
	Close() error
}

// GenerateOptions tunes a single call. Zero fields keep the provider default.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}
