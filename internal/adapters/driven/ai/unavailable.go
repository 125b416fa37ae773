package ai

import (
	"context"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

var (
	_ driven.EmbeddingService = (*unavailableEmbedding)(nil)
	_ driven.LLMService       = (*unavailableLLM)(nil)
	_ driven.Transcriber      = (*unavailableTranscriber)(nil)
	_ driven.Synthesizer      = (*unavailableSynthesizer)(nil)
)

type unavailableEmbedding struct {
	err  error
	dims int
}

func (u *unavailableEmbedding) Embed(context.Context, string) ([]float32, error) {
	return nil, u.err
}

func (u *unavailableEmbedding) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, u.err
}

func (u *unavailableEmbedding) Dimensions() int   { return u.dims }
func (u *unavailableEmbedding) ModelName() string { return "unavailable" }
func (u *unavailableEmbedding) Close() error      { return nil }

type unavailableLLM struct {
	err error
}

func (u *unavailableLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return "", u.err
}

func (u *unavailableLLM) ModelName() string { return "unavailable" }
func (u *unavailableLLM) Close() error      { return nil }

type unavailableTranscriber struct {
	name string
	err  error
}

func (u *unavailableTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "", u.err
}

func (u *unavailableTranscriber) Name() string { return u.name }

type unavailableSynthesizer struct {
	name string
	err  error
}

func (u *unavailableSynthesizer) Synthesize(context.Context, string) (*domain.Audio, error) {
	return nil, u.err
}

func (u *unavailableSynthesizer) Name() string { return u.name }
