// Package app wires driven adapters into core services.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/ai"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/audio/ffmpeg"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/storage"
	"github.com/custodia-labs/voxrag/internal/adapters/driven/vector"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/services"
	"github.com/custodia-labs/voxrag/internal/logger"
	"github.com/custodia-labs/voxrag/internal/normalisers"
	"github.com/custodia-labs/voxrag/internal/postprocessors"
	"github.com/custodia-labs/voxrag/internal/postprocessors/chunker"
)

// Ports holds the driven adapters services are built on.
type Ports struct {
	Embedding     driven.EmbeddingService
	Vectors       driven.VectorStore
	LLM           driven.LLMService
	Transcriber   driven.Transcriber
	Synthesizer   driven.Synthesizer
	Converter     driven.AudioConverter
	Conversations driven.ConversationStore
	Prompts       driven.PromptStore
}

// App is one fully wired VoxRAG process.
type App struct {
	Settings domain.Settings

	Ingest        *services.IngestService
	Retriever     *services.RetrieverService
	Answers       *services.AnswerService
	Speech        *services.SpeechService
	Voice         *services.VoiceService
	Conversations *services.ConversationService

	// Warnings lists adapters replaced by unavailable stand-ins.
	Warnings []string

	ports Ports
}

// New builds every adapter from settings. Provider failures are
// downgraded to stand-ins; only the conversation log is fatal.
func New(ctx context.Context, settings domain.Settings) (*App, error) {
	logger.Section("Startup")

	conversations, err := storage.NewConversationStore(ctx, settings.Conversation)
	if err != nil {
		return nil, fmt.Errorf("open conversation log: %w", err)
	}

	prompts, err := file.NewPromptStore(settings.Server.PromptDir)
	if err != nil {
		conversations.Close()
		return nil, fmt.Errorf("prompt store: %w", err)
	}

	factory := ai.NewFactory(httpclient.NewLimiter(settings.UpstreamRPS))
	providers := factory.Init(ctx, settings)
	warnings := providers.Warnings

	vectors, err := vector.NewStore(ctx, settings.Vector)
	if err != nil {
		msg := fmt.Sprintf("vector store unavailable: %v", err)
		logger.Warn("%s", msg)
		warnings = append(warnings, msg)
		vectors = vector.NewUnavailable(err, settings.Vector.Dimensions)
	}

	a := Build(settings, Ports{
		Embedding:     providers.EmbeddingService,
		Vectors:       vectors,
		LLM:           providers.LLMService,
		Transcriber:   providers.Transcriber,
		Synthesizer:   providers.Synthesizer,
		Converter:     ffmpeg.NewConverter(""),
		Conversations: conversations,
		Prompts:       prompts,
	})
	a.Warnings = warnings

	logger.Info("llm=%s stt=%s tts=%s vectors=%s log=%s",
		settings.LLM.Provider, settings.STT.Provider, settings.TTS.Provider,
		settings.Vector.Backend, settings.Conversation.Backend)
	return a, nil
}

// Build assembles services from already constructed ports.
func Build(settings domain.Settings, ports Ports) *App {
	outputDir := settings.Server.OutputDir

	retriever := services.NewRetrieverService(ports.Embedding, ports.Vectors)
	responder := services.NewResponder(ports.LLM, ports.Prompts)
	answers := services.NewAnswerService(retriever, responder, ports.Conversations)
	speech := services.NewSpeechService(ports.Transcriber, ports.Synthesizer, outputDir)

	return &App{
		Settings: settings,
		Ingest: services.NewIngestService(
			normalisers.NewDefaultRegistry(),
			postprocessors.NewPipeline(chunker.New()),
			ports.Embedding,
			ports.Vectors,
		),
		Retriever:     retriever,
		Answers:       answers,
		Speech:        speech,
		Voice:         services.NewVoiceService(ports.Converter, speech, answers),
		Conversations: services.NewConversationService(ports.Conversations, ExportDir(settings.Server)),
		ports:         ports,
	}
}

// Close releases every adapter that holds resources.
func (a *App) Close() error {
	var errs []error
	if a.ports.Embedding != nil {
		errs = append(errs, a.ports.Embedding.Close())
	}
	if a.ports.LLM != nil {
		errs = append(errs, a.ports.LLM.Close())
	}
	if a.ports.Vectors != nil {
		errs = append(errs, a.ports.Vectors.Close())
	}
	if a.ports.Conversations != nil {
		errs = append(errs, a.ports.Conversations.Close())
	}
	return errors.Join(errs...)
}

// ExportDir is where transcripts are written. A directory that resolves to
// the served output directory falls back to the temp directory.
func ExportDir(s domain.ServerSettings) string {
	if s.ExportDir == "" || sameDir(s.ExportDir, s.OutputDir) {
		return ""
	}
	return s.ExportDir
}

func sameDir(a, b string) bool {
	if b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
