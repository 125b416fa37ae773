package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService replaces the vector collection with the chunks of one file.
type IngestService struct {
	registry  driven.NormaliserRegistry
	pipeline  driven.PostProcessorPipeline
	embedding driven.EmbeddingService
	vectors   driven.VectorStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embedding driven.EmbeddingService,
	vectors driven.VectorStore,
) *IngestService {
	return &IngestService{
		registry:  registry,
		pipeline:  pipeline,
		embedding: embedding,
		vectors:   vectors,
	}
}

// Ingest recreates the collection, then chunks, embeds and upserts the file.
// A failed recreate is logged and ingestion continues against whatever
// collection exists. Zero chunks return domain.ErrNoValidContent.
func (s *IngestService) Ingest(ctx context.Context, path, ext string) (int, error) {
	logger.Section("Ingest")
	if ext == "" {
		ext = filepath.Ext(path)
	}
	logger.Debug("Path: %s (%s)", path, ext)

	if err := s.vectors.Recreate(ctx); err != nil {
		logger.Warn("recreate collection: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read file: %w", err)
	}

	texts, err := s.chunk(ctx, ext, content)
	if err != nil {
		return 0, err
	}
	if len(texts) == 0 {
		return 0, domain.ErrNoValidContent
	}
	logger.Debug("Chunks: %d", len(texts))

	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(texts))
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Text:   text,
		}
	}

	if err := s.vectors.Upsert(ctx, chunks); err != nil {
		return 0, fmt.Errorf("upsert chunks: %w", err)
	}

	logger.Info("Ingested %d chunks from %s", len(chunks), filepath.Base(path))
	return len(chunks), nil
}

// chunk selects a normaliser by extension. Pre-segmented results are used
// as-is; plain text goes through the paragraph pipeline.
func (s *IngestService) chunk(ctx context.Context, ext string, content []byte) ([]string, error) {
	normaliser := s.registry.Get(strings.ToLower(ext))
	if normaliser == nil {
		return nil, fmt.Errorf("%w: no parser for %q", domain.ErrInvalidInput, ext)
	}

	result, err := normaliser.Normalise(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if result.Segments != nil {
		return result.Segments, nil
	}

	texts, err := s.pipeline.Process(ctx, result.Text)
	if err != nil {
		return nil, fmt.Errorf("split document: %w", err)
	}
	return texts, nil
}
