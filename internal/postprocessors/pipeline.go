// Package postprocessors turns normalised document text into chunks.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/logger"
)

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline feeds segments through its processors in order.
type Pipeline struct {
	stages []driven.PostProcessor
}

// NewPipeline returns a pipeline running stages in the given order.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process starts from text as a single segment. It stops early once a
// stage leaves nothing to pass on, and checks ctx between stages.
func (p *Pipeline) Process(ctx context.Context, text string) ([]string, error) {
	segments := []string{text}

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := stage.Process(ctx, segments)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", stage.Name(), err)
		}
		logger.Debug("postprocess %s: %d -> %d segments", stage.Name(), len(segments), len(out))

		segments = out
		if len(segments) == 0 {
			break
		}
	}

	return segments, nil
}

// Add appends a stage.
func (p *Pipeline) Add(stage driven.PostProcessor) {
	p.stages = append(p.stages, stage)
}

// Len reports the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}
