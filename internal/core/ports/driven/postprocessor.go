package driven

import "context"

// PostProcessor transforms extracted text segments.
// PostProcessors are chained in a pipeline (e.g., paragraph splitting, filtering).
type PostProcessor interface {
	// Name returns the processor name for logging.
	Name() string

	// Process takes segments and returns the transformed segments.
	Process(ctx context.Context, segments []string) ([]string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs text through all processors in order and returns the chunks.
	Process(ctx context.Context, text string) ([]string, error)
}
