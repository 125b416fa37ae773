package driven

import "context"

// Normaliser extracts text from one document format.
// Each normaliser handles a set of file extensions (e.g., .pdf, .docx).
type Normaliser interface {
	// SupportedExtensions returns the lower-case extensions, dot included.
	SupportedExtensions() []string

	// Normalise extracts text from the raw file content.
	Normalise(ctx context.Context, content []byte) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Formats with natural record boundaries fill Segments and skip chunking.
// All others fill Text and leave splitting to the PostProcessor pipeline.
type NormaliseResult struct {
	// Text is the extracted document text.
	Text string

	// Segments are pre-split records, used verbatim as chunks.
	Segments []string
}

// NormaliserRegistry selects a normaliser by file extension.
type NormaliserRegistry interface {
	// Get returns the normaliser for ext, falling back to plain text.
	Get(ext string) Normaliser
}
