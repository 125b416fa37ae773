// Package chunker provides a paragraph chunking processor.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"
)

// DefaultSeparator splits paragraphs on blank lines.
const DefaultSeparator = "\n\n"

// DefaultMinLength is the exclusive lower bound on a kept paragraph's length,
// counted in characters after trimming.
const DefaultMinLength = 20

// Processor splits segments into paragraphs and drops the short ones.
// It implements the PostProcessor interface.
type Processor struct {
	separator string
	minLength int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithSeparator sets the paragraph separator.
func WithSeparator(sep string) Option {
	return func(p *Processor) {
		if sep != "" {
			p.separator = sep
		}
	}
}

// WithMinLength sets the minimum paragraph length.
func WithMinLength(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minLength = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		separator: DefaultSeparator,
		minLength: DefaultMinLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits every segment on the separator. Windows line endings are
// folded to \n first. Paragraphs keep their order.
func (p *Processor) Process(_ context.Context, segments []string) ([]string, error) {
	var chunks []string

	for _, segment := range segments {
		segment = strings.ReplaceAll(segment, "\r\n", "\n")
		for _, para := range strings.Split(segment, p.separator) {
			para = strings.TrimSpace(para)
			if utf8.RuneCountInString(para) > p.minLength {
				chunks = append(chunks, para)
			}
		}
	}

	return chunks, nil
}
