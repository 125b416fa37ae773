// Package plaintext passes text files through as UTF-8.
package plaintext

import (
	"bytes"
	"context"
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

var _ driven.Normaliser = (*Normaliser)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normaliser also serves as the registry fallback for unknown extensions.
type Normaliser struct{}

// New returns a plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions implements driven.Normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".md", ".text", ".csv", ".log"}
}

// Normalise drops a leading byte order mark and replaces invalid UTF-8
// with U+FFFD. Splitting is left to the chunker.
func (n *Normaliser) Normalise(_ context.Context, content []byte) (*driven.NormaliseResult, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	return &driven.NormaliseResult{Text: strings.ToValidUTF8(string(content), "�")}, nil
}
