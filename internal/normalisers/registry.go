package normalisers

import (
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/normalisers/docx"
	"github.com/custodia-labs/voxrag/internal/normalisers/jsonrecords"
	"github.com/custodia-labs/voxrag/internal/normalisers/pdf"
	"github.com/custodia-labs/voxrag/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExt    map[string]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates a registry with the given fallback.
func NewRegistry(fallback driven.Normaliser) *Registry {
	return &Registry{
		byExt:    make(map[string]driven.Normaliser),
		fallback: fallback,
	}
}

// NewDefaultRegistry registers every built-in normaliser.
func NewDefaultRegistry() *Registry {
	text := plaintext.New()
	r := NewRegistry(text)
	r.Register(text)
	r.Register(jsonrecords.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}

// Register adds n under each of its extensions. Later registrations win.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// Get returns the normaliser for ext, falling back to plain text.
// Matching is case-insensitive and tolerates a missing leading dot.
func (r *Registry) Get(ext string) driven.Normaliser {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if n, ok := r.byExt[ext]; ok {
		return n
	}
	return r.fallback
}
