// Package jsonrecords extracts the text field of every record in a JSON array.
package jsonrecords

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultField is the record key holding chunk text.
const DefaultField = "text"

// Normaliser handles JSON arrays of records.
type Normaliser struct {
	field string
}

// New creates a new JSON records normaliser reading the "text" field.
func New() *Normaliser {
	return &Normaliser{field: DefaultField}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".json"}
}

// Normalise decodes a top-level array. Each element that is an object with a
// string value at the text field contributes one segment, verbatim.
// Other elements are skipped.
func (n *Normaliser) Normalise(_ context.Context, content []byte) (*driven.NormaliseResult, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("%w: decode json array: %w", domain.ErrInvalidInput, err)
	}

	segments := make([]string, 0, len(records))
	for _, raw := range records {
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			continue
		}
		if text, ok := record[n.field].(string); ok {
			segments = append(segments, text)
		}
	}

	return &driven.NormaliseResult{Segments: segments}, nil
}
