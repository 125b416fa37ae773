// Package docx extracts paragraph text from Word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

const documentPart = "word/document.xml"

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser reads the main document part of a .docx archive.
type Normaliser struct{}

// New returns a docx normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions implements driven.Normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".docx"}
}

// Normalise returns one blank-line separated block per non-empty Word
// paragraph, table cells included. An archive without a document part
// yields empty text.
func (n *Normaliser) Normalise(_ context.Context, content []byte) (*driven.NormaliseResult, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open docx: %w", domain.ErrInvalidInput, err)
	}

	part, err := archive.Open(documentPart)
	if err != nil {
		return &driven.NormaliseResult{}, nil
	}
	defer part.Close()

	paras, err := paragraphs(part)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidInput, documentPart, err)
	}
	return &driven.NormaliseResult{Text: strings.Join(paras, "\n\n")}, nil
}

// paragraphs walks the WordprocessingML token stream. Text inside <w:t>
// is collected per <w:p>; <w:tab/> and <w:br/> become whitespace.
func paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    []string
		cur    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(cur.String()); s != "" {
					out = append(out, s)
				}
				cur.Reset()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
}
