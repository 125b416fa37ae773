// Package ffmpeg converts uploaded audio by shelling out to the ffmpeg binary.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.AudioConverter = (*Converter)(nil)

// DefaultBinary is looked up on PATH.
const DefaultBinary = "ffmpeg"

// Converter runs ffmpeg once per conversion.
type Converter struct {
	binary string
}

// NewConverter creates a converter. An empty binary selects ffmpeg on PATH.
func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Converter{binary: binary}
}

// ToWAV converts audio to WAV. Input and output go through temp files
// so containers that need seeking (WebM, MP4) convert reliably.
func (c *Converter) ToWAV(ctx context.Context, audio []byte, mediaType string) ([]byte, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio", domain.ErrConversionFailed)
	}

	dir, err := os.MkdirTemp("", "voxrag-ffmpeg-*")
	if err != nil {
		return nil, fmt.Errorf("%w: temp dir: %w", domain.ErrConversionFailed, err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input"+domain.Audio{MediaType: mediaType}.Extension())
	out := filepath.Join(dir, "output.wav")

	if err := os.WriteFile(in, audio, 0600); err != nil {
		return nil, fmt.Errorf("%w: write input: %w", domain.ErrConversionFailed, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, Args(in, out)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%w: %w", domain.ErrConversionFailed, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConversionFailed, msg, err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %w", domain.ErrConversionFailed, err)
	}
	return data, nil
}

// Args returns the ffmpeg arguments for a conversion from in to out.
func Args(in, out string) []string {
	return []string{"-hide_banner", "-loglevel", "error", "-y", "-i", in, out}
}
