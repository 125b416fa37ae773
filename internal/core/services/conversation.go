package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
)

// Ensure ConversationService implements the interface.
var _ driving.ConversationService = (*ConversationService)(nil)

// ConversationService reads and exports conversation logs.
type ConversationService struct {
	store     driven.ConversationStore
	outputDir string
}

// NewConversationService creates a new conversation service.
// Exports are written to outputDir, or the temp directory when empty.
func NewConversationService(store driven.ConversationStore, outputDir string) *ConversationService {
	return &ConversationService{store: store, outputDir: outputDir}
}

// History returns the turns of a session in insertion order.
func (s *ConversationService) History(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	turns, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return turns, nil
}

// Export writes one "role: text" line per entry into a new file.
func (s *ConversationService) Export(_ context.Context, lines []domain.TranscriptLine) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.CreateTemp(s.outputDir, "transcript-*.txt")
	if err != nil {
		return "", fmt.Errorf("create transcript: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatTranscript(lines)); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return f.Name(), nil
}

// FormatTranscript renders lines as "role: text\n" each.
func FormatTranscript(lines []domain.TranscriptLine) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s: %s\n", l.Role, l.Text)
	}
	return b.String()
}
