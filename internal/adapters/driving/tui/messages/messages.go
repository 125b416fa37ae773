// Package messages defines Bubbletea message types for the chat TUI.
package messages

import (
	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// AskCompleted carries an answer back to the model.
type AskCompleted struct {
	Question string
	Answer   string
	Err      error
}

// HistoryLoaded carries the existing turns of the session.
type HistoryLoaded struct {
	Turns []domain.ConversationTurn
	Err   error
}
