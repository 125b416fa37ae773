// Package tui provides an interactive terminal chat over the answer service.
// It is a driving adapter like the HTTP and MCP surfaces.
package tui

import (
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
)

// Ports aggregates the driving ports the chat needs.
type Ports struct {
	// Answers runs the RAG pipeline and logs both turns.
	Answers driving.AnswerService

	// Conversations loads earlier turns of the session. Optional.
	Conversations driving.ConversationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answers == nil {
		return ErrMissingAnswerService
	}
	return nil
}
