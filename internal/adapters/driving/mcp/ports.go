package mcp

import (
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
type Ports struct {
	// Answers runs the RAG pipeline and logs both turns.
	Answers driving.AnswerService

	// Retriever returns raw context chunks. Optional.
	Retriever driving.RetrieverService

	// Conversations reads session logs. Optional.
	Conversations driving.ConversationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answers == nil {
		return ErrMissingAnswerService
	}
	return nil
}
