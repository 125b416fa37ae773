package domain

import "time"

// Role identifies who produced a conversation turn.
type Role string

// Available roles.
const (
	// RoleUser is the person asking.
	RoleUser Role = "user"

	// RoleAgent is the generated answer.
	RoleAgent Role = "agent"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAgent
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ConversationTurn is one appended utterance in a session log.
// Turns are append-only and ordered by ID.
type ConversationTurn struct {
	// ID is the auto-incremented row identifier.
	ID int64

	// SessionID is the caller-supplied session key. Never validated.
	SessionID string

	// Role is user or agent.
	Role Role

	// Text is the utterance.
	Text string

	// Timestamp is the UTC creation time.
	Timestamp time.Time
}

// TranscriptLine is a single exported line. Role is free-form here
// because exports come straight from clients.
type TranscriptLine struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// VoiceReply is the result of a spoken question.
type VoiceReply struct {
	// UserText is the transcript of the question.
	UserText string

	// RespText is the answer text.
	RespText string

	// AudioPath is the synthesised answer on disk.
	AudioPath string

	// MediaType is the container of the file at AudioPath.
	MediaType string
}
