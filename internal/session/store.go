package session

import (
	"context"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role" db:"role"`
	Content string `json:"content" db:"content"`
}

// Roles for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// HistoryStore maps a session ID to its ordered conversation history.
// Sessions are independent; implementations must be safe for concurrent
// use across sessions.
type HistoryStore interface {
	// Get returns the session's turns in order. A session that was never
	// written returns an empty history, not an error.
	Get(ctx context.Context, sessionID string) ([]Turn, error)

	// Put replaces the session's history with the given turns.
	Put(ctx context.Context, sessionID string, turns []Turn) error

	// Delete removes the session's history entirely.
	Delete(ctx context.Context, sessionID string) error
}
