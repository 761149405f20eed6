package session

import (
	"context"
	"strings"
)

// Role identifies the author of a stored turn. Values mirror the transcript
// roles the completion backend expects.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Turn is one persisted entry in a caller's conversation history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Store persists per-caller conversation history keyed by the caller's
// network origin.
type Store interface {
	// Get returns the stored history for key, or an empty slice when no
	// live session exists.
	Get(ctx context.Context, key string) ([]Turn, error)
	// Put replaces the stored history for key and refreshes its lifetime.
	Put(ctx context.Context, key string, turns []Turn) error
	// Evict removes the history for key.
	Evict(ctx context.Context, key string) error
	// Close releases any resources held by the backend.
	Close() error
}

// Sweeper is implemented by stores that can evict expired sessions in bulk.
// The serve loop runs it periodically as a janitor.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Trim truncates the history to the most recent max turns. A non-positive
// max leaves the history untouched.
func Trim(turns []Turn, max int) []Turn {
	if max <= 0 || len(turns) <= max {
		return turns
	}
	return turns[len(turns)-max:]
}

func normalizeKey(key string) string {
	return strings.TrimSpace(key)
}
