package ports

import (
	"context"
)

// SessionStore defines the interface for persisting per-session conn data.
// This is what lets stateless serverless invocations share state between
// requests of the same client.
type SessionStore interface {
	// Save persists the session data for a given session ID.
	Save(ctx context.Context, sessionID string, data map[string]any) error

	// Load retrieves the session data for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (map[string]any, error)

	// Delete removes the session data for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}
