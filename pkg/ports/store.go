package ports

import (
	"context"

	"github.com/aretw0/varion/pkg/script"
)

// SessionStore persists playback session state, enabling stop-and-resume
// across processes. Implementations must return script.ErrSessionNotFound
// for unknown session ids.
type SessionStore interface {
	// Save persists the state for a given session id.
	Save(ctx context.Context, sessionID string, state *script.State) error

	// Load retrieves the state for a given session id.
	Load(ctx context.Context, sessionID string) (*script.State, error)

	// Delete removes the state for a given session id.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of all active sessions.
	List(ctx context.Context) ([]string, error)
}
