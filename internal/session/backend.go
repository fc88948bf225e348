package session

import (
	"context"

	"mcserver/internal/api"
)

// CarriageReturn is the key code sent after injected text to submit it.
const CarriageReturn = 13

// Process is a spawned session whose client is attached to this terminal.
type Process interface {
	// Wait blocks until the session client exits.
	Wait() error
}

// Backend is the narrow interface to the terminal multiplexer.
type Backend interface {
	// List returns every session the multiplexer knows about, including
	// exited ones. No sessions is an empty list, not an error.
	List(ctx context.Context) ([]api.SessionInfo, error)
	// Attach connects the caller's terminal to an existing session.
	Attach(ctx context.Context, session string) error
	// Spawn starts a new session attached to the caller's terminal.
	Spawn(ctx context.Context, session string) (Process, error)
	// Delete removes a session record, including exited sessions.
	Delete(ctx context.Context, session string) error
	// WriteChars types text into the session's focused pane.
	WriteChars(ctx context.Context, session, text string) error
	// WriteKey sends a single raw key code to the session's focused pane.
	WriteKey(ctx context.Context, session string, code byte) error
	// Kill terminates a running session.
	Kill(ctx context.Context, session string) error
}
