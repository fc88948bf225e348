package session

import "strings"

const (
	// Suffix is appended to a server name to form its session name.
	Suffix = ".mcserver"

	// BaseCommand is the terminal multiplexer binary.
	BaseCommand = "zellij"

	// SessionNameEnv is set by the multiplexer inside every session.
	SessionNameEnv = "ZELLIJ_SESSION_NAME"
)

// SessionName returns the multiplexer session name for server.
func SessionName(server string) string {
	return server + Suffix
}

// ServerName recovers the server name from a session name by stripping
// exactly one Suffix. It returns false for sessions not managed by mcserver.
func ServerName(session string) (string, bool) {
	return strings.CutSuffix(session, Suffix)
}
