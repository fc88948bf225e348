package api

// SessionState represents where a server's multiplexer session is in its lifecycle.
type SessionState string

const (
	// StateUnknown means no session is listed and the server has never been used.
	StateUnknown SessionState = "unknown"
	// StateRunning means a session is listed and its process is alive.
	StateRunning SessionState = "running"
	// StateExited means the session is still listed but its process has terminated.
	StateExited SessionState = "exited"
	// StateGone means no session is listed but the server has been used before.
	StateGone SessionState = "gone"
)

// IsAlive reports whether the state counts as an active session.
func (s SessionState) IsAlive() bool {
	return s == StateRunning
}

// Server represents one server directory for listing and tagging purposes.
// It is created per listing and never persisted.
type Server struct {
	Name  string       `json:"name" yaml:"name"`
	Tags  []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	State SessionState `json:"state,omitempty" yaml:"state,omitempty"`
}

// AddTag appends a display tag to the server.
func (s *Server) AddTag(tag string) {
	s.Tags = append(s.Tags, tag)
}

// ServerNames extracts the names of the given servers, preserving order.
func ServerNames(servers []Server) []string {
	names := make([]string, len(servers))
	for i, s := range servers {
		names[i] = s.Name
	}
	return names
}

// SessionInfo is one entry of the multiplexer's session listing.
type SessionInfo struct {
	Name   string
	Exited bool
}
