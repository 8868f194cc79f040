package client

import "strings"

// MCPServer is one entry in a client's server map.
type MCPServer struct {
	// Name is the map key. Not serialized.
	Name string `json:"-"`

	// Type is the transport some clients record, e.g. "stdio" or "sse".
	Type string `json:"type,omitempty"`

	// Command is the executable for locally spawned servers.
	Command string `json:"command,omitempty"`

	// Args are passed to Command.
	Args []string `json:"args,omitempty"`

	// Env is added to the spawned process environment.
	Env map[string]string `json:"env,omitempty"`

	// URL is set by clients that connect to remote servers directly.
	URL string `json:"url,omitempty"`

	// Headers accompany URL-based entries.
	Headers map[string]string `json:"headers,omitempty"`
}

// Summary renders the entry as a single line for listings.
func (s *MCPServer) Summary() string {
	if s.URL != "" {
		if s.Type != "" {
			return s.URL + " (" + s.Type + ")"
		}
		return s.URL
	}
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}
