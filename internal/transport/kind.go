package transport

import (
	"strings"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// Kind is the transport a remote MCP server was found to speak.
type Kind string

// Detection outcomes.
const (
	// KindHTTP is the streamable HTTP transport.
	KindHTTP Kind = "http"
	// KindSSE is the legacy HTTP+SSE transport.
	KindSSE Kind = "sse"
	// KindUnknown means detection was inconclusive.
	KindUnknown Kind = "unknown"
)

func (k Kind) String() string { return string(k) }

// Definite reports whether k names a concrete transport.
func (k Kind) Definite() bool {
	return k == KindHTTP || k == KindSSE
}

// Describe returns a human-readable transport name.
func (k Kind) Describe() string {
	switch k {
	case KindHTTP:
		return "streamable HTTP"
	case KindSSE:
		return "HTTP+SSE (legacy)"
	default:
		return "unknown"
	}
}

// ParseKind parses a definite transport name. "streamable-http" is accepted
// as an alias for http.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "http", "streamable-http", "streamable_http":
		return KindHTTP, nil
	case "sse":
		return KindSSE, nil
	default:
		return KindUnknown, errors.Newf("invalid transport %q: must be http or sse", s)
	}
}
