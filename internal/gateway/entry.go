package gateway

import (
	"path/filepath"
	"strings"

	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

const gatewayName = "mcp-remote"

// Entry is a gateway server entry read back from a client config.
type Entry struct {
	Package string
	URL     string
	Headers []string

	// Flag is the --transport value, empty when absent.
	Flag string
}

// Kind returns the transport pinned by the --transport flag. Values that
// let the gateway fall back between transports pin nothing.
func (e Entry) Kind() transport.Kind {
	switch e.Flag {
	case "http-only":
		return transport.KindHTTP
	case "sse-only":
		return transport.KindSSE
	default:
		return transport.KindUnknown
	}
}

// KnownFlag reports whether Flag is a value the gateway accepts.
func (e Entry) KnownFlag() bool {
	switch e.Flag {
	case "http-only", "sse-only", "http-first", "sse-first":
		return true
	}
	return false
}

// ParseEntry recognizes an npx mcp-remote entry such as the ones Build
// writes. It reports false for anything else.
func ParseEntry(s *client.MCPServer) (Entry, bool) {
	if s == nil || launcherName(s.Command) != launcher {
		return Entry{}, false
	}

	var (
		e    Entry
		rest []string
	)
	for i, a := range s.Args {
		if strings.HasPrefix(a, "-") {
			continue
		}
		e.Package = a
		rest = s.Args[i+1:]
		break
	}
	if packageName(e.Package) != gatewayName || len(rest) == 0 || !IsURL(rest[0]) {
		return Entry{}, false
	}
	e.URL = rest[0]

	for i := 1; i < len(rest); i++ {
		switch a := rest[i]; {
		case a == "--transport" && i+1 < len(rest):
			i++
			e.Flag = rest[i]
		case strings.HasPrefix(a, "--transport="):
			e.Flag = strings.TrimPrefix(a, "--transport=")
		case a == "--header" && i+1 < len(rest):
			i++
			e.Headers = append(e.Headers, rest[i])
		}
	}
	return e, true
}

func launcherName(command string) string {
	base := strings.ToLower(filepath.Base(command))
	return strings.TrimSuffix(base, ".cmd")
}

// packageName strips the version from an npm package spec.
func packageName(spec string) string {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i]
	}
	return spec
}
