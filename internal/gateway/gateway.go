// Package gateway turns an install target into the server entry written to
// a client config.
//
// Remote servers are reached through a local stdio gateway launched with
// npx (mcp-remote by default), which needs to be told the transport the
// server speaks. Package targets are launched with npx directly, and
// targets containing whitespace are taken as a complete command line.
package gateway

import (
	"net"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

// DefaultPackage is the npm package providing the stdio gateway.
const DefaultPackage = "mcp-remote@latest"

const launcher = "npx"

// Options describe the server entry to build.
type Options struct {
	// Target is a URL, an npm package, or a full command line.
	Target string
	// Name overrides the derived server name.
	Name string
	// Kind is the remote transport. Required for URL targets.
	Kind transport.Kind
	// Package is the gateway package; empty means DefaultPackage.
	Package string
	// Headers are forwarded by the gateway to the remote server.
	Headers map[string]string
	// Env is set on the spawned process.
	Env map[string]string
	// Args are appended for package and command targets.
	Args []string
}

// IsURL reports whether target is an http or https URL with a host.
func IsURL(target string) bool {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// TransportFlag returns the gateway's --transport value for kind.
func TransportFlag(kind transport.Kind) (string, error) {
	switch kind {
	case transport.KindHTTP:
		return "http-only", nil
	case transport.KindSSE:
		return "sse-only", nil
	default:
		return "", errors.ErrUnresolvedTransport
	}
}

// Build returns the client entry for opts.
func Build(opts Options) (*client.MCPServer, error) {
	target := strings.TrimSpace(opts.Target)
	if target == "" {
		return nil, errors.New("install target is required")
	}

	name := opts.Name
	if name == "" {
		name = ServerName(target)
	}

	s := &client.MCPServer{Name: name, Env: copyMap(opts.Env)}

	switch {
	case IsURL(target):
		flag, err := TransportFlag(opts.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "building gateway for %s", target)
		}
		pkg := opts.Package
		if pkg == "" {
			pkg = DefaultPackage
		}
		s.Command = launcher
		s.Args = []string{"-y", pkg, target, "--transport", flag}
		for _, k := range sortedKeys(opts.Headers) {
			s.Args = append(s.Args, "--header", k+": "+opts.Headers[k])
		}

	case strings.ContainsAny(target, " \t"):
		fields := strings.Fields(target)
		s.Command = fields[0]
		s.Args = append(fields[1:], opts.Args...)

	default:
		s.Command = launcher
		s.Args = append([]string{"-y", target}, opts.Args...)
	}

	return s, nil
}

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	genericLabels    = map[string]bool{"www": true, "mcp": true, "api": true, "sse": true}
	genericSegments  = map[string]bool{"mcp": true, "sse": true, "v1": true, "api": true}
)

// ServerName derives a config key from target.
//
// For URLs it is the domain label left of the public suffix, so
// https://api.supermemory.ai/mcp becomes "supermemory". Local hosts use
// the first meaningful path segment instead, falling back to "local".
// For packages the scope, version and common server prefixes are dropped:
// @modelcontextprotocol/server-github@1.0 becomes "github".
func ServerName(target string) string {
	target = strings.TrimSpace(target)

	if IsURL(target) {
		u, _ := url.Parse(target)
		return sanitize(nameFromURL(u), "mcp-server")
	}

	if fields := strings.Fields(target); len(fields) > 1 {
		// Command line: name after the first argument that is not a flag.
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				return ServerName(f)
			}
		}
		return sanitize(fields[0], "mcp-server")
	}

	return sanitize(nameFromPackage(target), "mcp-server")
}

func nameFromURL(u *url.URL) string {
	host := strings.ToLower(u.Hostname())

	if host == "localhost" || net.ParseIP(host) != nil {
		for _, seg := range strings.Split(u.Path, "/") {
			if seg != "" && !genericSegments[strings.ToLower(seg)] {
				return seg
			}
		}
		return "local"
	}

	labels := strings.Split(host, ".")
	if len(labels) > 1 {
		// Drop the public suffix.
		labels = labels[:len(labels)-1]
	}
	for len(labels) > 1 && genericLabels[labels[0]] {
		labels = labels[1:]
	}
	return labels[len(labels)-1]
}

func nameFromPackage(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		if _, rest, ok := strings.Cut(pkg, "/"); ok {
			pkg = rest
		}
	}
	if i := strings.LastIndex(pkg, "@"); i > 0 {
		pkg = pkg[:i]
	}
	// Local paths and file targets keep only the base name.
	if i := strings.LastIndexAny(pkg, `/\`); i >= 0 {
		pkg = pkg[i+1:]
	}

	for _, prefix := range []string{"mcp-server-", "server-", "mcp-"} {
		if trimmed := strings.TrimPrefix(pkg, prefix); trimmed != pkg && trimmed != "" {
			pkg = trimmed
			break
		}
	}
	for _, suffix := range []string{"-mcp-server", "-mcp"} {
		if trimmed := strings.TrimSuffix(pkg, suffix); trimmed != pkg && trimmed != "" {
			pkg = trimmed
			break
		}
	}
	return pkg
}

func sanitize(name, fallback string) string {
	name = invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return fallback
	}
	return name
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
