package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://api.supermemory.ai/mcp", true},
		{"http://localhost:3000/sse", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"https://", false},
		{"example.com/mcp", false},
		{"@modelcontextprotocol/server-github", false},
		{"mcp-server-fetch", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsURL(tt.in), "IsURL(%q)", tt.in)
	}
}

func TestServerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://api.supermemory.ai/mcp", "supermemory"},
		{"https://mcp.linear.app/sse", "linear"},
		{"https://www.example.com", "example"},
		{"https://docs.mcp.cloudflare.com/mcp", "cloudflare"},
		{"https://myhost:8443/mcp", "myhost"},
		{"http://localhost:3000/mcp", "local"},
		{"http://localhost:3000/github/mcp", "github"},
		{"http://127.0.0.1:8080/v1/Weather_API/sse", "weather_api"},
		{"@modelcontextprotocol/server-github", "github"},
		{"@modelcontextprotocol/server-filesystem@0.6.2", "filesystem"},
		{"mcp-server-fetch", "fetch"},
		{"figma-developer-mcp", "figma-developer"},
		{"mcp-", "mcp"},
		{"uvx mcp-server-time --local-timezone UTC", "time"},
		{"node ./build/index.js", "index-js"},
		{"docker --rm", "docker"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerName(tt.in))
		})
	}
}

func TestTransportFlag(t *testing.T) {
	got, err := TransportFlag(transport.KindHTTP)
	require.NoError(t, err)
	assert.Equal(t, "http-only", got)

	got, err = TransportFlag(transport.KindSSE)
	require.NoError(t, err)
	assert.Equal(t, "sse-only", got)

	_, err = TransportFlag(transport.KindUnknown)
	assert.True(t, errors.Is(err, errors.ErrUnresolvedTransport))
}

func TestBuild_URL(t *testing.T) {
	s, err := Build(Options{
		Target: "https://api.supermemory.ai/mcp",
		Kind:   transport.KindSSE,
		Headers: map[string]string{
			"x-sm-project":  "default",
			"Authorization": "Bearer abc",
		},
		Env: map[string]string{"NODE_OPTIONS": "--no-warnings"},
	})
	require.NoError(t, err)

	assert.Equal(t, "supermemory", s.Name)
	assert.Equal(t, "npx", s.Command)
	assert.Equal(t, []string{
		"-y", "mcp-remote@latest", "https://api.supermemory.ai/mcp",
		"--transport", "sse-only",
		"--header", "Authorization: Bearer abc",
		"--header", "x-sm-project: default",
	}, s.Args)
	assert.Equal(t, map[string]string{"NODE_OPTIONS": "--no-warnings"}, s.Env)
}

func TestBuild_URLCustomPackageAndName(t *testing.T) {
	s, err := Build(Options{
		Target:  "https://mcp.linear.app/mcp",
		Name:    "work-linear",
		Kind:    transport.KindHTTP,
		Package: "mcp-remote@0.1.18",
	})
	require.NoError(t, err)

	assert.Equal(t, "work-linear", s.Name)
	assert.Equal(t, []string{"-y", "mcp-remote@0.1.18", "https://mcp.linear.app/mcp", "--transport", "http-only"}, s.Args)
	assert.Nil(t, s.Env)
}

func TestBuild_URLUnresolved(t *testing.T) {
	_, err := Build(Options{Target: "https://example.com/mcp", Kind: transport.KindUnknown})
	assert.True(t, errors.Is(err, errors.ErrUnresolvedTransport))

	_, err = Build(Options{Target: "https://example.com/mcp"})
	assert.True(t, errors.Is(err, errors.ErrUnresolvedTransport))
}

func TestBuild_Package(t *testing.T) {
	s, err := Build(Options{
		Target: "@modelcontextprotocol/server-filesystem",
		Args:   []string{"/tmp", "/home"},
	})
	require.NoError(t, err)

	assert.Equal(t, "filesystem", s.Name)
	assert.Equal(t, "npx", s.Command)
	assert.Equal(t, []string{"-y", "@modelcontextprotocol/server-filesystem", "/tmp", "/home"}, s.Args)
}

func TestBuild_CommandLine(t *testing.T) {
	s, err := Build(Options{Target: "uvx mcp-server-time --local-timezone UTC", Args: []string{"--verbose"}})
	require.NoError(t, err)

	assert.Equal(t, "time", s.Name)
	assert.Equal(t, "uvx", s.Command)
	assert.Equal(t, []string{"mcp-server-time", "--local-timezone", "UTC", "--verbose"}, s.Args)
}

func TestBuild_EmptyTarget(t *testing.T) {
	_, err := Build(Options{Target: "  "})
	assert.Error(t, err)
}

func TestBuild_EnvCopied(t *testing.T) {
	env := map[string]string{"A": "1"}
	s, err := Build(Options{Target: "pkg", Env: env})
	require.NoError(t, err)

	env["A"] = "2"
	assert.Equal(t, "1", s.Env["A"])
}
