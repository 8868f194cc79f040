package commands

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supermemoryai/install-mcp/internal/backup"
	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/config"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

const remoteURL = "https://mcp.example.com/mcp"

func forURL(u string) any {
	return mock.MatchedBy(func(r transport.Request) bool { return r.URL == u })
}

func TestInstall_RemoteTransport(t *testing.T) {
	tests := []struct {
		name     string
		detected transport.Kind
		stdin    string
		args     []string
		wantFlag string
	}{
		{"yes with http", transport.KindHTTP, "", []string{"--yes"}, "http-only"},
		{"yes with sse", transport.KindSSE, "", []string{"--yes"}, "sse-only"},
		{"yes with unknown assumes http", transport.KindUnknown, "", []string{"--yes"}, "http-only"},
		{"confirm detected", transport.KindSSE, "y\ny\n", nil, "sse-only"},
		{"decline detected sse", transport.KindSSE, "n\ny\n", nil, "http-only"},
		{"decline detected http", transport.KindHTTP, "n\n\n", nil, "sse-only"},
		{"unknown answered http", transport.KindUnknown, "y\ny\n", nil, "http-only"},
		{"unknown answered sse", transport.KindUnknown, "n\ny\n", nil, "sse-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.detector.EXPECT().Detect(mock.Anything, forURL(remoteURL)).Return(tt.detected).Once()

			path := filepath.Join(t.TempDir(), "mcp.json")
			args := append([]string{"install", remoteURL, "-c", "cursor", "--name", "example", "--config-path", path}, tt.args...)
			stdout, _, err := env.run(t, tt.stdin, args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "done")

			s := readServer(t, path, client.DefaultKey, "example")
			assert.Equal(t, "npx", s.Command)
			assert.Equal(t, []string{"-y", config.DefaultGatewayPackage, remoteURL, "--transport", tt.wantFlag}, s.Args)
		})
	}
}

func TestInstall_ExplicitTransportSkipsDetection(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "mcp.json")

	_, _, err := env.run(t, "", "install", remoteURL, "-c", "cursor", "--name", "example",
		"--transport", "sse", "--yes", "--config-path", path)
	require.NoError(t, err)

	s := readServer(t, path, client.DefaultKey, "example")
	assert.Contains(t, s.Args, "sse-only")
	env.detector.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
}

func TestInstall_InvalidTransport(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "", "install", remoteURL, "-c", "cursor", "--transport", "websocket", "--yes",
		"--config-path", filepath.Join(t.TempDir(), "mcp.json"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, exitCode(err))
}

func TestInstall_ProbeRequest(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		args        []string
		wantTimeout time.Duration
	}{
		{"default timeout", "", nil, config.DefaultProbeTimeout},
		{"config timeout", "probe_timeout: 3s\n", nil, 3 * time.Second},
		{"flag timeout", "probe_timeout: 3s\n", []string{"--timeout", "750ms"}, 750 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.configYAML != "" {
				env.writeConfig(t, tt.configYAML)
			}

			var got transport.Request
			env.detector.EXPECT().Detect(mock.Anything, mock.Anything).
				Run(func(_ context.Context, req transport.Request) { got = req }).
				Return(transport.KindHTTP).Once()

			path := filepath.Join(t.TempDir(), "mcp.json")
			args := append([]string{"install", remoteURL, "-c", "cursor", "--name", "example", "--yes",
				"--config-path", path, "-H", "Authorization: Bearer secret"}, tt.args...)
			_, _, err := env.run(t, "", args...)
			require.NoError(t, err)

			assert.Equal(t, remoteURL, got.URL)
			assert.Equal(t, tt.wantTimeout, got.Timeout)
			assert.Equal(t, map[string]string{"Authorization": "Bearer secret"}, got.Headers)

			s := readServer(t, path, client.DefaultKey, "example")
			assert.Equal(t, []string{"--header", "Authorization: Bearer secret"}, s.Args[len(s.Args)-2:])
		})
	}
}

func TestInstall_GatewayPackageFromConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "gateway_package: mcp-remote@0.1.29\n")
	env.detector.EXPECT().Detect(mock.Anything, mock.Anything).Return(transport.KindHTTP).Once()

	path := filepath.Join(t.TempDir(), "mcp.json")
	_, _, err := env.run(t, "", "install", remoteURL, "-c", "cursor", "--name", "example", "--yes", "--config-path", path)
	require.NoError(t, err)

	s := readServer(t, path, client.DefaultKey, "example")
	assert.Equal(t, "mcp-remote@0.1.29", s.Args[1])
}

func TestInstall_PackageTarget(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "mcp.json")

	_, _, err := env.run(t, "", "install", "@modelcontextprotocol/server-filesystem", "/tmp",
		"-c", "cursor", "--yes", "--env", "LOG_LEVEL=debug", "--config-path", path)
	require.NoError(t, err)

	s := readServer(t, path, client.DefaultKey, "filesystem")
	assert.Equal(t, "npx", s.Command)
	assert.Equal(t, []string{"-y", "@modelcontextprotocol/server-filesystem", "/tmp"}, s.Args)
	assert.Equal(t, map[string]string{"LOG_LEVEL": "debug"}, s.Env)
}

func TestInstall_CommandLineTarget(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "mcp.json")

	_, _, err := env.run(t, "", "install", "uvx mcp-server-time --local-timezone UTC",
		"-c", "cursor", "--name", "time", "--yes", "--config-path", path)
	require.NoError(t, err)

	s := readServer(t, path, client.DefaultKey, "time")
	assert.Equal(t, "uvx", s.Command)
	assert.Equal(t, []string{"mcp-server-time", "--local-timezone", "UTC"}, s.Args)
}

func TestInstall_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"header on package", []string{"install", "some-package", "-H", "X-Key: v"}},
		{"extra args on url", []string{"install", remoteURL, "extra"}},
		{"malformed header", []string{"install", remoteURL, "-H", "no separator"}},
		{"malformed env", []string{"install", "some-package", "--env", "=value"}},
		{"unknown client", []string{"install", "some-package", "-c", "notepad"}},
		{"no client with yes", []string{"install", "some-package"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			args := append(tt.args, "--yes")
			_, _, err := env.run(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, errors.ExitUser, exitCode(err))
		})
	}
}

func TestInstall_ExistingServer(t *testing.T) {
	const existing = `{"mcpServers":{"example":{"command":"old"}}}`

	t.Run("yes without force fails", func(t *testing.T) {
		env := newTestEnv(t)
		path := filepath.Join(t.TempDir(), "mcp.json")
		writeFile(t, path, existing)

		_, _, err := env.run(t, "", "install", "new-package", "-c", "cursor", "--name", "example", "--yes", "--config-path", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		assert.Equal(t, "old", readServer(t, path, client.DefaultKey, "example").Command)
	})

	t.Run("force overwrites", func(t *testing.T) {
		env := newTestEnv(t)
		path := filepath.Join(t.TempDir(), "mcp.json")
		writeFile(t, path, existing)

		_, _, err := env.run(t, "", "install", "new-package", "-c", "cursor", "--name", "example", "--yes", "--force", "--config-path", path)
		require.NoError(t, err)
		assert.Equal(t, []string{"-y", "new-package"}, readServer(t, path, client.DefaultKey, "example").Args)
	})

	t.Run("prompt declined keeps entry", func(t *testing.T) {
		env := newTestEnv(t)
		path := filepath.Join(t.TempDir(), "mcp.json")
		writeFile(t, path, existing)

		stdout, _, err := env.run(t, "n\n", "install", "new-package", "-c", "cursor", "--name", "example", "--config-path", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Aborted.")
		assert.Equal(t, "old", readServer(t, path, client.DefaultKey, "example").Command)
	})
}

func TestInstall_DeclinedConfirmationWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "mcp.json")

	stdout, _, err := env.run(t, "n\n", "install", "some-package", "-c", "cursor", "--config-path", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Aborted.")
	assert.NoFileExists(t, path)
}

func TestInstall_BacksUpExistingConfig(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "mcp.json")
	original := `{"mcpServers":{"other":{"command":"other"}},"theme":"dark"}`
	writeFile(t, path, original)

	_, _, err := env.run(t, "", "install", "some-package", "-c", "cursor", "--name", "pkg", "--yes", "--config-path", path)
	require.NoError(t, err)

	manifests, err := backup.NewManager(backup.WithBackupDir(env.backupDir)).List("cursor")
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	require.Len(t, manifests[0].Files, 1)
	assert.Equal(t, path, manifests[0].Files[0].OriginalPath)

	saved, err := os.ReadFile(filepath.Join(env.backupDir, "cursor", manifests[0].ID, manifests[0].Files[0].RelPath))
	require.NoError(t, err)
	assert.Equal(t, original, string(saved))

	// Unrelated keys and servers survive.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
	readServer(t, path, client.DefaultKey, "other")
}

func TestInstall_DefaultClientLocation(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "default_client: vscode\n")

	_, _, err := env.run(t, "", "install", "some-package", "--name", "pkg", "--yes")
	require.NoError(t, err)

	readServer(t, env.clientPath(t, "vscode"), []string{"mcp", "servers"}, "pkg")
}

func TestInstall_SelectsClientFromMenu(t *testing.T) {
	env := newTestEnv(t)

	idx := -1
	for i, c := range client.All() {
		if c.Name == "windsurf" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	stdin := strconv.Itoa(idx+1) + "\ny\n"
	_, stderr, err := env.run(t, stdin, "install", "some-package", "--name", "pkg")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Windsurf")

	readServer(t, env.clientPath(t, "windsurf"), client.DefaultKey, "pkg")
}
