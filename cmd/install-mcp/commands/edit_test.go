package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermemoryai/install-mcp/internal/editor"
	"github.com/supermemoryai/install-mcp/internal/errors"
)

// scriptEditor installs an editor that overwrites the file with content.
func scriptEditor(t *testing.T, content string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor")
	}

	contentFile := filepath.Join(t.TempDir(), "content")
	require.NoError(t, os.WriteFile(contentFile, []byte(content), 0o600))
	script := filepath.Join(t.TempDir(), "editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat '"+contentFile+"' > \"$1\"\n"), 0o755))

	orig := newEditor
	t.Cleanup(func() { newEditor = orig })
	newEditor = func(cmd *cobra.Command) *editor.Editor {
		return &editor.Editor{Command: script, Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	}
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t)
	scriptEditor(t, `{"mcpServers":{"x":{"command":"y"}}}`)
	path := filepath.Join(t.TempDir(), "mcp.json")
	writeFile(t, path, `{}`)

	stdout, stderr, err := env.run(t, "", "edit", "-c", "cursor", "--config-path", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Location: "+path)
	assert.Contains(t, stdout, "Cursor config OK.")
}

func TestEdit_LeavesInvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	scriptEditor(t, `{"mcpServers":`)
	path := filepath.Join(t.TempDir(), "mcp.json")
	writeFile(t, path, `{}`)

	_, _, err := env.run(t, "", "edit", "-c", "cursor", "--config-path", path)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, exitCode(err))

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Suggestion, "install-mcp backups restore ")
	assert.Contains(t, exitErr.Suggestion, "--client cursor")
}
