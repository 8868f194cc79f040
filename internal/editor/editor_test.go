package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   string
	}{
		{"editor wins", "nvim", "code", "nvim"},
		{"visual fallback", "", "code --wait", "code --wait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			assert.Equal(t, tt.want, Detect())
		})
	}
}

func TestDetect_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	assert.Equal(t, want, Detect())
}

// fakeEditor writes a script that appends its arguments to the edited file.
func fakeEditor(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor")
	}
	script := filepath.Join(t.TempDir(), "fake-editor")
	body := "#!/bin/sh\nfor last; do :; done\necho \"$@\" >> \"$last\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func TestOpen(t *testing.T) {
	script := fakeEditor(t)
	path := filepath.Join(t.TempDir(), "mcp.json")

	var out bytes.Buffer
	e := &Editor{Command: script + " --wait", Stdout: &out, Stderr: &out}
	require.NoError(t, e.Open(t.Context(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "--wait "+path+"\n", string(data))
}

func TestOpen_Failure(t *testing.T) {
	e := &Editor{Command: filepath.Join(t.TempDir(), "missing-editor")}
	err := e.Open(t.Context(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running editor")

	e = &Editor{Command: "   "}
	assert.Error(t, e.Open(t.Context(), "x"))
}
