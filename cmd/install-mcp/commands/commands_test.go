package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/supermemoryai/install-mcp/internal/backup"
	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/config"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/paths"
	"github.com/supermemoryai/install-mcp/internal/transport/mocks"
)

// testEnv isolates a command run from the user's real files.
type testEnv struct {
	home      string
	configDir string
	backupDir string
	detector  *mocks.MockDetector
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		home:      t.TempDir(),
		configDir: t.TempDir(),
		backupDir: t.TempDir(),
		detector:  mocks.NewMockDetector(t),
	}

	t.Setenv(config.EnvPrefix+"_CONFIG_DIR", env.configDir)
	t.Setenv(debugEnv, "")
	t.Chdir(t.TempDir())

	origDetector := detector
	origDirs := currentDirs
	origBackups := newBackups
	origInteractive := isInteractive
	origFuzzy := fuzzySelect
	origConfig := appConfig
	origNoColor := color.NoColor
	t.Cleanup(func() {
		detector = origDetector
		currentDirs = origDirs
		newBackups = origBackups
		isInteractive = origInteractive
		fuzzySelect = origFuzzy
		appConfig = origConfig
		color.NoColor = origNoColor
	})

	detector = env.detector
	currentDirs = func() (paths.Dirs, error) {
		return paths.Dirs{
			GOOS:    "linux",
			Home:    env.home,
			AppData: filepath.Join(env.home, ".config"),
		}, nil
	}
	newBackups = func() *backup.Manager {
		return backup.NewManager(backup.WithBackupDir(env.backupDir))
	}
	isInteractive = func(io.Reader) bool { return false }
	fuzzySelect = func(string, []prompt.Option) (int, error) {
		t.Error("fuzzy finder opened in a non-interactive test")
		return 0, prompt.ErrCancelled
	}
	color.NoColor = true

	return env
}

// run executes the root command with args and stdin.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetCommand(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

// writeConfig writes the install-mcp config file.
func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(content), 0o600))
}

// clientPath is the config file a client resolves to inside the test home.
func (e *testEnv) clientPath(t *testing.T, name string) string {
	t.Helper()
	dirs, err := currentDirs()
	require.NoError(t, err)
	return paths.ClientConfigPath(name, dirs)
}

// resetCommand restores every flag of cmd and its children to its default
// and drops contexts left over from earlier runs.
func resetCommand(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SetContext(nil)
	for _, c := range cmd.Commands() {
		resetCommand(c)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readServer(t *testing.T, path string, key []string, name string) *client.MCPServer {
	t.Helper()
	s, err := client.NewMCPManager(path, key).Get(name)
	require.NoError(t, err)
	return s
}

func exitCode(err error) int {
	return errors.ExitCode(err)
}
