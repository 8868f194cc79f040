package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// AppName names the tool's own config, data and backup directories.
const AppName = "install-mcp"

// Client identifiers for supported MCP clients.
const (
	ClientClaude     = "claude"
	ClientClaudeCode = "claude-code"
	ClientCursor     = "cursor"
	ClientWindsurf   = "windsurf"
	ClientCline      = "cline"
	ClientRooCline   = "roo-cline"
	ClientGeminiCLI  = "gemini-cli"
	ClientEnconvo    = "enconvo"
	ClientVSCode     = "vscode"
)

// base selects which root directory a client path is relative to.
type base int

const (
	baseHome    base = iota // user's home directory
	baseAppData             // per-OS application data directory
)

type location struct {
	base base
	rel  string
}

// clientConfigs maps client names to their MCP config file locations.
// AppData is ~/Library/Application Support on macOS, %APPDATA% on Windows
// and the XDG config home on Linux.
var clientConfigs = map[string]location{
	ClientClaude:     {baseAppData, "Claude/claude_desktop_config.json"},
	ClientClaudeCode: {baseHome, ".claude.json"},
	ClientCursor:     {baseHome, ".cursor/mcp.json"},
	ClientWindsurf:   {baseHome, ".codeium/windsurf/mcp_config.json"},
	ClientCline:      {baseAppData, "Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json"},
	ClientRooCline:   {baseAppData, "Code/User/globalStorage/rooveterinaryinc.roo-cline/settings/mcp_settings.json"},
	ClientGeminiCLI:  {baseHome, ".gemini/settings.json"},
	ClientEnconvo:    {baseHome, ".config/enconvo/mcp_config.json"},
	ClientVSCode:     {baseAppData, "Code/User/settings.json"},
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Dirs holds the root directories client config paths are resolved against.
// Tests construct it directly; the CLI uses [CurrentDirs].
type Dirs struct {
	GOOS    string
	Home    string
	AppData string
}

// CurrentDirs resolves Dirs for the running user and OS.
func CurrentDirs() (Dirs, error) {
	home, err := ResolveHome()
	if err != nil {
		return Dirs{}, err
	}

	d := Dirs{GOOS: runtime.GOOS, Home: home}
	switch runtime.GOOS {
	case "darwin", "windows":
		appData, err := os.UserConfigDir()
		if err != nil {
			return Dirs{}, errors.Wrap(err, "resolving application data directory")
		}
		d.AppData = appData
	default:
		d.AppData = xdg.ConfigHome
	}
	return d, nil
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrapf(ErrHomeDirNotFound, "%v", err)
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns the directory holding install-mcp's own config.yaml.
// Returns: <ConfigHome>/install-mcp/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns the root directory for client config backups.
// Returns: <DataHome>/install-mcp/backups/
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// ValidClient returns true if the client name is recognized.
func ValidClient(client string) bool {
	_, ok := clientConfigs[client]
	return ok
}

// Clients returns all supported client identifiers in display order.
func Clients() []string {
	return []string{
		ClientClaude,
		ClientClaudeCode,
		ClientCursor,
		ClientWindsurf,
		ClientCline,
		ClientRooCline,
		ClientGeminiCLI,
		ClientEnconvo,
		ClientVSCode,
	}
}

// ClientConfigPath returns the MCP config file path for a client.
//
// Client paths (AppData per OS as described on clientConfigs):
//   - claude:      <AppData>/Claude/claude_desktop_config.json
//   - claude-code: ~/.claude.json
//   - cursor:      ~/.cursor/mcp.json
//   - windsurf:    ~/.codeium/windsurf/mcp_config.json
//   - cline:       <AppData>/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json
//   - roo-cline:   <AppData>/Code/User/globalStorage/rooveterinaryinc.roo-cline/settings/mcp_settings.json
//   - gemini-cli:  ~/.gemini/settings.json
//   - enconvo:     ~/.config/enconvo/mcp_config.json
//   - vscode:      <AppData>/Code/User/settings.json
//
// Returns an empty string for unknown clients or unresolved roots.
func ClientConfigPath(client string, d Dirs) string {
	loc, ok := clientConfigs[client]
	if !ok {
		return ""
	}

	var root string
	switch loc.base {
	case baseAppData:
		root = d.AppData
	default:
		root = d.Home
	}
	if root == "" {
		return ""
	}
	return filepath.Join(root, filepath.FromSlash(loc.rel))
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !hasHomePrefix(path) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return ExpandHomeDir(path, home), nil
}

// ExpandHomeDir is ExpandHome with an explicit home directory.
func ExpandHomeDir(path, home string) string {
	if !hasHomePrefix(path) {
		return path
	}
	return filepath.Join(home, path[1:])
}

func hasHomePrefix(path string) bool {
	return path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`)
}

// ValidatePath checks that a path is syntactically usable as a file path.
// It does not check existence.
func ValidatePath(path string) error {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	if cleaned := filepath.Clean(path); cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}
