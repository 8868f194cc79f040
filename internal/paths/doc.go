// Package paths provides cross-platform path resolution for MCP client
// configuration files and for install-mcp's own directories.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for install-mcp's own config
// (<ConfigHome>/install-mcp/config.yaml) and backups
// (<DataHome>/install-mcp/backups/).
//
// # Client Configuration Files
//
// Every supported client keeps its MCP server map in a single JSON file,
// located either under the home directory or under the OS application data
// directory:
//
//	| Client      | File                                                  |
//	|-------------|-------------------------------------------------------|
//	| claude      | <AppData>/Claude/claude_desktop_config.json           |
//	| claude-code | ~/.claude.json                                        |
//	| cursor      | ~/.cursor/mcp.json                                    |
//	| windsurf    | ~/.codeium/windsurf/mcp_config.json                   |
//	| gemini-cli  | ~/.gemini/settings.json                               |
//	| vscode      | <AppData>/Code/User/settings.json                     |
//
// Resolution takes an explicit [Dirs] so tests never touch the real home:
//
//	d := paths.Dirs{GOOS: "linux", Home: tmp, AppData: filepath.Join(tmp, ".config")}
//	paths.ClientConfigPath(paths.ClientCursor, d) // <tmp>/.cursor/mcp.json
//
// Functions that accept a client parameter return empty strings for
// unknown clients. Use [ValidClient] to check validity first.
package paths
