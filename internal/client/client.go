package client

import (
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/paths"
)

// DefaultKey is the key path most clients use for their server map.
var DefaultKey = []string{"mcpServers"}

// Client describes one supported MCP client.
type Client struct {
	// Name is the identifier used on the command line.
	Name string
	// DisplayName is shown in prompts and listings.
	DisplayName string
	// Key is the path of JSON object keys leading to the server map.
	Key []string
}

var clients = []Client{
	{Name: paths.ClientClaude, DisplayName: "Claude Desktop", Key: DefaultKey},
	{Name: paths.ClientClaudeCode, DisplayName: "Claude Code", Key: DefaultKey},
	{Name: paths.ClientCursor, DisplayName: "Cursor", Key: DefaultKey},
	{Name: paths.ClientWindsurf, DisplayName: "Windsurf", Key: DefaultKey},
	{Name: paths.ClientCline, DisplayName: "Cline", Key: DefaultKey},
	{Name: paths.ClientRooCline, DisplayName: "Roo Cline", Key: DefaultKey},
	{Name: paths.ClientGeminiCLI, DisplayName: "Gemini CLI", Key: DefaultKey},
	{Name: paths.ClientEnconvo, DisplayName: "Enconvo", Key: DefaultKey},
	{Name: paths.ClientVSCode, DisplayName: "VS Code", Key: []string{"mcp", "servers"}},
}

// All returns every supported client in display order.
func All() []Client {
	out := make([]Client, len(clients))
	copy(out, clients)
	return out
}

// Names returns the identifiers of every supported client.
func Names() []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the client with the given identifier.
func Lookup(name string) (Client, error) {
	for _, c := range clients {
		if c.Name == name {
			return c, nil
		}
	}
	return Client{}, errors.Wrapf(errors.ErrUnknownClient, "client %q", name)
}

// Path returns the client's default config file location.
func (c Client) Path(d paths.Dirs) string {
	return paths.ClientConfigPath(c.Name, d)
}

// Manager returns an MCPManager editing the client's server map in the
// file at path.
func (c Client) Manager(path string) *MCPManager {
	return NewMCPManager(path, c.Key)
}
