// Package client describes the MCP clients install-mcp can configure and
// edits their server maps.
//
// Each client keeps its servers in a JSON object at a fixed key path
// inside one config file, usually "mcpServers" at the top level. VS Code
// nests them under "mcp" → "servers" in its user settings.
//
// [MCPManager] rewrites only the server map. Every other top-level field
// and every server entry it was not asked to touch are written back
// unchanged, byte for byte apart from indentation.
package client
