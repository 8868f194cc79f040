// Package config provides configuration management for the install-mcp CLI.
//
// This package handles loading and validating install-mcp's own
// configuration file. It is distinct from the MCP client config files,
// which are managed by the client package.
//
// # Configuration File
//
// Files are searched in the current directory and then in
// <ConfigHome>/install-mcp/config.yaml (or $INSTALL_MCP_CONFIG_DIR).
// The format is YAML:
//
//	version: 1
//	probe_timeout: 5s
//	gateway_package: mcp-remote@latest
//	default_client: cursor
//	clients:
//	  claude:
//	    config_path: ~/custom/claude_desktop_config.json
//
// Every top-level scalar can be overridden from the environment with the
// INSTALL_MCP_ prefix, e.g. INSTALL_MCP_PROBE_TIMEOUT=10s.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// Load validates the result; an invalid file is reported as
// "validating config: <first problem>".
package config
