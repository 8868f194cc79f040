package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. INSTALL_MCP_PROBE_TIMEOUT=10s.
const EnvPrefix = "INSTALL_MCP"

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultProbeTimeout   = 5 * time.Second
	DefaultGatewayPackage = "mcp-remote@latest"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version        int                       `mapstructure:"version" yaml:"version"`
	ProbeTimeout   time.Duration             `mapstructure:"probe_timeout" yaml:"probe_timeout"`
	GatewayPackage string                    `mapstructure:"gateway_package" yaml:"gateway_package"`
	DefaultClient  string                    `mapstructure:"default_client" yaml:"default_client,omitempty"`
	Clients        map[string]ClientOverride `mapstructure:"clients" yaml:"clients,omitempty"`
}

// ClientOverride contains configuration overrides for a specific client.
type ClientOverride struct {
	ConfigPath string `mapstructure:"config_path" yaml:"config_path"`
}

// Init resets Viper and installs the default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(Dir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("probe_timeout", DefaultProbeTimeout)
	viper.SetDefault("gateway_package", DefaultGatewayPackage)
	viper.SetDefault("default_client", "")
}

// Dir returns the directory searched for config.yaml after the working
// directory. INSTALL_MCP_CONFIG_DIR replaces the XDG location.
func Dir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file uses defaults.
		case path != "" && os.IsNotExist(err):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Version:        1,
		ProbeTimeout:   DefaultProbeTimeout,
		GatewayPackage: DefaultGatewayPackage,
	}
}

// ClientConfigPath returns the config file for client, honoring a
// clients.<name>.config_path override before the built-in location.
func (c *Config) ClientConfigPath(client string, d paths.Dirs) (string, error) {
	if !paths.ValidClient(client) {
		return "", errors.Wrapf(errors.ErrUnknownClient, "client %q", client)
	}

	if c != nil {
		if o, ok := c.Clients[client]; ok && o.ConfigPath != "" {
			if d.Home != "" {
				return filepath.Clean(paths.ExpandHomeDir(o.ConfigPath, d.Home)), nil
			}
			p, err := paths.ExpandHome(o.ConfigPath)
			if err != nil {
				return "", err
			}
			return filepath.Clean(p), nil
		}
	}

	p := paths.ClientConfigPath(client, d)
	if p == "" {
		return "", errors.Newf("cannot resolve config path for client %q", client)
	}
	return p, nil
}
