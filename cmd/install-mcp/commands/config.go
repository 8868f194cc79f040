package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/supermemoryai/install-mcp/internal/config"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/paths"
	"github.com/supermemoryai/install-mcp/pkg/fileutil"
)

// skipConfigAnnotation marks commands that must run without loading config.yaml.
const skipConfigAnnotation = "install-mcp/skip-config"

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the install-mcp config file",
	Long: `Manage install-mcp's own configuration stored in
~/.config/install-mcp/config.yaml.

Every key can also be set from the environment with the INSTALL_MCP_ prefix,
e.g. INSTALL_MCP_PROBE_TIMEOUT=10s.

Without a subcommand, prints the effective configuration.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	Example: `  install-mcp config init
  install-mcp config init --force --config ./config.yaml`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "marshaling config"), "")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	if fileExists(path) && !configInitForce {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"Pass --force to overwrite it",
		)
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// configFilePath is the file named by --config, the file viper loaded, or
// config.yaml in the default config directory.
func configFilePath() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(config.Dir(), "config.yaml")
}
