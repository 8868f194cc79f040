// Package commands implements the CLI commands for install-mcp.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/config"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/logging"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = "INSTALL_MCP_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// appConfig is the loaded configuration, set before any subcommand runs.
var appConfig = config.Default()

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.config/install-mcp/config.yaml)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("install-mcp version {{.Version}}\n")

	// Errors are printed by main so suggestions and exit codes stay consistent.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "install-mcp",
	Short: "Install MCP servers into AI assistant clients",
	Long: `install-mcp registers a Model Context Protocol server in the config file
of an AI assistant client such as Claude Desktop, Cursor, Windsurf or VS Code.

Remote servers are given as a URL. install-mcp probes the server to find out
whether it speaks the streamable HTTP transport or the legacy HTTP+SSE
transport, and writes a gateway entry that launches mcp-remote with the
matching --transport flag. Packages and command lines are written as-is.

Every client config file is backed up before it is changed.`,
	Example: `  # Install a remote server into Cursor
  install-mcp install https://api.supermemory.ai/mcp --client cursor

  # Only detect the transport
  install-mcp detect https://mcp.linear.app/sse

  # Install an npm package server
  install-mcp install @modelcontextprotocol/server-filesystem /tmp -c claude`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q and -v")
	}

	format, ok := logging.ParseFormat(logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("invalid --log-format %q", logFormat), "Use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2 // Debug
			case "2":
				v = 3 // Trace
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handlers := []slog.Handler{
		logging.New(logging.Config{
			Output: cmd.ErrOrStderr(),
			Level:  level,
			Format: format,
		}).Handler(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		handlers = append(handlers, logging.New(logging.Config{
			Output: f,
			Level:  level,
			Format: logging.FormatJSON,
		}).Handler())
	}

	handler := handlers[0]
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) error {
	// Help and version must work even with a broken config file.
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	config.Init()
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return errors.NewConfigError(err)
	}
	appConfig = cfg

	logging.FromContext(cmd.Context()).Debug("config loaded",
		"probe_timeout", cfg.ProbeTimeout,
		"gateway_package", cfg.GatewayPackage,
		"default_client", cfg.DefaultClient,
	)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
