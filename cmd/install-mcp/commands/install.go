package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/gateway"
	"github.com/supermemoryai/install-mcp/internal/logging"
	"github.com/supermemoryai/install-mcp/internal/redact"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

const transportAuto = "auto"

// Package-level flag variables for the install command.
var (
	installClient     string
	installName       string
	installHeaders    []string
	installEnv        []string
	installTransport  string
	installTimeout    time.Duration
	installYes        bool
	installForce      bool
	installConfigPath string
)

func init() {
	installCmd.Flags().StringVarP(&installClient, "client", "c", "",
		"client to configure (default: config default_client, else prompt)")
	installCmd.Flags().StringVar(&installName, "name", "",
		"server name in the client config (default: derived from the target)")
	installCmd.Flags().StringArrayVarP(&installHeaders, "header", "H", nil,
		`HTTP header for remote servers as "Name: Value" (repeatable)`)
	installCmd.Flags().StringArrayVar(&installEnv, "env", nil,
		"environment variable for the server process as KEY=VALUE (repeatable)")
	installCmd.Flags().StringVar(&installTransport, "transport", transportAuto,
		"remote transport: auto, http, sse")
	installCmd.Flags().DurationVar(&installTimeout, "timeout", 0,
		"time limit for each detection request (default: config probe_timeout)")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false,
		"accept detected values without prompting")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false,
		"overwrite a server with the same name")
	installCmd.Flags().StringVar(&installConfigPath, "config-path", "",
		"edit this client config file instead of the default location")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <target> [args...]",
	Short: "Install an MCP server into a client config",
	Long: `Install an MCP server into the config file of an AI assistant client.

The target is one of:
  - a URL of a remote server, reached through a local mcp-remote gateway
  - an npm package, launched with npx
  - a quoted command line, written as-is

For URLs the transport is detected unless --transport is given. A detected
transport is shown for confirmation; when detection is inconclusive you are
asked whether the server supports streamable HTTP. With --yes the detected
transport is used, and streamable HTTP when nothing was detected.

Extra arguments after the target are passed to package and command servers.`,
	Example: `  install-mcp install https://api.supermemory.ai/mcp --client claude
  install-mcp install https://mcp.example.com/sse -c cursor --transport sse
  install-mcp install https://api.example.com/mcp -c vscode -H "Authorization: Bearer $TOKEN"
  install-mcp install @modelcontextprotocol/server-filesystem /tmp -c windsurf
  install-mcp install "uvx mcp-server-time" -c claude-code --name time`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	p := prompt.NewPrompterWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())

	target := args[0]
	isURL := gateway.IsURL(target)
	if isURL && len(args) > 1 {
		return errors.NewUserError(
			errors.New("extra arguments are not supported for remote servers"),
			"Pass headers with --header instead")
	}

	headers, err := parseHeaders(installHeaders)
	if err != nil {
		return err
	}
	if len(headers) > 0 && !isURL {
		return errors.NewUserError(errors.New("--header only applies to URL targets"), "")
	}
	env, err := parseKeyValueSlice(installEnv, "--env")
	if err != nil {
		return err
	}

	c, err := resolveClient(cmd, installClient, p, !installYes)
	if err != nil {
		return err
	}
	configPath, err := clientConfigPath(c, installConfigPath)
	if err != nil {
		return err
	}
	logger.Debug("installing", "client", c.Name, "config", configPath, "target", redact.URL(target))

	kind := transport.KindUnknown
	if isURL {
		kind, err = resolveTransport(cmd, p, target, headers)
		if err != nil {
			return err
		}
	}

	server, err := gateway.Build(gateway.Options{
		Target:  target,
		Name:    installName,
		Kind:    kind,
		Package: appConfig.GatewayPackage,
		Headers: headers,
		Env:     env,
		Args:    args[1:],
	})
	if err != nil {
		return errors.NewUserError(err, "")
	}

	mgr := c.Manager(configPath)
	if _, err := mgr.Get(server.Name); err == nil && !installForce {
		if installYes {
			return errors.NewUserError(
				errors.Newf("server %q already exists in %s", server.Name, c.DisplayName),
				"Use --force to overwrite or --name to pick another name")
		}
		ok, err := p.Confirm(fmt.Sprintf("Server %q already exists in %s. Overwrite?", server.Name, c.DisplayName), false)
		if err != nil {
			return errors.NewUserError(err, "")
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	} else if err != nil && !errors.Is(err, client.ErrMCPServerNotFound) {
		return errors.NewUserError(errors.Wrapf(err, "reading %s config", c.DisplayName),
			"Fix the JSON in "+configPath+" or pass --config-path")
	}

	if !installYes {
		ok, err := p.Confirm(fmt.Sprintf("Install %q into %s?", server.Name, c.DisplayName), true)
		if err != nil {
			return errors.NewUserError(err, "Pass --yes to install without prompting")
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	manifest, err := newBackups().EnsureBackedUp(c.Name, []string{configPath})
	if err != nil {
		return errors.NewSystemError(err, "Check permissions on the backup directory")
	}
	if manifest != nil {
		logger.Info("backed up client config", "client", c.Name, "backup", manifest.ID)
	}

	fmt.Fprintf(out, "Installing %s into %s... ", bold(server.Name), c.DisplayName)
	if err := mgr.Add(server); err != nil {
		fmt.Fprintln(out, "failed")
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", configPath), "")
	}
	fmt.Fprintln(out, green("done"))

	fmt.Fprintf(out, "  config:    %s\n", configPath)
	if isURL {
		fmt.Fprintf(out, "  transport: %s\n", kind.Describe())
	}
	fmt.Fprintf(out, "Restart %s to load the server.\n", c.DisplayName)
	return nil
}

// resolveTransport returns the transport for a URL target from --transport
// or by probing the server and confirming the result.
func resolveTransport(cmd *cobra.Command, p *prompt.Prompter, target string, headers map[string]string) (transport.Kind, error) {
	if installTransport != "" && installTransport != transportAuto {
		kind, err := transport.ParseKind(installTransport)
		if err != nil {
			return transport.KindUnknown, errors.NewUserError(err, "Use --transport auto, http or sse")
		}
		return kind, nil
	}

	ctx := cmd.Context()
	errOut := cmd.ErrOrStderr()

	timeout := installTimeout
	if timeout <= 0 {
		timeout = appConfig.ProbeTimeout
	}

	fmt.Fprintf(errOut, "Detecting transport for %s... ", redact.URL(target))
	kind := detector.Detect(ctx, transport.Request{
		URL:     target,
		Timeout: timeout,
		Headers: headers,
	})
	fmt.Fprintln(errOut, styleKind(kind))

	if kind.Definite() {
		if installYes {
			return kind, nil
		}
		ok, err := p.Confirm(fmt.Sprintf("Detected %s. Use it?", kind.Describe()), true)
		if err != nil {
			return transport.KindUnknown, errors.NewUserError(err, "Pass --transport to skip detection")
		}
		if ok {
			return kind, nil
		}
		return otherKind(kind), nil
	}

	if installYes {
		logging.FromContext(ctx).Warn("transport not detected, assuming streamable HTTP", "url", redact.URL(target))
		return transport.KindHTTP, nil
	}
	ok, err := p.Confirm("Could not detect the transport. Does the server support streamable HTTP?", true)
	if err != nil {
		return transport.KindUnknown, errors.NewUserError(err, "Pass --transport http or --transport sse")
	}
	if ok {
		return transport.KindHTTP, nil
	}
	return transport.KindSSE, nil
}

func otherKind(k transport.Kind) transport.Kind {
	if k == transport.KindSSE {
		return transport.KindHTTP
	}
	return transport.KindSSE
}
