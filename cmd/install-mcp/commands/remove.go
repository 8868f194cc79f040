package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/logging"
)

var (
	removeClient     string
	removeYes        bool
	removeConfigPath string
)

func init() {
	removeCmd.Flags().StringVarP(&removeClient, "client", "c", "", "client to remove the server from")
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "remove without confirmation")
	removeCmd.Flags().StringVar(&removeConfigPath, "config-path", "", "edit this client config file instead")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove an MCP server from a client config",
	Long: `Remove an MCP server from the config file of an AI assistant client.

The config file is backed up before it is changed.`,
	Example: `  install-mcp remove supermemory --client claude
  install-mcp rm github -c cursor -y`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()
	p := prompt.NewPrompterWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())

	c, err := resolveClient(cmd, removeClient, p, !removeYes)
	if err != nil {
		return err
	}
	path, err := clientConfigPath(c, removeConfigPath)
	if err != nil {
		return err
	}

	mgr := c.Manager(path)
	if _, err := mgr.Get(name); err != nil {
		if errors.Is(err, client.ErrMCPServerNotFound) {
			return errors.NewUserError(
				errors.Newf("server %q not found in %s", name, c.DisplayName),
				"Run 'install-mcp list --client "+c.Name+"' to see configured servers")
		}
		return errors.NewUserError(errors.Wrapf(err, "reading %s config", c.DisplayName),
			"Fix the JSON in "+path)
	}

	if !removeYes {
		ok, err := p.Confirm(fmt.Sprintf("Remove %q from %s?", name, c.DisplayName), false)
		if err != nil {
			return errors.NewUserError(err, "Pass --yes to remove without prompting")
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	manifest, err := newBackups().EnsureBackedUp(c.Name, []string{path})
	if err != nil {
		return errors.NewSystemError(err, "Check permissions on the backup directory")
	}
	if manifest != nil {
		logging.FromContext(cmd.Context()).Info("backed up client config", "client", c.Name, "backup", manifest.ID)
	}

	if err := mgr.Remove(name); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", path), "")
	}
	fmt.Fprintf(out, "Removed %s from %s.\n", bold(name), c.DisplayName)
	return nil
}
