package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/editor"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/logging"
)

var (
	editClient     string
	editConfigPath string
)

// newEditor is swapped out by tests.
var newEditor = func(cmd *cobra.Command) *editor.Editor {
	return &editor.Editor{
		Command: editor.Detect(),
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	}
}

func init() {
	editCmd.Flags().StringVarP(&editClient, "client", "c", "", "client whose config to edit")
	editCmd.Flags().StringVar(&editConfigPath, "config-path", "", "edit this client config file instead")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open a client config in your editor",
	Long: `Open the config file of a client in $EDITOR (or $VISUAL).

The file is backed up first and checked again after the editor exits.`,
	Example: `  install-mcp edit --client cursor
  EDITOR="code --wait" install-mcp edit -c vscode`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, _ []string) error {
	p := prompt.NewPrompterWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
	c, err := resolveClient(cmd, editClient, p, true)
	if err != nil {
		return err
	}
	path, err := clientConfigPath(c, editConfigPath)
	if err != nil {
		return err
	}

	manifest, err := newBackups().EnsureBackedUp(c.Name, []string{path})
	if err != nil {
		return errors.NewSystemError(err, "Check permissions on the backup directory")
	}
	if manifest != nil {
		logging.FromContext(cmd.Context()).Info("backed up client config", "client", c.Name, "backup", manifest.ID)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	if err := newEditor(cmd).Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set EDITOR to your editor command")
	}

	if _, err := c.Manager(path).List(); err != nil {
		hint := "Fix the file and run 'install-mcp doctor'"
		if manifest != nil {
			hint = fmt.Sprintf("Fix the file or run 'install-mcp backups restore %s --client %s'", manifest.ID, c.Name)
		}
		return errors.NewUserError(errors.Wrapf(err, "%s config is no longer valid", c.DisplayName), hint)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s config OK.\n", c.DisplayName)
	return nil
}
