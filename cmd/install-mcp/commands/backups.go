package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/backup"
	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/errors"
)

var (
	backupsClient string
	backupsYes    bool
)

func init() {
	backupsCmd.PersistentFlags().StringVarP(&backupsClient, "client", "c", "", "client whose backups to use")
	backupsRestoreCmd.Flags().BoolVarP(&backupsYes, "yes", "y", false, "restore without confirmation")
	backupsCmd.AddCommand(backupsListCmd, backupsRestoreCmd)
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List and restore client config backups",
	Long: `Client config files are backed up before install-mcp changes them.
The most recent backups of each client are kept.`,
}

var backupsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List backups of a client config, newest first",
	Args:    cobra.NoArgs,
	RunE:    runBackupsList,
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a client config from a backup (default: the newest)",
	Example: `  install-mcp backups restore -c cursor
  install-mcp backups restore 20260117T101502.123 -c claude -y`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupsRestore,
}

func runBackupsList(cmd *cobra.Command, _ []string) error {
	p := prompt.NewPrompterWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
	c, err := resolveClient(cmd, backupsClient, p, true)
	if err != nil {
		return err
	}

	manifests, err := newBackups().List(c.Name)
	if errors.Is(err, backup.ErrNoBackupsFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No backups for %s.\n", c.DisplayName)
		return nil
	}
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFILES")
	for _, m := range manifests {
		for i, f := range m.Files {
			if i == 0 {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), f.OriginalPath)
				continue
			}
			fmt.Fprintf(tw, "\t\t%s\n", f.OriginalPath)
		}
	}
	return tw.Flush()
}

func runBackupsRestore(cmd *cobra.Command, args []string) error {
	p := prompt.NewPrompterWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
	c, err := resolveClient(cmd, backupsClient, p, !backupsYes)
	if err != nil {
		return err
	}

	mgr := newBackups()
	var target *backup.Manifest
	if len(args) == 1 {
		target, err = mgr.Get(c.Name, args[0])
	} else {
		var all []backup.Manifest
		all, err = mgr.List(c.Name)
		if err == nil {
			target = &all[0]
		}
	}
	if errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.NewUserError(err, "Run 'install-mcp backups list --client "+c.Name+"'")
	}
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if !backupsYes {
		ok, err := p.Confirm(fmt.Sprintf("Restore %s config from backup %s?", c.DisplayName, target.ID), false)
		if err != nil {
			return errors.NewUserError(err, "Pass --yes to restore without prompting")
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if _, err := mgr.Restore(c.Name, target.ID); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s config from %s.\n", c.DisplayName, target.ID)
	return nil
}
