package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/client"
)

func init() {
	rootCmd.AddCommand(clientsCmd)
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List supported clients and their config files",
	Args:  cobra.NoArgs,
	RunE:  runClients,
}

func runClients(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCLIENT\tCONFIG\tSTATUS")
	for _, c := range client.All() {
		path, err := clientConfigPath(c, "")
		if err != nil {
			path = "-"
		}
		status := gray("not found")
		if path != "-" && fileExists(path) {
			status = green("found")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.DisplayName, path, status)
	}
	return tw.Flush()
}
