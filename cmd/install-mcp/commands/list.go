package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/redact"
)

var (
	listClient     string
	listConfigPath string
)

func init() {
	listCmd.Flags().StringVarP(&listClient, "client", "c", "", "client whose servers to list")
	listCmd.Flags().StringVar(&listConfigPath, "config-path", "", "read this client config file instead")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List MCP servers configured for a client",
	Example: `  install-mcp list --client cursor
  install-mcp list -c claude --config-path ./claude_desktop_config.json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	p := prompt.NewPrompterWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
	c, err := resolveClient(cmd, listClient, p, true)
	if err != nil {
		return err
	}
	path, err := clientConfigPath(c, listConfigPath)
	if err != nil {
		return err
	}

	servers, err := c.Manager(path).List()
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "reading %s config", c.DisplayName),
			"Fix the JSON in "+path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", bold(c.DisplayName), gray(path))
	if len(servers) == 0 {
		fmt.Fprintln(out, "  No MCP servers configured.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range servers {
		fmt.Fprintf(tw, "  %s\t%s\n", s.Name, redactSummary(s))
	}
	return tw.Flush()
}

// redactSummary renders s.Summary with URL credentials and secret header
// values masked.
func redactSummary(s *client.MCPServer) string {
	masked := *s
	masked.URL = redact.URL(s.URL)
	masked.Args = make([]string, len(s.Args))
	for i, a := range s.Args {
		if i > 0 && s.Args[i-1] == "--header" {
			masked.Args[i] = redact.HeaderArg(a)
			continue
		}
		masked.Args[i] = redact.URL(a)
	}
	return masked.Summary()
}
