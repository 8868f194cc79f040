package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/backup"
)

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

func init() {
	backup.Version = Version
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go runtime of install-mcp.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "install-mcp version %s\n", Version)
		fmt.Fprintf(w, "  commit:    %s\n", Commit)
		fmt.Fprintf(w, "  built:     %s\n", Date)
		fmt.Fprintf(w, "  go:        %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
