package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/doctor"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

var (
	doctorClient  string
	doctorJSON    bool
	doctorAll     bool
	doctorFix     bool
	doctorProbe   bool
	doctorTimeout time.Duration
)

func init() {
	doctorCmd.Flags().StringVarP(&doctorClient, "client", "c", "", "only check this client")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "restrict config file permissions where flagged")
	doctorCmd.Flags().BoolVar(&doctorProbe, "probe", false, "probe gateway servers and compare their pinned transport")
	doctorCmd.Flags().DurationVar(&doctorTimeout, "timeout", 0,
		"time limit for each probe request (default: config probe_timeout)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose client config files",
	Long: `Run diagnostic checks on the config files of every supported client.

Checks that config files parse, that other users cannot read or write them,
and that mcp-remote gateway entries pin a supported transport. With --probe
each gateway server is contacted and the detected transport is compared with
the pinned one.

Exit codes:
  0 - no errors or warnings
  1 - warnings present, no errors
  2 - errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var (
	errDoctorWarnings = errors.New("doctor found warnings")
	errDoctorErrors   = errors.New("doctor found errors")
)

func runDoctor(cmd *cobra.Command, _ []string) error {
	if doctorJSON && doctorAll {
		return errors.NewUserError(errors.New("--json and --all cannot be combined"), "")
	}

	targets, err := doctorTargets(doctorClient)
	if err != nil {
		return err
	}

	var probe transport.Detector
	if doctorProbe {
		probe = detector
	}
	timeout := doctorTimeout
	if timeout <= 0 {
		timeout = appConfig.ProbeTimeout
	}

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigSyntaxCheck(targets))
	runner.AddCheck(doctor.NewFilePermissionCheck(targets))
	runner.AddCheck(doctor.NewGatewayCheck(targets, probe, timeout))

	report := runner.Run(cmd.Context())

	if doctorFix {
		fixes := runner.FixAll()
		for _, f := range fixes {
			if f.Error != nil {
				return errors.NewSystemError(f.Error, "")
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "fixed %s: %s\n", f.Path, f.Description)
		}
		if len(fixes) > 0 {
			report = runner.Run(cmd.Context())
		}
	}

	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		writeDoctorText(out, report, doctorAll)
	}

	var hint string
	if !doctorFix && hasFixable(report) {
		hint = "Run 'install-mcp doctor --fix' to repair fixable issues"
	}

	switch {
	case report.HasErrors():
		return errors.NewExitErrorWithSuggestion(errDoctorErrors, errors.ExitSystem, hint)
	case report.HasWarnings():
		return errors.NewExitErrorWithSuggestion(errDoctorWarnings, errors.ExitUser, hint)
	}
	return nil
}

func hasFixable(report *doctor.Report) bool {
	for _, r := range report.Results {
		if r.Fixable {
			return true
		}
	}
	return false
}

// doctorTargets resolves the config file of every client, or of one.
func doctorTargets(only string) ([]doctor.Target, error) {
	clients := client.All()
	if only != "" {
		c, err := client.Lookup(only)
		if err != nil {
			return nil, errors.NewUserError(err, "Run 'install-mcp clients' to see supported clients")
		}
		clients = []client.Client{c}
	}

	targets := make([]doctor.Target, 0, len(clients))
	for _, c := range clients {
		path, err := clientConfigPath(c, "")
		if err != nil {
			return nil, err
		}
		targets = append(targets, doctor.Target{Client: c, Path: path})
	}
	return targets, nil
}

func writeDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	for _, res := range report.Results {
		if !showAll && res.Status != doctor.SeverityError && res.Status != doctor.SeverityWarning {
			continue
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(res.Status), res.Category, res.Name, res.Message)
		for _, is := range res.Issues {
			fmt.Fprintf(w, "    %s %s\n", gray(is.Severity.String()+":"), is.Problem)
			if is.FixHint != "" {
				fmt.Fprintf(w, "      hint: %s\n", is.FixHint)
			}
		}
	}

	s := report.Summary
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n", s.Passed, s.Info, s.Warnings, s.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return green("✓")
	case doctor.SeverityInfo:
		return cyan("ℹ")
	case doctor.SeverityWarning:
		return yellow("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
