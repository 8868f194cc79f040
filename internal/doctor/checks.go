package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/supermemoryai/install-mcp/internal/gateway"
	"github.com/supermemoryai/install-mcp/internal/redact"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

// secureFilePerm is the mode doctor --fix applies to client configs.
const secureFilePerm os.FileMode = 0o600

// FilePermissionCheck flags client config files that other users can
// read or write.
type FilePermissionCheck struct {
	targets []Target
	issues  []Issue
}

var (
	_ Check = (*FilePermissionCheck)(nil)
	_ Fixer = (*FilePermissionCheck)(nil)
)

// NewFilePermissionCheck creates a permission check over targets.
func NewFilePermissionCheck(targets []Target) *FilePermissionCheck {
	return &FilePermissionCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *FilePermissionCheck) Name() string { return "file-permissions" }

// Category returns the grouping for this check.
func (c *FilePermissionCheck) Category() string { return "filesystem" }

// Run stats every existing target.
func (c *FilePermissionCheck) Run(context.Context) *CheckResult {
	c.issues = nil
	checked := 0

	for _, t := range c.targets {
		info, err := os.Stat(t.Path)
		if os.IsNotExist(err) {
			continue
		}
		checked++
		if err != nil {
			c.issues = append(c.issues, Issue{
				Client:   t.Client.Name,
				Path:     t.Path,
				Problem:  fmt.Sprintf("cannot stat config file: %v", err),
				Severity: SeverityError,
			})
			continue
		}
		if info.IsDir() {
			c.issues = append(c.issues, Issue{
				Client:   t.Client.Name,
				Path:     t.Path,
				Problem:  "config path is a directory",
				Severity: SeverityError,
			})
			continue
		}
		if runtime.GOOS == "windows" {
			continue
		}

		perm := info.Mode().Perm()
		switch {
		case perm&0o022 != 0:
			c.issues = append(c.issues, permIssue(t, perm, "is writable by other users"))
		case perm&0o044 != 0:
			c.issues = append(c.issues, permIssue(t, perm, "is readable by other users"))
		}
	}

	return result(c.Name(), c.Category(),
		fmt.Sprintf("%d config files have private permissions", checked), c.issues)
}

func permIssue(t Target, perm os.FileMode, problem string) Issue {
	return Issue{
		Client:   t.Client.Name,
		Path:     t.Path,
		Problem:  fmt.Sprintf("%s config %s (mode %04o)", t.Client.DisplayName, problem, perm),
		Severity: SeverityWarning,
		FixHint:  fmt.Sprintf("chmod %o %s", secureFilePerm, t.Path),
		Fixable:  true,
	}
}

// ConfigSyntaxCheck parses every existing client config and its server map.
type ConfigSyntaxCheck struct {
	targets []Target
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a syntax check over targets.
func NewConfigSyntaxCheck(targets []Target) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string { return "config-syntax" }

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string { return "config" }

// Run loads each target through the client's MCP manager.
func (c *ConfigSyntaxCheck) Run(context.Context) *CheckResult {
	var issues []Issue
	parsed := 0

	for _, t := range c.targets {
		if _, err := os.Stat(t.Path); os.IsNotExist(err) {
			continue
		}
		servers, err := t.Client.Manager(t.Path).List()
		if err != nil {
			issues = append(issues, Issue{
				Client:   t.Client.Name,
				Path:     t.Path,
				Problem:  fmt.Sprintf("%s config cannot be read: %v", t.Client.DisplayName, err),
				Severity: SeverityError,
				FixHint:  "fix the JSON by hand or restore a backup",
			})
			continue
		}
		parsed++

		for _, s := range servers {
			if s.Command == "" && s.URL == "" {
				issues = append(issues, Issue{
					Client:   t.Client.Name,
					Path:     t.Path,
					Server:   s.Name,
					Problem:  fmt.Sprintf("server %q has neither a command nor a url", s.Name),
					Severity: SeverityWarning,
					FixHint:  fmt.Sprintf("install-mcp remove %s --client %s", s.Name, t.Client.Name),
				})
			}
		}
	}

	return result(c.Name(), c.Category(), fmt.Sprintf("%d config files parse", parsed), issues)
}

// GatewayCheck inspects mcp-remote gateway entries. Without a detector it
// only validates the --transport flag; with one it also probes each
// server and compares the answer with the flag.
type GatewayCheck struct {
	targets  []Target
	detector transport.Detector
	timeout  time.Duration
}

var _ Check = (*GatewayCheck)(nil)

// NewGatewayCheck creates a gateway check over targets. detector may be nil.
func NewGatewayCheck(targets []Target, detector transport.Detector, timeout time.Duration) *GatewayCheck {
	return &GatewayCheck{targets: targets, detector: detector, timeout: timeout}
}

// Name returns the unique identifier for this check.
func (c *GatewayCheck) Name() string { return "gateway-transport" }

// Category returns the grouping for this check.
func (c *GatewayCheck) Category() string { return "mcp" }

// Run checks every gateway entry in every readable target.
func (c *GatewayCheck) Run(ctx context.Context) *CheckResult {
	var issues []Issue
	gateways := 0

	for _, t := range c.targets {
		servers, err := t.Client.Manager(t.Path).List()
		if err != nil {
			// Reported by ConfigSyntaxCheck.
			continue
		}
		for _, s := range servers {
			e, ok := gateway.ParseEntry(s)
			if !ok {
				continue
			}
			gateways++
			if is, found := c.inspect(ctx, t, s.Name, e); found {
				issues = append(issues, is)
			}
		}
	}

	return result(c.Name(), c.Category(), fmt.Sprintf("%d gateway entries pin a transport", gateways), issues)
}

func (c *GatewayCheck) inspect(ctx context.Context, t Target, name string, e gateway.Entry) (Issue, bool) {
	issue := Issue{
		Client:  t.Client.Name,
		Path:    t.Path,
		Server:  name,
		FixHint: fmt.Sprintf("install-mcp install %s --client %s --name %s --force", redact.URL(e.URL), t.Client.Name, name),
	}

	switch {
	case e.Flag == "":
		issue.Problem = fmt.Sprintf("gateway %q does not pin a transport", name)
		issue.Severity = SeverityWarning
		return issue, true
	case !e.KnownFlag():
		issue.Problem = fmt.Sprintf("gateway %q has unsupported --transport %q", name, e.Flag)
		issue.Severity = SeverityError
		return issue, true
	case !e.Kind().Definite():
		issue.Problem = fmt.Sprintf("gateway %q uses fallback transport %s", name, e.Flag)
		issue.Severity = SeverityInfo
		return issue, true
	case c.detector == nil:
		return Issue{}, false
	}

	detected := c.detector.Detect(ctx, transport.Request{
		URL:     e.URL,
		Timeout: c.timeout,
		Headers: headerMap(e.Headers),
	})
	switch {
	case !detected.Definite():
		issue.Problem = fmt.Sprintf("gateway %q: %s did not answer as an MCP server", name, redact.URL(e.URL))
		issue.Severity = SeverityInfo
		return issue, true
	case detected != e.Kind():
		issue.Problem = fmt.Sprintf("gateway %q is pinned to %s but the server speaks %s",
			name, e.Kind().Describe(), detected.Describe())
		issue.Severity = SeverityWarning
		return issue, true
	}
	return Issue{}, false
}

// headerMap turns gateway "Name: Value" arguments back into headers.
func headerMap(args []string) map[string]string {
	if len(args) == 0 {
		return nil
	}
	h := make(map[string]string, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, ":")
		if !ok {
			continue
		}
		h[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return h
}
