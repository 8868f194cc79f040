// Package doctor runs diagnostic checks over the MCP client config files
// install-mcp manages.
package doctor

import (
	"fmt"
	"time"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// Severity indicates the importance level of a check result.
type Severity int

const (
	// SeverityPass indicates the check passed without issues.
	SeverityPass Severity = iota

	// SeverityInfo indicates informational output, not a problem.
	SeverityInfo

	// SeverityWarning indicates a potential issue that doesn't prevent operation.
	SeverityWarning

	// SeverityError indicates a problem that prevents proper operation.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	for v := SeverityPass; v <= SeverityError; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return errors.Newf("unknown severity %q", b)
}

// CheckResult represents the outcome of a single diagnostic check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Issues lists the individual findings behind a non-pass status.
	Issues []Issue `json:"issues,omitempty"`

	// Fixable indicates whether doctor --fix can resolve some issues.
	Fixable bool `json:"fixable,omitempty"`

	// FixHint provides guidance on how to resolve the issue.
	FixHint string `json:"fix_hint,omitempty"`
}

// Issue is one finding about one client config.
type Issue struct {
	Client   string   `json:"client"`
	Path     string   `json:"path"`
	Server   string   `json:"server,omitempty"`
	Problem  string   `json:"problem"`
	Severity Severity `json:"severity"`
	FixHint  string   `json:"fix_hint,omitempty"`
	Fixable  bool     `json:"-"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Report aggregates all check results with timing and summary.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// result builds a CheckResult from issues, taking the highest issue
// severity as the status.
func result(name, category, passMsg string, issues []Issue) *CheckResult {
	r := &CheckResult{Name: name, Category: category, Status: SeverityPass, Message: passMsg}
	if len(issues) == 0 {
		return r
	}

	r.Issues = issues
	for _, is := range issues {
		if is.Severity > r.Status {
			r.Status = is.Severity
			r.Message = is.Problem
			r.FixHint = is.FixHint
		}
		if is.Fixable {
			r.Fixable = true
		}
	}
	if n := len(issues); n > 1 {
		r.Message = fmt.Sprintf("%d issues, worst: %s", n, r.Message)
	}
	return r
}
