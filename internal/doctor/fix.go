package doctor

import (
	"fmt"
	"os"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// Fixer is implemented by checks that can remediate what they found.
// Both methods must be called after Run.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	CanFix() bool

	// Fix attempts to remediate the fixable issues found by Run.
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// CanFix returns true if there are any fixable permission issues.
func (c *FilePermissionCheck) CanFix() bool {
	for _, is := range c.issues {
		if is.Fixable {
			return true
		}
	}
	return false
}

// Fix restricts every flagged file to secureFilePerm.
func (c *FilePermissionCheck) Fix() []FixResult {
	var results []FixResult
	for _, is := range c.issues {
		if !is.Fixable {
			continue
		}

		res := FixResult{Path: is.Path}
		if err := os.Chmod(is.Path, secureFilePerm); err != nil {
			res.Description = fmt.Sprintf("failed to chmod %04o: %v", secureFilePerm, err)
			res.Error = errors.Wrapf(err, "chmod %04o %s", secureFilePerm, is.Path)
		} else {
			res.Fixed = true
			res.Description = fmt.Sprintf("chmod %04o", secureFilePerm)
		}
		results = append(results, res)
	}
	return results
}

// FixAll runs Fix on every check of r that has fixable issues.
func (r *Runner) FixAll() []FixResult {
	var results []FixResult
	for _, c := range r.checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			results = append(results, f.Fix()...)
		}
	}
	return results
}
