// Package errors provides error handling conventions for the install-mcp CLI.
//
// The package re-exports the constructors and inspectors of
// github.com/cockroachdb/errors, defines sentinel errors for common failure
// conditions, and an ExitError type that carries a process exit code and an
// optional suggestion for the user.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrUnknownClient) {
//	    // handle unsupported client
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, network, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(errors.ErrUnknownClient, "Run: install-mcp clients")
//	os.Exit(errors.ExitCode(err))
package errors
