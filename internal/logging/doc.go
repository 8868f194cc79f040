// Package logging provides structured logging for the install-mcp CLI using slog.
//
// The package supports a colorized TTY text format and JSON, verbosity-based
// levels including [LevelTrace], and helpers for testing. Attribute values
// that look like credentials (Authorization headers, API keys, known token
// prefixes) are masked by both formats.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("probing", "url", u)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
