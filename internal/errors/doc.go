// Package errors provides error handling conventions for the ntc CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions.
//
// # Sentinel Errors
//
// The package re-exports the cockroachdb/errors constructors (New, Newf,
// Wrap, Wrapf) so that every error carries a stack trace. Sentinel errors
// allow callers to check for specific error conditions using [errors.Is]:
//
//	if errors.Is(err, ntcerrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, broken descriptor)
//   - ExitSystem (2): System-related error (I/O, network, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := ntcerrors.NewUserError(ntcerrors.ErrInvalidConfig, "Check ntc.yaml")
//	var exitErr *ntcerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
