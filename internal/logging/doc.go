// Package logging provides structured logging for the ntc CLI using slog.
//
// Toolchain discovery is chatty by nature: every hint the locator probes is
// logged at [LevelTrace], every resolved toolchain root at Debug, and every
// unavailable toolchain family as a Warn advisory. The default level is Warn
// so that advisories survive a plain invocation.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// For tests, use [ForTest] to route log output through t.Log.
package logging
