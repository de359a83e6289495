// Package log builds the slog loggers used by mseo.
//
// Every logger returned by this package wraps its output handler in a
// RedactHandler. Site files and HTTP requests can carry values that must
// not end up in logs shared in CI output: search engine verification
// tokens, analytics keys, Authorization headers of the serve command.
// Attributes whose key names such a value, or whose value looks like a
// bearer token or JWT, are replaced with Mask.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Info("page rendered", "path", "/about", "token", tok) // token=[redacted]
package log
