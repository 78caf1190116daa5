// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Every component of the binary manager receives its logger through its
// constructor; there is no package-level logger.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("staged binary", zap.String("path", path))
//	logger.Error("scan failed", zap.Error(err))
package logging
