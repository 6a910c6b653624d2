// Package logging provides structured logging utilities for the schoolsum application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (recipient address anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "portal.calendar")
//	logger.Info("fetched events",
//	    logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("report delivered",
//	    logging.Recipient(addr))
//
// # Security Considerations
//
// Recipient addresses are hashed to prevent PII leakage while still allowing
// correlation of log entries. Credentials are never logged.
package logging
