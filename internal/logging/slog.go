package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyChild     = "child"
	KeyMode      = "mode"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyRecipient = "recipient"
	KeyEvents    = "events"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithChild returns a logger with the child attribute set.
func WithChild(logger *slog.Logger, child string) *slog.Logger {
	return logger.With(slog.String(KeyChild, child))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Child returns a slog attribute for the child name.
func Child(name string) slog.Attr {
	return slog.String(KeyChild, name)
}

// Mode returns a slog attribute for the run mode.
func Mode(mode string) slog.Attr {
	return slog.String(KeyMode, mode)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Events returns a slog attribute for an event count.
func Events(n int) slog.Attr {
	return slog.Int(KeyEvents, n)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email for logging purposes.
// This allows correlation of log entries without exposing PII.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// Recipient returns a slog attribute with the anonymized recipient address.
func Recipient(email string) slog.Attr {
	return slog.String(KeyRecipient, AnonymizeEmail(email))
}

// ExtractDomain extracts the domain part from an email address.
// This is useful for lower-cardinality logging where the full address would
// create too many unique values.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns a slog attribute for the email domain (lower cardinality than the full address).
func Domain(email string) slog.Attr {
	return slog.String("recipient_domain", ExtractDomain(email))
}
