// Package mail delivers the rendered report.
//
// In preview mode the report is written to an io.Writer (stdout in
// production) and no network connection is made. Otherwise one plain-text
// message per recipient is submitted over an SSL SMTP session. Per-recipient
// failures are logged and collected rather than aborting the remaining
// deliveries.
package mail
