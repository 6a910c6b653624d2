// Package instrumentation provides OpenTelemetry metrics for a single run.
//
// Because the program is a one-shot script rather than a long-running
// service, there is no scrape endpoint; metrics are exported to stdout via
// the OpenTelemetry stdout exporter and flushed on shutdown. Export is
// opt-in through METRICS_EXPORTER=stdout and can be forced off with
// INSTRUMENTATION_ENABLED=false.
//
// Recorded instruments:
//   - portal_requests_total / portal_request_duration_seconds: portal HTTP calls
//   - events_fetched_total: calendar events returned per child
//   - mail_deliveries_total: report delivery attempts by status
//
// When disabled, the Metrics recorder is a no-op so call sites never need to
// branch on instrumentation state.
package instrumentation
