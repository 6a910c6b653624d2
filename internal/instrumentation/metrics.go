package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrChild     = "child"
)

// Metrics provides methods for recording observability metrics for one run.
// The zero value is a no-op recorder.
type Metrics struct {
	portalRequestsTotal   metric.Int64Counter
	portalRequestDuration metric.Float64Histogram
	eventsFetchedTotal    metric.Int64Counter
	mailDeliveriesTotal   metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.portalRequestsTotal, err = meter.Int64Counter(
		"portal_requests_total",
		metric.WithDescription("Total number of portal HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal_requests_total counter: %w", err)
	}

	m.portalRequestDuration, err = meter.Float64Histogram(
		"portal_request_duration_seconds",
		metric.WithDescription("Portal HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal_request_duration_seconds histogram: %w", err)
	}

	m.eventsFetchedTotal, err = meter.Int64Counter(
		"events_fetched_total",
		metric.WithDescription("Total number of calendar events fetched"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create events_fetched_total counter: %w", err)
	}

	m.mailDeliveriesTotal, err = meter.Int64Counter(
		"mail_deliveries_total",
		metric.WithDescription("Total number of report delivery attempts"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail_deliveries_total counter: %w", err)
	}

	return m, nil
}

// RecordPortalRequest records one portal HTTP request with its outcome and duration.
func (m *Metrics) RecordPortalRequest(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.portalRequestsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.portalRequestsTotal.Add(ctx, 1, attrs)
	m.portalRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordEventsFetched records how many events a calendar query returned.
func (m *Metrics) RecordEventsFetched(ctx context.Context, child string, count int) {
	if m == nil || m.eventsFetchedTotal == nil {
		return
	}
	m.eventsFetchedTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrChild, child),
	))
}

// RecordMailDelivery records one report delivery attempt.
func (m *Metrics) RecordMailDelivery(ctx context.Context, status string) {
	if m == nil || m.mailDeliveriesTotal == nil {
		return
	}
	m.mailDeliveriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
}
