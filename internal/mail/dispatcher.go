package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mattmoss82/schoolsum/internal/instrumentation"
	"github.com/mattmoss82/schoolsum/internal/logging"
)

// Dispatcher delivers the rendered report: to stdout in preview mode, or to
// every configured recipient otherwise.
type Dispatcher struct {
	recipients []string
	sender     Sender
	preview    bool
	out        io.Writer
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

// NewDispatcher creates a dispatcher. In preview mode sender may be nil; the
// report is written to out and no network call is made.
func NewDispatcher(recipients []string, sender Sender, preview bool, out io.Writer, metrics *instrumentation.Metrics) *Dispatcher {
	return &Dispatcher{
		recipients: recipients,
		sender:     sender,
		preview:    preview,
		out:        out,
		logger:     slog.Default(),
		metrics:    metrics,
	}
}

// Deliver sends the report to every recipient, or prints it in preview mode.
// A failure for one recipient is logged and does not stop delivery to the
// rest; all failures are joined into the returned error.
func (d *Dispatcher) Deliver(ctx context.Context, subject, body string) error {
	if d.preview {
		if _, err := fmt.Fprintln(d.out, body); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		return nil
	}

	var errs []error
	for _, to := range d.recipients {
		if err := d.sender.Send(ctx, to, subject, body); err != nil {
			d.metrics.RecordMailDelivery(ctx, logging.StatusError)
			d.logger.Error("report delivery failed",
				logging.Operation("mail.send"),
				logging.Recipient(to),
				logging.Err(err))
			errs = append(errs, fmt.Errorf("delivery to %s failed: %w", logging.AnonymizeEmail(to), err))
			continue
		}
		d.metrics.RecordMailDelivery(ctx, logging.StatusSuccess)
		d.logger.Info("report delivered",
			logging.Operation("mail.send"),
			logging.Recipient(to),
			logging.Domain(to))
	}
	return errors.Join(errs...)
}
