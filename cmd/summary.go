package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattmoss82/schoolsum/internal/config"
	"github.com/mattmoss82/schoolsum/internal/instrumentation"
	"github.com/mattmoss82/schoolsum/internal/logging"
	"github.com/mattmoss82/schoolsum/internal/mail"
	"github.com/mattmoss82/schoolsum/internal/report"
	"github.com/mattmoss82/schoolsum/internal/schoology"
	"github.com/mattmoss82/schoolsum/internal/timerange"
)

// Run modes.
const (
	modeWeekly   = "weekly"
	modeTomorrow = "tomorrow"
)

func newSummaryCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch calendar events and deliver the summary report",
		Long: `Log in to the portal, fetch calendar events for every configured child,
and deliver the formatted report. In weekly mode (the default) the report
covers next week; in tomorrow mode it covers tomorrow only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != modeWeekly && mode != modeTomorrow {
				return fmt.Errorf("invalid mode %q: choose %q or %q", mode, modeWeekly, modeTomorrow)
			}
			return runSummary(cmd.Context(), mode)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", modeWeekly, "Summary window: weekly or tomorrow")
	return cmd
}

// windowForMode computes the calendar query window for the run mode.
func windowForMode(mode string, now time.Time) timerange.Range {
	if mode == modeTomorrow {
		return timerange.Tomorrow(now)
	}
	return timerange.NextWeek(now)
}

// titleForMode picks the report title, also used as the email subject.
func titleForMode(mode string) string {
	if mode == modeTomorrow {
		return report.TomorrowTitle
	}
	return report.WeeklyTitle
}

func runSummary(ctx context.Context, mode string) error {
	logger := logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()
	metrics := provider.Metrics()

	client, err := schoology.New(cfg.PortalURL, cfg.PortalUser, cfg.PortalPass, metrics)
	if err != nil {
		return fmt.Errorf("failed to create portal client: %w", err)
	}
	if err := client.Login(ctx); err != nil {
		return fmt.Errorf("portal login failed: %w", err)
	}
	logger.Info("logged in to portal", logging.Mode(mode))

	window := windowForMode(mode, time.Now())

	// Strictly sequential: the one session is shared across children and
	// the portal scopes calendar data to the most recently switched child.
	var children []report.ChildSchedule
	for _, child := range cfg.Children {
		raws, err := client.EventsForChild(ctx, child, window)
		if err != nil {
			return fmt.Errorf("failed to fetch calendar for %s: %w", child.Name, err)
		}

		events := make([]schoology.Event, 0, len(raws))
		for _, raw := range raws {
			event, err := schoology.Normalize(raw)
			if err != nil {
				// One malformed event must not block the rest of the run.
				logger.Warn("skipping malformed event",
					logging.Child(child.Name),
					logging.Err(err))
				continue
			}
			events = append(events, event)
		}

		logger.Info("collected events",
			logging.Child(child.Name),
			logging.Events(len(events)))
		children = append(children, report.ChildSchedule{Name: child.Name, Events: events})
	}

	title := titleForMode(mode)
	body := report.Format(title, children)

	var sender mail.Sender
	if !cfg.Preview {
		smtpSender, err := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.MailUser, cfg.MailPass)
		if err != nil {
			return fmt.Errorf("failed to create mail sender: %w", err)
		}
		sender = smtpSender
	}

	dispatcher := mail.NewDispatcher(cfg.Recipients, sender, cfg.Preview, os.Stdout, metrics)
	if err := dispatcher.Deliver(ctx, title, body); err != nil {
		return fmt.Errorf("report delivery incomplete: %w", err)
	}

	logger.Info("run complete", logging.Mode(mode), logging.Status(logging.StatusSuccess))
	return nil
}
