package schoology

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mattmoss82/schoolsum/internal/instrumentation"
	"github.com/mattmoss82/schoolsum/internal/logging"
	"github.com/mattmoss82/schoolsum/internal/timerange"
)

// requestTimeout bounds every portal request. The portal is occasionally slow
// but a scheduled run must never hang.
const requestTimeout = 30 * time.Second

// Login form fields expected by the portal. The build ID is a static token
// the login form accepts for non-browser submissions.
const (
	loginFormID      = "s_user_login_form"
	loginFormBuildID = "df73410-5f4QyA7ldmjQ0xjznEmKINTNl77pSQfm_z0fBVi2idI"
)

// Client holds one authenticated portal session for the duration of a run.
// Authentication cookies live in the client's jar, so all calls must go
// through the same Client. It is not safe for concurrent use: the portal
// keys calendar data to the session's active child, and interleaving
// children would mix their events.
type Client struct {
	baseURL    string
	user       string
	pass       string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

// New creates a portal client for the given base URL and credentials.
// metrics may be a no-op recorder but must not be nil-checked by callers.
func New(baseURL, user, pass string, metrics *instrumentation.Metrics) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		pass:    pass,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: requestTimeout,
		},
		logger:  slog.Default(),
		metrics: metrics,
	}, nil
}

// Login submits the stored credentials to the portal's login form. The
// session cookies it sets are retained for all subsequent calls. A non-2xx
// response is an error; the caller must not proceed without a confirmed
// login.
func (c *Client) Login(ctx context.Context) error {
	payload := url.Values{
		"mail":          {c.user},
		"pass":          {c.pass},
		"school":        {""},
		"school_nid":    {""},
		"form_build_id": {loginFormBuildID},
		"form_id":       {loginFormID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login",
		strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(ctx, req, "login")
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}

	c.logger.Debug("login successful", logging.Operation("portal.login"))
	return nil
}

// EventsForChild switches the session's active child and fetches the raw
// calendar events within rng as one atomic operation. Binding the switch to
// the fetch removes the ordering hazard of the portal's session-scoped
// active-child state.
func (c *Client) EventsForChild(ctx context.Context, child Child, rng timerange.Range) ([]RawEvent, error) {
	if err := c.switchChild(ctx, child); err != nil {
		return nil, err
	}
	return c.calendar(ctx, child, rng)
}

func (c *Client) switchChild(ctx context.Context, child Child) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/parent/switch_child/"+url.PathEscape(child.ID), nil)
	if err != nil {
		return fmt.Errorf("failed to create switch request: %w", err)
	}

	resp, err := c.do(ctx, req, "switch_child")
	if err != nil {
		return fmt.Errorf("failed to switch to child %s: %w", child.Name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("switch to child %s rejected with status %d", child.Name, resp.StatusCode)
	}

	c.logger.Debug("switched active child",
		logging.Operation("portal.switch_child"),
		logging.Child(child.Name))
	return nil
}

func (c *Client) calendar(ctx context.Context, child Child, rng timerange.Range) ([]RawEvent, error) {
	q := url.Values{
		"ajax":  {"1"},
		"start": {strconv.FormatInt(rng.Start, 10)},
		"end":   {strconv.FormatInt(rng.End, 10)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/parent/calendar?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar request: %w", err)
	}

	resp, err := c.do(ctx, req, "calendar")
	if err != nil {
		return nil, fmt.Errorf("calendar request for %s failed: %w", child.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("calendar request for %s rejected with status %d", child.Name, resp.StatusCode)
	}

	var events []RawEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response for %s: %w", child.Name, err)
	}

	c.metrics.RecordEventsFetched(ctx, child.Name, len(events))
	c.logger.Debug("fetched calendar",
		logging.Operation("portal.calendar"),
		logging.Child(child.Name),
		logging.Events(len(events)))
	return events, nil
}

// do executes a request and records its outcome and duration.
func (c *Client) do(ctx context.Context, req *http.Request, operation string) (*http.Response, error) {
	req.Header.Set("User-Agent", "schoolsum/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	status := logging.StatusSuccess
	if err != nil || resp == nil || resp.StatusCode >= 400 {
		status = logging.StatusError
	}
	c.metrics.RecordPortalRequest(ctx, operation, status, duration)

	return resp, err
}
