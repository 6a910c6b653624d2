package schoology

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattmoss82/schoolsum/internal/instrumentation"
	"github.com/mattmoss82/schoolsum/internal/timerange"
)

const testSessionCookie = "SESS_test"

// fakePortal emulates the portal's login, child-switch, and calendar
// endpoints with session-cookie authentication.
type fakePortal struct {
	t *testing.T

	loginStatus    int
	switchStatus   int
	calendarStatus int
	events         []RawEvent

	loginForm     map[string]string
	switchedChild string
	calendarQuery map[string]string
	requests      []string
}

func newFakePortal(t *testing.T) *fakePortal {
	return &fakePortal{
		t:              t,
		loginStatus:    http.StatusOK,
		switchStatus:   http.StatusOK,
		calendarStatus: http.StatusOK,
	}
}

func (p *fakePortal) server() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		p.requests = append(p.requests, "login")
		require.NoError(p.t, r.ParseForm())
		p.loginForm = map[string]string{}
		for key := range r.PostForm {
			p.loginForm[key] = r.PostForm.Get(key)
		}
		if p.loginStatus != http.StatusOK {
			w.WriteHeader(p.loginStatus)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: testSessionCookie, Value: "granted"})
	})

	mux.HandleFunc("/parent/switch_child/", func(w http.ResponseWriter, r *http.Request) {
		p.requests = append(p.requests, "switch_child")
		if !p.authenticated(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		p.switchedChild = strings.TrimPrefix(r.URL.Path, "/parent/switch_child/")
		w.WriteHeader(p.switchStatus)
	})

	mux.HandleFunc("/parent/calendar", func(w http.ResponseWriter, r *http.Request) {
		p.requests = append(p.requests, "calendar")
		if !p.authenticated(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		p.calendarQuery = map[string]string{}
		for key := range r.URL.Query() {
			p.calendarQuery[key] = r.URL.Query().Get(key)
		}
		if p.calendarStatus != http.StatusOK {
			w.WriteHeader(p.calendarStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(p.t, json.NewEncoder(w).Encode(p.events))
	})

	return httptest.NewServer(mux)
}

func (p *fakePortal) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(testSessionCookie)
	return err == nil && cookie.Value == "granted"
}

func newTestClient(t *testing.T, baseURL string) *Client {
	client, err := New(baseURL, "parent@example.com", "secret", &instrumentation.Metrics{})
	require.NoError(t, err)
	return client
}

func TestLoginSubmitsForm(t *testing.T) {
	portal := newFakePortal(t)
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	require.NoError(t, client.Login(context.Background()))

	assert.Equal(t, "parent@example.com", portal.loginForm["mail"])
	assert.Equal(t, "secret", portal.loginForm["pass"])
	assert.Equal(t, "s_user_login_form", portal.loginForm["form_id"])
	assert.Contains(t, portal.loginForm, "form_build_id")
}

func TestLoginFailureIsAnError(t *testing.T) {
	portal := newFakePortal(t)
	portal.loginStatus = http.StatusUnauthorized
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestEventsForChild(t *testing.T) {
	portal := newFakePortal(t)
	portal.events = []RawEvent{
		{TitleText: "Algebra Quiz", Start: "2025-10-06 09:00:00", ContentTitle: "Algebra", EType: "assessment"},
		{TitleText: "Book Report", Start: "2025-10-07 15:00:00", ContentTitle: "English", EType: "assignment"},
	}
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	rng := timerange.Range{Start: 1759704000, End: 1760222400}
	events, err := client.EventsForChild(ctx, Child{Name: "Alex", ID: "12345"}, rng)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// The session cookie from login must have authenticated both calls,
	// and the switch must precede the fetch.
	assert.Equal(t, []string{"login", "switch_child", "calendar"}, portal.requests)
	assert.Equal(t, "12345", portal.switchedChild)
	assert.Equal(t, "1", portal.calendarQuery["ajax"])
	assert.Equal(t, "1759704000", portal.calendarQuery["start"])
	assert.Equal(t, "1760222400", portal.calendarQuery["end"])
	assert.Equal(t, "Algebra Quiz", events[0].TitleText)
	assert.Equal(t, "Book Report", events[1].TitleText)
}

func TestEventsForChildWithoutLogin(t *testing.T) {
	portal := newFakePortal(t)
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.EventsForChild(context.Background(), Child{Name: "Alex", ID: "12345"}, timerange.Range{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSwitchFailureStopsFetch(t *testing.T) {
	portal := newFakePortal(t)
	portal.switchStatus = http.StatusNotFound
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	_, err := client.EventsForChild(ctx, Child{Name: "Alex", ID: "nope"}, timerange.Range{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Alex")
	assert.NotContains(t, portal.requests, "calendar", "calendar must not be queried after a failed switch")
}

func TestCalendarErrorStatus(t *testing.T) {
	portal := newFakePortal(t)
	portal.calendarStatus = http.StatusInternalServerError
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	_, err := client.EventsForChild(ctx, Child{Name: "Alex", ID: "12345"}, timerange.Range{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCalendarEmptyList(t *testing.T) {
	portal := newFakePortal(t)
	portal.events = []RawEvent{}
	srv := portal.server()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	events, err := client.EventsForChild(ctx, Child{Name: "Alex", ID: "12345"}, timerange.Range{})
	require.NoError(t, err)
	assert.Empty(t, events)
}
