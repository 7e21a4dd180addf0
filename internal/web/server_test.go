package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pizza-dashboard/internal/common/database"
	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/directory"
	"pizza-dashboard/internal/directory/directorytest"
	"pizza-dashboard/internal/models"
	"pizza-dashboard/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	dir     *directorytest.Server
	redis   *miniredis.Miniredis
	server  *Server
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := directorytest.NewServer()
	t.Cleanup(dir.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.NewTestLogger(t)
	client := directory.NewClient(directory.Options{
		BaseURL:        dir.URL,
		Timeout:        5 * time.Second,
		ValidateSchema: true,
		Logger:         log,
	})

	srv, err := NewServer(Dependencies{
		Directory: client,
		Sessions:  session.NewStore(rdb, "session:", time.Hour, log),
		Redis:     &database.RedisClient{Client: rdb},
		Settings:  dashboard.DefaultSettings(),
		Cookie:    CookieOptions{Name: "pizza_session", MaxAge: time.Hour},
		Logger:    log,
		Metrics:   true,
	})
	require.NoError(t, err)

	return &harness{t: t, dir: dir, redis: mr, server: srv, handler: srv.Router()}
}

func (h *harness) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login(email, password string) *http.Cookie {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/login", url.Values{"email": {email}, "password": {password}}, nil)
	require.Equal(h.t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(h.t, "/admin-dashboard", rec.Header().Get("Location"))
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pizza_session" {
			return c
		}
	}
	h.t.Fatal("login did not set a session cookie")
	return nil
}

func (h *harness) loginAdmin() *http.Cookie {
	return h.login(directorytest.AdminUser.Email, directorytest.AdminUser.Password)
}

// deleteCalls returns every DELETE the dashboard sent under path.
func (h *harness) deleteCalls(path string) []directorytest.Call {
	var out []directorytest.Call
	for _, c := range h.dir.Calls() {
		if c.Method == http.MethodDelete && strings.HasPrefix(c.Path, path) {
			out = append(out, c)
		}
	}
	return out
}

func (h *harness) franchiseCalls() []directorytest.Call {
	var out []directorytest.Call
	for _, c := range h.dir.Calls() {
		if c.Method == http.MethodGet && c.Path == "/api/franchise" {
			out = append(out, c)
		}
	}
	return out
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, location, rec.Header().Get("Location"))
}

func TestHealthAndReady(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = h.do(http.MethodGet, "/ready", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	h.redis.SetError("LOADING redis is loading the dataset in memory")
	rec = h.do(http.MethodGet, "/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/health", nil, nil)

	rec := h.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dashboard_http_requests_total")
}

func TestRootAndSessionRedirects(t *testing.T) {
	h := newHarness(t)

	assertRedirect(t, h.do(http.MethodGet, "/", nil, nil), "/admin-dashboard")
	assertRedirect(t, h.do(http.MethodGet, "/admin-dashboard", nil, nil), "/login")

	bogus := &http.Cookie{Name: "pizza_session", Value: "5f0e4c8a-2d7b-4d0c-9a51-1f3a0b6e7c21"}
	assertRedirect(t, h.do(http.MethodGet, "/admin-dashboard", nil, bogus), "/login")
	assert.Zero(t, h.dir.CallCount())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{
			name:       "invalid email never reaches the directory",
			form:       url.Values{"email": {"not-an-email"}, "password": {"x"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "enter a valid email address",
		},
		{
			name:       "missing password",
			form:       url.Values{"email": {"a@jwt.com"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "password is required",
		},
		{
			name:       "unknown credentials",
			form:       url.Values{"email": {"a@jwt.com"}, "password": {"wrong"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid email or password.",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			rec := h.do(http.MethodPost, "/login", tt.form, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, tt.wantCalls, h.dir.CallCount())
			assert.Empty(t, h.redis.Keys())
		})
	}
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/register", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Full name")

	rec = h.do(http.MethodPost, "/register", url.Values{"email": {"pizza@jwt.com"}, "password": {"diner"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	assert.Contains(t, rec.Body.String(), "pizza@jwt.com")

	rec = h.do(http.MethodPost, "/register", url.Values{"name": {"pizza diner"}, "email": {"pizza@jwt.com"}, "password": {"diner"}}, nil)
	assertRedirect(t, rec, "/admin-dashboard")
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pizza_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Len(t, h.redis.Keys(), 1)
	assert.Len(t, h.dir.Users(), 3)

	// a fresh diner is signed in but still cannot see the dashboard
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Code)

	admin := h.loginAdmin()
	h.do(http.MethodPost, "/admin-dashboard/users/open", nil, admin)
	h.do(http.MethodPost, "/admin-dashboard/users/search", url.Values{"name": {"pizza diner"}}, admin)
	body := h.do(http.MethodGet, "/admin-dashboard", nil, admin).Body.String()
	assert.Contains(t, body, "pizza@jwt.com")
	assert.NotContains(t, body, "Kai Chen")
}

func TestDashboard_NonAdminGetsNotFoundWithoutDirectoryCalls(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(directorytest.DinerUser.Email, directorytest.DinerUser.Password)
	h.dir.ResetCalls()

	rec := h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Oops")

	rec = h.do(http.MethodPost, "/admin-dashboard/users/open", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Zero(t, h.dir.CallCount())
	assert.Zero(t, h.server.ActiveSessions())
}

func TestDashboard_BrowseFranchises(t *testing.T) {
	h := newHarness(t)
	h.dir.SetFranchises([]models.Franchise{
		{ID: "1", Name: "Alpha"}, {ID: "2", Name: "Bravo"}, {ID: "3", Name: "Charlie"},
		{ID: "4", Name: "Delta"}, {ID: "5", Name: "Echo"},
	})
	cookie := h.loginAdmin()

	rec := h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Alpha")
	assert.Contains(t, body, "Charlie")
	assert.NotContains(t, body, "Delta")

	calls := h.franchiseCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"page": "0", "limit": "3", "name": "*"}, calls[0].Query)
	assert.Equal(t, "token-1", calls[0].Token)

	// a second render reuses the mounted state
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	assert.Len(t, h.franchiseCalls(), 1)

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/franchises/page?delta=1", nil, cookie), "/admin-dashboard")
	calls = h.franchiseCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "1", calls[1].Query["page"])

	body = h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.Contains(t, body, "Delta")
	assert.Contains(t, body, "Echo")
	assert.NotContains(t, body, "Alpha")

	// no further pages: the request is not issued
	h.do(http.MethodPost, "/admin-dashboard/franchises/page?delta=1", nil, cookie)
	assert.Len(t, h.franchiseCalls(), 2)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/admin-dashboard/franchises/page?delta=abc", nil, cookie).Code)
	assert.Equal(t, 1, h.server.ActiveSessions())
}

func TestDashboard_FilterFranchises(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	rec := h.do(http.MethodPost, "/admin-dashboard/franchises/filter", url.Values{"filterFranchise": {"Lota"}}, cookie)
	assertRedirect(t, rec, "/admin-dashboard")

	calls := h.franchiseCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, map[string]string{"page": "0", "limit": "10", "name": "*Lota*"}, calls[1].Query)

	body := h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.Contains(t, body, "LotaPizza")
	assert.NotContains(t, body, "PizzaCorp")
	assert.Contains(t, body, `value="Lota"`)
}

func TestDashboard_UserModal(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()

	body := h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.NotContains(t, body, "Page 1 of")
	assert.Contains(t, body, ">List Users</button>")

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/users/open", nil, cookie), "/admin-dashboard")
	body = h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.Contains(t, body, "Kai Chen")
	assert.Contains(t, body, `aria-label="Name"`)
	assert.Contains(t, body, ">X</button>")
	assert.Contains(t, body, "a@jwt.com")
	assert.Contains(t, body, "Page 1 of 1")

	h.do(http.MethodPost, "/admin-dashboard/users/search", url.Values{"name": {"KAI"}}, cookie)
	body = h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.Contains(t, body, "Kai Chen")
	assert.NotContains(t, body, "a@jwt.com")

	h.do(http.MethodPost, "/admin-dashboard/users/close", nil, cookie)
	body = h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.NotContains(t, body, "Page 1 of")
	assert.NotContains(t, body, "Kai Chen")
}

func TestDashboard_DeleteUser(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodPost, "/admin-dashboard/users/open", nil, cookie)

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/users/3/delete", nil, cookie), "/admin-dashboard")

	for _, u := range h.dir.Users() {
		assert.NotEqual(t, models.ID("3"), u.ID)
	}
	body := h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.NotContains(t, body, "Kai Chen")
	assert.Contains(t, body, "Admin Name")
}

func TestDashboard_DeleteIgnoresUnlistedUsers(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/users/3/delete", nil, cookie), "/admin-dashboard")

	h.do(http.MethodPost, "/admin-dashboard/users/open", nil, cookie)
	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/users/99/delete", nil, cookie), "/admin-dashboard")

	assert.Empty(t, h.deleteCalls("/api/user/"))
	assert.Len(t, h.dir.Users(), 2)
}

func TestDashboard_UnauthorizedEndsSession(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	require.Len(t, h.redis.Keys(), 1)

	h.dir.Fail(http.MethodGet, "/api/user", http.StatusUnauthorized)
	rec := h.do(http.MethodPost, "/admin-dashboard/users/open", nil, cookie)
	assertRedirect(t, rec, "/login")

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pizza_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")
	assert.Empty(t, h.redis.Keys())
	assert.Zero(t, h.server.ActiveSessions())

	assertRedirect(t, h.do(http.MethodGet, "/admin-dashboard", nil, cookie), "/login")
}

func TestDashboard_ForbiddenRendersAccessDenied(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.dir.Fail(http.MethodGet, "/api/franchise", http.StatusForbidden)

	rec := h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")

	h.dir.ClearFailures()
	rec = h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LotaPizza")
}

func TestDashboard_ServerErrorShowsBanner(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	h.dir.Fail(http.MethodGet, "/api/user", http.StatusInternalServerError)
	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/users/open", nil, cookie), "/admin-dashboard")

	body := h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "LotaPizza")

	h.do(http.MethodPost, "/admin-dashboard/error/dismiss", nil, cookie)
	body = h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String()
	assert.NotContains(t, body, `role="alert"`)
}

func TestCreateFranchise(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/franchises/create", nil, cookie), "/admin-dashboard/create-franchise")
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/admin-dashboard/create-franchise", nil, cookie).Code)

	rec := h.do(http.MethodPost, "/admin-dashboard/create-franchise", url.Values{"email": {"d@jwt.com"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")

	rec = h.do(http.MethodPost, "/admin-dashboard/create-franchise", url.Values{"name": {"pizzaPocket"}, "email": {"nobody@jwt.com"}}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No user is registered with that admin email.")

	rec = h.do(http.MethodPost, "/admin-dashboard/create-franchise", url.Values{"name": {"pizzaPocket"}, "email": {"d@jwt.com"}}, cookie)
	assertRedirect(t, rec, "/admin-dashboard")

	var created bool
	for _, f := range h.dir.Franchises() {
		if f.Name == "pizzaPocket" {
			created = true
			assert.Equal(t, []string{"Kai Chen"}, f.AdminNames())
		}
	}
	assert.True(t, created)
}

func TestCloseFranchiseFlow(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	rec := h.do(http.MethodPost, "/admin-dashboard/franchises/2/close", nil, cookie)
	assertRedirect(t, rec, "/admin-dashboard/close-franchise?franchise=2")

	rec = h.do(http.MethodGet, "/admin-dashboard/close-franchise?franchise=2", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LotaPizza")

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/close-franchise?franchise=2", nil, cookie), "/admin-dashboard")
	for _, f := range h.dir.Franchises() {
		assert.NotEqual(t, models.ID("2"), f.ID)
	}
	assert.NotContains(t, h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String(), "LotaPizza")

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/admin-dashboard/close-franchise?franchise=99", nil, cookie).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/admin-dashboard/franchises/99/close", nil, cookie).Code)
}

func TestCloseStoreFlow(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	rec := h.do(http.MethodPost, "/admin-dashboard/franchises/2/stores/4/close", nil, cookie)
	assertRedirect(t, rec, "/admin-dashboard/close-store?franchise=2&store=4")

	rec = h.do(http.MethodGet, "/admin-dashboard/close-store?franchise=2&store=4", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lehi")

	assertRedirect(t, h.do(http.MethodPost, "/admin-dashboard/close-store?franchise=2&store=4", nil, cookie), "/admin-dashboard")
	for _, f := range h.dir.Franchises() {
		if f.ID == "2" {
			assert.Empty(t, f.Stores)
		}
	}
	assert.NotContains(t, h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Body.String(), "Lehi")
}

func TestCloseRejectsFranchisesOffThePage(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)
	h.do(http.MethodPost, "/admin-dashboard/franchises/filter", url.Values{"filterFranchise": {"topSpot"}}, cookie)

	rec := h.do(http.MethodPost, "/admin-dashboard/close-franchise?franchise=2", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = h.do(http.MethodPost, "/admin-dashboard/close-store?franchise=2&store=4", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, h.deleteCalls("/api/franchise"))
	assert.Len(t, h.dir.Franchises(), 3)
}

func TestViewModelsExpireWithTheirSessions(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		cookie := h.loginAdmin()
		require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Code)
	}
	require.Equal(t, 5, h.server.ActiveSessions())

	h.redis.FastForward(2 * time.Hour)
	h.server.views.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Empty(t, h.redis.Keys())
	assert.Zero(t, h.server.ActiveSessions())

	cookie := h.loginAdmin()
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/admin-dashboard", nil, cookie).Code)
	assert.Equal(t, 1, h.server.ActiveSessions())
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	cookie := h.loginAdmin()
	h.do(http.MethodGet, "/admin-dashboard", nil, cookie)

	assertRedirect(t, h.do(http.MethodPost, "/logout", nil, cookie), "/login")
	assert.Empty(t, h.redis.Keys())
	assert.Zero(t, h.server.ActiveSessions())

	var loggedOut bool
	for _, c := range h.dir.Calls() {
		if c.Method == http.MethodDelete && c.Path == "/api/auth" {
			loggedOut = c.Token == "token-1"
		}
	}
	assert.True(t, loggedOut)
}

func TestFormatRevenue(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		0.25:      "0.25",
		100:       "100",
		1000:      "1,000",
		12345.5:   "12,345.5",
		-1234:     "-1,234",
		1234567.8: "1,234,567.8",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatRevenue(in), "input %v", in)
	}
}

func TestNavigationURL(t *testing.T) {
	franchise := &models.Franchise{ID: "2"}
	store := &models.Store{ID: "4"}

	assert.Equal(t, "/admin-dashboard/create-franchise", navigationURL(&dashboard.Navigation{Target: dashboard.NavCreateFranchise}))
	assert.Equal(t, "/admin-dashboard/close-franchise?franchise=2", navigationURL(&dashboard.Navigation{Target: dashboard.NavCloseFranchise, Franchise: franchise}))
	assert.Equal(t, "/admin-dashboard/close-store?franchise=2&store=4", navigationURL(&dashboard.Navigation{Target: dashboard.NavCloseStore, Franchise: franchise, Store: store}))
}
