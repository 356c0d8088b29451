package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"safar/internal/auth"
	"safar/internal/backoffice"
	"safar/internal/command"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
	"safar/internal/ratelimiter"
	"safar/internal/store"

	"go.uber.org/zap"
)

type testNotifier struct{ sent atomic.Int64 }

func (n *testNotifier) BookingStatusChanged(context.Context, bookings.Booking) error {
	n.sent.Add(1)
	return nil
}

func newTestApplication(t *testing.T, cfg config) (*application, *store.Memory) {
	t.Helper()

	created := time.Now().AddDate(0, 0, -30)
	mem := store.NewMemory(store.Seed{
		Users: []users.User{
			{ID: 1, Name: "Asha", Email: "asha@safar.test", Role: users.RoleAdmin, IsActive: true},
			{ID: 2, Name: "Bikash", Email: "bikash@example.com", Role: users.RoleCustomer, IsActive: true},
			{ID: 3, Name: "Former", Email: "former@safar.test", Role: users.RoleAdmin, IsActive: false},
		},
		Listings: []listings.Listing{
			{ID: 10, Kind: listings.KindProperty, OwnerID: 2, Title: "Lakeside Inn", Price: 1500, ApprovalStatus: listings.StatusPending, CreatedAt: created},
			{ID: 11, Kind: listings.KindProperty, OwnerID: 2, Title: "Hill Villa", Price: 3500, ApprovalStatus: listings.StatusApproved, IsAvailable: true, CreatedAt: created},
		},
		Bookings: []bookings.Booking{
			{ID: 20, ListingID: 11, UserID: 2, Status: bookings.StatusPending, TotalPrice: 7000, CreatedAt: created},
			{ID: 21, ListingID: 11, UserID: 2, Status: bookings.StatusConfirmed, TotalPrice: 3500, CreatedAt: created},
		},
	})

	if cfg.auth.token.secret == "" {
		cfg.auth.token = tokenConfig{secret: "test-secret", exp: time.Hour, iss: "Safar"}
	}
	logger := zap.NewNop().Sugar()
	notifier := &testNotifier{}

	app := &application{
		config:        cfg,
		store:         mem,
		backoffice:    backoffice.New(mem, logger),
		commands:      command.NewHandler(mem, notifier, logger),
		tickets:       tickets.NewReferenceGenerator("test"),
		logger:        logger,
		authenticator: auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.iss, cfg.auth.token.iss, cfg.auth.token.exp),
		rateLimiter:   ratelimiter.New(cfg.rateLimiter),
	}
	return app, mem
}

func (app *application) tokenFor(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := app.authenticator.GenerateAccessToken(userID, role)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected the response code to be %d and we got %d", expected, actual)
	}
}

func TestAdminAuth(t *testing.T) {
	app, _ := newTestApplication(t, config{})
	mux := app.mount()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"customer token", app.tokenFor(t, 2, users.RoleCustomer), http.StatusForbidden},
		{"deactivated admin", app.tokenFor(t, 3, users.RoleAdmin), http.StatusForbidden},
		{"unknown admin", app.tokenFor(t, 99, users.RoleAdmin), http.StatusUnauthorized},
		{"admin", app.tokenFor(t, 1, users.RoleAdmin), http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := executeRequest(req, mux)
			checkResponseCode(t, tc.want, rr.Code)
		})
	}
}

func TestHealthRequiresBasicAuth(t *testing.T) {
	cfg := config{env: "test"}
	cfg.auth.basic = basicConfig{user: "ops", pass: "secret"}
	app, _ := newTestApplication(t, cfg)
	mux := app.mount()

	req, _ := http.NewRequest(http.MethodGet, "/v1/health", nil)
	checkResponseCode(t, http.StatusUnauthorized, executeRequest(req, mux).Code)

	req, _ = http.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("ops:secret")))
	checkResponseCode(t, http.StatusOK, executeRequest(req, mux).Code)
}

func TestListBookings(t *testing.T) {
	app, _ := newTestApplication(t, config{})
	mux := app.mount()

	req, _ := http.NewRequest(http.MethodGet, "/v1/admin/bookings?status=confirmed&limit=20", nil)
	req.Header.Set("Authorization", app.tokenFor(t, 1, users.RoleAdmin))
	rr := executeRequest(req, mux)
	checkResponseCode(t, http.StatusOK, rr.Code)

	var body struct {
		Data backoffice.BookingsView `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data.Rows) != 1 || body.Data.Rows[0].ID != 21 {
		t.Fatalf("rows = %+v", body.Data.Rows)
	}
	if body.Data.Summary.Counts["total"] != 2 || body.Data.Summary.Counts["pending"] != 1 {
		t.Fatalf("counts = %v", body.Data.Summary.Counts)
	}
}

func TestListListingsByKind(t *testing.T) {
	app, _ := newTestApplication(t, config{})
	mux := app.mount()

	req, _ := http.NewRequest(http.MethodGet, "/v1/admin/properties?priceRange=1000-3000", nil)
	req.Header.Set("Authorization", app.tokenFor(t, 1, users.RoleAdmin))
	rr := executeRequest(req, mux)
	checkResponseCode(t, http.StatusOK, rr.Code)
	if !strings.Contains(rr.Body.String(), "Lakeside Inn") || strings.Contains(rr.Body.String(), "Hill Villa") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}

	req, _ = http.NewRequest(http.MethodGet, "/v1/admin/tours", nil)
	req.Header.Set("Authorization", app.tokenFor(t, 1, users.RoleAdmin))
	checkResponseCode(t, http.StatusOK, executeRequest(req, mux).Code)
}

func postAction(t *testing.T, app *application, mux http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Authorization", app.tokenFor(t, 1, users.RoleAdmin))
	req.Header.Set("User-Agent", "admin-console/1.0")
	return executeRequest(req, mux)
}

func TestBookingActions(t *testing.T) {
	app, mem := newTestApplication(t, config{})
	mux := app.mount()

	rr := postAction(t, app, mux, "/v1/admin/bookings/20/actions", map[string]any{"action": "confirm"})
	checkResponseCode(t, http.StatusOK, rr.Code)
	var resp ActionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.AuditID == 0 {
		t.Fatalf("response = %+v", resp)
	}

	entries := mem.AuditLog.All()
	if len(entries) != 1 || entries[0].ActorID != 1 || entries[0].UserAgent != "admin-console/1.0" || entries[0].RequestID == "" {
		t.Fatalf("audit = %+v", entries)
	}

	tests := []struct {
		name string
		path string
		body map[string]any
		want int
	}{
		{"repeat confirm", "/v1/admin/bookings/20/actions", map[string]any{"action": "confirm"}, http.StatusConflict},
		{"cancel without reason", "/v1/admin/bookings/21/actions", map[string]any{"action": "cancel"}, http.StatusBadRequest},
		{"unknown action", "/v1/admin/bookings/21/actions", map[string]any{"action": "teleport"}, http.StatusBadRequest},
		{"unknown field", "/v1/admin/bookings/21/actions", map[string]any{"action": "confirm", "extra": 1}, http.StatusBadRequest},
		{"missing booking", "/v1/admin/bookings/999/actions", map[string]any{"action": "confirm"}, http.StatusNotFound},
		{"bad id", "/v1/admin/bookings/abc/actions", map[string]any{"action": "confirm"}, http.StatusBadRequest},
		{"reject without reason", "/v1/admin/listings/10/actions", map[string]any{"action": "reject"}, http.StatusBadRequest},
		{"approve listing", "/v1/admin/listings/10/actions", map[string]any{"action": "approve"}, http.StatusOK},
		{"assign without assignee", "/v1/admin/tickets/1/actions", map[string]any{"action": "assign"}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postAction(t, app, mux, tc.path, tc.body)
			checkResponseCode(t, tc.want, rr.Code)
		})
	}
}

func TestCreateAndGetTicket(t *testing.T) {
	app, _ := newTestApplication(t, config{})
	mux := app.mount()

	rr := postAction(t, app, mux, "/v1/admin/tickets", map[string]any{
		"user_id": 2, "subject": "Refund for cancelled stay", "category": "payment", "priority": "high", "message": "Customer called",
	})
	checkResponseCode(t, http.StatusCreated, rr.Code)

	var created struct {
		Data backoffice.TicketDetail `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(created.Data.Reference, "TKT-") || created.Data.Priority != tickets.PriorityHigh {
		t.Fatalf("ticket = %+v", created.Data.Ticket)
	}

	req, _ := http.NewRequest(http.MethodGet, "/v1/admin/tickets/"+strconv.FormatInt(created.Data.ID, 10), nil)
	req.Header.Set("Authorization", app.tokenFor(t, 1, users.RoleAdmin))
	rr = executeRequest(req, mux)
	checkResponseCode(t, http.StatusOK, rr.Code)
	if !strings.Contains(rr.Body.String(), "Customer called") {
		t.Fatalf("messages missing: %s", rr.Body.String())
	}

	rr = postAction(t, app, mux, "/v1/admin/tickets", map[string]any{"user_id": 2, "subject": "x", "category": "weather"})
	checkResponseCode(t, http.StatusBadRequest, rr.Code)
}

func TestRateLimiterMiddleware(t *testing.T) {
	cfg := config{rateLimiter: ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}}
	app, _ := newTestApplication(t, cfg)
	mux := app.mount()
	token := app.tokenFor(t, 1, users.RoleAdmin)

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
		req.Header.Set("Authorization", token)
		checkResponseCode(t, http.StatusOK, executeRequest(req, mux).Code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
	req.Header.Set("Authorization", token)
	rr := executeRequest(req, mux)
	checkResponseCode(t, http.StatusTooManyRequests, rr.Code)
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

func TestRateLimiterKeysOnHost(t *testing.T) {
	cfg := config{rateLimiter: ratelimiter.Config{RequestsPerTimeFrame: 1, TimeFrame: time.Minute, Enabled: true}}
	app, _ := newTestApplication(t, cfg)
	mux := app.mount()
	token := app.tokenFor(t, 1, users.RoleAdmin)

	var passed int
	for port := 40000; port < 40005; port++ {
		req, _ := http.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
		req.Header.Set("Authorization", token)
		req.RemoteAddr = fmt.Sprintf("203.0.113.7:%d", port)
		if executeRequest(req, mux).Code == http.StatusOK {
			passed++
		}
	}
	if passed != 1 {
		t.Fatalf("%d of 5 requests from one address passed, want 1", passed)
	}

	req, _ := http.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
	req.Header.Set("Authorization", token)
	req.RemoteAddr = "198.51.100.4:40000"
	checkResponseCode(t, http.StatusOK, executeRequest(req, mux).Code)
}
