package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tally/internal/auth"
	"tally/internal/config"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	cfg := &config.Config{
		Port:              "0",
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AllowedOrigins:    []string{"http://localhost:3000"},
		AuthRatePerMinute: 1000,
		LogLevel:          slog.LevelError,
	}
	logger := applog.New(slog.LevelError, applog.ComponentHTTP)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	srv := NewServer(":0", repo, tokens, cfg, logger)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func registerAndLogin(t *testing.T, baseURL, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "hunter22"}
	resp := doJSON(t, http.MethodPost, baseURL+"/users/register", "", creds)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status = %d, want 201", username, resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, baseURL+"/users/login", "", creds)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status = %d, want 200", username, resp.StatusCode)
	}
	return decodeBody[loginResponse](t, resp).Token
}

func createTransaction(t *testing.T, baseURL, token string, body map[string]any) core.Transaction {
	t.Helper()

	resp := doJSON(t, http.MethodPost, baseURL+"/expenses", token, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transaction: status = %d, want 201", resp.StatusCode)
	}
	return decodeBody[core.Transaction](t, resp)
}

func TestRegisterAndDuplicate(t *testing.T) {
	_, ts := newTestServer(t)

	creds := map[string]string{"username": "Alice", "password": "hunter22"}
	resp := doJSON(t, http.MethodPost, ts.URL+"/users/register", "", creds)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	body := decodeBody[registerResponse](t, resp)
	if body.Username != "alice" {
		t.Errorf("username = %q, want normalized %q", body.Username, "alice")
	}
	if body.UserID == "" {
		t.Error("userId is empty")
	}

	// Same name in a different case is still taken.
	creds["username"] = "ALICE"
	resp = doJSON(t, http.MethodPost, ts.URL+"/users/register", "", creds)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", resp.StatusCode)
	}
	if msg := decodeBody[errorResponse](t, resp); msg.Error != "user already exists" {
		t.Errorf("error = %q, want %q", msg.Error, "user already exists")
	}
}

func TestRegisterValidation(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing username", map[string]string{"password": "hunter22"}},
		{"blank username", map[string]string{"username": "   ", "password": "hunter22"}},
		{"missing password", map[string]string{"username": "bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/users/register", "", tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	_, ts := newTestServer(t)
	registerAndLogin(t, ts.URL, "carol")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"unknown user", map[string]string{"username": "nobody", "password": "hunter22"}},
		{"wrong password", map[string]string{"username": "carol", "password": "wrong"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/users/login", "", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if msg := decodeBody[errorResponse](t, resp); msg.Error != "invalid credentials" {
				t.Errorf("error = %q, want %q", msg.Error, "invalid credentials")
			}
		})
	}
}

func TestAuthenticationRequired(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "dave")

	expired := signToken(t, "test-secret", "someone", -time.Minute)
	wrongKey, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue("someone")
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	tests := []struct {
		name      string
		token     string
		wantError string
	}{
		{"no token", "", "authentication required"},
		{"garbage token", "not-a-jwt", "invalid token"},
		{"wrong signing key", wrongKey, "invalid token"},
		{"expired token", expired, "token expired"},
		{"valid token, deleted user", mustIssue(t, "test-secret", "ghost-user"), "authentication required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodGet, ts.URL+"/expenses", tt.token, nil)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
			if msg := decodeBody[errorResponse](t, resp); msg.Error != tt.wantError {
				t.Errorf("error = %q, want %q", msg.Error, tt.wantError)
			}
		})
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/expenses", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", resp.StatusCode)
	}
}

func mustIssue(t *testing.T, secret, userID string) string {
	t.Helper()
	token, err := auth.NewTokenIssuer(secret, time.Hour).Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// signToken mints a token with an arbitrary time to expiry, which the issuer
// deliberately does not allow.
func signToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTransactionCRUD(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "erin")

	created := createTransaction(t, ts.URL, token, map[string]any{
		"title": "Groceries", "amount": 42.50, "category": "Needs", "date": "2025-06-15",
	})
	if created.ID == "" {
		t.Fatal("created transaction has no id")
	}
	if created.Amount.Cents != 4250 {
		t.Errorf("amount cents = %d, want 4250", created.Amount.Cents)
	}
	if created.Category != core.Needs {
		t.Errorf("category = %q, want Needs", created.Category)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/expenses", token, nil)
	list := decodeBody[[]core.Transaction](t, resp)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v, want the created transaction", list)
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/expenses/"+created.ID, token, map[string]any{
		"title": "Groceries and wine", "amount": 55.00, "category": "Wants", "date": "2025-06-15",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	updated := decodeBody[core.Transaction](t, resp)
	if updated.Title != "Groceries and wine" || updated.Amount.Cents != 5500 || updated.Category != core.Wants {
		t.Errorf("updated = %+v", updated)
	}

	resp = doJSON(t, http.MethodDelete, ts.URL+"/expenses/"+created.ID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	if msg := decodeBody[map[string]string](t, resp); msg["message"] != "transaction deleted" {
		t.Errorf("delete message = %q", msg["message"])
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/expenses", token, nil)
	if list := decodeBody[[]core.Transaction](t, resp); len(list) != 0 {
		t.Errorf("list after delete has %d entries", len(list))
	}
}

func TestTransactionValidation(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "frank")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty title", map[string]any{"title": " ", "amount": 1, "category": "Needs", "date": "2025-06-15"}},
		{"negative amount", map[string]any{"title": "x", "amount": -1, "category": "Needs", "date": "2025-06-15"}},
		{"bad category", map[string]any{"title": "x", "amount": 1, "category": "Fun", "date": "2025-06-15"}},
		{"bad date", map[string]any{"title": "x", "amount": 1, "category": "Needs", "date": "2025-13-40"}},
		{"date with time", map[string]any{"title": "x", "amount": 1, "category": "Needs", "date": "2025-06-15T00:00:00Z"}},
		{"unknown field", map[string]any{"title": "x", "amount": 1, "category": "Needs", "date": "2025-06-15", "color": "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/expenses", token, tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}

	// Validation failures answer with their specific message, not the
	// generic decode fallback.
	resp := doJSON(t, http.MethodPost, ts.URL+"/expenses", token, map[string]any{
		"title": strings.Repeat("x", 201), "amount": 1, "category": "Needs", "date": "2025-06-15",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("oversized title status = %d, want 400", resp.StatusCode)
	}
	if msg := decodeBody[errorResponse](t, resp); msg.Error != "title too long, max 200 characters" {
		t.Errorf("oversized title error = %q", msg.Error)
	}
}

func TestCrossOwnerIsolation(t *testing.T) {
	_, ts := newTestServer(t)
	aliceToken := registerAndLogin(t, ts.URL, "alice")
	bobToken := registerAndLogin(t, ts.URL, "bob")

	mine := createTransaction(t, ts.URL, aliceToken, map[string]any{
		"title": "Rent", "amount": 900, "category": "Needs", "date": "2025-06-01",
	})

	// Bob cannot see, edit or delete Alice's transaction. Mutations answer
	// 404 rather than 403 so IDs cannot be probed for existence.
	resp := doJSON(t, http.MethodGet, ts.URL+"/expenses", bobToken, nil)
	if list := decodeBody[[]core.Transaction](t, resp); len(list) != 0 {
		t.Errorf("bob sees %d of alice's transactions", len(list))
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/expenses/"+mine.ID, bobToken, map[string]any{
		"title": "Hijacked", "amount": 1, "category": "Wants", "date": "2025-06-01",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-owner update status = %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, ts.URL+"/expenses/"+mine.ID, bobToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-owner delete status = %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/expenses", aliceToken, nil)
	if list := decodeBody[[]core.Transaction](t, resp); len(list) != 1 || list[0].Title != "Rent" {
		t.Errorf("alice's transaction was modified: %+v", list)
	}
}

func TestSummaryReflectsMutations(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "grace")

	createTransaction(t, ts.URL, token, map[string]any{
		"title": "Salary", "amount": 1000, "category": "Income", "date": "2025-06-01",
	})
	createTransaction(t, ts.URL, token, map[string]any{
		"title": "Rent", "amount": 300, "category": "Needs", "date": "2025-06-02",
	})

	resp := doJSON(t, http.MethodGet, ts.URL+"/expenses/summary", token, nil)
	summary := decodeBody[[]core.CategoryTotal](t, resp)
	want := []core.CategoryTotal{
		{Category: core.Income, Total: core.Money{Cents: 100000}},
		{Category: core.Needs, Total: core.Money{Cents: 30000}},
	}
	if len(summary) != len(want) {
		t.Fatalf("summary has %d rows, want %d: %+v", len(summary), len(want), summary)
	}
	for i := range want {
		if summary[i] != want[i] {
			t.Errorf("summary[%d] = %+v, want %+v", i, summary[i], want[i])
		}
	}

	// The cached summary must not survive a mutation.
	createTransaction(t, ts.URL, token, map[string]any{
		"title": "Cinema", "amount": 20, "category": "Wants", "date": "2025-06-03",
	})
	resp = doJSON(t, http.MethodGet, ts.URL+"/expenses/summary", token, nil)
	if summary := decodeBody[[]core.CategoryTotal](t, resp); len(summary) != 3 {
		t.Errorf("summary after mutation has %d rows, want 3", len(summary))
	}
}

func TestDailyReport(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "heidi")

	seed := []map[string]any{
		{"title": "Salary", "amount": 1000, "category": "Income", "date": "2025-06-15"},
		{"title": "Rent", "amount": 300, "category": "Needs", "date": "2025-06-15"},
		{"title": "Cinema", "amount": 200, "category": "Wants", "date": "2025-06-15"},
		{"title": "Deposit", "amount": 100, "category": "Save", "date": "2025-06-15"},
		{"title": "Other day", "amount": 999, "category": "Needs", "date": "2025-06-16"},
	}
	for _, b := range seed {
		createTransaction(t, ts.URL, token, b)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/expenses/reports/daily?date=2025-06-15", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	report := decodeBody[core.DailyReport](t, resp)

	if report.TotalExpenses.Cents != 50000 {
		t.Errorf("totalExpenses cents = %d, want 50000", report.TotalExpenses.Cents)
	}
	if report.NetBalance.Cents != 40000 {
		t.Errorf("netBalance cents = %d, want 40000", report.NetBalance.Cents)
	}
	if len(report.Allocation) != 4 {
		t.Fatalf("allocation has %d slices, want 4: %+v", len(report.Allocation), report.Allocation)
	}
	last := report.Allocation[len(report.Allocation)-1]
	if last.Name != core.RemainingIncomeSlice || last.Amount.Cents != 40000 {
		t.Errorf("residual slice = %+v, want %s with 40000 cents", last, core.RemainingIncomeSlice)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/expenses/reports/daily?date=15-06-2025", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", resp.StatusCode)
	}
}

func TestMonthlyReport(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "ivan")

	seed := []map[string]any{
		{"title": "Salary", "amount": 2000, "category": "Income", "date": "2025-06-01"},
		{"title": "Rent", "amount": 500, "category": "Needs", "date": "2025-06-05"},
		{"title": "Trip", "amount": 250, "category": "Wants", "date": "2025-06-20"},
		{"title": "Last month", "amount": 800, "category": "Needs", "date": "2025-05-31"},
	}
	for _, b := range seed {
		createTransaction(t, ts.URL, token, b)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/expenses/reports/monthly?year=2025&month=6", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	report := decodeBody[core.MonthlyReport](t, resp)

	if report.TotalIncome.Cents != 200000 {
		t.Errorf("totalIncome cents = %d, want 200000", report.TotalIncome.Cents)
	}
	if report.TotalNeeds.Cents != 50000 {
		t.Errorf("totalNeeds cents = %d, want 50000 (May excluded)", report.TotalNeeds.Cents)
	}
	if report.NeedsPercentage != 25 {
		t.Errorf("needsPercentage = %v, want 25", report.NeedsPercentage)
	}
	if report.WantsPercentage != 12.5 {
		t.Errorf("wantsPercentage = %v, want 12.5", report.WantsPercentage)
	}

	for _, q := range []string{"?year=2025", "?month=6", "?year=2025&month=13", "?year=abc&month=6"} {
		resp := doJSON(t, http.MethodGet, ts.URL+"/expenses/reports/monthly"+q, token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("query %q status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestCORS(t *testing.T) {
	_, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/users/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req, _ = http.NewRequest(http.MethodOptions, ts.URL+"/users/login", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("disallowed preflight status = %d, want 403", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin = %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestAuthRateLimit(t *testing.T) {
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	cfg := &config.Config{
		Port:              "0",
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AuthRatePerMinute: 3,
		LogLevel:          slog.LevelError,
	}
	logger := applog.New(slog.LevelError, applog.ComponentHTTP)
	srv := NewServer(":0", repo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), cfg, logger)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	creds := map[string]string{"username": "nobody", "password": "x"}
	for i := 0; i < 3; i++ {
		resp := doJSON(t, http.MethodPost, ts.URL+"/users/login", "", creds)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("request %d rate limited too early", i+1)
		}
	}

	resp := doJSON(t, http.MethodPost, ts.URL+"/users/login", "", creds)
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want \"60\"", got)
	}

	// /healthz is unaffected by the limiter.
	healthResp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	healthResp.Body.Close()
	if healthResp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", healthResp.StatusCode)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestAmountAcceptsStringAndNumber(t *testing.T) {
	_, ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "judy")

	for i, raw := range []string{`12.34`, `"12.34"`} {
		body := fmt.Sprintf(`{"title":"t%d","amount":%s,"category":"Needs","date":"2025-06-15"}`, i, raw)
		req, _ := http.NewRequest(http.MethodPost, ts.URL+"/expenses", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("amount %s: status = %d, want 201", raw, resp.StatusCode)
		}
		created := decodeBody[core.Transaction](t, resp)
		if created.Amount.Cents != 1234 {
			t.Errorf("amount %s: cents = %d, want 1234", raw, created.Amount.Cents)
		}
	}
}
