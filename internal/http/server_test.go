package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productiv/internal/auth"
	"productiv/internal/cache"
	"productiv/internal/services"
	"productiv/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	charts := cache.NewLRU[services.ChartData](16, time.Minute)
	transactions := services.NewTransactionService(repo, nil, charts)
	srv := NewServer(repo, auth.NewManager("test-secret-0123456789"), Services{
		Transactions: transactions,
		Habits:       services.NewHabitService(repo, charts),
		Exercises:    services.NewExerciseService(repo, charts),
		Accounts:     services.NewAccountService(repo),
		Budgets:      services.NewBudgetService(repo),
		Dashboard:    services.NewDashboardService(repo, charts),
		Discover:     services.NewDiscoverService(repo, transactions),
	}, []string{"http://localhost:3000"})
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// register creates an account through the API and returns the session cookie.
func register(t *testing.T, ts *httptest.Server, email string) *http.Cookie {
	t.Helper()

	resp := do(t, ts, "POST", "/api/auth/register", nil, map[string]any{
		"name":     "Test User",
		"email":    email,
		"password": "hunter2hunter2",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("register did not set a session cookie")
	return nil
}

func do(t *testing.T, ts *httptest.Server, method, path string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "a@example.com")

	resp := do(t, ts, "GET", "/api/auth/me", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode(t, resp)
	assert.Equal(t, "a@example.com", me["email"])
	assert.NotContains(t, me, "passwordHash")

	resp = do(t, ts, "POST", "/api/auth/login", nil, map[string]any{
		"email": "a@example.com", "password": "hunter2hunter2",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, "POST", "/api/auth/login", nil, map[string]any{
		"email": "a@example.com", "password": "wrong-password",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "dup@example.com")

	resp := do(t, ts, "POST", "/api/auth/register", nil, map[string]any{
		"name": "Other", "email": "dup@example.com", "password": "hunter2hunter2",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/auth/me", "/api/transactions", "/api/dashboard/stats"} {
		resp := do(t, ts, "GET", path, nil, nil)
		body := decode(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "Unauthorized", body["error"], path)
	}

	garbage := &http.Cookie{Name: auth.CookieName, Value: "nonsense"}
	resp := do(t, ts, "GET", "/api/habits", garbage, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransactionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "tx@example.com")

	resp := do(t, ts, "POST", "/api/transactions", cookie, map[string]any{
		"amount": 25.50, "type": "expense", "category": "food",
		"description": "lunch", "date": "2026-08-15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)["transaction"].(map[string]any)
	id := created["id"].(string)

	resp = do(t, ts, "GET", "/api/transactions", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := decode(t, resp)
	summary := listing["summary"].(map[string]any)
	assert.Equal(t, "25.5", summary["totalExpenses"])

	resp = do(t, ts, "POST", "/api/transactions", cookie, map[string]any{
		"amount": -5, "type": "expense", "date": "2026-08-15",
	})
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotNil(t, body["error"])

	resp = do(t, ts, "DELETE", "/api/transactions/"+id, cookie, nil)
	body = decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Transaction deleted", body["message"])

	resp = do(t, ts, "DELETE", "/api/transactions/"+id, cookie, nil)
	body = decode(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Transaction not found", body["error"])
}

func TestHabitCompleteEndpoint(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "habit@example.com")

	resp := do(t, ts, "POST", "/api/habits", cookie, map[string]any{"name": "Meditate"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	habit := decode(t, resp)["habit"].(map[string]any)
	id := habit["id"].(string)

	resp = do(t, ts, "POST", "/api/habits/"+id+"/complete", cookie, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, float64(1), result["streak"])

	resp = do(t, ts, "POST", "/api/habits/"+id+"/complete", cookie, nil)
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Already completed today", body["error"])

	resp = do(t, ts, "POST", "/api/habits/missing/complete", cookie, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGoalIsolationBetweenUsers(t *testing.T) {
	ts := newTestServer(t)
	owner := register(t, ts, "owner@example.com")
	other := register(t, ts, "other@example.com")

	resp := do(t, ts, "POST", "/api/goals", owner, map[string]any{"title": "Save money"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	goal := decode(t, resp)["goal"].(map[string]any)
	id := goal["id"].(string)

	resp = do(t, ts, "PUT", "/api/goals/"+id, other, map[string]any{"title": "Hijacked"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, ts, "GET", "/api/goals/"+id, owner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTransferEndpoint(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "transfer@example.com")

	resp := do(t, ts, "PUT", "/api/user/balances", cookie, map[string]any{
		"cashBalance": 100, "bankBalance": 0,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, "POST", "/api/user/transfer", cookie, map[string]any{
		"amount": 40, "from": "cash", "to": "bank",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balances := decode(t, resp)
	assert.Equal(t, "60", balances["cashBalance"])
	assert.Equal(t, "40", balances["bankBalance"])

	resp = do(t, ts, "POST", "/api/user/transfer", cookie, map[string]any{
		"amount": 40, "from": "cash", "to": "cash",
	})
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot transfer to the same account", body["error"])

	resp = do(t, ts, "POST", "/api/user/transfer", cookie, map[string]any{
		"amount": 5000, "from": "cash", "to": "bank",
	})
	body = decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Insufficient funds", body["error"])
}

func TestDashboardChartsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "charts@example.com")

	resp := do(t, ts, "GET", "/api/dashboard/charts?period=decade", cookie, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, ts, "GET", "/api/dashboard/charts?period=week", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)
	assert.Contains(t, data, "transactions")
	assert.Contains(t, data, "habits")
	assert.Contains(t, data, "exercises")
}

func TestDashboardChartsReflectHabitCompletion(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "fresh@example.com")

	resp := do(t, ts, "POST", "/api/habits", cookie, map[string]any{"name": "Journal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	habit := decode(t, resp)["habit"].(map[string]any)
	id := habit["id"].(string)

	// Warm the chart cache before the completion lands.
	resp = do(t, ts, "GET", "/api/dashboard/charts?period=week", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	before := decode(t, resp)["habits"].([]any)
	require.Len(t, before, 1)
	require.Equal(t, float64(0), before[0].(map[string]any)["completions"])

	resp = do(t, ts, "POST", "/api/habits/"+id+"/complete", cookie, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, ts, "GET", "/api/dashboard/charts?period=week", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	after := decode(t, resp)["habits"].([]any)
	require.Len(t, after, 1)
	point := after[0].(map[string]any)
	assert.Equal(t, float64(1), point["completions"])
	assert.Equal(t, float64(1), point["streak"])
}

func TestDiscoverEndpoints(t *testing.T) {
	ts := newTestServer(t)
	cookie := register(t, ts, "discover@example.com")

	resp := do(t, ts, "POST", "/api/discover/sync", cookie, nil)
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Discover account not connected", body["error"])

	resp = do(t, ts, "POST", "/api/discover/connect", cookie, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, "POST", "/api/discover/import", cookie, map[string]any{
		"transactions": []map[string]any{
			{"amount": -12.99, "description": "COFFEE SHOP", "date": "2026-08-20"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	imported := result["transactions"].([]any)
	require.Len(t, imported, 1)
	first := imported[0].(map[string]any)
	assert.Equal(t, "expense", first["type"])
	assert.Equal(t, "12.99", first["amount"])
	assert.Equal(t, "Discover Import", first["category"])
}
