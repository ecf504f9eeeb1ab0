package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRequired(t *testing.T) {
	srv := newTestServer(t, testutil.SetupTestDB(t))

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, domain.ErrorTypeUnauthorized, apiError(t, rr).Type)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealthDB(t *testing.T) {
	srv := newTestServer(t, testutil.SetupTestDB(t))

	rr := do(t, srv, http.MethodGet, "/health/db", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", decode[map[string]interface{}](t, rr)["status"])

	rr = do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[map[string]interface{}](t, rr)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
}

func TestDatabaseUnavailable(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/api/customers", "/api/quotes/next-number", "/api/admin/settings"} {
		t.Run(path, func(t *testing.T) {
			rr := do(t, srv, http.MethodGet, path, nil)
			require.Equal(t, http.StatusServiceUnavailable, rr.Code, rr.Body.String())
			assert.Equal(t, domain.ErrorTypeUnavailable, apiError(t, rr).Type)
		})
	}

	t.Run("dashboard falls back to zero metrics", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/api/vehicle-finances/dashboard", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Zero(t, decode[domain.DashboardMetrics](t, rr).Overall.TransactionCount)
	})

	t.Run("backup", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/admin/backup", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("health", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/health/db", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

		rr = do(t, srv, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "unavailable", decode[map[string]interface{}](t, rr)["database"])
	})
}
