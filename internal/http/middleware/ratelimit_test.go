package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func hit(h http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}, zap.NewNop())
	h := rl.Limit(okHandler())

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/api/customers", "192.168.1.1:1234").Code)
	}
}

func TestRateLimiter_LimitExceeded(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 3}, zap.NewNop())
	h := rl.Limit(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/api/customers", "192.168.1.100:1234").Code)
	}

	w := hit(h, "/api/customers", "192.168.1.100:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var body domain.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrorTypeRateLimited, body.Type)
	assert.Equal(t, http.StatusTooManyRequests, body.Status)

	// Other clients keep their own budget
	assert.Equal(t, http.StatusOK, hit(h, "/api/customers", "192.168.1.101:1234").Code)
}

func TestRateLimiter_Whitelists(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())
	h := rl.Limit(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/api/customers", "127.0.0.1:1234").Code)
		assert.Equal(t, http.StatusOK, hit(h, "/health", "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusOK, hit(h, "/swagger/index.html", "10.0.0.2:1234").Code)
	}
}

func TestRateLimiter_WhitelistUsesForwardedFor(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"203.0.113.7"},
	}, zap.NewNop())
	h := rl.Limit(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
