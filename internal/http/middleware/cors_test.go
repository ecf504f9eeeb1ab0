package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func corsConfig(origins ...string) *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}
}

func preflight(t *testing.T, h http.Handler, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_DevelopmentAllowsAllOrigins(t *testing.T) {
	h := middleware.CORS(corsConfig(), "development", zap.NewNop())(okHandler())

	w := preflight(t, h, "http://localhost:5173")

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	h := middleware.CORS(corsConfig("http://localhost:3000"), "production", zap.NewNop())(okHandler())

	assert.Equal(t, "http://localhost:3000",
		preflight(t, h, "http://localhost:3000").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight(t, h, "https://evil.example.com").Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DesktopOrigin(t *testing.T) {
	h := middleware.CORS(corsConfig("http://localhost:3000", "null"), "production", zap.NewNop())(okHandler())

	assert.Equal(t, "null", preflight(t, h, "null").Header().Get("Access-Control-Allow-Origin"))

	without := middleware.CORS(corsConfig("http://localhost:3000"), "production", zap.NewNop())(okHandler())
	assert.Empty(t, preflight(t, without, "null").Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardOrigin(t *testing.T) {
	h := middleware.CORS(corsConfig("*"), "production", zap.NewNop())(okHandler())

	w := preflight(t, h, "https://anything.example.com")

	assert.Equal(t, "https://anything.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ProductionNoConfiguredOrigins(t *testing.T) {
	h := middleware.CORS(corsConfig(), "production", zap.NewNop())(okHandler())

	w := preflight(t, h, "http://localhost:3000")

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ActualRequestExposesHeaders(t *testing.T) {
	h := middleware.CORS(corsConfig("http://localhost:3000"), "development", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Location")
}
