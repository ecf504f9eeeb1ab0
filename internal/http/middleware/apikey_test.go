package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAPIKey(t *testing.T) {
	h := middleware.APIKey("s3cret", zap.NewNop())(okHandler())

	tests := []struct {
		name   string
		method string
		key    string
		want   int
	}{
		{"matching key", http.MethodGet, "s3cret", http.StatusOK},
		{"wrong key", http.MethodGet, "nope", http.StatusUnauthorized},
		{"missing key", http.MethodPost, "", http.StatusUnauthorized},
		{"preflight without key", http.MethodOptions, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/customers", nil)
			if tt.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAPIKey_ErrorBody(t *testing.T) {
	h := middleware.APIKey("s3cret", zap.NewNop())(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body domain.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrorTypeUnauthorized, body.Type)
	assert.Equal(t, "Missing or invalid API key", body.Detail)
}

func TestAPIKey_EmptyKeyDisablesCheck(t *testing.T) {
	h := middleware.APIKey("", zap.NewNop())(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
