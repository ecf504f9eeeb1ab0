package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"go.uber.org/zap"
)

// APIKeyHeader is the header the desktop shell injects into every API call
const APIKeyHeader = "X-API-Key"

// APIKey rejects requests whose x-api-key header does not match key. An empty
// key disables the check.
func APIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		expected := []byte(key)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			provided := []byte(r.Header.Get(APIKeyHeader))
			if subtle.ConstantTimeCompare(provided, expected) != 1 {
				logger.Warn("rejected request with invalid API key",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Bool("key_present", len(provided) > 0),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(domain.APIError{
					Type:   domain.ErrorTypeUnauthorized,
					Title:  http.StatusText(http.StatusUnauthorized),
					Status: http.StatusUnauthorized,
					Detail: "Missing or invalid API key",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
