package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// RequireAPIKey gates a route group behind the X-API-Key header.
// When no key is configured the group is closed entirely rather than
// left open.
func RequireAPIKey(apiKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-API-Key")

			if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.Warn("rejected request with invalid api key",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"A valid API key is required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
