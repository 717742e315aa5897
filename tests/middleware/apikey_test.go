package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adar-commits/quotes/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func apiKeyHandler(key string) (http.Handler, *bool) {
	called := false
	h := middleware.RequireAPIKey(key, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	return h, &called
}

func TestRequireAPIKey_ValidKey(t *testing.T) {
	handler, called := apiKeyHandler("secret-key")

	req := httptest.NewRequest(http.MethodGet, "/settings/templates", nil)
	req.Header.Set("X-API-Key", "secret-key")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
}

func TestRequireAPIKey_WrongKey(t *testing.T) {
	handler, called := apiKeyHandler("secret-key")

	req := httptest.NewRequest(http.MethodGet, "/settings/templates", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAPIKey_MissingHeader(t *testing.T) {
	handler, called := apiKeyHandler("secret-key")

	req := httptest.NewRequest(http.MethodGet, "/settings/templates", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
}

func TestRequireAPIKey_NoKeyConfiguredClosesGroup(t *testing.T) {
	handler, called := apiKeyHandler("")

	// Even an empty provided key must not open an unconfigured group
	req := httptest.NewRequest(http.MethodGet, "/settings/templates", nil)
	req.Header.Set("X-API-Key", "")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
}
