package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	auth := NewAPIKeyAuth("X-API-Key", []string{"secret"})
	h := auth.Middleware(okHandler())

	r := httptest.NewRequest("POST", "/admin/leaderboard/rebuild", nil)
	r.Header.Set("X-API-Key", "secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuth_BearerFallback(t *testing.T) {
	auth := NewAPIKeyAuth("X-API-Key", []string{"secret"})
	h := auth.Middleware(okHandler())

	r := httptest.NewRequest("POST", "/admin/leaderboard/rebuild", nil)
	r.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	auth := NewAPIKeyAuth("X-API-Key", []string{"secret"})
	h := auth.Middleware(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/admin/leaderboard/rebuild", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_api_key")
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	auth := NewAPIKeyAuth("X-API-Key", []string{"secret"})
	h := auth.Middleware(okHandler())

	r := httptest.NewRequest("POST", "/admin/leaderboard/rebuild", nil)
	r.Header.Set("X-API-Key", "wrong")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_api_key")
}

func TestAPIKeyAuth_IgnoresEmptyConfiguredKeys(t *testing.T) {
	auth := NewAPIKeyAuth("X-API-Key", []string{""})
	assert.False(t, auth.IsValid(""))
}

func TestAPIKeyAuth_AddAndRemoveKey(t *testing.T) {
	auth := NewAPIKeyAuth("X-API-Key", nil)
	auth.AddKey("rotated")
	require.True(t, auth.IsValid("rotated"))

	auth.RemoveKey("rotated")
	assert.False(t, auth.IsValid("rotated"))
}

func TestRequestSizeLimit_RejectsDeclaredOversize(t *testing.T) {
	h := RequestSizeLimitMiddleware(10)(okHandler())

	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(strings.Repeat("x", 50)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestSizeLimit_AllowsSmallBody(t *testing.T) {
	h := RequestSizeLimitMiddleware(1024)(okHandler())

	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCacheControl_GetIsCacheable(t *testing.T) {
	h := CacheControlMiddleware(30*time.Second, false)(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/leaderboard", nil))

	assert.Equal(t, "public, max-age=30", w.Header().Get("Cache-Control"))
}

func TestCacheControl_NonGetIsNotCacheable(t *testing.T) {
	h := CacheControlMiddleware(30*time.Second, false)(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/leaderboard", nil))

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestNoCache_SetsNoStore(t *testing.T) {
	h := NoCacheMiddleware(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/profile", nil))

	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeadersMiddleware(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestTimeoutMiddleware_AllowsFastHandler(t *testing.T) {
	h := TimeoutMiddleware(time.Second)(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/languages", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeoutMiddleware_CutsOffSlowHandler(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	h := TimeoutMiddleware(20 * time.Millisecond)(slow)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/languages", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestChain_RunsInOrder(t *testing.T) {
	var order []string
	tag := func(name string) MiddlewareFunc {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := ChainHandler(okHandler(), tag("first"), tag("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"first", "second"}, order)
}
