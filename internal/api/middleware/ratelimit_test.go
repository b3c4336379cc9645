package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microcourses/api/internal/api/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, remoteAddr, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	req.RemoteAddr = remoteAddr
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_EnforcesLimitPerWindow(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(3, time.Minute)
	handler := rl.Limit(okHandler())

	for i := 0; i < 3; i++ {
		rec := doRequest(handler, "10.0.0.1:1234", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := doRequest(handler, "10.0.0.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT")
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(1, time.Minute)
	handler := rl.Limit(okHandler())

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:5678", "").Code,
		"same IP, different port shares a bucket")
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234", "").Code,
		"different IP gets its own bucket")
}

func TestRateLimiter_TokenSubjectBucket(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(1, time.Minute)
	handler := rl.Limit(okHandler())

	// An unverified (even unsigned) token moves the caller into a
	// per-user bucket independent of their IP.
	token := func(sub string) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
		signed, err := tok.SignedString([]byte("any-secret-works-here-not-verified"))
		require.NoError(t, err)
		return "Bearer " + signed
	}

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", token("user-a")).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.9:1234", token("user-a")).Code,
		"same subject from another IP shares the bucket")
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", token("user-b")).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234", "").Code,
		"anonymous traffic from another IP is unaffected")
}

func TestRateLimiter_WindowRollover(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.SetTimeFunc(func() time.Time { return now })
	handler := rl.Limit(okHandler())

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", "").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1234", "").Code)

	// One second before the boundary the window still holds.
	now = now.Add(59 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1234", "").Code)

	// At the boundary the counter resets completely.
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", "").Code)
}
