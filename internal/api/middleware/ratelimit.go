package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/microcourses/api/internal/api/shared"
)

// RateLimiter enforces a fixed-window request limit per caller. The counter
// resets completely at each window boundary, so a caller can burst up to
// twice the limit across a boundary; that is accepted for the simplicity of
// a single counter per key.
type RateLimiter struct {
	limit  int
	window time.Duration

	// timeFunc is injectable for tests.
	timeFunc func() time.Time

	mu      sync.Mutex
	windows map[string]*rateWindow
}

type rateWindow struct {
	start time.Time
	count int
}

// NewRateLimiter creates a fixed-window rate limiter allowing limit
// requests per window per key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		timeFunc: time.Now,
		windows:  make(map[string]*rateWindow),
	}
}

// SetTimeFunc replaces the limiter's clock. Tests use this to step across
// window boundaries without sleeping.
func (rl *RateLimiter) SetTimeFunc(timeFunc func() time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.timeFunc = timeFunc
}

// Limit is the middleware. Requests beyond the limit inside the current
// window are rejected with RATE_LIMIT and a Retry-After hint.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.keyFor(r)) {
			w.Header().Set("Retry-After", retryAfterSeconds(rl.window))
			shared.RespondWithError(w, r, http.StatusTooManyRequests,
				shared.CodeRateLimit, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.timeFunc()

	win, ok := rl.windows[key]
	if !ok || now.Sub(win.start) >= rl.window {
		rl.windows[key] = &rateWindow{start: now, count: 1}
		return true
	}

	if win.count >= rl.limit {
		return false
	}

	win.count++
	return true
}

// keyFor buckets the request by user when a token is present, falling back
// to the client IP. The token is decoded WITHOUT signature verification:
// the limiter runs before authentication, and an attacker who forges a
// subject claim only moves themselves into a different bucket. Forged
// tokens are still rejected downstream by the authenticator.
func (rl *RateLimiter) keyFor(r *http.Request) string {
	if token, ok := bearerToken(r); ok {
		if sub := unverifiedSubject(token); sub != "" {
			return "user:" + sub
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// unverifiedSubject decodes the token's subject claim without verifying
// the signature. Returns "" for anything that does not parse as a JWT.
func unverifiedSubject(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func retryAfterSeconds(window time.Duration) string {
	seconds := int(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
