package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microcourses/api/internal/api/middleware"
	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/domain"
)

func postWithKey(handler http.Handler, userID uuid.UUID, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	ctx := shared.WithIdentity(req.Context(), shared.Identity{UserID: userID, Role: domain.RoleLearner})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestIdempotencyCache_ReplaysFirstResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := middleware.NewIdempotencyCache().Handle(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			n := calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"call":` + string(rune('0'+n)) + `}`))
		}))

	userID := uuid.New()

	first := postWithKey(handler, userID, "/api/enroll", "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, `{"call":1}`, first.Body.String())

	second := postWithKey(handler, userID, "/api/enroll", "key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, `{"call":1}`, second.Body.String(), "stored response is replayed verbatim")
	assert.Equal(t, int64(1), calls.Load(), "handler runs once per key")
}

func TestIdempotencyCache_ScopedPerUser(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := middleware.NewIdempotencyCache().Handle(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusCreated)
		}))

	alice, bob := uuid.New(), uuid.New()

	postWithKey(handler, alice, "/api/enroll", "key-1")
	postWithKey(handler, bob, "/api/enroll", "key-1")
	assert.Equal(t, int64(2), calls.Load(), "different callers never share a key")

	// The key binds the caller's operation, not the endpoint: reusing it
	// anywhere replays the stored response.
	postWithKey(handler, alice, "/api/courses", "key-1")
	postWithKey(handler, alice, "/api/enroll", "key-1")
	assert.Equal(t, int64(2), calls.Load())
}

func TestIdempotencyCache_PassthroughWithoutKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := middleware.NewIdempotencyCache().Handle(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusCreated)
		}))

	userID := uuid.New()
	postWithKey(handler, userID, "/api/enroll", "")
	postWithKey(handler, userID, "/api/enroll", "")
	assert.Equal(t, int64(2), calls.Load(), "requests without a key are never cached")
}

func TestIdempotencyCache_ConcurrentRequestsExecuteOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	release := make(chan struct{})
	handler := middleware.NewIdempotencyCache().Handle(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			<-release
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("done"))
		}))

	userID := uuid.New()
	const racers = 5

	var wg sync.WaitGroup
	results := make([]*httptest.ResponseRecorder, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = postWithKey(handler, userID, "/api/enroll", "race-key")
		}(i)
	}

	// Let the racers pile up behind the claim, then release the owner.
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "exactly one racer executes")
	for _, rec := range results {
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "done", rec.Body.String())
	}
}

func TestIdempotencyCache_PanicReleasesKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := middleware.NewIdempotencyCache().Handle(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				panic("handler blew up")
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))

	userID := uuid.New()

	require.Panics(t, func() {
		postWithKey(handler, userID, "/api/enroll", "key-panic")
	})

	// The key must not stay claimed: a retry executes and succeeds.
	retry := postWithKey(handler, userID, "/api/enroll", "key-panic")
	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Equal(t, `{"ok":true}`, retry.Body.String())
	assert.Equal(t, int64(2), calls.Load())
}
