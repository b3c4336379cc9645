package middleware

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/microcourses/api/internal/api/shared"
)

// idempotencyHeader carries the client-chosen key for safe retries.
const idempotencyHeader = "Idempotency-Key"

// IdempotencyCache replays responses for repeated mutating requests that
// carry the same Idempotency-Key. The first request claims the key and
// executes; concurrent requests with the same key block until it finishes
// and then receive a copy of the stored response, so the underlying
// operation runs exactly once per key.
type IdempotencyCache struct {
	mu      sync.Mutex
	entries map[string]*idempotencyEntry
}

type idempotencyEntry struct {
	done chan struct{}

	recorded    bool
	status      int
	contentType string
	body        []byte
}

// NewIdempotencyCache creates an empty idempotency cache. Entries live for
// the lifetime of the process.
func NewIdempotencyCache() *IdempotencyCache {
	return &IdempotencyCache{entries: make(map[string]*idempotencyEntry)}
}

// Handle is the middleware. Only POST and PUT requests with an
// Idempotency-Key header participate; everything else passes through.
// Keys are scoped to the authenticated caller only: a reused key replays
// the stored response regardless of which endpoint or body it arrives
// with. Different callers never share a key.
func (c *IdempotencyCache) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(idempotencyHeader)
		if key == "" || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
			next.ServeHTTP(w, r)
			return
		}

		scoped := c.scopeKey(r, key)

		c.mu.Lock()
		entry, exists := c.entries[scoped]
		if !exists {
			entry = &idempotencyEntry{done: make(chan struct{})}
			c.entries[scoped] = entry
		}
		c.mu.Unlock()

		if exists {
			// Another request owns the key; wait for it and replay.
			select {
			case <-entry.done:
				if !entry.recorded {
					shared.RespondWithError(w, r, http.StatusInternalServerError,
						shared.CodeInternal, "idempotent operation failed; retry")
					return
				}
				c.replay(w, entry)
			case <-r.Context().Done():
				shared.RespondWithError(w, r, http.StatusServiceUnavailable,
					shared.CodeInternal, "request canceled while waiting for idempotent operation")
			}
			return
		}

		// If the handler panics, drop the claim so a retry can execute and
		// unblock any waiters before the panic reaches the recoverer.
		defer func() {
			if entry.recorded {
				return
			}
			c.mu.Lock()
			delete(c.entries, scoped)
			c.mu.Unlock()
			close(entry.done)
		}()

		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		entry.status = recorder.status
		entry.contentType = recorder.Header().Get("Content-Type")
		entry.body = recorder.body.Bytes()
		entry.recorded = true
		close(entry.done)
	})
}

func (c *IdempotencyCache) scopeKey(r *http.Request, key string) string {
	caller := "anon"
	if identity, ok := shared.IdentityFromContext(r.Context()); ok {
		caller = identity.UserID.String()
	}
	return caller + "|" + key
}

func (c *IdempotencyCache) replay(w http.ResponseWriter, entry *idempotencyEntry) {
	if entry.contentType != "" {
		w.Header().Set("Content-Type", entry.contentType)
	}
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// responseRecorder tees the response to the client while keeping a copy
// for replay.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}
