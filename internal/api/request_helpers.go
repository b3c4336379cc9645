package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/microcourses/api/internal/api/shared"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pagination reads limit and offset from the query string. Out-of-range
// and unparseable values fall back to defaults rather than erroring.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}

// uuidParam parses a UUID path parameter. An unparseable ID identifies
// nothing, so it is reported as NOT_FOUND; on failure the response is
// already written and the handler should return.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			shared.CodeNotFound, "resource not found")
		return uuid.Nil, false
	}
	return id, true
}

// mustIdentity extracts the authenticated identity. Routes using it sit
// behind the authenticator, so absence is a wiring bug reported as 401.
func mustIdentity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			shared.CodeUnauthorized, "authentication required")
		return shared.Identity{}, false
	}
	return identity, true
}
