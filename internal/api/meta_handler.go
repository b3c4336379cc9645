package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/microcourses/api/internal/api/shared"
)

// MetaHandler serves the operational endpoints: health, build metadata,
// and the hackathon manifest.
type MetaHandler struct {
	db      *sql.DB
	version string
	started time.Time
}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler(db *sql.DB, version string) *MetaHandler {
	return &MetaHandler{
		db:      db,
		version: version,
		started: time.Now().UTC(),
	}
}

// Health handles GET /api/health. It reports unhealthy when the database
// does not answer a ping.
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	ok := true
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			ok = false
			code = http.StatusServiceUnavailable
		}
	}

	shared.RespondWithJSON(w, r, code, map[string]bool{"ok": ok})
}

// Meta handles GET /api/_meta.
func (h *MetaHandler) Meta(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"name":       "microcourses-api",
		"version":    h.version,
		"started_at": h.started,
	})
}

// Manifest handles GET /.well-known/hackathon.json.
func (h *MetaHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"name":    "MicroCourses",
		"version": h.version,
		"endpoints": []string{
			"/api/auth/register",
			"/api/auth/login",
			"/api/courses",
			"/api/creator/apply",
			"/api/learn/enroll",
			"/api/admin/review/courses",
		},
	})
}
