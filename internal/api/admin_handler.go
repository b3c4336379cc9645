package api

import (
	"net/http"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/service"
)

// AdminHandler serves the review endpoints. Every route sits behind the
// Admin role gate.
type AdminHandler struct {
	courses  *service.CourseService
	creators *service.CreatorService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(courses *service.CourseService, creators *service.CreatorService) *AdminHandler {
	if courses == nil {
		panic("course service cannot be nil")
	}
	if creators == nil {
		panic("creator service cannot be nil")
	}
	return &AdminHandler{courses: courses, creators: creators}
}

// ReviewQueue handles GET /api/admin/review/courses: courses awaiting
// publication, newest first.
func (h *AdminHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	courses, err := h.courses.ListSubmitted(r.Context(), limit+1, offset)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPageResponse(courses, limit, offset))
}

// PublishCourse handles POST /api/admin/review/courses/{courseID}/approve:
// submitted to published.
func (h *AdminHandler) PublishCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	course, err := h.courses.Publish(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// ListApplications handles GET /api/admin/review/creators: pending creator
// applications with applicant emails, newest first.
func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	apps, err := h.creators.ListPending(r.Context(), limit+1, offset)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPageResponse(apps, limit, offset))
}

// ApproveApplication handles POST /api/admin/review/creators/{applicationID}/approve.
// Approval and the applicant's promotion to Creator commit atomically.
func (h *AdminHandler) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "applicationID")
	if !ok {
		return
	}

	app, err := h.creators.Approve(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, app)
}
