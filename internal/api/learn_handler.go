package api

import (
	"net/http"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/service"
)

// LearnHandler serves the learner endpoints under /api/learn: enrollment,
// lesson completion, progress, and certificates.
type LearnHandler struct {
	learning *service.LearningService
}

// NewLearnHandler creates a new LearnHandler.
func NewLearnHandler(learning *service.LearningService) *LearnHandler {
	if learning == nil {
		panic("learning service cannot be nil")
	}
	return &LearnHandler{learning: learning}
}

// Enroll handles POST /api/learn/enroll. Enrolling twice is not an error.
func (h *LearnHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var req EnrollRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	enrollment, err := h.learning.Enroll(r.Context(), identity.UserID, req.CourseID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, enrollment)
}

// CompleteLesson handles POST /api/learn/complete and returns the updated
// progress of the lesson's course.
func (h *LearnHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var req CompleteRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	progress, err := h.learning.CompleteLesson(r.Context(), identity.UserID, req.LessonID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// Progress handles GET /api/learn/progress/{courseID}.
func (h *LearnHandler) Progress(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	progress, err := h.learning.Progress(r.Context(), identity.UserID, courseID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// IssueCertificate handles POST /api/learn/certificate. Issuance requires
// full completion and is idempotent: an existing certificate is returned
// as-is.
func (h *LearnHandler) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var req CertificateRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	cert, err := h.learning.IssueCertificate(r.Context(), identity.UserID, req.CourseID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cert)
}

// GetCertificate handles GET /api/learn/certificate/{courseID}.
func (h *LearnHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	cert, err := h.learning.GetCertificate(r.Context(), identity.UserID, courseID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cert)
}
