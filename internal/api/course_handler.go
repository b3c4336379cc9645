package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/service"
)

// CourseHandler serves the public catalog and the creator authoring
// endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	if courses == nil {
		panic("course service cannot be nil")
	}
	return &CourseHandler{courses: courses}
}

// List handles GET /api/courses: the published catalog, newest first.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	courses, err := h.courses.ListPublished(r.Context(), limit+1, offset)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPageResponse(courses, limit, offset))
}

// Get handles GET /api/courses/{courseID}: the course with its ordered
// lesson list. Authenticated viewers can also see their own unpublished
// courses; admins see everything.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	viewerID, viewerRole := viewer(r)
	course, err := h.courses.Get(r.Context(), id, viewerID, viewerRole)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	lessons, err := h.courses.ListLessons(r.Context(), id, viewerID, viewerRole)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if lessons == nil {
		lessons = []*domain.Lesson{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CourseDetailResponse{
		Course:  course,
		Lessons: lessons,
	})
}

// Create handles POST /api/courses. Creator role required.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var req CourseRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.courses.Create(r.Context(), identity.UserID, req.Title, req.Description)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// Update handles PUT /api/courses/{courseID}. Owner only, before
// publication only; absent fields are left unchanged.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	var req CourseUpdateRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.courses.Update(r.Context(), id, identity.UserID, req.Title, req.Description)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// GetLesson handles GET /api/lesson/{lessonID}: a single lesson with its
// transcript. Lessons of unpublished courses are visible to the owner and
// admins only.
func (h *CourseHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "lessonID")
	if !ok {
		return
	}

	viewerID, viewerRole := viewer(r)
	lesson, err := h.courses.GetLesson(r.Context(), id, viewerID, viewerRole)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// AddLesson handles POST /api/courses/{courseID}/lessons. Owner only,
// before publication only.
func (h *CourseHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	var req LessonRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := h.courses.AddLesson(r.Context(), id, identity.UserID,
		req.Title, req.Content, req.OrderIndex)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, lesson)
}

// ListLessons handles GET /api/courses/{courseID}/lessons, in course order.
func (h *CourseHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	viewerID, viewerRole := viewer(r)
	lessons, err := h.courses.ListLessons(r.Context(), id, viewerID, viewerRole)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if lessons == nil {
		lessons = []*domain.Lesson{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// Submit handles POST /api/courses/{courseID}/submit: draft to review.
func (h *CourseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "courseID")
	if !ok {
		return
	}

	course, err := h.courses.Submit(r.Context(), id, identity.UserID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// Mine handles GET /api/creator/dashboard: the caller's own courses in
// every state.
func (h *CourseHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	courses, err := h.courses.ListByCreator(r.Context(), identity.UserID, limit+1, offset)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPageResponse(courses, limit, offset))
}

// viewer returns the caller's identity for visibility checks. The public
// catalog routes authenticate optionally, so an absent identity means an
// anonymous caller who sees published content only.
func viewer(r *http.Request) (uuid.UUID, domain.Role) {
	if identity, ok := shared.IdentityFromContext(r.Context()); ok {
		return identity.UserID, identity.Role
	}
	return uuid.Nil, domain.RoleLearner
}
