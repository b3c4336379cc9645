package api

import (
	"net/http"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/service"
)

// CreatorHandler serves the creator application endpoint.
type CreatorHandler struct {
	creators *service.CreatorService
}

// NewCreatorHandler creates a new CreatorHandler.
func NewCreatorHandler(creators *service.CreatorService) *CreatorHandler {
	if creators == nil {
		panic("creator service cannot be nil")
	}
	return &CreatorHandler{creators: creators}
}

// Apply handles POST /api/creator/apply. Learners apply to become creators;
// at most one pending application exists per user.
func (h *CreatorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	var req ApplyRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	app, err := h.creators.Apply(r.Context(), identity.UserID, req.Bio)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, app)
}
