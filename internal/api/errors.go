package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/service"
	"github.com/microcourses/api/internal/service/auth"
	"github.com/microcourses/api/internal/store"
)

// respondWithServiceError translates service and store errors into the
// uniform error envelope. Anything unrecognized is a 500 and gets logged;
// recognized errors are part of normal operation and are not.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			shared.CodeUnauthorized, "invalid email or password")

	case errors.Is(err, store.ErrEmailExists):
		shared.RespondWithFieldError(w, r, http.StatusBadRequest,
			shared.CodeAlreadyExists, "email is already registered", "email")

	case errors.Is(err, store.ErrPendingApplicationExists):
		shared.RespondWithError(w, r, http.StatusBadRequest,
			shared.CodeAlreadyExists, "a pending application already exists")

	case errors.Is(err, store.ErrDuplicateLessonOrder):
		shared.RespondWithFieldError(w, r, http.StatusBadRequest,
			shared.CodeInvalid, "a lesson with this order index already exists", "order_index")

	case errors.Is(err, service.ErrCourseNotEditable):
		shared.RespondWithFieldError(w, r, http.StatusBadRequest,
			shared.CodeInvalid, "course can no longer be edited", "status")

	case errors.Is(err, service.ErrInvalidCourseState):
		shared.RespondWithFieldError(w, r, http.StatusBadRequest,
			shared.CodeInvalid, "course is not in a valid state for this transition", "status")

	case errors.Is(err, service.ErrCourseIncomplete):
		shared.RespondWithError(w, r, http.StatusBadRequest,
			shared.CodeInvalid, "course is not fully completed")

	case store.IsNotFoundError(err):
		shared.RespondWithError(w, r, http.StatusNotFound,
			shared.CodeNotFound, "resource not found")

	default:
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Error("unhandled service error",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path))
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			shared.CodeInternal, "internal server error")
	}
}
