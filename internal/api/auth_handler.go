package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/service/auth"
	"github.com/microcourses/api/internal/store"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users      store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	users store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if users == nil {
		panic("users store cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if verifier == nil {
		panic("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		verifier:   verifier,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register. New users always start as
// Learner; a token is issued immediately so the client can skip a separate
// login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			shared.CodeInvalid, err.Error())
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Info("user registered", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:  NewUserResponse(user),
		Token: token,
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !shared.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			respondWithServiceError(w, r, auth.ErrInvalidCredentials)
			return
		}
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		respondWithServiceError(w, r, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  NewUserResponse(user),
		Token: token,
	})
}

// Me handles GET /api/auth/me, returning the authenticated user's current
// record. Role changes since token issuance are visible here.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				shared.CodeUnauthorized, "user no longer exists")
			return
		}
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}
