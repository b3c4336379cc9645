package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/service/auth"
)

// Authenticator verifies bearer tokens and attaches the caller's identity
// to the request context.
type Authenticator struct {
	jwtService auth.JWTService
}

// NewAuthenticator creates a new Authenticator using the given JWT service.
func NewAuthenticator(jwtService auth.JWTService) *Authenticator {
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	return &Authenticator{jwtService: jwtService}
}

// Authenticate requires a valid bearer token. Missing, malformed, expired,
// and forged tokens are all rejected with the same UNAUTHORIZED code.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				shared.CodeUnauthorized, "missing or malformed authorization header")
			return
		}

		claims, err := a.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "token expired"
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				shared.CodeUnauthorized, message)
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.Identity{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateOptional attaches the caller's identity when the request
// carries a valid bearer token and passes it through anonymously otherwise.
// The public catalog reads use it so course owners and admins can see
// unpublished content without gating the routes.
func (a *Authenticator) AuthenticateOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.Identity{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only callers whose role satisfies the requirement.
// Admin satisfies every requirement. Must run after Authenticate.
func RequireRole(required domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					shared.CodeUnauthorized, "authentication required")
				return
			}

			if !identity.Role.Satisfies(required) {
				shared.RespondWithError(w, r, http.StatusForbidden,
					shared.CodeForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
