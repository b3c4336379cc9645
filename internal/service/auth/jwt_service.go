// Package auth provides token-based authentication: JWT signing and
// verification carrying the caller's identity (subject, role, email), and
// bcrypt password hashing behind small interfaces.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token containing the user's identity.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken verifies the token's signature and expiry and extracts
	// the claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified identity extracted from a token. It is immutable
// for the remainder of the request.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"sub"`

	// Role is the user's role at issuance time.
	Role domain.Role `json:"role"`

	// Email is the user's email at issuance time.
	Email string `json:"email"`

	// Standard registered claims.
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}
