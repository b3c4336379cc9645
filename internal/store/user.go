package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store, hashing the plaintext password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateRole changes a user's role.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error

	// WithTx returns a new UserStore instance bound to the provided
	// transaction so that role promotion can join a larger atomic operation.
	WithTx(tx *sql.Tx) UserStore
}
