package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/service/auth"
	"github.com/microcourses/api/internal/store"
)

// UserStore implements the store.UserStore interface using PostgreSQL.
type UserStore struct {
	db     store.DBTX
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of store.UserStore.
// The hasher is applied to plaintext passwords before rows are written.
func NewUserStore(db store.DBTX, hasher auth.PasswordHasher, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface.
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// It hashes the plaintext password and inserts the user, translating a
// unique violation on email into store.ErrEmailExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, email, hashed_password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.HashedPassword, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("email", user.Email))
			return MapUniqueViolation(err, store.ErrEmailExists)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getBy(ctx, "id = $1", id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, "email = $1", email)
}

// UpdateRole implements store.UserStore.UpdateRole.
func (s *UserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, role, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update user role",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	log.Info("user role updated",
		slog.String("user_id", id.String()),
		slog.String("role", string(role)))
	return nil
}

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{
		db:     tx,
		hasher: s.hasher,
		logger: s.logger,
	}
}

func (s *UserStore) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, role, created_at, updated_at
		FROM users
		WHERE ` + where

	var user domain.User
	var role string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &role,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	user.Role = domain.Role(role)
	return &user, nil
}
