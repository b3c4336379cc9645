package postgres

import (
	"context"
	"log/slog"

	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// EnrollmentStore implements the store.EnrollmentStore interface using
// PostgreSQL.
type EnrollmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewEnrollmentStore creates a new PostgreSQL implementation of
// store.EnrollmentStore.
func NewEnrollmentStore(db store.DBTX, logger *slog.Logger) *EnrollmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EnrollmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "enrollment_store")),
	}
}

// Ensure EnrollmentStore implements store.EnrollmentStore interface.
var _ store.EnrollmentStore = (*EnrollmentStore)(nil)

// Create implements store.EnrollmentStore.Create. A repeated enrollment
// resolves against the unique constraint and is silently dropped.
func (s *EnrollmentStore) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := enrollment.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO enrollments (id, user_id, course_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, course_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		enrollment.ID, enrollment.UserID, enrollment.CourseID, enrollment.CreatedAt)
	if err != nil {
		log.Error("failed to create enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", enrollment.UserID.String()),
			slog.String("course_id", enrollment.CourseID.String()))
		return MapError(err)
	}

	log.Info("enrollment recorded",
		slog.String("user_id", enrollment.UserID.String()),
		slog.String("course_id", enrollment.CourseID.String()))
	return nil
}
