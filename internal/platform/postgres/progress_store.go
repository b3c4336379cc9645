package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// ProgressStore implements the store.ProgressStore interface using
// PostgreSQL.
type ProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProgressStore creates a new PostgreSQL implementation of
// store.ProgressStore.
func NewProgressStore(db store.DBTX, logger *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure ProgressStore implements store.ProgressStore interface.
var _ store.ProgressStore = (*ProgressStore)(nil)

// Upsert implements store.ProgressStore.Upsert. Re-completing a lesson
// refreshes the completion timestamp on the existing row.
func (s *ProgressStore) Upsert(ctx context.Context, progress *domain.LessonProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO lesson_progress (id, user_id, lesson_id, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, lesson_id)
		DO UPDATE SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at
	`
	_, err := s.db.ExecContext(ctx, query,
		progress.ID, progress.UserID, progress.LessonID,
		progress.Completed, progress.CompletedAt)
	if err != nil {
		log.Error("failed to upsert lesson progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("lesson_id", progress.LessonID.String()))
		return MapError(err)
	}

	return nil
}

// CountCompleted implements store.ProgressStore.CountCompleted.
func (s *ProgressStore) CountCompleted(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lesson_progress p
		JOIN lessons l ON l.id = p.lesson_id
		WHERE p.user_id = $1 AND l.course_id = $2 AND p.completed
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count); err != nil {
		return 0, MapError(err)
	}

	return count, nil
}
