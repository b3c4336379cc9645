package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// LessonStore implements the store.LessonStore interface using PostgreSQL.
type LessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLessonStore creates a new PostgreSQL implementation of store.LessonStore.
func NewLessonStore(db store.DBTX, logger *slog.Logger) *LessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure LessonStore implements store.LessonStore interface.
var _ store.LessonStore = (*LessonStore)(nil)

const lessonColumns = "id, course_id, title, content, transcript, order_index, created_at"

// Create implements store.LessonStore.Create. Uniqueness of the
// (course_id, order_index) pair is enforced by the database constraint, not
// by a read-before-write. The insert is guarded on the course still being
// editable so a lesson cannot land on a concurrently published course.
func (s *LessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (
			SELECT 1 FROM courses WHERE id = $2 AND status IN ($8, $9)
		)
	`
	result, err := s.db.ExecContext(ctx, query,
		lesson.ID, lesson.CourseID, lesson.Title, lesson.Content,
		lesson.Transcript, lesson.OrderIndex, lesson.CreatedAt,
		domain.CourseStatusDraft, domain.CourseStatusSubmitted)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate lesson order index",
				slog.String("course_id", lesson.CourseID.String()),
				slog.Int("order_index", lesson.OrderIndex))
			return store.ErrDuplicateLessonOrder
		}
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}

	log.Info("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("course_id", lesson.CourseID.String()))
	return nil
}

// GetByID implements store.LessonStore.GetByID.
func (s *LessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	var lesson domain.Lesson
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content,
		&lesson.Transcript, &lesson.OrderIndex, &lesson.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		return nil, MapError(err)
	}

	return &lesson, nil
}

// ListByCourse implements store.LessonStore.ListByCourse.
func (s *LessonStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index ASC
	`
	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var lessons []*domain.Lesson
	for rows.Next() {
		var lesson domain.Lesson
		if err := rows.Scan(
			&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content,
			&lesson.Transcript, &lesson.OrderIndex, &lesson.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, &lesson)
	}

	return lessons, rows.Err()
}

// CountByCourse implements store.LessonStore.CountByCourse.
func (s *LessonStore) CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lessons WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}

	return count, nil
}
