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
	"github.com/microcourses/api/internal/store"
)

// CourseStore implements the store.CourseStore interface using PostgreSQL.
type CourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCourseStore creates a new PostgreSQL implementation of store.CourseStore.
func NewCourseStore(db store.DBTX, logger *slog.Logger) *CourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure CourseStore implements store.CourseStore interface.
var _ store.CourseStore = (*CourseStore)(nil)

const courseColumns = "id, creator_id, title, description, status, created_at, updated_at"

// Create implements store.CourseStore.Create.
func (s *CourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		course.ID, course.CreatorID, course.Title, course.Description,
		course.Status, course.CreatedAt, course.UpdatedAt)
	if err != nil {
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	log.Info("course created",
		slog.String("course_id", course.ID.String()),
		slog.String("creator_id", course.CreatorID.String()))
	return nil
}

// GetByID implements store.CourseStore.GetByID.
func (s *CourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return s.scanCourse(s.db.QueryRowContext(ctx, query, id))
}

// GetPublished implements store.CourseStore.GetPublished.
func (s *CourseStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND status = $2`
	return s.scanCourse(s.db.QueryRowContext(ctx, query, id, domain.CourseStatusPublished))
}

// Update implements store.CourseStore.Update. The status condition makes
// the write lose against a concurrent publication instead of mutating a
// published course.
func (s *CourseStore) Update(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE courses
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND status IN ($5, $6)
	`
	result, err := s.db.ExecContext(ctx, query,
		course.Title, course.Description, time.Now().UTC(), course.ID,
		domain.CourseStatusDraft, domain.CourseStatusSubmitted)
	if err != nil {
		log.Error("failed to update course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}

	return nil
}

// UpdateStatus implements store.CourseStore.UpdateStatus.
// The WHERE clause matches both ID and current status, so a concurrent
// transition loses the race and observes ErrCourseNotFound.
func (s *CourseStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.CourseStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE courses
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := s.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		log.Error("failed to update course status",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}

	log.Info("course status updated",
		slog.String("course_id", id.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return nil
}

// ListByStatus implements store.CourseStore.ListByStatus.
func (s *CourseStore) ListByStatus(ctx context.Context, status domain.CourseStatus, limit, offset int) ([]*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return s.listCourses(ctx, query, status, limit, offset)
}

// ListByCreator implements store.CourseStore.ListByCreator.
func (s *CourseStore) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return s.listCourses(ctx, query, creatorID, limit, offset)
}

func (s *CourseStore) listCourses(ctx context.Context, query string, args ...any) ([]*domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*domain.Course
	for rows.Next() {
		var course domain.Course
		var status string
		if err := rows.Scan(
			&course.ID, &course.CreatorID, &course.Title, &course.Description,
			&status, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, err
		}
		course.Status = domain.CourseStatus(status)
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}

func (s *CourseStore) scanCourse(row *sql.Row) (*domain.Course, error) {
	var course domain.Course
	var status string

	err := row.Scan(
		&course.ID, &course.CreatorID, &course.Title, &course.Description,
		&status, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		return nil, MapError(err)
	}

	course.Status = domain.CourseStatus(status)
	return &course, nil
}
