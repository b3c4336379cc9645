package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// LessonStore defines the interface for lesson data persistence.
type LessonStore interface {
	// Create saves a new lesson, conditioned on its course still being
	// editable (draft or submitted). Returns ErrDuplicateLessonOrder if
	// the course already has a lesson at the same order index; the unique
	// constraint is the source of truth. Returns ErrCourseNotFound if the
	// course is missing or has been published in the meantime.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListByCourse returns all lessons of a course ordered by order index.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)

	// CountByCourse returns the number of lessons in a course.
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
}
