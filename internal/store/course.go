package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// CourseStore defines the interface for course data persistence.
type CourseStore interface {
	// Create saves a new course to the store.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by ID regardless of status.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// GetPublished retrieves a course by ID only if it is published.
	// Returns ErrCourseNotFound otherwise.
	GetPublished(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// Update persists title and description changes, conditioned on the
	// course still being editable (draft or submitted). Returns
	// ErrCourseNotFound if the course does not exist or has been
	// published in the meantime.
	Update(ctx context.Context, course *domain.Course) error

	// UpdateStatus transitions a course from one status to another as a
	// single conditional update. Returns ErrCourseNotFound if no row with
	// the given ID and current status exists, so concurrent transitions
	// cannot both succeed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.CourseStatus) error

	// ListByStatus returns up to limit courses with the given status,
	// newest first, skipping offset rows.
	ListByStatus(ctx context.Context, status domain.CourseStatus, limit, offset int) ([]*domain.Course, error)

	// ListByCreator returns up to limit courses owned by the creator,
	// newest first, skipping offset rows.
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Course, error)
}
