package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// ProgressStore defines the interface for lesson progress persistence.
type ProgressStore interface {
	// Upsert marks a lesson completed for a user. Re-completing the same
	// lesson updates the completion timestamp and never creates a second
	// row or errors.
	Upsert(ctx context.Context, progress *domain.LessonProgress) error

	// CountCompleted returns the number of lessons of the course that the
	// user has completed.
	CountCompleted(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}
