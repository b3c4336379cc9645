package store

import (
	"context"

	"github.com/microcourses/api/internal/domain"
)

// EnrollmentStore defines the interface for enrollment persistence.
type EnrollmentStore interface {
	// Create saves an enrollment. A duplicate (user, course) pair is a
	// silent no-op: the insert is resolved against the unique constraint,
	// never by a pre-check.
	Create(ctx context.Context, enrollment *domain.Enrollment) error
}
