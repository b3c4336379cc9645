package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Enrollment.
var (
	ErrEmptyEnrollmentID       = errors.New("enrollment ID cannot be empty")
	ErrEmptyEnrollmentUserID   = errors.New("enrollment user ID cannot be empty")
	ErrEmptyEnrollmentCourseID = errors.New("enrollment course ID cannot be empty")
)

// Enrollment records that a learner joined a published course.
// The (UserID, CourseID) pair is unique; repeated enrollment is a no-op.
type Enrollment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CourseID  uuid.UUID `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEnrollment creates a new enrollment for the given user and course.
func NewEnrollment(userID, courseID uuid.UUID) (*Enrollment, error) {
	enrollment := &Enrollment{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: time.Now().UTC(),
	}

	if err := enrollment.Validate(); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// Validate checks if the Enrollment has valid data.
func (e *Enrollment) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEnrollmentID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEnrollmentUserID
	}

	if e.CourseID == uuid.Nil {
		return ErrEmptyEnrollmentCourseID
	}

	return nil
}
