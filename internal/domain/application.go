package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of a creator application.
type ApplicationStatus string

// Creator application states. Only pending -> approved is reachable through
// the API; rejected exists as a terminal value with no exposed transition
// into it.
const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Common validation errors for CreatorApplication.
var (
	ErrEmptyApplicationID       = errors.New("application ID cannot be empty")
	ErrEmptyApplicationUserID   = errors.New("application user ID cannot be empty")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
)

// Valid reports whether the status is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// CreatorApplication represents a learner's request to become a creator.
// At most one pending application exists per user at any time.
type CreatorApplication struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Status    ApplicationStatus `json:"status"`
	Bio       string            `json:"bio"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewCreatorApplication creates a new pending application for the given user.
func NewCreatorApplication(userID uuid.UUID, bio string) (*CreatorApplication, error) {
	app := &CreatorApplication{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    ApplicationStatusPending,
		Bio:       bio,
		CreatedAt: time.Now().UTC(),
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}

	return app, nil
}

// Validate checks if the CreatorApplication has valid data.
func (a *CreatorApplication) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyApplicationID
	}

	if a.UserID == uuid.Nil {
		return ErrEmptyApplicationUserID
	}

	if !a.Status.Valid() {
		return ErrInvalidApplicationStatus
	}

	return nil
}
