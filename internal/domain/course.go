package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CourseStatus represents the review state of a course.
type CourseStatus string

// Course lifecycle states. Transitions are strictly forward:
// draft -> submitted -> published. There is no rejection transition and no
// path back to an earlier state.
const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusSubmitted CourseStatus = "submitted"
	CourseStatusPublished CourseStatus = "published"
)

// Common validation errors for Course.
var (
	ErrEmptyCourseID       = errors.New("course ID cannot be empty")
	ErrEmptyCourseCreator  = errors.New("course creator ID cannot be empty")
	ErrEmptyCourseTitle    = errors.New("course title cannot be empty")
	ErrInvalidCourseStatus = errors.New("invalid course status")
)

// Valid reports whether the status is a known course status.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusSubmitted, CourseStatusPublished:
		return true
	default:
		return false
	}
}

// Editable reports whether course content (title, description, lessons)
// may still change. Published courses are immutable.
func (s CourseStatus) Editable() bool {
	return s == CourseStatusDraft || s == CourseStatusSubmitted
}

// CanTransitionTo reports whether the linear lifecycle permits moving from
// the current status to the target status.
func (s CourseStatus) CanTransitionTo(target CourseStatus) bool {
	switch {
	case s == CourseStatusDraft && target == CourseStatusSubmitted:
		return true
	case s == CourseStatusSubmitted && target == CourseStatusPublished:
		return true
	default:
		return false
	}
}

// Course represents a course authored by a creator. It is owned exclusively
// by its creator for mutation and becomes read-shared with all learners once
// published.
type Course struct {
	ID          uuid.UUID    `json:"id"`
	CreatorID   uuid.UUID    `json:"creator_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      CourseStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewCourse creates a new draft course owned by the given creator.
func NewCourse(creatorID uuid.UUID, title, description string) (*Course, error) {
	course := &Course{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		Status:      CourseStatusDraft,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCourseID
	}

	if c.CreatorID == uuid.Nil {
		return ErrEmptyCourseCreator
	}

	if c.Title == "" {
		return ErrEmptyCourseTitle
	}

	if !c.Status.Valid() {
		return ErrInvalidCourseStatus
	}

	return nil
}

// OwnedBy reports whether the given user is the course's creator.
func (c *Course) OwnedBy(userID uuid.UUID) bool {
	return c.CreatorID == userID
}
