package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Lesson.
var (
	ErrEmptyLessonID       = errors.New("lesson ID cannot be empty")
	ErrEmptyLessonCourseID = errors.New("lesson course ID cannot be empty")
	ErrEmptyLessonTitle    = errors.New("lesson title cannot be empty")
	ErrNegativeLessonOrder = errors.New("lesson order index cannot be negative")
)

// Lesson represents a single lesson within a course. The (CourseID,
// OrderIndex) pair is unique per course; the transcript is derived from the
// content by a summarizer at creation time.
type Lesson struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Transcript string    `json:"transcript"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewLesson creates a new lesson for the given course.
func NewLesson(courseID uuid.UUID, title, content, transcript string, orderIndex int) (*Lesson, error) {
	lesson := &Lesson{
		ID:         uuid.New(),
		CourseID:   courseID,
		Title:      title,
		Content:    content,
		Transcript: transcript,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLessonID
	}

	if l.CourseID == uuid.Nil {
		return ErrEmptyLessonCourseID
	}

	if l.Title == "" {
		return ErrEmptyLessonTitle
	}

	if l.OrderIndex < 0 {
		return ErrNegativeLessonOrder
	}

	return nil
}
