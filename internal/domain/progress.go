package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LessonProgress records a learner's completion of a single lesson.
// The (UserID, LessonID) pair is unique; re-completing is an idempotent
// upsert that refreshes CompletedAt.
type LessonProgress struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	LessonID    uuid.UUID  `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CourseProgress summarizes a learner's completion of a course.
type CourseProgress struct {
	TotalLessons     int `json:"total_lessons"`
	CompletedLessons int `json:"completed_lessons"`
	Percent          int `json:"percent"`
}

// NewCourseProgress builds a CourseProgress from raw counts.
// Percent is defined as 0 when the course has no lessons.
func NewCourseProgress(total, completed int) CourseProgress {
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return CourseProgress{
		TotalLessons:     total,
		CompletedLessons: completed,
		Percent:          percent,
	}
}

// Complete reports whether every lesson of the course has been completed.
// A course with no lessons is never complete.
func (p CourseProgress) Complete() bool {
	return p.TotalLessons > 0 && p.CompletedLessons == p.TotalLessons
}
