package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCourse(t *testing.T) {
	t.Parallel()

	creatorID := uuid.New()

	course, err := NewCourse(creatorID, "Intro to Go", "A short course")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if course.ID == uuid.Nil {
		t.Error("Expected non-nil course ID")
	}

	if course.CreatorID != creatorID {
		t.Errorf("Expected creator ID %s, got %s", creatorID, course.CreatorID)
	}

	if course.Status != CourseStatusDraft {
		t.Errorf("Expected new course to be draft, got %s", course.Status)
	}

	// Missing creator
	if _, err := NewCourse(uuid.Nil, "Title", ""); err != ErrEmptyCourseCreator {
		t.Errorf("Expected %v, got %v", ErrEmptyCourseCreator, err)
	}

	// Missing title
	if _, err := NewCourse(creatorID, "", ""); err != ErrEmptyCourseTitle {
		t.Errorf("Expected %v, got %v", ErrEmptyCourseTitle, err)
	}
}

func TestCourseStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    CourseStatus
		to      CourseStatus
		allowed bool
	}{
		{"draft to submitted", CourseStatusDraft, CourseStatusSubmitted, true},
		{"submitted to published", CourseStatusSubmitted, CourseStatusPublished, true},
		{"draft to published skips review", CourseStatusDraft, CourseStatusPublished, false},
		{"published to submitted moves backward", CourseStatusPublished, CourseStatusSubmitted, false},
		{"submitted to draft moves backward", CourseStatusSubmitted, CourseStatusDraft, false},
		{"published to draft moves backward", CourseStatusPublished, CourseStatusDraft, false},
		{"draft to draft", CourseStatusDraft, CourseStatusDraft, false},
		{"submitted to submitted", CourseStatusSubmitted, CourseStatusSubmitted, false},
		{"published to published", CourseStatusPublished, CourseStatusPublished, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestCourseStatusEditable(t *testing.T) {
	t.Parallel()

	if !CourseStatusDraft.Editable() {
		t.Error("Expected draft to be editable")
	}

	if !CourseStatusSubmitted.Editable() {
		t.Error("Expected submitted to be editable")
	}

	if CourseStatusPublished.Editable() {
		t.Error("Expected published to be immutable")
	}
}

func TestCourseOwnedBy(t *testing.T) {
	t.Parallel()

	creatorID := uuid.New()
	course, err := NewCourse(creatorID, "Ownership", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !course.OwnedBy(creatorID) {
		t.Error("Expected course to be owned by its creator")
	}

	if course.OwnedBy(uuid.New()) {
		t.Error("Expected course not to be owned by another user")
	}
}
