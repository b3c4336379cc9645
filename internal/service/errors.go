package service

import "errors"

// Common errors returned by the service layer. Storage-level sentinels (not
// found, duplicates) pass through from the store package unchanged; these
// cover workflow rules that only the service layer can see.
var (
	// ErrCourseNotEditable is returned when a mutation targets a course
	// that has left the draft state.
	ErrCourseNotEditable = errors.New("course is no longer editable")

	// ErrInvalidCourseState is returned when a lifecycle transition is
	// requested from a state that does not allow it.
	ErrInvalidCourseState = errors.New("course is not in a valid state for this transition")

	// ErrCourseIncomplete is returned when a certificate is requested
	// before every lesson of the course has been completed.
	ErrCourseIncomplete = errors.New("course is not fully completed")
)
