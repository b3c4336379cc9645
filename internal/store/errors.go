package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint. Entity-specific variants below wrap it.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or
	// references a missing parent row.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors.

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCourseNotFound indicates that the requested course does not exist.
	ErrCourseNotFound = fmt.Errorf("%w: course", ErrNotFound)

	// ErrLessonNotFound indicates that the requested lesson does not exist.
	ErrLessonNotFound = fmt.Errorf("%w: lesson", ErrNotFound)

	// ErrApplicationNotFound indicates that the requested creator
	// application does not exist.
	ErrApplicationNotFound = fmt.Errorf("%w: creator application", ErrNotFound)

	// ErrCertificateNotFound indicates that the requested certificate does
	// not exist.
	ErrCertificateNotFound = fmt.Errorf("%w: certificate", ErrNotFound)

	// Entity-specific "duplicate" errors.

	// ErrEmailExists indicates that a user with the given email already
	// exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPendingApplicationExists indicates that the user already has a
	// pending creator application.
	ErrPendingApplicationExists = fmt.Errorf("%w: pending application", ErrDuplicate)

	// ErrDuplicateLessonOrder indicates that the course already has a lesson
	// at the given order index.
	ErrDuplicateLessonOrder = fmt.Errorf("%w: lesson order", ErrDuplicate)

	// ErrCertificateExists indicates that a certificate already exists for
	// the (user, course) pair.
	ErrCertificateExists = fmt.Errorf("%w: certificate", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
