package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// serialHashLength is the number of hex characters kept from the serial
// hash digest. The serial is an opaque identifier, not a security token;
// collision resistance at this length is sufficient.
const serialHashLength = 16

// Common validation errors for Certificate.
var (
	ErrEmptyCertificateID     = errors.New("certificate ID cannot be empty")
	ErrEmptyCertificateSerial = errors.New("certificate serial hash cannot be empty")
)

// Certificate records that a learner completed every lesson of a course.
// The (UserID, CourseID) pair is unique; issuance is idempotent.
type Certificate struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CourseID   uuid.UUID `json:"course_id"`
	SerialHash string    `json:"serial_hash"`
	IssuedAt   time.Time `json:"issued_at"`
}

// NewCertificate creates a certificate for the given user and course,
// stamped with a serial hash derived from the pair and the issuance time.
func NewCertificate(userID, courseID uuid.UUID) (*Certificate, error) {
	issuedAt := time.Now().UTC()

	cert := &Certificate{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		SerialHash: serialHash(userID, courseID, issuedAt),
		IssuedAt:   issuedAt,
	}

	if err := cert.Validate(); err != nil {
		return nil, err
	}

	return cert, nil
}

// Validate checks if the Certificate has valid data.
func (c *Certificate) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCertificateID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyEnrollmentUserID
	}

	if c.CourseID == uuid.Nil {
		return ErrEmptyEnrollmentCourseID
	}

	if c.SerialHash == "" {
		return ErrEmptyCertificateSerial
	}

	return nil
}

// serialHash derives the truncated, non-reversible certificate serial from
// the user, the course, and the issuance timestamp.
func serialHash(userID, courseID uuid.UUID, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d", userID, courseID, issuedAt.UnixNano())))
	return hex.EncodeToString(sum[:])[:serialHashLength]
}
