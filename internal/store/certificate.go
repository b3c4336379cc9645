package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// CertificateStore defines the interface for certificate persistence.
type CertificateStore interface {
	// Create saves a new certificate. Returns ErrCertificateExists if one
	// already exists for the (user, course) pair, letting the caller fetch
	// and return the winner of a concurrent issuance race.
	Create(ctx context.Context, cert *domain.Certificate) error

	// GetByUserAndCourse retrieves the certificate for a (user, course)
	// pair. Returns ErrCertificateNotFound if none exists.
	GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Certificate, error)
}
