package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// CertificateStore implements the store.CertificateStore interface using
// PostgreSQL.
type CertificateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCertificateStore creates a new PostgreSQL implementation of
// store.CertificateStore.
func NewCertificateStore(db store.DBTX, logger *slog.Logger) *CertificateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CertificateStore{
		db:     db,
		logger: logger.With(slog.String("component", "certificate_store")),
	}
}

// Ensure CertificateStore implements store.CertificateStore interface.
var _ store.CertificateStore = (*CertificateStore)(nil)

// Create implements store.CertificateStore.Create. The unique constraint on
// (user_id, course_id) decides the winner of a concurrent issuance; the
// loser gets ErrCertificateExists and re-reads the stored certificate.
func (s *CertificateStore) Create(ctx context.Context, cert *domain.Certificate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := cert.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO certificates (id, user_id, course_id, serial_hash, issued_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		cert.ID, cert.UserID, cert.CourseID, cert.SerialHash, cert.IssuedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrCertificateExists
		}
		log.Error("failed to create certificate",
			slog.String("error", err.Error()),
			slog.String("user_id", cert.UserID.String()),
			slog.String("course_id", cert.CourseID.String()))
		return MapError(err)
	}

	log.Info("certificate issued",
		slog.String("certificate_id", cert.ID.String()),
		slog.String("user_id", cert.UserID.String()),
		slog.String("course_id", cert.CourseID.String()))
	return nil
}

// GetByUserAndCourse implements store.CertificateStore.GetByUserAndCourse.
func (s *CertificateStore) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Certificate, error) {
	query := `
		SELECT id, user_id, course_id, serial_hash, issued_at
		FROM certificates
		WHERE user_id = $1 AND course_id = $2
	`
	var cert domain.Certificate
	err := s.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&cert.ID, &cert.UserID, &cert.CourseID, &cert.SerialHash, &cert.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCertificateNotFound
		}
		return nil, MapError(err)
	}

	return &cert, nil
}
