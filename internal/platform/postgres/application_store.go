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

// ApplicationStore implements the store.ApplicationStore interface using
// PostgreSQL.
type ApplicationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewApplicationStore creates a new PostgreSQL implementation of
// store.ApplicationStore.
func NewApplicationStore(db store.DBTX, logger *slog.Logger) *ApplicationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ApplicationStore{
		db:     db,
		logger: logger.With(slog.String("component", "application_store")),
	}
}

// Ensure ApplicationStore implements store.ApplicationStore interface.
var _ store.ApplicationStore = (*ApplicationStore)(nil)

// Create implements store.ApplicationStore.Create. The partial unique index
// on (user_id) WHERE status = 'pending' is the sole guard against a second
// pending application.
func (s *ApplicationStore) Create(ctx context.Context, app *domain.CreatorApplication) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := app.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO creator_applications (id, user_id, status, bio, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		app.ID, app.UserID, app.Status, app.Bio, app.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("pending application already exists",
				slog.String("user_id", app.UserID.String()))
			return store.ErrPendingApplicationExists
		}
		log.Error("failed to create application",
			slog.String("error", err.Error()),
			slog.String("application_id", app.ID.String()))
		return MapError(err)
	}

	log.Info("creator application created",
		slog.String("application_id", app.ID.String()),
		slog.String("user_id", app.UserID.String()))
	return nil
}

// Approve implements store.ApplicationStore.Approve. The WHERE clause
// matches both the ID and the pending status, so a second approval of the
// same application observes ErrApplicationNotFound.
func (s *ApplicationStore) Approve(ctx context.Context, id uuid.UUID) (*domain.CreatorApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE creator_applications
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING id, user_id, status, bio, created_at
	`
	var app domain.CreatorApplication
	var status string
	err := s.db.QueryRowContext(ctx, query,
		domain.ApplicationStatusApproved, id, domain.ApplicationStatusPending).Scan(
		&app.ID, &app.UserID, &status, &app.Bio, &app.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrApplicationNotFound
		}
		log.Error("failed to approve application",
			slog.String("error", err.Error()),
			slog.String("application_id", id.String()))
		return nil, MapError(err)
	}

	app.Status = domain.ApplicationStatus(status)

	log.Info("creator application approved",
		slog.String("application_id", app.ID.String()),
		slog.String("user_id", app.UserID.String()))
	return &app, nil
}

// ListPending implements store.ApplicationStore.ListPending.
func (s *ApplicationStore) ListPending(ctx context.Context, limit, offset int) ([]*store.PendingApplication, error) {
	query := `
		SELECT a.id, a.user_id, u.email, a.bio, a.status, a.created_at
		FROM creator_applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.status = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, domain.ApplicationStatusPending, limit, offset)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var apps []*store.PendingApplication
	for rows.Next() {
		var app store.PendingApplication
		var status string
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.Email, &app.Bio, &status, &app.CreatedAt); err != nil {
			return nil, err
		}
		app.Status = domain.ApplicationStatus(status)
		apps = append(apps, &app)
	}

	return apps, rows.Err()
}

// WithTx implements store.ApplicationStore.WithTx.
func (s *ApplicationStore) WithTx(tx *sql.Tx) store.ApplicationStore {
	return &ApplicationStore{
		db:     tx,
		logger: s.logger,
	}
}
