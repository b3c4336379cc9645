package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// CreatorService implements the creator application workflow: a learner
// applies, an admin approves, and the applicant is promoted to Creator in
// the same transaction as the approval.
type CreatorService struct {
	db           *sql.DB
	users        store.UserStore
	applications store.ApplicationStore
	logger       *slog.Logger
}

// NewCreatorService creates a new CreatorService. The *sql.DB handle is
// needed because approval spans two stores atomically.
func NewCreatorService(
	db *sql.DB,
	users store.UserStore,
	applications store.ApplicationStore,
	logger *slog.Logger,
) *CreatorService {
	if db == nil {
		panic("db cannot be nil")
	}
	if users == nil {
		panic("users store cannot be nil")
	}
	if applications == nil {
		panic("applications store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CreatorService{
		db:           db,
		users:        users,
		applications: applications,
		logger:       logger.With(slog.String("component", "creator_service")),
	}
}

// Apply files a pending creator application for the user. At most one
// pending application can exist per user; a second attempt returns
// store.ErrPendingApplicationExists from the storage constraint.
func (s *CreatorService) Apply(ctx context.Context, userID uuid.UUID, bio string) (*domain.CreatorApplication, error) {
	app, err := domain.NewCreatorApplication(userID, bio)
	if err != nil {
		return nil, err
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// ListPending returns a page of pending applications with applicant emails,
// newest first.
func (s *CreatorService) ListPending(ctx context.Context, limit, offset int) ([]*store.PendingApplication, error) {
	return s.applications.ListPending(ctx, limit, offset)
}

// Approve marks a pending application approved and promotes the applicant
// to Creator. Both writes happen in one transaction; a failure in either
// leaves the application pending and the role unchanged.
func (s *CreatorService) Approve(ctx context.Context, id uuid.UUID) (*domain.CreatorApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var approved *domain.CreatorApplication
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		app, err := s.applications.WithTx(tx).Approve(ctx, id)
		if err != nil {
			return err
		}

		if err := s.users.WithTx(tx).UpdateRole(ctx, app.UserID, domain.RoleCreator); err != nil {
			return err
		}

		approved = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("creator application approved and role promoted",
		slog.String("application_id", approved.ID.String()),
		slog.String("user_id", approved.UserID.String()))
	return approved, nil
}
