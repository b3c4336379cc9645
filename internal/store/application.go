package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// PendingApplication is a pending creator application joined with the
// applicant's email for review listings.
type PendingApplication struct {
	ID        uuid.UUID                `json:"id"`
	UserID    uuid.UUID                `json:"user_id"`
	Email     string                   `json:"email"`
	Bio       string                   `json:"bio"`
	Status    domain.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

// ApplicationStore defines the interface for creator application persistence.
type ApplicationStore interface {
	// Create saves a new pending application. A partial unique index on
	// (user_id) WHERE status = 'pending' guarantees at most one pending
	// application per user; a violation is returned as
	// ErrPendingApplicationExists.
	Create(ctx context.Context, app *domain.CreatorApplication) error

	// Approve transitions an application from pending to approved as a
	// single conditional update and returns the approved application.
	// Returns ErrApplicationNotFound if no pending application with the
	// given ID exists.
	Approve(ctx context.Context, id uuid.UUID) (*domain.CreatorApplication, error)

	// ListPending returns up to limit pending applications with applicant
	// emails, newest first, skipping offset rows.
	ListPending(ctx context.Context, limit, offset int) ([]*PendingApplication, error)

	// WithTx returns a new ApplicationStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ApplicationStore
}
