package service_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/service"
	"github.com/microcourses/api/internal/store"
)

// Approve spans a real transaction and is covered by integration tests
// against PostgreSQL; these tests cover the application-side rules.

type noopUserStore struct{}

func (noopUserStore) Create(context.Context, *domain.User) error { return nil }
func (noopUserStore) GetByID(context.Context, uuid.UUID) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}
func (noopUserStore) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}
func (noopUserStore) UpdateRole(context.Context, uuid.UUID, domain.Role) error { return nil }
func (s noopUserStore) WithTx(*sql.Tx) store.UserStore                         { return s }

func newCreatorService() (*service.CreatorService, *fakeApplicationStore) {
	apps := newFakeApplicationStore()
	svc := service.NewCreatorService(&sql.DB{}, noopUserStore{}, apps, slog.Default())
	return svc, apps
}

func TestCreatorService_Apply(t *testing.T) {
	t.Parallel()

	svc, _ := newCreatorService()
	ctx := context.Background()
	userID := uuid.New()

	app, err := svc.Apply(ctx, userID, "I teach Go.")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, userID, app.UserID)

	// A second pending application for the same user is rejected.
	_, err = svc.Apply(ctx, userID, "Trying again.")
	assert.ErrorIs(t, err, store.ErrPendingApplicationExists)

	// A different user is unaffected.
	_, err = svc.Apply(ctx, uuid.New(), "Me too.")
	assert.NoError(t, err)
}

func TestCreatorService_ListPending(t *testing.T) {
	t.Parallel()

	svc, apps := newCreatorService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Apply(ctx, uuid.New(), "bio")
		require.NoError(t, err)
	}

	pending, err := svc.ListPending(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	rest, err := svc.ListPending(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	// An approved application leaves the queue.
	_, err = apps.Approve(ctx, pending[0].ID)
	require.NoError(t, err)
	remaining, err := svc.ListPending(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
