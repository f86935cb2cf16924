package lifecycle_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/lifecycle"
	"rental-marketplace/internal/models"
	"rental-marketplace/internal/store"
	"rental-marketplace/internal/testhelpers"
)

// staleStore hands out applications as they looked while still Pending,
// the view a concurrent decision has when it read before another decision
// committed.
type staleStore struct {
	store.Store
}

func (s staleStore) Transaction(ctx context.Context, fn func(repo store.Repository) error) error {
	return s.Store.Transaction(ctx, func(repo store.Repository) error {
		return fn(staleRepo{repo})
	})
}

type staleRepo struct {
	store.Repository
}

func (r staleRepo) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	app, err := r.Repository.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	stale := *app
	stale.Status = models.StatusPending
	return &stale, nil
}

func TestConcurrentDecisionDoesNotOverwrite(t *testing.T) {
	for _, second := range []models.ApplicationStatus{models.StatusDenied, models.StatusApproved} {
		t.Run(string(second), func(t *testing.T) {
			svc, db := newService(t)
			ctx := context.Background()

			created, err := svc.CreateApplication(ctx, aliceInput())
			require.NoError(t, err)
			approved, err := svc.UpdateApplicationStatus(ctx, created.ID, models.StatusApproved)
			require.NoError(t, err)
			leases := testhelpers.CountRows(t, db, &models.Lease{})

			late := lifecycle.NewService(
				staleStore{store.NewGormStore(db)},
				lifecycle.WithClock(testhelpers.FixedClock(fixedNow)),
			)
			_, err = late.UpdateApplicationStatus(ctx, created.ID, second)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

			var app models.Application
			require.NoError(t, db.First(&app, created.ID).Error)
			assert.Equal(t, models.StatusApproved, app.Status)
			assert.Equal(t, approved.LeaseID, app.LeaseID)
			assert.Equal(t, leases, testhelpers.CountRows(t, db, &models.Lease{}))
			assert.EqualValues(t, 1, testhelpers.CountRows(t, db, &models.Tenancy{}))
		})
	}
}

func TestLeaseDatesAreStoredInUTC(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	local := time.Date(2024, 3, 1, 8, 0, 0, 0, sydney)
	svc, db := newService(t, lifecycle.WithClock(testhelpers.FixedClock(local)))

	app, err := svc.CreateApplication(context.Background(), aliceInput())
	require.NoError(t, err)
	require.NotNil(t, app.LeaseID)

	var raw string
	require.NoError(t, db.Raw("SELECT CAST(start_date AS TEXT) FROM leases WHERE id = ?", *app.LeaseID).Scan(&raw).Error)
	assert.True(t, strings.HasPrefix(raw, "2024-02-29 22:00:00"), raw)
	assert.NotContains(t, raw, "+10:00")
	assert.True(t, app.Lease.StartDate.Equal(local))
}
