// Package query serves the read side: applications scoped to whoever is
// asking, each joined with the latest matching lease and its next payment
// date.
package query

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/identity"
	"rental-marketplace/internal/models"
	"rental-marketplace/internal/projector"
	"rental-marketplace/internal/store"
)

// DefaultConcurrency bounds the lease lookups a single listing runs at once.
const DefaultConcurrency = 8

// Service lists applications.
type Service struct {
	repo        store.Repository
	now         func() time.Time
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the reference for payment projection.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithConcurrency bounds parallel lease lookups. Values below one are
// ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(repo store.Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		now:         time.Now,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListApplications returns the applications visible to r, ordered by id.
// Tenants see their own applications and managers see applications for
// the properties they manage. An unauthenticated requester sees all of
// them.
func (s *Service) ListApplications(ctx context.Context, r identity.Requester) ([]ApplicationView, error) {
	var filter store.ApplicationFilter
	switch r := r.(type) {
	case identity.Tenant:
		filter.TenantCognitoID = r.ID
	case identity.Manager:
		filter.ManagerCognitoID = r.ID
	case identity.Unauthenticated:
	default:
		return nil, apperr.Validation("list applications", "unsupported requester", nil)
	}

	apps, err := s.repo.FindApplications(ctx, filter)
	if err != nil {
		return nil, err
	}

	// one reference time for the whole listing
	now := s.now()

	views := make([]ApplicationView, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range apps {
		i := i
		g.Go(func() error {
			lease, err := s.latestLease(gctx, apps[i].TenantCognitoID, apps[i].PropertyID, now)
			if err != nil {
				return err
			}
			views[i] = newApplicationView(apps[i], lease)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// ListPropertyLeases returns every lease on the property, oldest first,
// each with its tenant and next payment date.
func (s *Service) ListPropertyLeases(ctx context.Context, propertyID uint) ([]LeaseView, error) {
	if _, err := s.repo.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	leases, err := s.repo.FindLeases(ctx, store.LeaseFilter{PropertyID: propertyID, WithTenant: true})
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]LeaseView, len(leases))
	for i, lease := range leases {
		views[i] = LeaseView{
			Lease:           lease,
			NextPaymentDate: projector.NextPaymentDate(lease.StartDate, now),
		}
	}
	return views, nil
}

// latestLease finds the most recently started lease for the pair, which
// need not be the lease the application links to.
func (s *Service) latestLease(ctx context.Context, tenantCognitoID string, propertyID uint, now time.Time) (*LeaseView, error) {
	leases, err := s.repo.FindLeases(ctx, store.LeaseFilter{
		TenantCognitoID: tenantCognitoID,
		PropertyID:      propertyID,
		NewestFirst:     true,
		Limit:           1,
	})
	if err != nil {
		return nil, err
	}
	if len(leases) == 0 {
		return nil, nil
	}
	return &LeaseView{
		Lease:           leases[0],
		NextPaymentDate: projector.NextPaymentDate(leases[0].StartDate, now),
	}, nil
}

func newApplicationView(app models.Application, lease *LeaseView) ApplicationView {
	v := ApplicationView{
		Application: app,
		Property:    newPropertyView(app.Property),
		Lease:       lease,
	}
	if app.Property != nil {
		v.Manager = app.Property.Manager
	}
	return v
}
