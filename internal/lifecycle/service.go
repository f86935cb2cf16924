// Package lifecycle drives a rental application from submission to a
// decision, creating leases and tenancies along the way.
package lifecycle

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/models"
	"rental-marketplace/internal/projector"
	"rental-marketplace/internal/store"
)

var validate = validator.New()

// CreateApplicationInput carries a tenant's application.
type CreateApplicationInput struct {
	PropertyID      uint      `validate:"required"`
	TenantCognitoID string    `validate:"required,max=128"`
	ApplicationDate time.Time `validate:"required"`
	Name            string    `validate:"required"`
	Email           string    `validate:"required,email"`
	PhoneNumber     string    `validate:"required"`
	Message         string
}

// Service creates applications and applies managers' decisions.
type Service struct {
	store            store.Store
	now              func() time.Time
	provisionalLease bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of lease start dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithProvisionalLease controls whether a lease is written as soon as an
// application is submitted. Enabled by default.
func WithProvisionalLease(enabled bool) Option {
	return func(s *Service) {
		s.provisionalLease = enabled
	}
}

// NewService returns a Service writing through st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:            st,
		now:              time.Now,
		provisionalLease: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateApplication records a Pending application for the property. The
// property and tenant must exist. With provisional leases enabled the
// application is linked to a fresh lease priced from the property.
func (s *Service) CreateApplication(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	const op = "create application"

	if err := validate.Struct(in); err != nil {
		return nil, apperr.Validation(op, "invalid application", err)
	}

	var created *models.Application
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		property, err := repo.GetProperty(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if _, err := repo.GetTenant(ctx, in.TenantCognitoID); err != nil {
			return err
		}

		app := &models.Application{
			ApplicationDate: in.ApplicationDate,
			Status:          models.StatusPending,
			Name:            in.Name,
			Email:           in.Email,
			PhoneNumber:     in.PhoneNumber,
			Message:         in.Message,
			PropertyID:      property.ID,
			TenantCognitoID: in.TenantCognitoID,
		}

		if s.provisionalLease {
			lease := s.newLease(property, in.TenantCognitoID)
			if err := repo.CreateLease(ctx, lease); err != nil {
				return err
			}
			app.LeaseID = &lease.ID
		}

		if err := repo.CreateApplication(ctx, app); err != nil {
			return err
		}

		created, err = repo.GetApplication(ctx, app.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateApplicationStatus applies a decision to a Pending application.
// Approving writes a new lease, connects the tenant to the property and
// links the lease, all in one transaction. Denying only changes the status.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error) {
	var updated *models.Application
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		app, err := repo.GetApplication(ctx, id)
		if err != nil {
			return err
		}
		if err := CheckTransition(id, app.Status, status); err != nil {
			return err
		}

		// the write re-checks the status read above so a decision that
		// committed in between is not overwritten
		update := store.ApplicationUpdate{From: app.Status, Status: status}
		if status == models.StatusApproved {
			property, err := repo.GetProperty(ctx, app.PropertyID)
			if err != nil {
				return err
			}

			lease := s.newLease(property, app.TenantCognitoID)
			if err := repo.CreateLease(ctx, lease); err != nil {
				return err
			}
			if err := repo.ConnectTenantToProperty(ctx, property.ID, app.TenantCognitoID); err != nil {
				return err
			}
			update.LeaseID = &lease.ID
		}

		if err := repo.UpdateApplication(ctx, id, update); err != nil {
			return err
		}

		updated, err = repo.GetApplication(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// newLease snapshots the property's price and deposit into a one-year
// lease starting now.
func (s *Service) newLease(property *models.Property, tenantCognitoID string) *models.Lease {
	start := s.now().UTC()
	return &models.Lease{
		StartDate:       start,
		EndDate:         projector.LeaseTerm(start),
		Rent:            property.PricePerMonth,
		Deposit:         property.SecurityDeposit,
		PropertyID:      property.ID,
		TenantCognitoID: tenantCognitoID,
	}
}
