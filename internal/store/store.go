// Package store is the persistence boundary for properties, tenants,
// applications and leases.
package store

import (
	"context"

	"rental-marketplace/internal/models"
)

// Repository holds the reads and writes the application core needs.
type Repository interface {
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	GetTenant(ctx context.Context, cognitoID string) (*models.Tenant, error)

	CreateLease(ctx context.Context, lease *models.Lease) error
	FindLeases(ctx context.Context, filter LeaseFilter) ([]models.Lease, error)

	CreateApplication(ctx context.Context, app *models.Application) error
	// GetApplication loads the application with Property, Tenant and Lease.
	GetApplication(ctx context.Context, id uint) (*models.Application, error)
	UpdateApplication(ctx context.Context, id uint, update ApplicationUpdate) error
	// FindApplications loads matching applications, ordered by id, with the
	// property (plus its location and manager) and tenant attached.
	FindApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)

	// ConnectTenantToProperty records the tenancy. Connecting an already
	// connected tenant is a no-op.
	ConnectTenantToProperty(ctx context.Context, propertyID uint, tenantCognitoID string) error
	IsTenantOf(ctx context.Context, propertyID uint, tenantCognitoID string) (bool, error)
}

// Store is a Repository that can also run a unit of work.
type Store interface {
	Repository

	// Transaction runs fn against a Repository bound to a single database
	// transaction. The transaction commits when fn returns nil and rolls
	// back every write otherwise.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

// ApplicationUpdate lists the mutable application fields. A nil LeaseID
// leaves the current lease link untouched. A non-empty From makes the write
// conditional: it applies only while the stored status still equals From,
// and fails with InvalidTransition otherwise.
type ApplicationUpdate struct {
	From    models.ApplicationStatus
	Status  models.ApplicationStatus
	LeaseID *uint
}

// ApplicationFilter narrows FindApplications. Empty fields do not filter.
type ApplicationFilter struct {
	TenantCognitoID  string
	ManagerCognitoID string
}

// LeaseFilter narrows FindLeases. Empty fields do not filter.
type LeaseFilter struct {
	TenantCognitoID string
	PropertyID      uint
	// NewestFirst orders by start date descending; the default is ascending.
	NewestFirst bool
	Limit       int
	// WithTenant preloads each lease's tenant.
	WithTenant bool
}
