package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/models"
)

// GormStore implements Store on top of GORM.
type GormStore struct {
	db        *gorm.DB
	txTimeout time.Duration

	// set when bound to an open transaction
	txCtx context.Context
}

var _ Store = (*GormStore)(nil)

// Option configures a GormStore.
type Option func(*GormStore)

// WithTxTimeout bounds every Transaction call. Zero disables the bound.
func WithTxTimeout(d time.Duration) Option {
	return func(s *GormStore) {
		s.txTimeout = d
	}
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	s := &GormStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transaction runs fn inside one database transaction.
func (s *GormStore) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	if s.txCtx != nil {
		// already inside a transaction: join it
		return fn(s)
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, txCtx: ctx})
	})
	return translate(ctx, "transaction", err)
}

// conn returns the handle to run a statement on. Inside a transaction the
// transaction's context governs every statement.
func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	if s.txCtx != nil {
		return s.db
	}
	return s.db.WithContext(ctx)
}

func (s *GormStore) ctx(ctx context.Context) context.Context {
	if s.txCtx != nil {
		return s.txCtx
	}
	return ctx
}

func (s *GormStore) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	const op = "get property"
	var p models.Property
	err := s.conn(ctx).Preload("Location").Preload("Manager").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(op, "property", id)
	}
	if err != nil {
		return nil, translate(s.ctx(ctx), op, err)
	}
	return &p, nil
}

func (s *GormStore) GetTenant(ctx context.Context, cognitoID string) (*models.Tenant, error) {
	const op = "get tenant"
	var t models.Tenant
	err := s.conn(ctx).Where("cognito_id = ?", cognitoID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(op, "tenant", cognitoID)
	}
	if err != nil {
		return nil, translate(s.ctx(ctx), op, err)
	}
	return &t, nil
}

func (s *GormStore) CreateLease(ctx context.Context, lease *models.Lease) error {
	err := s.conn(ctx).Omit(clause.Associations).Create(lease).Error
	return translate(s.ctx(ctx), "create lease", err)
}

func (s *GormStore) FindLeases(ctx context.Context, filter LeaseFilter) ([]models.Lease, error) {
	q := s.conn(ctx).Model(&models.Lease{})
	if filter.WithTenant {
		q = q.Preload("Tenant")
	}
	if filter.TenantCognitoID != "" {
		q = q.Where("tenant_cognito_id = ?", filter.TenantCognitoID)
	}
	if filter.PropertyID != 0 {
		q = q.Where("property_id = ?", filter.PropertyID)
	}
	if filter.NewestFirst {
		// id breaks ties so the lease written last wins
		q = q.Order("start_date DESC").Order("id DESC")
	} else {
		q = q.Order("start_date").Order("id")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var leases []models.Lease
	if err := q.Find(&leases).Error; err != nil {
		return nil, translate(s.ctx(ctx), "find leases", err)
	}
	return leases, nil
}

func (s *GormStore) CreateApplication(ctx context.Context, app *models.Application) error {
	err := s.conn(ctx).Omit(clause.Associations).Create(app).Error
	return translate(s.ctx(ctx), "create application", err)
}

func (s *GormStore) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	const op = "get application"
	var app models.Application
	err := s.conn(ctx).
		Preload("Property").
		Preload("Tenant").
		Preload("Lease").
		First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(op, "application", id)
	}
	if err != nil {
		return nil, translate(s.ctx(ctx), op, err)
	}
	return &app, nil
}

func (s *GormStore) UpdateApplication(ctx context.Context, id uint, update ApplicationUpdate) error {
	const op = "update application"
	fields := map[string]interface{}{"status": update.Status}
	if update.LeaseID != nil {
		fields["lease_id"] = *update.LeaseID
	}

	q := s.conn(ctx).Model(&models.Application{}).Where("id = ?", id)
	if update.From != "" {
		// compare-and-set: a concurrent decision that committed first
		// leaves nothing to match
		q = q.Where("status = ?", update.From)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return translate(s.ctx(ctx), op, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if update.From == "" {
		return apperr.NotFound(op, "application", id)
	}

	var current []models.ApplicationStatus
	err := s.conn(ctx).Model(&models.Application{}).Where("id = ?", id).Limit(1).Pluck("status", &current).Error
	if err != nil {
		return translate(s.ctx(ctx), op, err)
	}
	if len(current) == 0 {
		return apperr.NotFound(op, "application", id)
	}
	return apperr.InvalidTransition(op, id, string(current[0]), string(update.Status))
}

func (s *GormStore) FindApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	q := s.conn(ctx).
		Preload("Property.Location").
		Preload("Property.Manager").
		Preload("Tenant").
		Order("id")
	if filter.TenantCognitoID != "" {
		q = q.Where("tenant_cognito_id = ?", filter.TenantCognitoID)
	}
	if filter.ManagerCognitoID != "" {
		owned := s.conn(ctx).Model(&models.Property{}).
			Select("id").
			Where("manager_cognito_id = ?", filter.ManagerCognitoID)
		q = q.Where("property_id IN (?)", owned)
	}

	var apps []models.Application
	if err := q.Find(&apps).Error; err != nil {
		return nil, translate(s.ctx(ctx), "find applications", err)
	}
	return apps, nil
}

func (s *GormStore) ConnectTenantToProperty(ctx context.Context, propertyID uint, tenantCognitoID string) error {
	tenancy := models.Tenancy{PropertyID: propertyID, TenantCognitoID: tenantCognitoID}
	err := s.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&tenancy).Error
	return translate(s.ctx(ctx), "connect tenant to property", err)
}

func (s *GormStore) IsTenantOf(ctx context.Context, propertyID uint, tenantCognitoID string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Tenancy{}).
		Where("property_id = ? AND tenant_cognito_id = ?", propertyID, tenantCognitoID).
		Count(&n).Error
	if err != nil {
		return false, translate(s.ctx(ctx), "check tenancy", err)
	}
	return n > 0, nil
}

// translate maps a persistence error onto an apperr kind. Errors that
// already carry a kind pass through, except store failures caused by an
// expired deadline, which become timeouts.
func translate(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}

	deadline := errors.Is(err, context.DeadlineExceeded) ||
		(ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded))

	var appErr *apperr.Error
	if errors.As(err, &appErr) && !(deadline && appErr.Kind == apperr.KindStoreFailure) {
		return err
	}
	if deadline {
		return apperr.Timeout(op, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperr.Error{Kind: apperr.KindNotFound, Op: op, Err: err}
	}
	return apperr.StoreFailure(op, err)
}
