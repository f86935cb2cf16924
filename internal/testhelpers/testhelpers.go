// Package testhelpers builds migrated in-memory databases and fixtures for
// package tests.
package testhelpers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-marketplace/internal/models"
	"rental-marketplace/internal/seed"
	"rental-marketplace/internal/store"
	"rental-marketplace/internal/store/migrate"
)

// ErrInjected is returned by statements failed with FailOn.
var ErrInjected = errors.New("injected store failure")

// NewDB opens an in-memory sqlite database with the full schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := store.Open(store.DriverSQLite, ":memory:", logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)

	_, err = migrate.NewMigrator(db).Up(context.Background())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSeededDB is NewDB plus the demo data set.
func NewSeededDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	require.NoError(t, seed.Apply(context.Background(), db, seed.Demo()))
	return db
}

// FixedClock returns a clock frozen at at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// FailOn makes every GORM statement of the given kind ("create", "update",
// "query") against table fail with ErrInjected.
func FailOn(t testing.TB, db *gorm.DB, kind, table string) {
	t.Helper()

	name := "testhelpers:fail_" + kind + "_" + table
	hook := func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	}

	var err error
	switch kind {
	case "create":
		err = db.Callback().Create().Before("gorm:create").Register(name, hook)
	case "update":
		err = db.Callback().Update().Before("gorm:update").Register(name, hook)
	case "query":
		err = db.Callback().Query().Before("gorm:query").Register(name, hook)
	default:
		t.Fatalf("unknown statement kind %q", kind)
	}
	require.NoError(t, err)
}

// CountRows counts rows of model.
func CountRows(t testing.TB, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// InsertLease writes a lease directly, bypassing the lifecycle.
func InsertLease(t testing.TB, db *gorm.DB, lease models.Lease) models.Lease {
	t.Helper()

	require.NoError(t, db.Omit("Property", "Tenant").Create(&lease).Error)
	return lease
}

// InsertApplication writes an application directly, bypassing the
// lifecycle.
func InsertApplication(t testing.TB, db *gorm.DB, app models.Application) models.Application {
	t.Helper()

	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if app.ApplicationDate.IsZero() {
		app.ApplicationDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	}
	require.NoError(t, db.Omit("Property", "Tenant", "Lease").Create(&app).Error)
	return app
}
