// Package commands holds the cobra command tree of the rentals binary.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rental-marketplace/internal/config"
	"rental-marketplace/internal/lifecycle"
	"rental-marketplace/internal/logging"
	"rental-marketplace/internal/query"
	"rental-marketplace/internal/store"
)

// Runtime is shared by every subcommand. Configuration is loaded and the
// database opened on first use, so help output works without either.
type Runtime struct {
	Log *logrus.Logger

	loadConfig func() (config.Config, error)
	cfg        *config.Config
	db         *gorm.DB
}

// NewRuntime returns a Runtime that reads its configuration from the
// environment.
func NewRuntime(log *logrus.Logger) *Runtime {
	return &Runtime{Log: log, loadConfig: config.Load}
}

// NewRuntimeWithDB returns a Runtime bound to an open database.
func NewRuntimeWithDB(log *logrus.Logger, cfg config.Config, db *gorm.DB) *Runtime {
	return &Runtime{Log: log, cfg: &cfg, db: db}
}

// Config returns the loaded configuration.
func (rt *Runtime) Config() (config.Config, error) {
	if rt.cfg == nil {
		cfg, err := rt.loadConfig()
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		rt.cfg = &cfg
	}
	return *rt.cfg, nil
}

// DB opens the configured database once.
func (rt *Runtime) DB() (*gorm.DB, error) {
	if rt.db != nil {
		return rt.db, nil
	}

	cfg, err := rt.Config()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, logging.GormLogger(rt.Log, cfg.SlowQueryThreshold))
	if err != nil {
		return nil, err
	}
	rt.db = db
	return db, nil
}

// Close releases the database connection, if one was opened.
func (rt *Runtime) Close() error {
	if rt.db == nil {
		return nil
	}
	sqlDB, err := rt.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Services builds the store and the two application services over it.
func (rt *Runtime) Services() (*store.GormStore, *lifecycle.Service, *query.Service, error) {
	cfg, err := rt.Config()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := rt.DB()
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.NewGormStore(db, store.WithTxTimeout(cfg.TxTimeout))
	writer := lifecycle.NewService(st, lifecycle.WithProvisionalLease(cfg.ProvisionalLease))
	lister := query.NewService(st)
	return st, writer, lister, nil
}
