// Package migrate applies versioned schema migrations and records which
// ones ran in the migration_records table.
package migrate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Migration is a single schema change.
type Migration struct {
	Version string // sortable, e.g. a timestamp
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationRecord is a row per applied migration.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// Status is a migration together with whether it has been applied.
type Status struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// registry collects migrations keyed by version. Packages fill the default
// registry from init functions.
type registry struct {
	mu        sync.Mutex
	byVersion map[string]*Migration
}

var defaultRegistry = &registry{byVersion: make(map[string]*Migration)}

func (r *registry) add(m *Migration) error {
	if m.Version == "" || m.Up == nil || m.Down == nil {
		return fmt.Errorf("migration %q needs a version plus Up and Down", m.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byVersion[m.Version]; ok {
		return fmt.Errorf("migration version %s registered twice (%s, %s)", m.Version, prev.Name, m.Name)
	}
	r.byVersion[m.Version] = m
	return nil
}

func (r *registry) sorted() []*Migration {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Migration, 0, len(r.byVersion))
	for _, m := range r.byVersion {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// MustRegister adds m to the migrations every NewMigrator starts with. It
// panics on a duplicate version or a migration missing Up or Down.
func MustRegister(m *Migration) {
	if err := defaultRegistry.add(m); err != nil {
		panic(err)
	}
}

// Registered lists the registered migrations in version order.
func Registered() []*Migration {
	return defaultRegistry.sorted()
}

// Migrator runs migrations against a database.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
	now        func() time.Time
}

// NewMigrator creates a Migrator loaded with the registered migrations.
func NewMigrator(db *gorm.DB) *Migrator {
	m := &Migrator{db: db, now: time.Now}
	for _, mig := range Registered() {
		m.Register(mig)
	}
	return m
}

// Register adds a migration, keeping the list sorted by version.
func (m *Migrator) Register(mig *Migration) {
	m.migrations = append(m.migrations, mig)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// Migrations returns the known migrations in version order.
func (m *Migrator) Migrations() []*Migration {
	out := make([]*Migration, len(m.migrations))
	copy(out, m.migrations)
	return out
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&MigrationRecord{})
}

// GetAppliedVersions returns the set of applied migration versions.
func (m *Migrator) GetAppliedVersions(ctx context.Context) (map[string]MigrationRecord, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration_records table: %w", err)
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	versions := make(map[string]MigrationRecord, len(records))
	for _, record := range records {
		versions[record.Version] = record
	}
	return versions, nil
}

// Pending returns the migrations not applied yet, in version order.
func (m *Migrator) Pending(ctx context.Context) ([]*Migration, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*Migration
	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; !ok {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Up applies every pending migration. Each migration and its record are
// written in one transaction, so a failed migration leaves no trace.
func (m *Migrator) Up(ctx context.Context) ([]*Migration, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	var done []*Migration
	for _, mig := range pending {
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mig.Name, err)
			}
			record := MigrationRecord{
				Version:   mig.Version,
				Name:      mig.Name,
				AppliedAt: m.now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
			}
			return nil
		})
		if err != nil {
			return done, err
		}
		done = append(done, mig)
	}
	return done, nil
}

// Down reverts the most recently applied migration and returns it, or nil
// when nothing has been applied.
func (m *Migrator) Down(ctx context.Context) (*Migration, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration_records table: %w", err)
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Order("applied_at DESC").Order("version DESC").Limit(1).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get last migration: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	last := records[0]

	var target *Migration
	for _, mig := range m.migrations {
		if mig.Version == last.Version {
			target = mig
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("migration for version %s not found", last.Version)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", target.Name, err)
		}
		if err := tx.Delete(&last).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// Status reports every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := Status{Version: mig.Version, Name: mig.Name}
		if rec, ok := applied[mig.Version]; ok {
			st.Applied = true
			st.AppliedAt = rec.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}

// History returns applied migrations, most recent first.
func (m *Migrator) History(ctx context.Context) ([]MigrationRecord, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration_records table: %w", err)
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Order("applied_at DESC").Order("version DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get migration history: %w", err)
	}
	return records, nil
}
