package migrate

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"rental-marketplace/internal/models"
)

// Drift is a model column, or a whole model table, missing from the
// database.
type Drift struct {
	Model  string
	Table  string
	Column string // empty when the whole table is missing
}

func (d Drift) String() string {
	if d.Column == "" {
		return fmt.Sprintf("%s: table %s is missing", d.Model, d.Table)
	}
	return fmt.Sprintf("%s: column %s.%s is missing", d.Model, d.Table, d.Column)
}

// Drift compares every registered model with the live schema and reports
// what the database lacks. An empty result means the migrations cover the
// models.
func (m *Migrator) Drift(ctx context.Context) ([]Drift, error) {
	db := m.db.WithContext(ctx)

	names := make([]string, 0, len(models.ModelTypeRegistry))
	for name := range models.ModelTypeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)

	var drift []Drift
	for _, name := range names {
		model := models.ModelTypeRegistry[name]

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %s: %w", name, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(table) {
			drift = append(drift, Drift{Model: name, Table: table})
			continue
		}

		seen := make(map[string]bool)
		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || seen[field.DBName] {
				continue
			}
			seen[field.DBName] = true
			if !db.Migrator().HasColumn(model, field.DBName) {
				drift = append(drift, Drift{Model: name, Table: table, Column: field.DBName})
			}
		}
	}
	return drift, nil
}
