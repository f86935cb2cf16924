package migrate

import (
	"gorm.io/gorm"

	"rental-marketplace/internal/models"
)

func init() {
	MustRegister(&Migration{
		Version: "20240101000001",
		Name:    "create_rental_tables",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(models.Ordered()...)
		},
		Down: func(db *gorm.DB) error {
			tables := models.Ordered()
			for i := len(tables) - 1; i >= 0; i-- {
				if err := db.Migrator().DropTable(tables[i]); err != nil {
					return err
				}
			}
			return nil
		},
	})

	MustRegister(&Migration{
		Version: "20240101000002",
		Name:    "create_lease_lookup_index",
		Up: func(db *gorm.DB) error {
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_leases_lookup
				ON leases (tenant_cognito_id, property_id, start_date DESC)`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_leases_lookup`).Error
		},
	})
}
