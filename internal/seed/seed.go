// Package seed inserts reference data: locations, managers, tenants and
// properties. Rows that already exist are left alone, so seeding twice is
// harmless.
package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-marketplace/internal/models"
)

// Data is a set of rows to seed.
type Data struct {
	Locations  []models.Location
	Managers   []models.Manager
	Tenants    []models.Tenant
	Properties []models.Property
}

// Apply writes data in one transaction.
func Apply(ctx context.Context, db *gorm.DB, data Data) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Session(&gorm.Session{})

		for i := range data.Locations {
			if err := ins.Create(&data.Locations[i]).Error; err != nil {
				return fmt.Errorf("failed to seed location %d: %w", data.Locations[i].ID, err)
			}
		}
		for i := range data.Managers {
			if err := ins.Create(&data.Managers[i]).Error; err != nil {
				return fmt.Errorf("failed to seed manager %s: %w", data.Managers[i].CognitoID, err)
			}
		}
		for i := range data.Tenants {
			if err := ins.Create(&data.Tenants[i]).Error; err != nil {
				return fmt.Errorf("failed to seed tenant %s: %w", data.Tenants[i].CognitoID, err)
			}
		}
		for i := range data.Properties {
			if err := ins.Create(&data.Properties[i]).Error; err != nil {
				return fmt.Errorf("failed to seed property %d: %w", data.Properties[i].ID, err)
			}
		}
		return nil
	})
}

// Demo returns a small marketplace: two managers, two tenants and three
// properties.
func Demo() Data {
	return Data{
		Locations: []models.Location{
			{ID: 1, Address: "12 Harbour St", City: "Sydney", State: "NSW", Country: "Australia", PostalCode: "2000"},
			{ID: 2, Address: "80 Collins St", City: "Melbourne", State: "VIC", Country: "Australia", PostalCode: "3000"},
			{ID: 3, Address: "5 Queen St", City: "Brisbane", State: "QLD", Country: "Australia", PostalCode: "4000"},
		},
		Managers: []models.Manager{
			{CognitoID: "mgr-1", Name: "Morgan Lee", Email: "morgan@example.com", PhoneNumber: "555-0100"},
			{CognitoID: "mgr-2", Name: "Sam Patel", Email: "sam@example.com", PhoneNumber: "555-0101"},
		},
		Tenants: []models.Tenant{
			{CognitoID: "tenant-A", Name: "Alice", Email: "alice@example.com", PhoneNumber: "555-0200"},
			{CognitoID: "tenant-B", Name: "Bob", Email: "bob@example.com", PhoneNumber: "555-0201"},
		},
		Properties: []models.Property{
			{ID: 1, Name: "Harbour View", PricePerMonth: 1500, SecurityDeposit: 1500, ManagerCognitoID: "mgr-1", LocationID: 1},
			{ID: 2, Name: "Collins Loft", PricePerMonth: 2100, SecurityDeposit: 3000, ManagerCognitoID: "mgr-2", LocationID: 2},
			{ID: 3, Name: "Queen St Studio", PricePerMonth: 950, SecurityDeposit: 900, ManagerCognitoID: "mgr-2", LocationID: 3},
		},
	}
}
