package models

// ModelTypeRegistry lists every persisted model by name. Schema migrations
// create tables from it.
var ModelTypeRegistry = map[string]interface{}{
	"Application": Application{},
	"Lease":       Lease{},
	"Location":    Location{},
	"Manager":     Manager{},
	"Property":    Property{},
	"Tenancy":     Tenancy{},
	"Tenant":      Tenant{},
}

// Ordered returns the registered models parents first, the order tables
// must be created in (and dropped in reverse).
func Ordered() []interface{} {
	return []interface{}{
		&Location{},
		&Manager{},
		&Tenant{},
		&Property{},
		&Tenancy{},
		&Lease{},
		&Application{},
	}
}
