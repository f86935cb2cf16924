package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := &registry{byVersion: make(map[string]*Migration)}

	require.NoError(t, r.add(testMigration("20240315000002", "second")))
	require.NoError(t, r.add(testMigration("20240315000001", "first")))

	err := r.add(testMigration("20240315000001", "again"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice (create_first, create_again)")

	err = r.add(&Migration{Version: "20240315000003", Name: "no_down", Up: testMigration("x", "t").Up})
	assert.Error(t, err)

	sorted := r.sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "20240315000001", sorted[0].Version)
	assert.Equal(t, "20240315000002", sorted[1].Version)
}

func TestRegisteredHoldsRentalSchema(t *testing.T) {
	migrations := Registered()
	require.Len(t, migrations, 2)
	assert.Equal(t, "create_rental_tables", migrations[0].Name)
	assert.Equal(t, "create_lease_lookup_index", migrations[1].Name)

	assert.Panics(t, func() { MustRegister(migrations[0]) })
}
