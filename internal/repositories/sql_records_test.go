package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poofware/property-records-service/internal/models"
)

func TestInsertStmt(t *testing.T) {
	cols := []string{"a", "b", "c"}

	assert.Equal(t,
		"INSERT INTO things (a, b, c) VALUES (?, ?, ?)",
		insertStmt("things", cols, questionPlaceholder),
	)
	assert.Equal(t,
		"INSERT INTO things (a, b, c) VALUES ($1, $2, $3)",
		insertStmt("things", cols, dollarPlaceholder),
	)
}

func TestSelectAllStmt(t *testing.T) {
	assert.Equal(t,
		"SELECT id, owner, address, valuation, status, created_at FROM properties ORDER BY id",
		selectAllStmt("properties", propertyColumns),
	)
}

func TestArgsMatchColumns(t *testing.T) {
	assert.Len(t, propertyArgs(&models.Property{}), len(propertyColumns))
	assert.Len(t, leaseArgs(&models.LeaseAgreement{}), len(leaseColumns))
	assert.Len(t, maintenanceArgs(&models.MaintenanceRequest{}), len(maintenanceColumns))
}
